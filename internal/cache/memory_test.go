package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c, err := NewMemory(16)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.SetEx(ctx, "k", "v", time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestMemoryCache_Miss(t *testing.T) {
	c, err := NewMemory(16)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c, err := NewMemory(16)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.SetEx(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	c, err := NewMemory(16)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.SetEx(ctx, "k", "old", time.Minute))
	require.NoError(t, c.SetEx(ctx, "k", "new", time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestMemoryCache_Delete(t *testing.T) {
	c, err := NewMemory(16)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.SetEx(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// deleting a missing key is not an error
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "refresh_token:u1", RefreshTokenKey("u1"))
	assert.Equal(t, "user:online:u1", PresenceKey("u1"))
}
