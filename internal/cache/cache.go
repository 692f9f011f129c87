package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the key-value store the auth core coordinates through:
// refresh tokens and presence both live here with per-key expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RefreshTokenKey is the per-user slot holding the single active
// refresh token. Overwriting it invalidates the previous token.
func RefreshTokenKey(userID string) string {
	return "refresh_token:" + userID
}

// PresenceKey holds the user's online status JSON.
func PresenceKey(userID string) string {
	return "user:online:" + userID
}
