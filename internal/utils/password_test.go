package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("sup3rsecret")
	require.NoError(t, err)

	assert.NotEqual(t, "sup3rsecret", hash)
	assert.True(t, CheckPasswordHash("sup3rsecret", hash))
	assert.False(t, CheckPasswordHash("wrongwrong", hash))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("sup3rsecret")
	require.NoError(t, err)
	h2, err := HashPassword("sup3rsecret")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestRandomHexToken(t *testing.T) {
	tok, err := RandomHexToken(32)
	require.NoError(t, err)
	assert.Len(t, tok, 64)

	other, err := RandomHexToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("<script>alert(1)</script>hello"))
	assert.Equal(t, "plain text", SanitizeText("plain text"))
	assert.Equal(t, "bold", SanitizeText("<b>bold</b>"))
}
