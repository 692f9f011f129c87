package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHexToken returns n random bytes hex-encoded. Used for email
// verification and password reset tokens.
func RandomHexToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
