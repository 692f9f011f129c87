package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bowenhooks/internal/models"
)

func testTokenService(accessTTL, refreshTTL time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Email: "ada@bowenuniversity.edu.ng",
		Role:  models.RoleUser,
	}
}

func TestIssueTokens_RoundTrip(t *testing.T) {
	svc := testTokenService(time.Hour, 24*time.Hour)
	user := testUser()

	pair, err := svc.IssueTokens(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)

	refreshClaims, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshClaims.UserID)
}

func TestVerify_DistinctSecrets(t *testing.T) {
	svc := testTokenService(time.Hour, 24*time.Hour)
	pair, err := svc.IssueTokens(testUser())
	require.NoError(t, err)

	// an access token must not pass refresh verification and vice versa
	_, err = svc.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Expired(t *testing.T) {
	svc := testTokenService(-time.Minute, 24*time.Hour)
	pair, err := svc.IssueTokens(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyAccess_Garbage(t *testing.T) {
	svc := testTokenService(time.Hour, 24*time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.VerifyAccess(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	svc := testTokenService(time.Hour, 24*time.Hour)
	other := NewTokenService(TokenConfig{
		AccessSecret:  []byte("different-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})

	pair, err := other.IssueTokens(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
