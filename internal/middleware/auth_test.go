package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bowenhooks/internal/auth"
	"bowenhooks/internal/models"
	"bowenhooks/internal/repository"
)

type stubUsers struct {
	users map[string]*models.User
}

func (s *stubUsers) Create(context.Context, *models.User) error { return nil }

func (s *stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func (s *stubUsers) GetByVerificationToken(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func (s *stubUsers) GetByResetToken(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func (s *stubUsers) Update(_ context.Context, user *models.User) error {
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func setup(t *testing.T) (*stubUsers, *auth.TokenService, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	user := &models.User{
		ID:       "user-1",
		Email:    "ada@bowenuniversity.edu.ng",
		Role:     models.RoleUser,
		IsActive: true,
	}
	users := &stubUsers{users: map[string]*models.User{user.ID: user}}
	tokens := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
	return users, tokens, user
}

func protectedRouter(users repository.Users, tokens *auth.TokenService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth(users, tokens)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "role": identity.Role})
	})
	r.GET("/protected", chain...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	users, tokens, user := setup(t)
	pair, err := tokens.IssueTokens(user)
	require.NoError(t, err)

	w := doRequest(protectedRouter(users, tokens), pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"user-1"`)
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	users, tokens, user := setup(t)
	pair, err := tokens.IssueTokens(user)
	require.NoError(t, err)

	r := protectedRouter(users, tokens)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: pair.AccessToken})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_Failures(t *testing.T) {
	users, tokens, user := setup(t)

	expiredSvc := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     -time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
	expired, err := expiredSvc.IssueTokens(user)
	require.NoError(t, err)

	ghost := &models.User{ID: "ghost", Email: "ghost@x", Role: models.RoleUser, IsActive: true}
	ghostPair, err := tokens.IssueTokens(ghost)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{"no token", "", "no token provided"},
		{"garbage token", "garbage", "invalid token"},
		{"expired token", expired.AccessToken, "token expired"},
		{"deleted user", ghostPair.AccessToken, "user no longer exists"},
	}

	r := protectedRouter(users, tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.token)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestRequireAuth_DeactivatedUser(t *testing.T) {
	users, tokens, user := setup(t)
	pair, err := tokens.IssueTokens(user)
	require.NoError(t, err)

	users.users[user.ID].IsActive = false
	w := doRequest(protectedRouter(users, tokens), pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "deactivated")
}

func TestOptionalAuth(t *testing.T) {
	users, tokens, user := setup(t)
	pair, err := tokens.IssueTokens(user)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/feed", OptionalAuth(users, tokens), func(c *gin.Context) {
		if identity, ok := CurrentIdentity(c); ok {
			c.JSON(http.StatusOK, gin.H{"viewer": identity.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"viewer": "anonymous"})
	})

	// without a token the request still succeeds
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	// with a token the identity is attached
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "user-1")

	// a bad token is ignored rather than rejected
	req = httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestRequireRoles(t *testing.T) {
	users, tokens, user := setup(t)
	pair, err := tokens.IssueTokens(user)
	require.NoError(t, err)

	moderator := &models.User{ID: "mod-1", Email: "mod@x", Role: models.RoleModerator, IsActive: true}
	users.users[moderator.ID] = moderator
	modPair, err := tokens.IssueTokens(moderator)
	require.NoError(t, err)

	r := protectedRouter(users, tokens, RequireRoles(models.RoleModerator, models.RoleAdmin))

	w := doRequest(r, pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, modPair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireVerified(t *testing.T) {
	users, tokens, user := setup(t)
	pair, err := tokens.IssueTokens(user)
	require.NoError(t, err)

	r := protectedRouter(users, tokens, RequireVerified(users))

	w := doRequest(r, pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "verify your email")

	users.users[user.ID].IsVerified = true
	w = doRequest(r, pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePremium(t *testing.T) {
	users, tokens, user := setup(t)
	pair, err := tokens.IssueTokens(user)
	require.NoError(t, err)

	r := protectedRouter(users, tokens, RequirePremium(users))

	// free account
	w := doRequest(r, pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "premium")

	// active premium
	future := time.Now().Add(24 * time.Hour)
	users.users[user.ID].IsPremium = true
	users.users[user.ID].PremiumExpiresAt = &future
	w = doRequest(r, pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// lapsed premium: rejected and the flag persisted off
	past := time.Now().Add(-time.Hour)
	users.users[user.ID].PremiumExpiresAt = &past
	w = doRequest(r, pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
	assert.False(t, users.users[user.ID].IsPremium)
}

type failingUpdateUsers struct {
	*stubUsers
}

func (f *failingUpdateUsers) Update(context.Context, *models.User) error {
	return errors.New("write failed")
}

func TestRequirePremium_LapsedPersistFailure(t *testing.T) {
	users, tokens, user := setup(t)
	pair, err := tokens.IssueTokens(user)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	users.users[user.ID].IsPremium = true
	users.users[user.ID].PremiumExpiresAt = &past

	// the failed write is logged, the request still gets rejected
	flaky := &failingUpdateUsers{users}
	r := protectedRouter(flaky, tokens, RequirePremium(flaky))
	w := doRequest(r, pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}
