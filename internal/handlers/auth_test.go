package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bowenhooks/internal/auth"
	"bowenhooks/internal/cache"
	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"
	"bowenhooks/internal/repository"
)

type memUsers struct {
	seq  int
	byID map[string]*models.User
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	for _, u := range m.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == "" {
		m.seq++
		user.ID = "user-" + strconv.Itoa(m.seq)
	}
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByVerificationToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range m.byID {
		if token != "" && u.VerificationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByResetToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range m.byID {
		if token != "" && u.PasswordResetToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) Update(_ context.Context, user *models.User) error {
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

type memProfiles struct {
	byUserID map[string]*models.Profile
}

func (m *memProfiles) Create(_ context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = "profile-" + profile.UserID
	}
	profile.EnsureCodeName()
	profile.RecomputeCompletion()
	cp := *profile
	m.byUserID[profile.UserID] = &cp
	return nil
}

func (m *memProfiles) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := m.byUserID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) Update(_ context.Context, profile *models.Profile) error {
	profile.RecomputeCompletion()
	cp := *profile
	m.byUserID[profile.UserID] = &cp
	return nil
}

type noopMailer struct{}

func (noopMailer) SendVerificationEmail(string, string)  {}
func (noopMailer) SendPasswordResetEmail(string, string) {}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUsers{byID: map[string]*models.User{}}
	profiles := &memProfiles{byUserID: map[string]*models.Profile{}}
	mem, err := cache.NewMemory(128)
	require.NoError(t, err)

	tokens := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
	svc := auth.NewService(users, profiles, tokens, mem, noopMailer{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		auth.Config{
			MaxLoginAttempts:     5,
			LockoutDuration:      30 * time.Minute,
			VerificationTokenTTL: 24 * time.Hour,
			ResetTokenTTL:        time.Hour,
			PresenceTTL:          time.Hour,
		})

	h := NewAuthHandler(svc, users, profiles, 24*time.Hour, false)
	requireAuth := middleware.RequireAuth(users, tokens)

	r := gin.New()
	g := r.Group("/api/v1/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
	g.POST("/forgot-password", h.ForgotPassword)
	g.POST("/logout", requireAuth, h.Logout)
	g.GET("/me", requireAuth, h.GetMe)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"email":       "ada@bowenuniversity.edu.ng",
		"password":    "sup3rsecret",
		"firstName":   "Ada",
		"lastName":    "Okafor",
		"dateOfBirth": "2004-05-01",
		"department":  "Computer Science",
		"yearOfStudy": 3,
	}
}

func TestRegisterEndpoint(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"accessToken"`)

	// refresh token arrives as an httpOnly cookie
	cookies := w.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == "refreshToken" {
			found = c
		}
	}
	require.NotNil(t, found, "refreshToken cookie must be set")
	assert.True(t, found.HttpOnly)
	assert.NotEmpty(t, found.Value)
}

func TestRegisterEndpoint_Statuses(t *testing.T) {
	r := newAuthRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/v1/auth/register", registerBody()).Code)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		want   int
	}{
		{"duplicate email", func(map[string]interface{}) {}, http.StatusConflict},
		{"short password", func(b map[string]interface{}) {
			b["email"] = "obi@bowenuniversity.edu.ng"
			b["password"] = "short"
		}, http.StatusBadRequest},
		{"underage", func(b map[string]interface{}) {
			b["email"] = "obi@bowenuniversity.edu.ng"
			b["dateOfBirth"] = "2012-05-01"
		}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := registerBody()
			tt.mutate(body)
			assert.Equal(t, tt.want, postJSON(r, "/api/v1/auth/register", body).Code)
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	r := newAuthRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/v1/auth/register", registerBody()).Code)

	w := postJSON(r, "/api/v1/auth/login", map[string]string{
		"email":    "ada@bowenuniversity.edu.ng",
		"password": "sup3rsecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accessToken"`)

	w = postJSON(r, "/api/v1/auth/login", map[string]string{
		"email":    "ada@bowenuniversity.edu.ng",
		"password": "wrongwrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshEndpoint_CookieAndBody(t *testing.T) {
	r := newAuthRouter(t)
	reg := postJSON(r, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, reg.Code)

	var refreshCookie *http.Cookie
	for _, c := range reg.Result().Cookies() {
		if c.Name == "refreshToken" {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie)

	// via cookie
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"accessToken"`)

	// the rotated-out cookie token is now rejected
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// no token at all
	w = postJSON(r, "/api/v1/auth/refresh", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForgotPasswordEndpoint_NoEnumeration(t *testing.T) {
	r := newAuthRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/v1/auth/register", registerBody()).Code)

	known := postJSON(r, "/api/v1/auth/forgot-password",
		map[string]string{"email": "ada@bowenuniversity.edu.ng"})
	unknown := postJSON(r, "/api/v1/auth/forgot-password",
		map[string]string{"email": "ghost@bowenuniversity.edu.ng"})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String(),
		"responses must be indistinguishable")
}

func TestMeEndpoint(t *testing.T) {
	r := newAuthRouter(t)
	reg := postJSON(r, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, reg.Code)

	var parsed struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(reg.Body.Bytes(), &parsed))
	require.NotEmpty(t, parsed.Data.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+parsed.Data.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@bowenuniversity.edu.ng")

	// without a token
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutEndpoint_ClearsCookie(t *testing.T) {
	r := newAuthRouter(t)
	reg := postJSON(r, "/api/v1/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, reg.Code)

	var parsed struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(reg.Body.Bytes(), &parsed))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+parsed.Data.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "refreshToken" {
			assert.Empty(t, c.Value)
			assert.Negative(t, c.MaxAge)
		}
	}
}
