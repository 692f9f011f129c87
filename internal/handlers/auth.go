package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bowenhooks/internal/auth"
	"bowenhooks/internal/middleware"
	"bowenhooks/internal/repository"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	svc        *auth.Service
	users      repository.Users
	profiles   repository.Profiles
	cookieTTL  time.Duration
	production bool
}

func NewAuthHandler(svc *auth.Service, users repository.Users, profiles repository.Profiles, cookieTTL time.Duration, production bool) *AuthHandler {
	return &AuthHandler{
		svc:        svc,
		users:      users,
		profiles:   profiles,
		cookieTTL:  cookieTTL,
		production: production,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)

	now := time.Now()
	respondMessage(c, http.StatusCreated, "Registration successful! Please verify your email.", gin.H{
		"user": gin.H{
			"id":         result.User.ID,
			"email":      result.User.Email,
			"role":       result.User.Role,
			"isVerified": result.User.IsVerified,
		},
		"profile": gin.H{
			"id":                result.Profile.ID,
			"firstName":         result.Profile.FirstName,
			"lastName":          result.Profile.LastName,
			"displayName":       result.Profile.DisplayName,
			"age":               result.Profile.Age(now),
			"profileCompletion": result.Profile.ProfileCompletion,
		},
		"accessToken": result.Tokens.AccessToken,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)

	data := gin.H{
		"user": gin.H{
			"id":          result.User.ID,
			"email":       result.User.Email,
			"role":        result.User.Role,
			"isVerified":  result.User.IsVerified,
			"isPremium":   result.User.IsPremium,
			"loginStreak": result.User.LoginStreak,
		},
		"accessToken": result.Tokens.AccessToken,
	}
	if result.Profile != nil {
		now := time.Now()
		data["profile"] = gin.H{
			"id":                result.Profile.ID,
			"firstName":         result.Profile.FirstName,
			"lastName":          result.Profile.LastName,
			"displayName":       result.Profile.DisplayName,
			"codeName":          result.Profile.CodeName,
			"age":               result.Profile.Age(now),
			"bio":               result.Profile.Bio,
			"department":        result.Profile.Department,
			"yearOfStudy":       result.Profile.YearOfStudy,
			"profileCompletion": result.Profile.ProfileCompletion,
			"isAnonymous":       result.Profile.IsAnonymous,
		}
	}
	respondMessage(c, http.StatusOK, "Login successful", data)
}

// Logout handles POST /auth/logout (auth required).
func (h *AuthHandler) Logout(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authorized"})
		return
	}

	if err := h.svc.Logout(c.Request.Context(), identity.ID); err != nil {
		respondError(c, err, h.production)
		return
	}

	h.clearRefreshCookie(c)
	respondMessage(c, http.StatusOK, "Logged out successfully", nil)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /auth/refresh. The token comes from the cookie
// or the body.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)
	if token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "no refresh token provided"})
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	respondMessage(c, http.StatusOK, "Token refreshed successfully", gin.H{
		"accessToken": tokens.AccessToken,
	})
}

// VerifyEmail handles GET /auth/verify/:token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		badRequest(c, "verification token is required")
		return
	}

	user, err := h.svc.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	respondMessage(c, http.StatusOK, "Email verified successfully! You can now access all features.", gin.H{
		"userId":     user.ID,
		"email":      user.Email,
		"isVerified": user.IsVerified,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /auth/forgot-password. The response is
// identical whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		badRequest(c, "email is required")
		return
	}

	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, h.production)
		return
	}

	respondMessage(c, http.StatusOK, "If an account exists with this email, a password reset link has been sent.", nil)
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPassword handles POST /auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		badRequest(c, "reset token is required")
		return
	}

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" || req.ConfirmPassword == "" {
		badRequest(c, "please provide password and confirm password")
		return
	}
	if req.Password != req.ConfirmPassword {
		badRequest(c, "passwords do not match")
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		respondError(c, err, h.production)
		return
	}

	respondMessage(c, http.StatusOK, "Password reset successful! Please login with your new password.", nil)
}

// GetMe handles GET /auth/me (auth required).
func (h *AuthHandler) GetMe(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authorized"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		notFound(c, "user not found")
		return
	}
	profile, _ := h.profiles.GetByUserID(c.Request.Context(), identity.ID)

	respondOK(c, gin.H{
		"user": gin.H{
			"id":               user.ID,
			"email":            user.Email,
			"role":             user.Role,
			"isVerified":       user.IsVerified,
			"isPremium":        user.IsPremium,
			"premiumExpiresAt": user.PremiumExpiresAt,
			"loginStreak":      user.LoginStreak,
			"lastLogin":        user.LastLogin,
		},
		"profile": profile,
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, int(h.cookieTTL.Seconds()), "/", "", h.production, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.production, true)
}
