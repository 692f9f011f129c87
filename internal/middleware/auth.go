package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bowenhooks/internal/auth"
	"bowenhooks/internal/models"
	"bowenhooks/internal/repository"
)

// IdentityKey is where the authenticated identity sits in the gin context.
const IdentityKey = "identity"

// AccessCookieName is the fallback cookie checked when no bearer
// header is present.
const AccessCookieName = "token"

// Identity is the minimal user projection attached to a request.
type Identity struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// CurrentIdentity returns the identity attached by RequireAuth or
// OptionalAuth, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequireAuth verifies the bearer token, loads the user and attaches
// the identity. Each failure mode gets its own 401 reason.
func RequireAuth(users repository.Users, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "not authorized, no token provided")
			return
		}

		claims, err := tokens.VerifyAccess(token)
		if err != nil {
			if err == auth.ErrTokenExpired {
				abortUnauthorized(c, "token expired, please login again")
			} else {
				abortUnauthorized(c, "invalid token")
			}
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, "user no longer exists")
			return
		}
		if !user.IsActive {
			abortUnauthorized(c, "account has been deactivated")
			return
		}

		c.Set(IdentityKey, Identity{ID: user.ID, Email: user.Email, Role: user.Role})
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present and
// silently proceeds without one otherwise.
func OptionalAuth(users repository.Users, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := tokens.VerifyAccess(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err == nil && user.IsActive {
			c.Set(IdentityKey, Identity{ID: user.ID, Email: user.Email, Role: user.Role})
		}
		c.Next()
	}
}

// RequireRoles restricts a route to the given roles. Runs after
// RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			abortUnauthorized(c, "not authorized")
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		abortForbidden(c, "you do not have permission to perform this action")
	}
}

// RequireVerified gates features behind email verification.
func RequireVerified(users repository.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			abortUnauthorized(c, "not authorized")
			return
		}
		user, err := users.GetByID(c.Request.Context(), identity.ID)
		if err != nil || !user.IsVerified {
			abortForbidden(c, "please verify your email to access this feature")
			return
		}
		c.Next()
	}
}

// RequirePremium gates premium features, lazily expiring a lapsed
// membership before rejecting.
func RequirePremium(users repository.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			abortUnauthorized(c, "not authorized")
			return
		}
		user, err := users.GetByID(c.Request.Context(), identity.ID)
		if err != nil {
			abortUnauthorized(c, "user not found")
			return
		}
		if !user.IsPremium {
			abortForbidden(c, "this feature requires premium membership")
			return
		}
		if user.PremiumExpiresAt != nil && user.PremiumExpiresAt.Before(time.Now()) {
			user.IsPremium = false
			if err := users.Update(c.Request.Context(), user); err != nil {
				slog.Warn("could not persist premium expiry", "user_id", user.ID, "error", err)
			}
			abortForbidden(c, "your premium membership has expired")
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(AccessCookieName); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": message})
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": message})
}
