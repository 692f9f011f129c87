package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bowenhooks/internal/auth"
)

// respondError maps a workflow error onto its HTTP status and a
// user-safe message. Unrecognized errors become a 500; detail leaks
// only outside production.
func respondError(c *gin.Context, err error, production bool) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, auth.ErrValidation), errors.Is(err, auth.ErrUnderage):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrDuplicateEmail):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrInactiveUser):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrAccountLocked), errors.Is(err, auth.ErrForbidden):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, auth.ErrUserNotFound):
		status, message = http.StatusNotFound, err.Error()
	default:
		if !production {
			message = err.Error()
		}
	}

	c.JSON(status, gin.H{"status": "error", "message": message})
}

func respondOK(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"status": "success", "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": message})
}
