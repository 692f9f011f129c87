package auth

import "errors"

// Workflow failures surface as these sentinels; the HTTP boundary maps
// each kind to a status code and a user-safe message.
var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrUnderage            = errors.New("must be at least 18 years old")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountLocked       = errors.New("account temporarily locked due to failed login attempts")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrInactiveUser        = errors.New("account deactivated")
	ErrForbidden           = errors.New("permission denied")
)
