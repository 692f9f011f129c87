package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bowenhooks/internal/models"
)

// Claims is the payload carried by both access and refresh tokens.
type Claims struct {
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair bundles the two tokens issued on register/login/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenConfig carries the signing material and lifetimes. Access and
// refresh tokens are signed with distinct secrets.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService signs and verifies the JWT pairs. Cache bookkeeping for
// refresh tokens lives in the auth workflow, not here.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// IssueTokens signs an access/refresh pair for the user.
func (s *TokenService) IssueTokens(user *models.User) (TokenPair, error) {
	access, err := s.sign(user, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(user, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess checks signature and expiry of an access token.
func (s *TokenService) VerifyAccess(token string) (*Claims, error) {
	return s.verify(token, s.cfg.AccessSecret)
}

// VerifyRefresh checks signature and expiry of a refresh token.
func (s *TokenService) VerifyRefresh(token string) (*Claims, error) {
	return s.verify(token, s.cfg.RefreshSecret)
}

// RefreshTTL exposes the refresh lifetime so the workflow can align
// the cache TTL with the token expiry.
func (s *TokenService) RefreshTTL() time.Duration {
	return s.cfg.RefreshTTL
}

func (s *TokenService) sign(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			// unique ID so a rotated token never collides with its
			// predecessor, even within the same second
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *TokenService) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
