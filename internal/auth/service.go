package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bowenhooks/internal/cache"
	"bowenhooks/internal/models"
	"bowenhooks/internal/repository"
	"bowenhooks/internal/utils"
)

const verificationTokenBytes = 32

// Mailer delivers account emails. The production implementation is an
// SMTP stub that logs when unconfigured.
type Mailer interface {
	SendVerificationEmail(to, token string)
	SendPasswordResetEmail(to, token string)
}

// Config carries the auth workflow policy knobs.
type Config struct {
	MaxLoginAttempts     int
	LockoutDuration      time.Duration
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
	PresenceTTL          time.Duration
	AllowedEmailDomains  []string
	RequireUniEmail      bool
}

// Service implements the account lifecycle: register, login, logout,
// refresh, email verification and password reset. All shared state
// lives in the repositories and the cache; the service itself is
// stateless and safe for concurrent use.
type Service struct {
	users    repository.Users
	profiles repository.Profiles
	tokens   *TokenService
	cache    cache.Cache
	mailer   Mailer
	logger   *slog.Logger
	cfg      Config
	now      func() time.Time
}

func NewService(
	users repository.Users,
	profiles repository.Profiles,
	tokens *TokenService,
	c cache.Cache,
	mailer Mailer,
	logger *slog.Logger,
	cfg Config,
) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
		cache:    c,
		mailer:   mailer,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD
	Gender      string `json:"gender"`
	Department  string `json:"department"`
	YearOfStudy int    `json:"yearOfStudy"`
}

type AuthResult struct {
	User    *models.User
	Profile *models.Profile
	Tokens  TokenPair
}

// Register creates the account and linked profile, issues the first
// token pair and stores the refresh token in the cache.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.DateOfBirth == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	if s.cfg.RequireUniEmail && !s.emailDomainAllowed(in.Email) {
		return nil, fmt.Errorf("%w: please use your university email address", ErrValidation)
	}

	dob, err := time.Parse("2006-01-02", in.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date of birth", ErrValidation)
	}

	now := s.now()
	profile := &models.Profile{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: dob,
		Gender:      models.Gender(in.Gender),
		Department:  in.Department,
		YearOfStudy: in.YearOfStudy,
		ShowAge:     true,
	}
	if profile.Age(now) < 18 {
		return nil, ErrUnderage
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verifyToken, err := utils.RandomHexToken(verificationTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}
	verifyExpires := now.Add(s.cfg.VerificationTokenTTL)

	user := &models.User{
		Email:                    in.Email,
		PasswordHash:             hash,
		Role:                     models.RoleUser,
		IsActive:                 true,
		VerificationToken:        verifyToken,
		VerificationTokenExpires: &verifyExpires,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	profile.UserID = user.ID
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	tokens, err := s.issueAndCacheTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.mailer.SendVerificationEmail(user.Email, verifyToken)
	s.logger.Info("new user registered", "email", user.Email, "user_id", user.ID)

	return &AuthResult{User: user, Profile: profile, Tokens: tokens}, nil
}

// Login authenticates credentials, enforcing lockout and updating the
// login streak and presence on success.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same failure as a bad password, to avoid enumeration.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	now := s.now()
	if user.LockActive(now) {
		return nil, ErrAccountLocked
	}
	if user.ClearExpiredLock(now) {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("clear expired lock: %w", err)
		}
	}

	if !user.ComparePassword(password) {
		user.RegisterFailedLogin(now, s.cfg.MaxLoginAttempts, s.cfg.LockoutDuration)
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("record failed login: %w", err)
		}
		return nil, ErrInvalidCredentials
	}

	user.ResetFailedLogins()
	user.RecordLogin(now)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	tokens, err := s.issueAndCacheTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.setPresence(ctx, user.ID, "online", now)
	s.logger.Info("user logged in", "email", user.Email, "user_id", user.ID, "streak", user.LoginStreak)

	return &AuthResult{User: user, Profile: profile, Tokens: tokens}, nil
}

// Logout drops the cached refresh token and marks the user offline.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.cache.Delete(ctx, cache.RefreshTokenKey(userID)); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	s.setPresence(ctx, userID, "offline", s.now())
	s.logger.Info("user logged out", "user_id", userID)
	return nil
}

// Refresh rotates the token pair. The presented token must match the
// cached value byte for byte; the overwrite invalidates it.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	stored, err := s.cache.Get(ctx, cache.RefreshTokenKey(claims.UserID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, fmt.Errorf("load refresh token: %w", err)
	}
	if stored != refreshToken {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrUserNotFound
		}
		return TokenPair{}, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return TokenPair{}, ErrInactiveUser
	}

	return s.issueAndCacheTokens(ctx, user)
}

// VerifyEmail consumes a verification token, flipping the verified flag.
func (s *Service) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup verification token: %w", err)
	}

	if user.VerificationTokenExpires != nil && user.VerificationTokenExpires.Before(s.now()) {
		return nil, ErrTokenExpired
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationTokenExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}

	s.logger.Info("email verified", "email", user.Email, "user_id", user.ID)
	return user, nil
}

// RequestPasswordReset stores a reset token for the account, if one
// exists. The caller must respond identically either way.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Do not reveal whether the account exists.
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	token, err := utils.RandomHexToken(verificationTokenBytes)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expires := s.now().Add(s.cfg.ResetTokenTTL)
	user.PasswordResetToken = token
	user.PasswordResetExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	s.mailer.SendPasswordResetEmail(user.Email, token)
	s.logger.Info("password reset requested", "email", user.Email)
	return nil
}

// ResetPassword consumes a reset token, rehashes the password, clears
// lockout state and invalidates the cached refresh token so every
// device has to log in again.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	if user.PasswordResetExpires != nil && user.PasswordResetExpires.Before(s.now()) {
		return ErrTokenExpired
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	user.ResetFailedLogins()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}

	if err := s.cache.Delete(ctx, cache.RefreshTokenKey(user.ID)); err != nil {
		return fmt.Errorf("invalidate refresh token: %w", err)
	}

	s.logger.Info("password reset", "email", user.Email, "user_id", user.ID)
	return nil
}

func (s *Service) issueAndCacheTokens(ctx context.Context, user *models.User) (TokenPair, error) {
	tokens, err := s.tokens.IssueTokens(user)
	if err != nil {
		return TokenPair{}, err
	}
	err = s.cache.SetEx(ctx, cache.RefreshTokenKey(user.ID), tokens.RefreshToken, s.tokens.RefreshTTL())
	if err != nil {
		return TokenPair{}, fmt.Errorf("cache refresh token: %w", err)
	}
	return tokens, nil
}

type presenceStatus struct {
	Status   string    `json:"status"`
	LastSeen time.Time `json:"lastSeen"`
}

func (s *Service) setPresence(ctx context.Context, userID, status string, now time.Time) {
	payload, err := json.Marshal(presenceStatus{Status: status, LastSeen: now})
	if err != nil {
		return
	}
	if err := s.cache.SetEx(ctx, cache.PresenceKey(userID), string(payload), s.cfg.PresenceTTL); err != nil {
		s.logger.Warn("presence update failed", "user_id", userID, "error", err)
	}
}

func (s *Service) emailDomainAllowed(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	domain := strings.ToLower(parts[1])
	for _, allowed := range s.cfg.AllowedEmailDomains {
		if domain == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
