package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bowenhooks/internal/models"
)

// Users defines persistence for user accounts. The auth workflow only
// ever touches single rows through this interface.
type Users interface {
	// Create persists a new user. Returns ErrDuplicate when the email
	// is already registered.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by primary key. Returns ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by unique email. Returns ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByVerificationToken looks up the holder of an email
	// verification token. Returns ErrNotFound.
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)

	// GetByResetToken looks up the holder of a password reset token.
	// Returns ErrNotFound.
	GetByResetToken(ctx context.Context, token string) (*models.User, error)

	// Update persists all mutated fields of the user.
	Update(ctx context.Context, user *models.User) error
}

type gormUsers struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) Users {
	return &gormUsers{db: db}
}

func (r *gormUsers) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && isDuplicateErr(err) {
		return ErrDuplicate
	}
	return err
}

func (r *gormUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUsers) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "verification_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUsers) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "password_reset_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUsers) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pgx surfaces unique violations as 23505
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
