package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bowenhooks/internal/models"
)

// Profiles defines persistence for user profiles.
type Profiles interface {
	// Create persists a new profile, running the pre-persist
	// transformations (completion %, code name).
	Create(ctx context.Context, profile *models.Profile) error

	// GetByUserID retrieves the profile linked to a user. Returns
	// ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)

	// Update persists a mutated profile, refreshing the completion %.
	Update(ctx context.Context, profile *models.Profile) error
}

type gormProfiles struct {
	db *gorm.DB
}

func NewProfiles(db *gorm.DB) Profiles {
	return &gormProfiles{db: db}
}

func (r *gormProfiles) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.EnsureCodeName()
	profile.RecomputeCompletion()
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *gormProfiles) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *gormProfiles) Update(ctx context.Context, profile *models.Profile) error {
	profile.RecomputeCompletion()
	return r.db.WithContext(ctx).Save(profile).Error
}
