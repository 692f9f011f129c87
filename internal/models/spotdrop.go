package models

import "time"

// SpotDrop is an ephemeral note anchored to a campus location,
// visible within a radius until it expires.
type SpotDrop struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Latitude    float64   `gorm:"not null" json:"latitude"`
	Longitude   float64   `gorm:"not null" json:"longitude"`
	RadiusM     int       `gorm:"default:10" json:"radius"` // meters
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsAnonymous bool      `gorm:"default:true" json:"is_anonymous"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"expires_at"`
	ViewCount   int       `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *SpotDrop) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *SpotDrop) TimeRemaining(now time.Time) time.Duration {
	if remaining := s.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}
