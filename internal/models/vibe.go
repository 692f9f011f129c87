package models

import "time"

// VibeStatus broadcasts what a user is up to right now
// ("study_buddy", "food_run", "party_mode", ...). Short-lived.
type VibeStatus struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"type:uuid;index;not null" json:"user_id"`
	VibeType      string    `gorm:"size:50;not null" json:"vibe_type"`
	CustomMessage string    `gorm:"size:255" json:"custom_message,omitempty"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expires_at"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultVibeTTL is applied when a status is created without an
// explicit expiry.
const DefaultVibeTTL = 4 * time.Hour

// EnsureExpiry fills in the default expiry window before first persist.
func (v *VibeStatus) EnsureExpiry(now time.Time) {
	if v.ExpiresAt.IsZero() {
		v.ExpiresAt = now.Add(DefaultVibeTTL)
	}
}

func (v *VibeStatus) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

func (v *VibeStatus) TimeRemaining(now time.Time) time.Duration {
	if remaining := v.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

func (v *VibeStatus) Deactivate() {
	v.IsActive = false
}

// DisplayMessage prefers the custom message, falling back to a label
// derived from the vibe type.
func (v *VibeStatus) DisplayMessage() string {
	if v.CustomMessage != "" {
		return v.CustomMessage
	}
	switch v.VibeType {
	case "study_buddy":
		return "Looking for a study buddy 📚"
	case "food_run":
		return "Up for a food run 🍕"
	case "party_mode":
		return "Party mode on 🎉"
	case "gym_time":
		return "Hitting the gym 💪"
	case "chill":
		return "Just chilling ✨"
	default:
		return v.VibeType
	}
}
