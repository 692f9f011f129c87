package models

import "time"

// DefaultLocationFreshness is how old a fix may be and still count as
// a current position.
const DefaultLocationFreshness = 10 * time.Minute

// Location is a user's last reported position. One row per user,
// updated in place. Ghost mode keeps the row but hides it from
// discovery features.
type Location struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Latitude    float64    `gorm:"not null" json:"latitude"`
	Longitude   float64    `gorm:"not null" json:"longitude"`
	AccuracyM   float64    `json:"accuracy_m,omitempty"`
	IsGhostMode bool       `gorm:"default:false" json:"is_ghost_mode"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UpdateCoordinates replaces the fix and stamps the update time.
func (l *Location) UpdateCoordinates(lat, lng, accuracy float64, now time.Time) {
	l.Latitude = lat
	l.Longitude = lng
	l.AccuracyM = accuracy
	t := now
	l.LastUpdated = &t
}

// Recent reports whether the fix is fresh enough to use.
func (l *Location) Recent(now time.Time, maxAge time.Duration) bool {
	if l.LastUpdated == nil {
		return false
	}
	return now.Sub(*l.LastUpdated) <= maxAge
}

// ValidCoordinates checks the pair is on the globe.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
