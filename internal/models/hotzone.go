package models

import "time"

type LocationType string

const (
	LocationTypeLibrary   LocationType = "library"
	LocationTypeCafeteria LocationType = "cafeteria"
	LocationTypeHostel    LocationType = "hostel"
	LocationTypeSports    LocationType = "sports_complex"
	LocationTypeLectures  LocationType = "lecture_hall"
	LocationTypeChapel    LocationType = "chapel"
	LocationTypeOther     LocationType = "other"
)

// HotZone is a named campus area with live activity tracking.
type HotZone struct {
	ID               string       `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string       `gorm:"size:100;not null" json:"name"`
	LocationType     LocationType `gorm:"size:20;not null" json:"location_type"`
	Latitude         float64      `gorm:"not null" json:"latitude"`
	Longitude        float64      `gorm:"not null" json:"longitude"`
	RadiusM          int          `gorm:"not null" json:"radius"` // meters
	CurrentUserCount int          `gorm:"default:0" json:"current_user_count"`
	PeakTimeStart    string       `gorm:"size:5" json:"peak_time_start,omitempty"` // "HH:MM"
	PeakTimeEnd      string       `gorm:"size:5" json:"peak_time_end,omitempty"`
	IsActive         bool         `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// PeakNow reports whether the clock falls inside the configured peak
// window. Windows crossing midnight are supported.
func (h *HotZone) PeakNow(now time.Time) bool {
	if h.PeakTimeStart == "" || h.PeakTimeEnd == "" {
		return false
	}
	current := now.Format("15:04")
	if h.PeakTimeStart <= h.PeakTimeEnd {
		return current >= h.PeakTimeStart && current <= h.PeakTimeEnd
	}
	return current >= h.PeakTimeStart || current <= h.PeakTimeEnd
}

func (h *HotZone) PopularityLevel() string {
	switch {
	case h.CurrentUserCount >= 50:
		return "high"
	case h.CurrentUserCount >= 15:
		return "medium"
	default:
		return "low"
	}
}
