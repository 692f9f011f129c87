package models

import "time"

type BadgeType string

const (
	BadgeTypeCommon    BadgeType = "common"
	BadgeTypeRare      BadgeType = "rare"
	BadgeTypeEpic      BadgeType = "epic"
	BadgeTypeLegendary BadgeType = "legendary"
)

type Badge struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description      string    `gorm:"size:255" json:"description,omitempty"`
	IconURL          string    `json:"icon_url,omitempty"`
	BadgeType        BadgeType `gorm:"size:20;default:'common';not null" json:"badge_type"`
	RequirementType  string    `gorm:"size:50" json:"requirement_type,omitempty"` // matches_count, login_streak, event_attendance
	RequirementValue int       `json:"requirement_value,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (b *Badge) RarityColor() string {
	switch b.BadgeType {
	case BadgeTypeLegendary:
		return "#FFD700"
	case BadgeTypeEpic:
		return "#9B59B6"
	case BadgeTypeRare:
		return "#3498DB"
	default:
		return "#95A5A6"
	}
}

// MeetsRequirement checks a progress value against the badge threshold.
func (b *Badge) MeetsRequirement(value int) bool {
	return b.RequirementValue > 0 && value >= b.RequirementValue
}

type UserBadge struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;index:idx_user_badge;not null" json:"user_id"`
	BadgeID   string    `gorm:"type:uuid;index:idx_user_badge;not null" json:"badge_id"`
	EarnedAt  time.Time `gorm:"not null" json:"earned_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Badge *Badge `json:"badge,omitempty"`
}

func (ub *UserBadge) DaysSinceEarned(now time.Time) int {
	return int(now.Sub(ub.EarnedAt).Hours() / 24)
}
