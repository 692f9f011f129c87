package models

import "time"

type Visibility string

const (
	VisibilityEveryone Visibility = "everyone"
	VisibilityMatches  Visibility = "matches"
	VisibilityNobody   Visibility = "nobody"
)

type ShowMe string

const (
	ShowMeMale     ShowMe = "male"
	ShowMeFemale   ShowMe = "female"
	ShowMeEveryone ShowMe = "everyone"
)

type Settings struct {
	ID                     string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 string     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	ShowOnlineStatus       bool       `gorm:"default:true" json:"show_online_status"`
	ShowLocation           bool       `gorm:"default:true" json:"show_location"`
	AllowAnonymousMessages bool       `gorm:"default:true" json:"allow_anonymous_messages"`
	VisibleTo              Visibility `gorm:"size:20;default:'everyone'" json:"visible_to"`
	PushNotifications      bool       `gorm:"default:true" json:"push_notifications"`
	EmailNotifications     bool       `gorm:"default:true" json:"email_notifications"`
	MatchNotifications     bool       `gorm:"default:true" json:"match_notifications"`
	MessageNotifications   bool       `gorm:"default:true" json:"message_notifications"`
	EventNotifications     bool       `gorm:"default:true" json:"event_notifications"`
	AgeMin                 int        `gorm:"default:18" json:"age_min"`
	AgeMax                 int        `gorm:"default:30" json:"age_max"`
	MaxDistanceM           int        `gorm:"default:5000" json:"max_distance"` // meters
	ShowMe                 ShowMe     `gorm:"size:20;default:'everyone'" json:"show_me"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// ValidAgeRange enforces the adult floor and ordering of the range.
func (s *Settings) ValidAgeRange() bool {
	return s.AgeMin >= 18 && s.AgeMax >= s.AgeMin
}

func (s *Settings) ValidDistance() bool {
	return s.MaxDistanceM > 0 && s.MaxDistanceM <= 50000
}

// DiscoverySettings is the slice of settings the matching feed needs.
type DiscoverySettings struct {
	AgeMin      int    `json:"age_min"`
	AgeMax      int    `json:"age_max"`
	MaxDistance int    `json:"max_distance"`
	ShowMe      ShowMe `json:"show_me"`
}

func (s *Settings) Discovery() DiscoverySettings {
	return DiscoverySettings{
		AgeMin:      s.AgeMin,
		AgeMax:      s.AgeMax,
		MaxDistance: s.MaxDistanceM,
		ShowMe:      s.ShowMe,
	}
}
