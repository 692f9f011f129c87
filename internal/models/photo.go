package models

import (
	"fmt"
	"time"
)

type Photo struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;index;not null" json:"user_id"`
	URL          string    `gorm:"not null" json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsPrimary    bool      `gorm:"default:false" json:"is_primary"`
	IsVerified   bool      `gorm:"default:false" json:"is_verified"`
	OrderIndex   int       `gorm:"default:0" json:"order_index"`
	BlurLevel    int       `gorm:"default:0" json:"blur_level"` // 0-100, gradual reveal
	Caption      string    `gorm:"size:255" json:"caption,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BlurredURL returns the delivery URL, carrying the blur level as a
// rendering hint when a partial reveal is in effect.
func (p *Photo) BlurredURL() string {
	if p.BlurLevel <= 0 {
		return p.URL
	}
	return fmt.Sprintf("%s?blur=%d", p.URL, p.BlurLevel)
}
