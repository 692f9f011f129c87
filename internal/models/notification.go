package models

import "time"

type Notification struct {
	ID        string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string            `gorm:"type:uuid;index;not null" json:"user_id"`
	Type      string            `gorm:"size:50;not null" json:"type"` // match, message, like, event, badge, capsule
	Title     string            `gorm:"size:255;not null" json:"title"`
	Message   string            `gorm:"type:text;not null" json:"message"`
	Data      map[string]string `gorm:"serializer:json" json:"data,omitempty"`
	IsRead    bool              `gorm:"default:false" json:"is_read"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (n *Notification) MarkRead(now time.Time) {
	n.IsRead = true
	t := now
	n.ReadAt = &t
}

func (n *Notification) Icon() string {
	switch n.Type {
	case "match":
		return "💘"
	case "message":
		return "💬"
	case "like":
		return "❤️"
	case "event":
		return "📅"
	case "badge":
		return "🏆"
	case "capsule":
		return "⏳"
	default:
		return "🔔"
	}
}
