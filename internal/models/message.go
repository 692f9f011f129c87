package models

import "time"

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVoice MessageType = "voice"
	MessageTypeGIF   MessageType = "gif"
)

type Message struct {
	ID          string      `gorm:"type:uuid;primaryKey" json:"id"`
	MatchID     string      `gorm:"type:uuid;index;not null" json:"match_id"`
	SenderID    string      `gorm:"type:uuid;index;not null" json:"sender_id"`
	ReceiverID  string      `gorm:"type:uuid;index;not null" json:"receiver_id"`
	Content     string      `gorm:"type:text" json:"content,omitempty"`
	MessageType MessageType `gorm:"size:20;default:'text';not null" json:"message_type"`
	MediaURL    string      `json:"media_url,omitempty"`
	IsRead      bool        `gorm:"default:false" json:"is_read"`
	ReadAt      *time.Time  `json:"read_at,omitempty"`
	IsAnonymous bool        `gorm:"default:false" json:"is_anonymous"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// MarkRead stamps the read receipt.
func (m *Message) MarkRead(now time.Time) {
	m.IsRead = true
	t := now
	m.ReadAt = &t
}
