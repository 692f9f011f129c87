package models

import "time"

// TimeCapsule is a message written now and delivered at a future time.
// A capsule without a receiver is a note to the sender's future self.
type TimeCapsule struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   string     `gorm:"type:uuid;index;not null" json:"sender_id"`
	ReceiverID string     `gorm:"type:uuid;index" json:"receiver_id,omitempty"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	MediaURL   string     `json:"media_url,omitempty"`
	SendAt     time.Time  `gorm:"not null;index" json:"send_at"`
	IsSent     bool       `gorm:"default:false" json:"is_sent"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (t *TimeCapsule) ReadyToSend(now time.Time) bool {
	return !t.IsSent && !now.Before(t.SendAt)
}

func (t *TimeCapsule) MarkSent(now time.Time) {
	t.IsSent = true
	ts := now
	t.SentAt = &ts
}

func (t *TimeCapsule) TimeUntilSend(now time.Time) time.Duration {
	if remaining := t.SendAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

func (t *TimeCapsule) IsFutureMessage(now time.Time) bool {
	return t.SendAt.After(now)
}
