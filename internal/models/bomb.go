package models

import "time"

// BombType selects the fuse length of a self-destructing message.
type BombType string

const (
	BombTypeQuickFuse BombType = "quick_fuse" // 30 seconds
	BombTypeTimeBomb  BombType = "time_bomb"  // 24 hours
	BombTypeSlowBurn  BombType = "slow_burn"  // 3 days
)

type BombMessage struct {
	ID              string     `gorm:"type:uuid;primaryKey" json:"id"`
	MatchID         string     `gorm:"type:uuid;index;not null" json:"match_id"`
	SenderID        string     `gorm:"type:uuid;not null" json:"sender_id"`
	ReceiverID      string     `gorm:"type:uuid;index;not null" json:"receiver_id"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	BombType        BombType   `gorm:"size:20;default:'time_bomb';not null" json:"bomb_type"`
	DurationSeconds int        `gorm:"not null" json:"duration"`
	ExplodesAt      time.Time  `gorm:"not null" json:"explodes_at"`
	IsRead          bool       `gorm:"default:false" json:"is_read"`
	IsExploded      bool       `gorm:"default:false" json:"is_exploded"`
	ScreenshotTaken bool       `gorm:"default:false" json:"screenshot_taken"`
	ScreenshotAt    *time.Time `json:"screenshot_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ArmFuse sets the explosion time from the explicit duration, or from
// the bomb-type default when no duration was supplied. Invoked before
// first persist.
func (b *BombMessage) ArmFuse(now time.Time) {
	d := time.Duration(b.DurationSeconds) * time.Second
	if b.DurationSeconds == 0 {
		switch b.BombType {
		case BombTypeQuickFuse:
			d = 30 * time.Second
		case BombTypeSlowBurn:
			d = 3 * 24 * time.Hour
		default:
			d = 24 * time.Hour
		}
		b.DurationSeconds = int(d.Seconds())
	}
	b.ExplodesAt = now.Add(d)
}

// TimeRemaining returns how long until the message explodes, floored at zero.
func (b *BombMessage) TimeRemaining(now time.Time) time.Duration {
	if remaining := b.ExplodesAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// Active reports whether the message is still readable.
func (b *BombMessage) Active(now time.Time) bool {
	return !b.IsExploded && b.TimeRemaining(now) > 0
}

// MarkRead flags the bomb message as seen by the receiver.
func (b *BombMessage) MarkRead() {
	b.IsRead = true
}

// MarkScreenshot records a screenshot event; the sender gets notified.
func (b *BombMessage) MarkScreenshot(now time.Time) {
	b.ScreenshotTaken = true
	t := now
	b.ScreenshotAt = &t
}

// Explode marks the message destroyed.
func (b *BombMessage) Explode() {
	b.IsExploded = true
}
