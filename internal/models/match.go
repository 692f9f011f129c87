package models

import "time"

type MatchType string

const (
	MatchTypeMutualLike   MatchType = "mutual_like"
	MatchTypeSuperLike    MatchType = "super_like"
	MatchTypeSparkMatch   MatchType = "spark_match"
	MatchTypeMysteryMatch MatchType = "mystery_match"
	MatchTypeVibeMatch    MatchType = "vibe_match"
)

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusMatched   MatchStatus = "matched"
	MatchStatusUnmatched MatchStatus = "unmatched"
	MatchStatusExpired   MatchStatus = "expired"
)

type Match struct {
	ID                  string      `gorm:"type:uuid;primaryKey" json:"id"`
	User1ID             string      `gorm:"type:uuid;index;not null" json:"user1_id"`
	User2ID             string      `gorm:"type:uuid;index;not null" json:"user2_id"`
	MatchType           MatchType   `gorm:"size:20;not null" json:"match_type"`
	Status              MatchStatus `gorm:"size:20;default:'pending';not null" json:"status"`
	IsMystery           bool        `gorm:"default:false" json:"is_mystery"`
	RevealAt            *time.Time  `json:"reveal_at,omitempty"`
	MatchedAt           *time.Time  `json:"matched_at,omitempty"`
	ConversationStarted bool        `gorm:"default:false" json:"conversation_started"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// MarkMatched transitions a pending match to matched, stamping the time.
func (m *Match) MarkMatched(now time.Time) {
	m.Status = MatchStatusMatched
	t := now
	m.MatchedAt = &t
}

// StartConversation flags the first message exchange on the match.
func (m *Match) StartConversation() {
	m.ConversationStarted = true
}

// Revealed reports whether a mystery match has passed its reveal time.
func (m *Match) Revealed(now time.Time) bool {
	if !m.IsMystery {
		return true
	}
	return m.RevealAt != nil && !m.RevealAt.After(now)
}

// Involves reports whether the given user is one of the pair.
func (m *Match) Involves(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// OtherUser returns the counterpart of the given user in the match.
func (m *Match) OtherUser(userID string) string {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}
