package models

import "time"

type SparkStatus string

const (
	SparkStatusWaiting   SparkStatus = "waiting"
	SparkStatusActive    SparkStatus = "active"
	SparkStatusCompleted SparkStatus = "completed"
	SparkStatusSkipped   SparkStatus = "skipped"
	SparkStatusMatched   SparkStatus = "matched"
)

// SparkRoundLength is how long an active speed-dating round runs.
const SparkRoundLength = 60 * time.Second

// SparkSession is a timed speed-dating round. A session waits for a
// second participant, runs for one round, and becomes a match when
// both users spark.
type SparkSession struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	User1ID      string      `gorm:"type:uuid;index;not null" json:"user1_id"`
	User2ID      string      `gorm:"type:uuid;index" json:"user2_id,omitempty"`
	RoomID       string      `gorm:"size:100;uniqueIndex;not null" json:"room_id"`
	Status       SparkStatus `gorm:"size:20;default:'waiting';not null" json:"status"`
	BothSparked  bool        `gorm:"default:false" json:"both_sparked"`
	User1Sparked bool        `gorm:"default:false" json:"user1_sparked"`
	User2Sparked bool        `gorm:"default:false" json:"user2_sparked"`
	DurationSecs int         `json:"duration_secs,omitempty"`
	StartedAt    *time.Time  `json:"started_at,omitempty"`
	EndedAt      *time.Time  `json:"ended_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Start moves a waiting session into its active round.
func (s *SparkSession) Start(now time.Time) {
	s.Status = SparkStatusActive
	t := now
	s.StartedAt = &t
}

// End closes the round and records its length. A round where neither
// user sparked counts as skipped.
func (s *SparkSession) End(now time.Time) {
	if s.User1Sparked || s.User2Sparked {
		s.Status = SparkStatusCompleted
	} else {
		s.Status = SparkStatusSkipped
	}
	t := now
	s.EndedAt = &t
	if s.StartedAt != nil {
		s.DurationSecs = int(now.Sub(*s.StartedAt) / time.Second)
	}
}

// RecordSpark registers one participant's spark and reports whether
// that made the session mutual.
func (s *SparkSession) RecordSpark(userID string) bool {
	switch userID {
	case s.User1ID:
		s.User1Sparked = true
	case s.User2ID:
		s.User2Sparked = true
	}
	if s.User1Sparked && s.User2Sparked {
		s.BothSparked = true
		s.Status = SparkStatusMatched
		return true
	}
	return false
}

// HasUser reports whether the given user is one of the pair.
func (s *SparkSession) HasUser(userID string) bool {
	return s.User1ID == userID || s.User2ID == userID
}

// OtherUser returns the counterpart of the given user in the session.
func (s *SparkSession) OtherUser(userID string) string {
	if s.User1ID == userID {
		return s.User2ID
	}
	return s.User1ID
}

// TimeRemaining returns how long the active round has left, zero for
// any other state.
func (s *SparkSession) TimeRemaining(now time.Time) time.Duration {
	if s.Status != SparkStatusActive || s.StartedAt == nil {
		return 0
	}
	if remaining := SparkRoundLength - now.Sub(*s.StartedAt); remaining > 0 {
		return remaining
	}
	return 0
}
