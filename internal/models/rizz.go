package models

import (
	"math"
	"time"
)

// RizzScore aggregates a user's social performance into a 0-100 score.
type RizzScore struct {
	ID                        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                    string     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	TotalScore                int        `gorm:"default:0" json:"total_score"`
	ResponseRate              float64    `gorm:"default:0" json:"response_rate"`                // percent
	AverageConversationLength float64    `gorm:"default:0" json:"average_conversation_length"` // messages per conversation
	MatchRate                 float64    `gorm:"default:0" json:"match_rate"`                  // percent of likes that match
	EventAttendance           int        `gorm:"default:0" json:"event_attendance"`
	LoginStreakBonus          int        `gorm:"default:0" json:"login_streak_bonus"`
	WeeklyRank                *int       `json:"weekly_rank,omitempty"`
	AllTimeRank               *int       `json:"all_time_rank,omitempty"`
	LastCalculated            *time.Time `json:"last_calculated,omitempty"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

// Recalculate refreshes TotalScore from the weighted components,
// clamped to 0-100.
func (r *RizzScore) Recalculate(now time.Time) int {
	base := r.ResponseRate*0.3 +
		r.AverageConversationLength*0.2 +
		r.MatchRate*0.3 +
		float64(r.EventAttendance)*2 +
		float64(r.LoginStreakBonus)*5

	r.TotalScore = int(math.Round(math.Max(0, math.Min(100, base))))
	t := now
	r.LastCalculated = &t
	return r.TotalScore
}

func (r *RizzScore) Level() string {
	switch {
	case r.TotalScore >= 90:
		return "Campus Legend 🐐"
	case r.TotalScore >= 80:
		return "Smooth Operator 😎"
	case r.TotalScore >= 70:
		return "Social Butterfly 🦋"
	case r.TotalScore >= 60:
		return "Friendly Vibes 👍"
	case r.TotalScore >= 50:
		return "Getting There 💪"
	default:
		return "Rizz in Progress 🌱"
	}
}

// SetResponseRate updates the response percentage and recalculates.
func (r *RizzScore) SetResponseRate(responded, total int, now time.Time) {
	if total > 0 {
		r.ResponseRate = float64(responded) / float64(total) * 100
	}
	r.Recalculate(now)
}

// SetMatchRate updates the like-to-match percentage and recalculates.
func (r *RizzScore) SetMatchRate(matches, likesSent int, now time.Time) {
	if likesSent > 0 {
		r.MatchRate = float64(matches) / float64(likesSent) * 100
	}
	r.Recalculate(now)
}

func (r *RizzScore) AddEventAttendance() {
	r.EventAttendance++
}
