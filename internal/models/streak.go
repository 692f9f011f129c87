package models

import "time"

// LoginStreak tracks consecutive-day logins for gamification. The
// authoritative streak counter for auth lives on User; this record
// adds longest-streak history and bonus/milestone bookkeeping.
type LoginStreak struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LongestStreak int        `gorm:"default:0" json:"longest_streak"`
	LastLoginDate *time.Time `json:"last_login_date,omitempty"`
	TotalLogins   int        `gorm:"default:0" json:"total_logins"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RecordLogin applies the calendar-day streak rules and returns false
// when today's login was already counted.
func (s *LoginStreak) RecordLogin(now time.Time) bool {
	if s.LastLoginDate != nil {
		switch calendarDaysBetween(*s.LastLoginDate, now) {
		case 0:
			return false
		case 1:
			s.CurrentStreak++
		default:
			s.CurrentStreak = 1
		}
	} else {
		s.CurrentStreak = 1
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}

	t := now
	s.LastLoginDate = &t
	s.TotalLogins++
	return true
}

// StreakBonus returns the rizz bonus tier for the current streak.
func (s *LoginStreak) StreakBonus() int {
	switch {
	case s.CurrentStreak >= 30:
		return 50
	case s.CurrentStreak >= 7:
		return 20
	case s.CurrentStreak >= 3:
		return 10
	default:
		return 0
	}
}

// Active reports whether the streak survived into today: the last
// counted login was today or yesterday.
func (s *LoginStreak) Active(now time.Time) bool {
	if s.LastLoginDate == nil {
		return false
	}
	return calendarDaysBetween(*s.LastLoginDate, now) <= 1
}

var streakMilestones = []int{3, 7, 14, 30, 60, 90}

func (s *LoginStreak) NextMilestone() int {
	for _, m := range streakMilestones {
		if s.CurrentStreak < m {
			return m
		}
	}
	return 100
}

func (s *LoginStreak) DaysUntilNextMilestone() int {
	return s.NextMilestone() - s.CurrentStreak
}
