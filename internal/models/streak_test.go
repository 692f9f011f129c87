package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginStreak_RecordLogin(t *testing.T) {
	s := LoginStreak{}

	assert.True(t, s.RecordLogin(noon))
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.TotalLogins)

	// same day is not counted twice
	assert.False(t, s.RecordLogin(noon.Add(3*time.Hour)))
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.TotalLogins)

	// consecutive days grow both current and longest
	assert.True(t, s.RecordLogin(noon.Add(24*time.Hour)))
	assert.True(t, s.RecordLogin(noon.Add(48*time.Hour)))
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)

	// a gap resets current but longest survives
	assert.True(t, s.RecordLogin(noon.Add(5*24*time.Hour)))
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
	assert.Equal(t, 4, s.TotalLogins)
}

func TestStreakBonusTiers(t *testing.T) {
	tests := []struct {
		streak, want int
	}{
		{0, 0}, {2, 0}, {3, 10}, {6, 10}, {7, 20}, {29, 20}, {30, 50}, {90, 50},
	}
	for _, tt := range tests {
		s := LoginStreak{CurrentStreak: tt.streak}
		assert.Equal(t, tt.want, s.StreakBonus(), "streak %d", tt.streak)
	}
}

func TestStreakActive(t *testing.T) {
	s := LoginStreak{}
	assert.False(t, s.Active(noon), "no logins yet")

	s.RecordLogin(noon)
	assert.True(t, s.Active(noon.Add(20*time.Hour)), "yesterday still counts")
	assert.False(t, s.Active(noon.Add(50*time.Hour)), "two days broken")
}

func TestStreakMilestones(t *testing.T) {
	s := LoginStreak{CurrentStreak: 5}
	assert.Equal(t, 7, s.NextMilestone())
	assert.Equal(t, 2, s.DaysUntilNextMilestone())

	s.CurrentStreak = 95
	assert.Equal(t, 100, s.NextMilestone())
}
