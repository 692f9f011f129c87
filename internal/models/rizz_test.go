package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRizzRecalculate(t *testing.T) {
	r := RizzScore{
		ResponseRate:              80, // * 0.3 = 24
		AverageConversationLength: 10, // * 0.2 = 2
		MatchRate:                 50, // * 0.3 = 15
		EventAttendance:           5,  // * 2   = 10
		LoginStreakBonus:          2,  // * 5   = 10
	}

	assert.Equal(t, 61, r.Recalculate(noon))
	assert.Equal(t, 61, r.TotalScore)
	assert.Equal(t, noon, *r.LastCalculated)
}

func TestRizzRecalculate_Clamped(t *testing.T) {
	high := RizzScore{ResponseRate: 100, MatchRate: 100, EventAttendance: 100, LoginStreakBonus: 50}
	assert.Equal(t, 100, high.Recalculate(noon))

	zero := RizzScore{}
	assert.Equal(t, 0, zero.Recalculate(noon))
}

func TestRizzLevels(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "Campus Legend 🐐"},
		{85, "Smooth Operator 😎"},
		{75, "Social Butterfly 🦋"},
		{65, "Friendly Vibes 👍"},
		{55, "Getting There 💪"},
		{10, "Rizz in Progress 🌱"},
	}
	for _, tt := range tests {
		r := RizzScore{TotalScore: tt.score}
		assert.Equal(t, tt.want, r.Level())
	}
}

func TestRizzRates(t *testing.T) {
	r := RizzScore{}
	r.SetResponseRate(8, 10, noon)
	assert.InDelta(t, 80.0, r.ResponseRate, 0.001)

	r.SetMatchRate(3, 12, noon)
	assert.InDelta(t, 25.0, r.MatchRate, 0.001)

	// zero totals leave the rate untouched
	r.SetResponseRate(0, 0, noon)
	assert.InDelta(t, 80.0, r.ResponseRate, 0.001)
}
