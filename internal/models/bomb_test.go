package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArmFuse_TypeDefaults(t *testing.T) {
	tests := []struct {
		bombType BombType
		want     time.Duration
	}{
		{BombTypeQuickFuse, 30 * time.Second},
		{BombTypeTimeBomb, 24 * time.Hour},
		{BombTypeSlowBurn, 3 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(string(tt.bombType), func(t *testing.T) {
			b := BombMessage{BombType: tt.bombType}
			b.ArmFuse(noon)
			assert.Equal(t, noon.Add(tt.want), b.ExplodesAt)
			assert.Equal(t, int(tt.want.Seconds()), b.DurationSeconds)
		})
	}
}

func TestArmFuse_ExplicitDurationWins(t *testing.T) {
	b := BombMessage{BombType: BombTypeTimeBomb, DurationSeconds: 60}
	b.ArmFuse(noon)
	assert.Equal(t, noon.Add(time.Minute), b.ExplodesAt)
}

func TestBombLifecycle(t *testing.T) {
	b := BombMessage{BombType: BombTypeQuickFuse}
	b.ArmFuse(noon)

	assert.True(t, b.Active(noon.Add(10*time.Second)))
	assert.Equal(t, 20*time.Second, b.TimeRemaining(noon.Add(10*time.Second)))

	assert.False(t, b.Active(noon.Add(31*time.Second)))
	assert.Equal(t, time.Duration(0), b.TimeRemaining(noon.Add(31*time.Second)))

	b.Explode()
	assert.True(t, b.IsExploded)
	assert.False(t, b.Active(noon))
}

func TestBombScreenshot(t *testing.T) {
	b := BombMessage{}
	b.MarkScreenshot(noon)
	assert.True(t, b.ScreenshotTaken)
	assert.Equal(t, noon, *b.ScreenshotAt)
}
