package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapsuleReadiness(t *testing.T) {
	tc := TimeCapsule{SendAt: noon.Add(48 * time.Hour)}

	assert.True(t, tc.IsFutureMessage(noon))
	assert.False(t, tc.ReadyToSend(noon))
	assert.Equal(t, 48*time.Hour, tc.TimeUntilSend(noon))

	assert.True(t, tc.ReadyToSend(noon.Add(48*time.Hour)), "exactly due counts")
	assert.True(t, tc.ReadyToSend(noon.Add(72*time.Hour)))
	assert.Equal(t, time.Duration(0), tc.TimeUntilSend(noon.Add(72*time.Hour)))
}

func TestCapsuleMarkSent(t *testing.T) {
	tc := TimeCapsule{SendAt: noon}
	tc.MarkSent(noon.Add(time.Minute))

	assert.True(t, tc.IsSent)
	assert.Equal(t, noon.Add(time.Minute), *tc.SentAt)
	assert.False(t, tc.ReadyToSend(noon.Add(time.Hour)), "already delivered")
}

func TestVibeExpiry(t *testing.T) {
	v := VibeStatus{}
	v.EnsureExpiry(noon)
	assert.Equal(t, noon.Add(DefaultVibeTTL), v.ExpiresAt)

	explicit := VibeStatus{ExpiresAt: noon.Add(time.Hour)}
	explicit.EnsureExpiry(noon)
	assert.Equal(t, noon.Add(time.Hour), explicit.ExpiresAt, "explicit expiry kept")

	assert.False(t, v.Expired(noon.Add(3*time.Hour)))
	assert.True(t, v.Expired(noon.Add(5*time.Hour)))
}

func TestVibeDisplayMessage(t *testing.T) {
	custom := VibeStatus{VibeType: "study_buddy", CustomMessage: "cramming for finals"}
	assert.Equal(t, "cramming for finals", custom.DisplayMessage())

	preset := VibeStatus{VibeType: "food_run"}
	assert.Equal(t, "Up for a food run 🍕", preset.DisplayMessage())

	unknown := VibeStatus{VibeType: "weird_vibe"}
	assert.Equal(t, "weird_vibe", unknown.DisplayMessage())
}

func TestSpotDropExpiry(t *testing.T) {
	d := SpotDrop{ExpiresAt: noon.Add(time.Hour)}
	assert.False(t, d.Expired(noon))
	assert.Equal(t, time.Hour, d.TimeRemaining(noon))
	assert.True(t, d.Expired(noon.Add(time.Hour)), "boundary counts as expired")
}

func TestHotZonePeak(t *testing.T) {
	z := HotZone{PeakTimeStart: "18:00", PeakTimeEnd: "22:00"}
	assert.True(t, z.PeakNow(time.Date(2026, 3, 10, 19, 30, 0, 0, time.UTC)))
	assert.False(t, z.PeakNow(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))

	// window crossing midnight
	late := HotZone{PeakTimeStart: "22:00", PeakTimeEnd: "02:00"}
	assert.True(t, late.PeakNow(time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)))
	assert.True(t, late.PeakNow(time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)))
	assert.False(t, late.PeakNow(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)))

	unset := HotZone{}
	assert.False(t, unset.PeakNow(noon))
}

func TestMatchReveal(t *testing.T) {
	plain := Match{}
	assert.True(t, plain.Revealed(noon), "non-mystery matches are always revealed")

	reveal := noon.Add(48 * time.Hour)
	mystery := Match{IsMystery: true, RevealAt: &reveal}
	assert.False(t, mystery.Revealed(noon))
	assert.True(t, mystery.Revealed(noon.Add(48*time.Hour)))
}
