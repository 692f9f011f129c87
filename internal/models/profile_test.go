package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfile_Age(t *testing.T) {
	dob := time.Date(2004, 6, 15, 0, 0, 0, 0, time.UTC)
	p := Profile{DateOfBirth: dob}

	assert.Equal(t, 21, p.Age(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)), "birthday counts")
	assert.Equal(t, 20, p.Age(time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)), "day before birthday")
	assert.Equal(t, 21, p.Age(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRecomputeCompletion(t *testing.T) {
	empty := Profile{}
	assert.Equal(t, 0, empty.RecomputeCompletion())

	partial := Profile{
		FirstName:   "Ada",
		DateOfBirth: time.Date(2004, 6, 15, 0, 0, 0, 0, time.UTC),
		Department:  "Computer Science",
	}
	// 3 of 9 fields filled
	assert.Equal(t, 33, partial.RecomputeCompletion())
	assert.Equal(t, 33, partial.ProfileCompletion)

	full := Profile{
		FirstName:   "Ada",
		Bio:         "hi",
		DateOfBirth: time.Date(2004, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      GenderFemale,
		LookingFor:  LookingForFriendship,
		Department:  "Computer Science",
		YearOfStudy: 3,
		Interests:   []string{"chess"},
		Hobbies:     []string{"padel"},
	}
	assert.Equal(t, 100, full.RecomputeCompletion())
}

func TestAnonymousWindow(t *testing.T) {
	p := Profile{FirstName: "Ada", LastName: "Okafor", Bio: "hello", ShowAge: true,
		DateOfBirth: time.Date(2004, 6, 15, 0, 0, 0, 0, time.UTC)}

	assert.False(t, p.AnonymousNow(noon), "not anonymous by default")

	until := noon.Add(time.Hour)
	p.IsAnonymous = true
	p.AnonymousUntil = &until
	assert.True(t, p.AnonymousNow(noon))
	assert.False(t, p.AnonymousNow(noon.Add(2*time.Hour)), "window expired")
}

func TestGetDisplayInfo_Masking(t *testing.T) {
	until := noon.Add(time.Hour)
	p := Profile{
		FirstName:      "Ada",
		LastName:       "Okafor",
		Bio:            "hello there",
		CodeName:       "Mysterious Library Scholar",
		ShowAge:        true,
		DateOfBirth:    time.Date(2004, 6, 15, 0, 0, 0, 0, time.UTC),
		IsAnonymous:    true,
		AnonymousUntil: &until,
	}

	masked := p.GetDisplayInfo(noon)
	assert.Equal(t, "Mysterious Library Scholar", masked.DisplayName)
	assert.Empty(t, masked.FirstName)
	assert.True(t, masked.PhotosBlurred)
	assert.NotContains(t, masked.Bio, "hello")

	revealed := p.GetDisplayInfo(noon.Add(2 * time.Hour))
	assert.Equal(t, "Ada", revealed.DisplayName)
	assert.Equal(t, "hello there", revealed.Bio)
	assert.False(t, revealed.PhotosBlurred)
	assert.NotZero(t, revealed.Age)
}

func TestEnsureCodeName(t *testing.T) {
	p := Profile{}
	p.EnsureCodeName()
	assert.NotEmpty(t, p.CodeName)

	fixed := Profile{CodeName: "Night Hall Owl"}
	fixed.EnsureCodeName()
	assert.Equal(t, "Night Hall Owl", fixed.CodeName, "existing code name is kept")
}
