package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bowenhooks/internal/utils"
)

var noon = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestComparePassword(t *testing.T) {
	hash, err := utils.HashPassword("sup3rsecret")
	require.NoError(t, err)

	u := User{PasswordHash: hash}
	assert.True(t, u.ComparePassword("sup3rsecret"))
	assert.False(t, u.ComparePassword("wrongwrong"))
}

func TestRegisterFailedLogin_LocksAtThreshold(t *testing.T) {
	u := User{}

	for i := 0; i < 4; i++ {
		u.RegisterFailedLogin(noon, 5, 30*time.Minute)
		assert.False(t, u.AccountLocked, "attempt %d must not lock", i+1)
	}

	u.RegisterFailedLogin(noon, 5, 30*time.Minute)
	assert.True(t, u.AccountLocked)
	require.NotNil(t, u.LockedUntil)
	assert.Equal(t, noon.Add(30*time.Minute), *u.LockedUntil)
}

func TestLockActive_And_ClearExpiredLock(t *testing.T) {
	u := User{}
	for i := 0; i < 5; i++ {
		u.RegisterFailedLogin(noon, 5, 30*time.Minute)
	}

	assert.True(t, u.LockActive(noon.Add(10*time.Minute)))
	assert.False(t, u.ClearExpiredLock(noon.Add(10*time.Minute)))
	assert.True(t, u.AccountLocked)

	// past the window the lock no longer holds and clears
	assert.False(t, u.LockActive(noon.Add(31*time.Minute)))
	assert.True(t, u.ClearExpiredLock(noon.Add(31*time.Minute)))
	assert.False(t, u.AccountLocked)
	assert.Equal(t, 0, u.FailedLoginAttempts)
	assert.Nil(t, u.LockedUntil)
}

func TestRecordLogin_StreakRules(t *testing.T) {
	u := User{}

	u.RecordLogin(noon)
	assert.Equal(t, 1, u.LoginStreak)

	// second login the same day leaves the streak alone
	u.RecordLogin(noon.Add(5 * time.Hour))
	assert.Equal(t, 1, u.LoginStreak)

	// consecutive calendar days grow the streak, even late-to-early
	u.RecordLogin(noon.Add(13 * time.Hour)) // 01:00 next day
	assert.Equal(t, 2, u.LoginStreak)
	u.RecordLogin(noon.Add(36 * time.Hour))
	assert.Equal(t, 3, u.LoginStreak)

	// skipping a day resets to 1
	u.RecordLogin(noon.Add(5 * 24 * time.Hour))
	assert.Equal(t, 1, u.LoginStreak)
}

func TestPremiumActive(t *testing.T) {
	u := User{}
	assert.False(t, u.PremiumActive(noon))

	u.IsPremium = true
	assert.True(t, u.PremiumActive(noon), "premium without expiry never lapses")

	future := noon.Add(time.Hour)
	u.PremiumExpiresAt = &future
	assert.True(t, u.PremiumActive(noon))

	past := noon.Add(-time.Hour)
	u.PremiumExpiresAt = &past
	assert.False(t, u.PremiumActive(noon))
}
