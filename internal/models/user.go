package models

import (
	"time"

	"gorm.io/gorm"

	"bowenhooks/internal/utils"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

type User struct {
	ID                       string         `gorm:"type:uuid;primaryKey" json:"id"`
	Email                    string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash             string         `gorm:"size:255;not null" json:"-"`
	Phone                    string         `gorm:"size:20" json:"phone,omitempty"`
	Role                     Role           `gorm:"size:20;default:'user';not null" json:"role"`
	IsVerified               bool           `gorm:"default:false" json:"is_verified"`
	IsPhotoVerified          bool           `gorm:"default:false" json:"is_photo_verified"`
	IsActive                 bool           `gorm:"default:true" json:"is_active"`
	IsPremium                bool           `gorm:"default:false" json:"is_premium"`
	PremiumExpiresAt         *time.Time     `json:"premium_expires_at,omitempty"`
	LastLogin                *time.Time     `json:"last_login,omitempty"`
	LoginStreak              int            `gorm:"default:0" json:"login_streak"`
	AccountLocked            bool           `gorm:"default:false" json:"-"`
	LockedUntil              *time.Time     `json:"-"`
	FailedLoginAttempts      int            `gorm:"default:0" json:"-"`
	GraduationYear           *int           `json:"graduation_year,omitempty"`
	VerificationToken        string         `gorm:"size:255;index" json:"-"`
	VerificationTokenExpires *time.Time     `json:"-"`
	PasswordResetToken       string         `gorm:"size:255;index" json:"-"`
	PasswordResetExpires     *time.Time     `json:"-"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
	DeletedAt                gorm.DeletedAt `gorm:"index" json:"-"` // soft delete

	Profile *Profile `json:"profile,omitempty"`
}

// ComparePassword checks a plaintext candidate against the stored hash.
func (u *User) ComparePassword(candidate string) bool {
	return utils.CheckPasswordHash(candidate, u.PasswordHash)
}

// LockActive reports whether the account is currently locked out.
// A lock whose window has passed does not count; callers should
// follow up with ClearExpiredLock to reset the counters.
func (u *User) LockActive(now time.Time) bool {
	if !u.AccountLocked {
		return false
	}
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// ClearExpiredLock resets lockout state once the lock window has
// passed. Returns true if anything changed and needs persisting.
func (u *User) ClearExpiredLock(now time.Time) bool {
	if !u.AccountLocked {
		return false
	}
	if u.LockedUntil != nil && u.LockedUntil.After(now) {
		return false
	}
	u.AccountLocked = false
	u.LockedUntil = nil
	u.FailedLoginAttempts = 0
	return true
}

// RegisterFailedLogin bumps the failure counter and locks the account
// once the threshold is reached.
func (u *User) RegisterFailedLogin(now time.Time, maxAttempts int, lockFor time.Duration) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxAttempts {
		until := now.Add(lockFor)
		u.AccountLocked = true
		u.LockedUntil = &until
	}
}

// ResetFailedLogins clears the lockout counters after a successful login.
func (u *User) ResetFailedLogins() {
	u.FailedLoginAttempts = 0
	u.AccountLocked = false
	u.LockedUntil = nil
}

// RecordLogin updates LastLogin and the login streak. The streak only
// grows when the login lands on the calendar day immediately after the
// previous one; a gap of more than one day resets it to 1, and a second
// login on the same day leaves it untouched.
func (u *User) RecordLogin(now time.Time) {
	if u.LastLogin == nil {
		u.LoginStreak = 1
	} else {
		days := calendarDaysBetween(*u.LastLogin, now)
		switch {
		case days == 1:
			u.LoginStreak++
		case days > 1:
			u.LoginStreak = 1
		}
	}
	t := now
	u.LastLogin = &t
}

// PremiumActive reports whether premium is valid at the given time.
func (u *User) PremiumActive(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	return u.PremiumExpiresAt == nil || u.PremiumExpiresAt.After(now)
}

func calendarDaysBetween(earlier, later time.Time) int {
	ey, em, ed := earlier.Date()
	ly, lm, ld := later.Date()
	start := time.Date(ey, em, ed, 0, 0, 0, 0, earlier.Location())
	end := time.Date(ly, lm, ld, 0, 0, 0, 0, later.Location())
	return int(end.Sub(start).Hours() / 24)
}
