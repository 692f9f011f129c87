package models

import (
	"fmt"
	"math/rand"
	"time"
)

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderNonBinary      Gender = "non_binary"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

type LookingFor string

const (
	LookingForFriendship   LookingFor = "friendship"
	LookingForDating       LookingFor = "dating"
	LookingForRelationship LookingFor = "relationship"
	LookingForNetworking   LookingFor = "networking"
	LookingForStudyBuddy   LookingFor = "study_buddy"
	LookingForAnything     LookingFor = "anything"
)

type Profile struct {
	ID                string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName         string     `gorm:"size:100;not null" json:"first_name"`
	LastName          string     `gorm:"size:100" json:"last_name,omitempty"`
	DisplayName       string     `gorm:"size:100" json:"display_name,omitempty"`
	CodeName          string     `gorm:"size:100" json:"code_name,omitempty"` // anonymous mode alias
	Bio               string     `gorm:"type:text" json:"bio,omitempty"`
	DateOfBirth       time.Time  `gorm:"not null" json:"date_of_birth"`
	Gender            Gender     `gorm:"size:20" json:"gender,omitempty"`
	LookingFor        LookingFor `gorm:"size:20" json:"looking_for,omitempty"`
	Department        string     `gorm:"size:100" json:"department,omitempty"`
	YearOfStudy       int        `json:"year_of_study,omitempty"`
	Interests         []string   `gorm:"serializer:json" json:"interests,omitempty"`
	Hobbies           []string   `gorm:"serializer:json" json:"hobbies,omitempty"`
	Languages         []string   `gorm:"serializer:json" json:"languages,omitempty"`
	HeightCM          int        `json:"height,omitempty"`
	ShowAge           bool       `gorm:"default:true" json:"show_age"`
	ShowDistance      bool       `gorm:"default:true" json:"show_distance"`
	IsAnonymous       bool       `gorm:"default:false" json:"is_anonymous"`
	AnonymousUntil    *time.Time `json:"anonymous_until,omitempty"`
	ProfileCompletion int        `gorm:"default:0" json:"profile_completion"` // 0-100%
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Age derives the age in whole years at the given time.
func (p *Profile) Age(now time.Time) int {
	age := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}

func (p *Profile) FullName() string {
	if p.FirstName != "" && p.LastName != "" {
		return p.FirstName + " " + p.LastName
	}
	return p.FirstName
}

// RecomputeCompletion refreshes ProfileCompletion from the filled
// fields. Invoked before every create/update persist.
func (p *Profile) RecomputeCompletion() int {
	filled := 0
	const total = 9
	if p.FirstName != "" {
		filled++
	}
	if p.Bio != "" {
		filled++
	}
	if !p.DateOfBirth.IsZero() {
		filled++
	}
	if p.Gender != "" {
		filled++
	}
	if p.LookingFor != "" {
		filled++
	}
	if p.Department != "" {
		filled++
	}
	if p.YearOfStudy > 0 {
		filled++
	}
	if len(p.Interests) > 0 {
		filled++
	}
	if len(p.Hobbies) > 0 {
		filled++
	}
	p.ProfileCompletion = int(float64(filled)/float64(total)*100 + 0.5)
	return p.ProfileCompletion
}

// AnonymousNow reports whether the anonymity window is active.
func (p *Profile) AnonymousNow(now time.Time) bool {
	if !p.IsAnonymous {
		return false
	}
	return p.AnonymousUntil != nil && p.AnonymousUntil.After(now)
}

// DisplayInfo is the public projection of a profile, masked while the
// anonymity window is active.
type DisplayInfo struct {
	DisplayName   string `json:"display_name"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Age           int    `json:"age,omitempty"`
	Bio           string `json:"bio,omitempty"`
	PhotosBlurred bool   `json:"photos_blurred"`
}

func (p *Profile) GetDisplayInfo(now time.Time) DisplayInfo {
	if p.AnonymousNow(now) {
		name := p.CodeName
		if name == "" {
			name = "Anonymous User"
		}
		return DisplayInfo{
			DisplayName:   name,
			Bio:           "This user prefers to stay anonymous",
			PhotosBlurred: true,
		}
	}

	name := p.DisplayName
	if name == "" {
		name = p.FirstName
	}
	info := DisplayInfo{
		DisplayName: name,
		FirstName:   p.FirstName,
		Bio:         p.Bio,
	}
	if p.ShowAge {
		info.LastName = p.LastName
		info.Age = p.Age(now)
	}
	return info
}

// EnsureCodeName assigns a random alias for anonymous mode if one is
// not set yet. Invoked before first persist.
func (p *Profile) EnsureCodeName() {
	if p.CodeName != "" {
		return
	}
	adjectives := []string{"Mysterious", "Silent", "Hidden", "Secret", "Shadow", "Night", "Wandering"}
	nouns := []string{"Scholar", "Dreamer", "Explorer", "Thinker", "Wanderer", "Ghost", "Owl"}
	locations := []string{"Library", "Cafeteria", "Campus", "Garden", "Hall", "Lab"}
	p.CodeName = fmt.Sprintf("%s %s %s",
		adjectives[rand.Intn(len(adjectives))],
		locations[rand.Intn(len(locations))],
		nouns[rand.Intn(len(nouns))])
}
