package models

import "time"

type VoiceFilter string

const (
	VoiceFilterNormal   VoiceFilter = "normal"
	VoiceFilterDeep     VoiceFilter = "deep"
	VoiceFilterChipmunk VoiceFilter = "chipmunk"
	VoiceFilterRobot    VoiceFilter = "robot"
	VoiceFilterEcho     VoiceFilter = "echo"
	VoiceFilterReverb   VoiceFilter = "reverb"
)

// ValidVoiceFilter reports whether the filter name is one of the
// supported playback effects.
func ValidVoiceFilter(f VoiceFilter) bool {
	switch f {
	case VoiceFilterNormal, VoiceFilterDeep, VoiceFilterChipmunk,
		VoiceFilterRobot, VoiceFilterEcho, VoiceFilterReverb:
		return true
	}
	return false
}

type VoiceNote struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID      string      `gorm:"type:uuid;index;not null" json:"sender_id"`
	ReceiverID    string      `gorm:"type:uuid;index;not null" json:"receiver_id"`
	MatchID       string      `gorm:"type:uuid;index" json:"match_id,omitempty"`
	AudioURL      string      `gorm:"type:text;not null" json:"audio_url"`
	DurationSecs  int         `gorm:"not null" json:"duration_secs"`
	FilterType    VoiceFilter `gorm:"size:20;default:'normal';not null" json:"filter_type"`
	Transcription string      `gorm:"type:text" json:"transcription,omitempty"`
	IsPlayed      bool        `gorm:"default:false" json:"is_played"`
	PlayedAt      *time.Time  `json:"played_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// MarkPlayed stamps the first playback.
func (v *VoiceNote) MarkPlayed(now time.Time) {
	v.IsPlayed = true
	t := now
	v.PlayedAt = &t
}

// FilteredAudioURL appends the effect as a query parameter so the
// client requests the processed rendition.
func (v *VoiceNote) FilteredAudioURL() string {
	if v.FilterType != VoiceFilterNormal && v.FilterType != "" {
		return v.AudioURL + "?filter=" + string(v.FilterType)
	}
	return v.AudioURL
}
