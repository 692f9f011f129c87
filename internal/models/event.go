package models

import "time"

type EventType string

const (
	EventTypeParty      EventType = "party"
	EventTypeStudyGroup EventType = "study_group"
	EventTypeSports     EventType = "sports"
	EventTypeFoodMeetup EventType = "food_meetup"
	EventTypeGameNight  EventType = "game_night"
	EventTypeOther      EventType = "other"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type Event struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID    string      `gorm:"type:uuid;index;not null" json:"creator_id"`
	Title        string      `gorm:"size:255;not null" json:"title"`
	Description  string      `gorm:"type:text" json:"description,omitempty"`
	EventType    EventType   `gorm:"size:20;not null" json:"event_type"`
	LocationName string      `gorm:"size:255" json:"location_name,omitempty"`
	Latitude     float64     `json:"latitude,omitempty"`
	Longitude    float64     `json:"longitude,omitempty"`
	StartTime    time.Time   `gorm:"not null;index" json:"start_time"`
	EndTime      *time.Time  `json:"end_time,omitempty"`
	MaxAttendees int         `json:"max_attendees,omitempty"`
	IsPublic     bool        `gorm:"default:true" json:"is_public"`
	IsAnonymous  bool        `gorm:"default:false" json:"is_anonymous"`
	RSVPDeadline *time.Time  `json:"rsvp_deadline,omitempty"`
	Status       EventStatus `gorm:"size:20;default:'upcoming';not null" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CanRSVP reports whether RSVPs are still open: the event must be
// upcoming and the deadline, when set, not yet passed.
func (e *Event) CanRSVP(now time.Time) bool {
	if e.Status != EventStatusUpcoming {
		return false
	}
	if e.RSVPDeadline != nil && now.After(*e.RSVPDeadline) {
		return false
	}
	return true
}

// RefreshStatus rolls the status forward based on the clock. Cancelled
// events stay cancelled.
func (e *Event) RefreshStatus(now time.Time) {
	if e.Status == EventStatusCancelled {
		return
	}
	switch {
	case e.EndTime != nil && now.After(*e.EndTime):
		e.Status = EventStatusCompleted
	case now.After(e.StartTime):
		e.Status = EventStatusOngoing
	default:
		e.Status = EventStatusUpcoming
	}
}

func (e *Event) TimeUntilStart(now time.Time) time.Duration {
	if remaining := e.StartTime.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

type AttendeeStatus string

const (
	AttendeeStatusInvited  AttendeeStatus = "invited"
	AttendeeStatusAccepted AttendeeStatus = "accepted"
	AttendeeStatusDeclined AttendeeStatus = "declined"
	AttendeeStatusAttended AttendeeStatus = "attended"
	AttendeeStatusNoShow   AttendeeStatus = "no_show"
)

type EventAttendee struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     string         `gorm:"type:uuid;index:idx_event_user;not null" json:"event_id"`
	UserID      string         `gorm:"type:uuid;index:idx_event_user;not null" json:"user_id"`
	Status      AttendeeStatus `gorm:"size:20;default:'invited';not null" json:"status"`
	IsAnonymous bool           `gorm:"default:false" json:"is_anonymous"`
	RSVPAt      *time.Time     `json:"rsvp_at,omitempty"`
	AttendedAt  *time.Time     `json:"attended_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (a *EventAttendee) AcceptRSVP(now time.Time) {
	a.Status = AttendeeStatusAccepted
	t := now
	a.RSVPAt = &t
}

func (a *EventAttendee) DeclineRSVP(now time.Time) {
	a.Status = AttendeeStatusDeclined
	t := now
	a.RSVPAt = &t
}

func (a *EventAttendee) MarkAttended(now time.Time) {
	a.Status = AttendeeStatusAttended
	t := now
	a.AttendedAt = &t
}

func (a *EventAttendee) MarkNoShow() {
	a.Status = AttendeeStatusNoShow
}

func (a *EventAttendee) Confirmed() bool {
	return a.Status == AttendeeStatusAccepted || a.Status == AttendeeStatusAttended
}
