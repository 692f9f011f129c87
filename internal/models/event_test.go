package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanRSVP(t *testing.T) {
	start := noon.Add(24 * time.Hour)
	deadline := noon.Add(12 * time.Hour)

	e := Event{Status: EventStatusUpcoming, StartTime: start, RSVPDeadline: &deadline}
	assert.True(t, e.CanRSVP(noon))
	assert.False(t, e.CanRSVP(noon.Add(13*time.Hour)), "deadline passed")

	e.RSVPDeadline = nil
	assert.True(t, e.CanRSVP(noon.Add(13*time.Hour)), "no deadline set")

	e.Status = EventStatusCancelled
	assert.False(t, e.CanRSVP(noon))
}

func TestRefreshStatus(t *testing.T) {
	end := noon.Add(4 * time.Hour)
	e := Event{Status: EventStatusUpcoming, StartTime: noon.Add(time.Hour), EndTime: &end}

	e.RefreshStatus(noon)
	assert.Equal(t, EventStatusUpcoming, e.Status)

	e.RefreshStatus(noon.Add(2 * time.Hour))
	assert.Equal(t, EventStatusOngoing, e.Status)

	e.RefreshStatus(noon.Add(5 * time.Hour))
	assert.Equal(t, EventStatusCompleted, e.Status)
}

func TestRefreshStatus_CancelledStaysCancelled(t *testing.T) {
	e := Event{Status: EventStatusCancelled, StartTime: noon.Add(-time.Hour)}
	e.RefreshStatus(noon)
	assert.Equal(t, EventStatusCancelled, e.Status)
}

func TestAttendeeTransitions(t *testing.T) {
	a := EventAttendee{Status: AttendeeStatusInvited}
	assert.False(t, a.Confirmed())

	a.AcceptRSVP(noon)
	assert.Equal(t, AttendeeStatusAccepted, a.Status)
	assert.Equal(t, noon, *a.RSVPAt)
	assert.True(t, a.Confirmed())

	a.MarkAttended(noon.Add(24 * time.Hour))
	assert.Equal(t, AttendeeStatusAttended, a.Status)
	assert.True(t, a.Confirmed())

	b := EventAttendee{}
	b.DeclineRSVP(noon)
	assert.Equal(t, AttendeeStatusDeclined, b.Status)
	assert.False(t, b.Confirmed())

	b.MarkNoShow()
	assert.Equal(t, AttendeeStatusNoShow, b.Status)
}
