package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"
	"bowenhooks/internal/utils"
)

type EventHandler struct {
	db *gorm.DB
}

func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{db: db}
}

type createEventRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	EventType    string     `json:"eventType"`
	LocationName string     `json:"locationName"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	MaxAttendees int        `json:"maxAttendees"`
	IsPublic     *bool      `json:"isPublic"`
	RSVPDeadline *time.Time `json:"rsvpDeadline"`
}

// CreateEvent handles POST /events.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		badRequest(c, "event title is required")
		return
	}
	if req.StartTime.Before(time.Now()) {
		badRequest(c, "event start time must be in the future")
		return
	}

	eventType := models.EventType(req.EventType)
	if eventType == "" {
		eventType = models.EventTypeOther
	}

	event := models.Event{
		ID:           uuid.NewString(),
		CreatorID:    identity.ID,
		Title:        utils.SanitizeText(req.Title),
		Description:  utils.SanitizeText(req.Description),
		EventType:    eventType,
		LocationName: utils.SanitizeText(req.LocationName),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		MaxAttendees: req.MaxAttendees,
		IsPublic:     true,
		RSVPDeadline: req.RSVPDeadline,
		Status:       models.EventStatusUpcoming,
	}
	if req.IsPublic != nil {
		event.IsPublic = *req.IsPublic
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create event"})
		return
	}

	respondMessage(c, http.StatusCreated, "Event created", gin.H{"event": event})
}

// ListEvents handles GET /events. Statuses are rolled forward on read.
func (h *EventHandler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()
	query := h.db.WithContext(ctx).
		Where("is_public = ? AND status IN ?", true,
			[]models.EventStatus{models.EventStatusUpcoming, models.EventStatusOngoing}).
		Order("start_time asc").
		Limit(50)

	if t := c.Query("type"); t != "" {
		query = query.Where("event_type = ?", t)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load events"})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(events))
	for i := range events {
		e := &events[i]
		before := e.Status
		e.RefreshStatus(now)
		if e.Status != before {
			h.db.WithContext(ctx).Model(e).Update("status", e.Status)
		}
		out = append(out, gin.H{
			"event":        e,
			"canRSVP":      e.CanRSVP(now),
			"startsInSecs": int(e.TimeUntilStart(now).Seconds()),
		})
	}

	respondOK(c, gin.H{"events": out, "count": len(out)})
}

// GetEvent handles GET /events/:eventId.
func (h *EventHandler) GetEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var event models.Event
	if err := h.db.WithContext(ctx).First(&event, "id = ?", c.Param("eventId")).Error; err != nil {
		notFound(c, "event not found")
		return
	}

	now := time.Now()
	event.RefreshStatus(now)

	var attendees []models.EventAttendee
	h.db.WithContext(ctx).
		Where("event_id = ? AND status IN ?", event.ID,
			[]models.AttendeeStatus{models.AttendeeStatusAccepted, models.AttendeeStatusAttended}).
		Find(&attendees)

	respondOK(c, gin.H{
		"event":         event,
		"attendeeCount": len(attendees),
		"canRSVP":       event.CanRSVP(now),
	})
}

type rsvpRequest struct {
	Attending   bool `json:"attending"`
	IsAnonymous bool `json:"isAnonymous"`
}

// RSVP handles POST /events/:eventId/rsvp.
func (h *EventHandler) RSVP(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	var event models.Event
	if err := h.db.WithContext(ctx).First(&event, "id = ?", c.Param("eventId")).Error; err != nil {
		notFound(c, "event not found")
		return
	}

	now := time.Now()
	if !event.CanRSVP(now) {
		badRequest(c, "RSVPs are closed for this event")
		return
	}

	if req.Attending && event.MaxAttendees > 0 {
		var confirmed int64
		h.db.WithContext(ctx).Model(&models.EventAttendee{}).
			Where("event_id = ? AND status IN ?", event.ID,
				[]models.AttendeeStatus{models.AttendeeStatusAccepted, models.AttendeeStatusAttended}).
			Count(&confirmed)
		if confirmed >= int64(event.MaxAttendees) {
			badRequest(c, "this event is full")
			return
		}
	}

	var attendee models.EventAttendee
	err := h.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", event.ID, identity.ID).
		First(&attendee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		attendee = models.EventAttendee{
			ID:          uuid.NewString(),
			EventID:     event.ID,
			UserID:      identity.ID,
			IsAnonymous: req.IsAnonymous,
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not record RSVP"})
		return
	}

	if req.Attending {
		attendee.AcceptRSVP(now)
	} else {
		attendee.DeclineRSVP(now)
	}

	if err := h.db.WithContext(ctx).Save(&attendee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not record RSVP"})
		return
	}

	message := "See you there! 🎉"
	if !req.Attending {
		message = "RSVP declined"
	}
	respondMessage(c, http.StatusOK, message, gin.H{"rsvp": attendee})
}

// CancelEvent handles DELETE /events/:eventId. Creator only.
func (h *EventHandler) CancelEvent(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var event models.Event
	if err := h.db.WithContext(c.Request.Context()).First(&event, "id = ?", c.Param("eventId")).Error; err != nil {
		notFound(c, "event not found")
		return
	}
	if event.CreatorID != identity.ID {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "only the creator can cancel an event"})
		return
	}

	event.Status = models.EventStatusCancelled
	if err := h.db.WithContext(c.Request.Context()).Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not cancel event"})
		return
	}

	respondMessage(c, http.StatusOK, "Event cancelled", nil)
}

// MarkAttendance handles POST /events/:eventId/attendance. Creator
// confirms who showed up; attendance feeds the rizz score.
func (h *EventHandler) MarkAttendance(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req struct {
		UserID   string `json:"userId"`
		Attended bool   `json:"attended"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		badRequest(c, "userId is required")
		return
	}

	ctx := c.Request.Context()
	var event models.Event
	if err := h.db.WithContext(ctx).First(&event, "id = ?", c.Param("eventId")).Error; err != nil {
		notFound(c, "event not found")
		return
	}
	if event.CreatorID != identity.ID {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "only the creator can mark attendance"})
		return
	}

	var attendee models.EventAttendee
	if err := h.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", event.ID, req.UserID).
		First(&attendee).Error; err != nil {
		notFound(c, "attendee not found")
		return
	}

	now := time.Now()
	if req.Attended {
		attendee.MarkAttended(now)
	} else {
		attendee.MarkNoShow()
	}
	if err := h.db.WithContext(ctx).Save(&attendee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update attendance"})
		return
	}

	if req.Attended {
		var rizz models.RizzScore
		err := h.db.WithContext(ctx).Where("user_id = ?", req.UserID).First(&rizz).Error
		if err == nil {
			rizz.AddEventAttendance()
			rizz.Recalculate(now)
			h.db.WithContext(ctx).Save(&rizz)
		}
	}

	respondMessage(c, http.StatusOK, "Attendance updated", gin.H{"attendee": attendee})
}
