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
)

type SparkHandler struct {
	db *gorm.DB
}

func NewSparkHandler(db *gorm.DB) *SparkHandler {
	return &SparkHandler{db: db}
}

// JoinSpark handles POST /sparks/join. The caller claims the oldest
// waiting session from another user, or opens a new one and waits.
func (h *SparkHandler) JoinSpark(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	ctx := c.Request.Context()

	var open models.SparkSession
	err := h.db.WithContext(ctx).
		Where("status = ? AND user1_id <> ?", models.SparkStatusWaiting, identity.ID).
		Order("created_at asc").
		First(&open).Error

	switch {
	case err == nil:
		open.User2ID = identity.ID
		open.Start(time.Now())
		if err := h.db.WithContext(ctx).Save(&open).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not join session"})
			return
		}
		respondMessage(c, http.StatusOK, "Session started", gin.H{
			"session":          open,
			"partnerId":        open.OtherUser(identity.ID),
			"secondsRemaining": int(open.TimeRemaining(time.Now()) / time.Second),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		session := models.SparkSession{
			ID:      uuid.NewString(),
			User1ID: identity.ID,
			RoomID:  uuid.NewString(),
			Status:  models.SparkStatusWaiting,
		}
		if err := h.db.WithContext(ctx).Create(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not open session"})
			return
		}
		respondMessage(c, http.StatusCreated, "Waiting for a partner", gin.H{"session": session})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not join session"})
		return
	}
}

// GetSpark handles GET /sparks/:sessionId.
func (h *SparkHandler) GetSpark(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	session, ok := h.loadSessionFor(c, identity.ID)
	if !ok {
		return
	}

	respondOK(c, gin.H{
		"session":          session,
		"secondsRemaining": int(session.TimeRemaining(time.Now()) / time.Second),
	})
}

// SendSpark handles POST /sparks/:sessionId/spark. A mutual spark
// ends the round in a match.
func (h *SparkHandler) SendSpark(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	ctx := c.Request.Context()

	session, ok := h.loadSessionFor(c, identity.ID)
	if !ok {
		return
	}
	if session.Status != models.SparkStatusActive {
		badRequest(c, "this session is not active")
		return
	}

	now := time.Now()
	mutual := session.RecordSpark(identity.ID)
	if mutual {
		t := now
		session.EndedAt = &t
		if session.StartedAt != nil {
			session.DurationSecs = int(now.Sub(*session.StartedAt) / time.Second)
		}
	}
	if err := h.db.WithContext(ctx).Save(session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not record spark"})
		return
	}

	if !mutual {
		respondOK(c, gin.H{"session": session, "matched": false})
		return
	}

	match := models.Match{
		ID:        uuid.NewString(),
		User1ID:   session.User1ID,
		User2ID:   session.User2ID,
		MatchType: models.MatchTypeSparkMatch,
	}
	match.MarkMatched(now)
	if err := h.db.WithContext(ctx).Create(&match).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create match"})
		return
	}

	respondMessage(c, http.StatusCreated, "Sparks flew! It's a match ⚡", gin.H{
		"session": session,
		"matched": true,
		"match":   match,
	})
}

// EndSpark handles POST /sparks/:sessionId/end. A waiting session is
// withdrawn; an active one closes, skipped when nobody sparked.
func (h *SparkHandler) EndSpark(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	session, ok := h.loadSessionFor(c, identity.ID)
	if !ok {
		return
	}

	switch session.Status {
	case models.SparkStatusWaiting, models.SparkStatusActive:
		session.End(time.Now())
	default:
		badRequest(c, "this session has already ended")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not end session"})
		return
	}

	respondMessage(c, http.StatusOK, "Session ended", gin.H{"session": session})
}

// loadSessionFor fetches a session and checks the caller is one of
// the pair.
func (h *SparkHandler) loadSessionFor(c *gin.Context, userID string) (*models.SparkSession, bool) {
	var session models.SparkSession
	err := h.db.WithContext(c.Request.Context()).
		First(&session, "id = ?", c.Param("sessionId")).Error
	if err != nil {
		notFound(c, "session not found")
		return nil, false
	}
	if !session.HasUser(userID) {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "this session does not involve you"})
		return nil, false
	}
	return &session, true
}
