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

// DropsHandler covers the ephemeral content surface: spot drops, vibe
// statuses and time capsules.
type DropsHandler struct {
	db *gorm.DB
}

func NewDropsHandler(db *gorm.DB) *DropsHandler {
	return &DropsHandler{db: db}
}

type createSpotDropRequest struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusM     int     `json:"radius"`
	Message     string  `json:"message"`
	IsAnonymous *bool   `json:"isAnonymous"`
	TTLHours    int     `json:"ttlHours"`
}

// CreateSpotDrop handles POST /drops.
func (h *DropsHandler) CreateSpotDrop(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req createSpotDropRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		badRequest(c, "drop message is required")
		return
	}

	ttl := 24 * time.Hour
	if req.TTLHours > 0 && req.TTLHours <= 72 {
		ttl = time.Duration(req.TTLHours) * time.Hour
	}
	radius := req.RadiusM
	if radius <= 0 {
		radius = 10
	}

	drop := models.SpotDrop{
		ID:          uuid.NewString(),
		UserID:      identity.ID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		RadiusM:     radius,
		Message:     utils.SanitizeText(req.Message),
		IsAnonymous: true,
		ExpiresAt:   time.Now().Add(ttl),
	}
	if req.IsAnonymous != nil {
		drop.IsAnonymous = *req.IsAnonymous
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&drop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create drop"})
		return
	}

	respondMessage(c, http.StatusCreated, "Drop placed 📍", gin.H{"drop": drop})
}

// ListSpotDrops handles GET /drops. Only unexpired drops come back.
func (h *DropsHandler) ListSpotDrops(c *gin.Context) {
	now := time.Now()

	var drops []models.SpotDrop
	err := h.db.WithContext(c.Request.Context()).
		Where("expires_at > ?", now).
		Order("created_at desc").
		Limit(100).
		Find(&drops).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load drops"})
		return
	}

	out := make([]gin.H, 0, len(drops))
	for i := range drops {
		d := &drops[i]
		entry := gin.H{
			"id":               d.ID,
			"latitude":         d.Latitude,
			"longitude":        d.Longitude,
			"radius":           d.RadiusM,
			"message":          d.Message,
			"viewCount":        d.ViewCount,
			"secondsRemaining": int(d.TimeRemaining(now).Seconds()),
		}
		if !d.IsAnonymous {
			entry["userId"] = d.UserID
		}
		out = append(out, entry)
	}

	respondOK(c, gin.H{"drops": out, "count": len(out)})
}

// ViewSpotDrop handles POST /drops/:dropId/view and bumps the counter.
func (h *DropsHandler) ViewSpotDrop(c *gin.Context) {
	ctx := c.Request.Context()

	var drop models.SpotDrop
	if err := h.db.WithContext(ctx).First(&drop, "id = ?", c.Param("dropId")).Error; err != nil {
		notFound(c, "drop not found")
		return
	}
	if drop.Expired(time.Now()) {
		notFound(c, "this drop has expired")
		return
	}

	drop.ViewCount++
	h.db.WithContext(ctx).Model(&drop).Update("view_count", drop.ViewCount)

	respondOK(c, gin.H{"viewCount": drop.ViewCount})
}

type setVibeRequest struct {
	VibeType      string `json:"vibeType"`
	CustomMessage string `json:"customMessage"`
	TTLHours      int    `json:"ttlHours"`
}

// SetVibe handles POST /vibes. Replaces any active vibe status.
func (h *DropsHandler) SetVibe(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req setVibeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VibeType == "" {
		badRequest(c, "vibeType is required")
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	// one active vibe at a time
	h.db.WithContext(ctx).Model(&models.VibeStatus{}).
		Where("user_id = ? AND is_active = ?", identity.ID, true).
		Update("is_active", false)

	vibe := models.VibeStatus{
		ID:            uuid.NewString(),
		UserID:        identity.ID,
		VibeType:      req.VibeType,
		CustomMessage: utils.SanitizeText(req.CustomMessage),
		IsActive:      true,
	}
	if req.TTLHours > 0 && req.TTLHours <= 24 {
		vibe.ExpiresAt = now.Add(time.Duration(req.TTLHours) * time.Hour)
	}
	vibe.EnsureExpiry(now)

	if err := h.db.WithContext(ctx).Create(&vibe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not set vibe"})
		return
	}

	respondMessage(c, http.StatusCreated, "Vibe set ✨", gin.H{
		"vibe":    vibe,
		"display": vibe.DisplayMessage(),
	})
}

// ListVibes handles GET /vibes. Active unexpired statuses only.
func (h *DropsHandler) ListVibes(c *gin.Context) {
	now := time.Now()

	var vibes []models.VibeStatus
	err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ? AND expires_at > ?", true, now).
		Order("created_at desc").
		Limit(100).
		Find(&vibes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load vibes"})
		return
	}

	out := make([]gin.H, 0, len(vibes))
	for i := range vibes {
		v := &vibes[i]
		out = append(out, gin.H{
			"vibe":             v,
			"display":          v.DisplayMessage(),
			"secondsRemaining": int(v.TimeRemaining(now).Seconds()),
		})
	}

	respondOK(c, gin.H{"vibes": out, "count": len(out)})
}

// ClearVibe handles DELETE /vibes.
func (h *DropsHandler) ClearVibe(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	h.db.WithContext(c.Request.Context()).Model(&models.VibeStatus{}).
		Where("user_id = ? AND is_active = ?", identity.ID, true).
		Update("is_active", false)

	respondMessage(c, http.StatusOK, "Vibe cleared", nil)
}

type createCapsuleRequest struct {
	ReceiverID string    `json:"receiverId"` // empty for a note to self
	Content    string    `json:"content"`
	MediaURL   string    `json:"mediaUrl"`
	SendAt     time.Time `json:"sendAt"`
}

// CreateCapsule handles POST /capsules.
func (h *DropsHandler) CreateCapsule(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req createCapsuleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		badRequest(c, "capsule content is required")
		return
	}
	if !req.SendAt.After(time.Now()) {
		badRequest(c, "sendAt must be in the future")
		return
	}

	capsule := models.TimeCapsule{
		ID:         uuid.NewString(),
		SenderID:   identity.ID,
		ReceiverID: req.ReceiverID,
		Content:    utils.SanitizeText(req.Content),
		MediaURL:   req.MediaURL,
		SendAt:     req.SendAt,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&capsule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create capsule"})
		return
	}

	respondMessage(c, http.StatusCreated, "Time capsule sealed ⏳", gin.H{"capsule": capsule})
}

// ListCapsules handles GET /capsules. Capsules the caller sent, plus
// capsules addressed to them that have reached their delivery time.
// Due capsules are marked sent on first read.
func (h *DropsHandler) ListCapsules(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	ctx := c.Request.Context()
	now := time.Now()

	var sent []models.TimeCapsule
	h.db.WithContext(ctx).
		Where("sender_id = ?", identity.ID).
		Order("send_at asc").
		Find(&sent)

	var received []models.TimeCapsule
	h.db.WithContext(ctx).
		Where("(receiver_id = ? OR (receiver_id = '' AND sender_id = ?)) AND send_at <= ?",
			identity.ID, identity.ID, now).
		Order("send_at desc").
		Find(&received)

	delivered := make([]models.TimeCapsule, 0, len(received))
	for i := range received {
		tc := &received[i]
		if tc.ReadyToSend(now) {
			tc.MarkSent(now)
			h.db.WithContext(ctx).Model(tc).
				Updates(map[string]interface{}{"is_sent": true, "sent_at": tc.SentAt})
		}
		delivered = append(delivered, *tc)
	}

	pending := make([]gin.H, 0, len(sent))
	for i := range sent {
		tc := &sent[i]
		if !tc.IsFutureMessage(now) {
			continue
		}
		pending = append(pending, gin.H{
			"capsule":          tc,
			"secondsUntilSend": int(tc.TimeUntilSend(now).Seconds()),
		})
	}

	respondOK(c, gin.H{"delivered": delivered, "pending": pending})
}

// DeleteCapsule handles DELETE /capsules/:capsuleId. Only unsent
// capsules can be withdrawn by their sender.
func (h *DropsHandler) DeleteCapsule(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var capsule models.TimeCapsule
	err := h.db.WithContext(c.Request.Context()).
		First(&capsule, "id = ? AND sender_id = ?", c.Param("capsuleId"), identity.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "capsule not found")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load capsule"})
		return
	}
	if capsule.IsSent {
		badRequest(c, "delivered capsules cannot be withdrawn")
		return
	}

	h.db.WithContext(c.Request.Context()).Delete(&capsule)
	respondMessage(c, http.StatusOK, "Capsule withdrawn", nil)
}
