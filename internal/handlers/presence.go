package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bowenhooks/internal/cache"
	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"

	"gorm.io/gorm"
)

// PresenceHandler reads online status from the cache and lists hot
// zones on campus.
type PresenceHandler struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewPresenceHandler(db *gorm.DB, c cache.Cache) *PresenceHandler {
	return &PresenceHandler{db: db, cache: c}
}

type presenceRecord struct {
	Status   string `json:"status"`
	LastSeen string `json:"lastSeen"`
}

// GetPresence handles GET /presence/:userId. A cache miss means the
// presence record expired; the user is offline.
func (h *PresenceHandler) GetPresence(c *gin.Context) {
	userID := c.Param("userId")

	raw, err := h.cache.Get(c.Request.Context(), cache.PresenceKey(userID))
	if err == cache.ErrCacheMiss {
		respondOK(c, gin.H{"userId": userID, "status": "offline"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not check presence"})
		return
	}

	var record presenceRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		respondOK(c, gin.H{"userId": userID, "status": "offline"})
		return
	}

	respondOK(c, gin.H{
		"userId":   userID,
		"status":   record.Status,
		"lastSeen": record.LastSeen,
	})
}

// ListHotZones handles GET /hotzones.
func (h *PresenceHandler) ListHotZones(c *gin.Context) {
	var zones []models.HotZone
	err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("current_user_count desc").
		Find(&zones).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load hot zones"})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(zones))
	for i := range zones {
		z := &zones[i]
		out = append(out, gin.H{
			"zone":       z,
			"peakNow":    z.PeakNow(now),
			"popularity": z.PopularityLevel(),
		})
	}
	respondOK(c, gin.H{"hotZones": out})
}

// CheckIn handles POST /hotzones/:zoneId/checkin and bumps the live
// user count.
func (h *PresenceHandler) CheckIn(c *gin.Context) {
	_, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authorized"})
		return
	}

	ctx := c.Request.Context()
	var zone models.HotZone
	if err := h.db.WithContext(ctx).First(&zone, "id = ? AND is_active = ?", c.Param("zoneId"), true).Error; err != nil {
		notFound(c, "hot zone not found")
		return
	}

	zone.CurrentUserCount++
	h.db.WithContext(ctx).Model(&zone).Update("current_user_count", zone.CurrentUserCount)

	respondOK(c, gin.H{
		"zone":       zone.Name,
		"userCount":  zone.CurrentUserCount,
		"popularity": zone.PopularityLevel(),
	})
}
