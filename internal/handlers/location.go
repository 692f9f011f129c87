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

type LocationHandler struct {
	db *gorm.DB
}

func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{db: db}
}

type updateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  float64  `json:"accuracy"`
}

// UpdateLocation handles PUT /location. One row per user, created on
// first report.
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Latitude == nil || req.Longitude == nil {
		badRequest(c, "latitude and longitude are required")
		return
	}
	if !models.ValidCoordinates(*req.Latitude, *req.Longitude) {
		badRequest(c, "coordinates out of range")
		return
	}

	ctx := c.Request.Context()
	var loc models.Location
	err := h.db.WithContext(ctx).Where("user_id = ?", identity.ID).First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		loc = models.Location{ID: uuid.NewString(), UserID: identity.ID}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update location"})
		return
	}

	loc.UpdateCoordinates(*req.Latitude, *req.Longitude, req.Accuracy, time.Now())
	if err := h.db.WithContext(ctx).Save(&loc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update location"})
		return
	}

	respondOK(c, gin.H{"location": loc})
}

// GetMyLocation handles GET /location.
func (h *LocationHandler) GetMyLocation(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var loc models.Location
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", identity.ID).First(&loc).Error
	if err != nil {
		notFound(c, "no location on record")
		return
	}

	respondOK(c, gin.H{
		"location": loc,
		"recent":   loc.Recent(time.Now(), models.DefaultLocationFreshness),
	})
}

type ghostModeRequest struct {
	Enabled *bool `json:"enabled"`
}

// SetGhostMode handles POST /location/ghost. Ghost mode keeps the
// position updated but hidden from discovery.
func (h *LocationHandler) SetGhostMode(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req ghostModeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		badRequest(c, "enabled is required")
		return
	}

	ctx := c.Request.Context()
	var loc models.Location
	err := h.db.WithContext(ctx).Where("user_id = ?", identity.ID).First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		loc = models.Location{ID: uuid.NewString(), UserID: identity.ID}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update ghost mode"})
		return
	}

	loc.IsGhostMode = *req.Enabled
	if err := h.db.WithContext(ctx).Save(&loc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update ghost mode"})
		return
	}

	respondOK(c, gin.H{"location": loc})
}
