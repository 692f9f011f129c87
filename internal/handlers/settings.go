package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"
)

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// GetSettings handles GET /settings. Missing settings rows are created
// with defaults on first read.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	ctx := c.Request.Context()

	var settings models.Settings
	err := h.db.WithContext(ctx).Where("user_id = ?", identity.ID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = defaultSettings(identity.ID)
		if err := h.db.WithContext(ctx).Create(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load settings"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load settings"})
		return
	}

	respondOK(c, gin.H{
		"settings":  settings,
		"discovery": settings.Discovery(),
	})
}

type updateSettingsRequest struct {
	ShowOnlineStatus       *bool   `json:"showOnlineStatus"`
	ShowLocation           *bool   `json:"showLocation"`
	AllowAnonymousMessages *bool   `json:"allowAnonymousMessages"`
	VisibleTo              *string `json:"visibleTo"`
	PushNotifications      *bool   `json:"pushNotifications"`
	EmailNotifications     *bool   `json:"emailNotifications"`
	MatchNotifications     *bool   `json:"matchNotifications"`
	MessageNotifications   *bool   `json:"messageNotifications"`
	EventNotifications     *bool   `json:"eventNotifications"`
	AgeMin                 *int    `json:"ageMin"`
	AgeMax                 *int    `json:"ageMax"`
	MaxDistance            *int    `json:"maxDistance"`
	ShowMe                 *string `json:"showMe"`
}

// UpdateSettings handles PUT /settings. Only provided fields change;
// the age range and distance are validated after merge.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	var settings models.Settings
	err := h.db.WithContext(ctx).Where("user_id = ?", identity.ID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = defaultSettings(identity.ID)
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load settings"})
		return
	}

	if req.ShowOnlineStatus != nil {
		settings.ShowOnlineStatus = *req.ShowOnlineStatus
	}
	if req.ShowLocation != nil {
		settings.ShowLocation = *req.ShowLocation
	}
	if req.AllowAnonymousMessages != nil {
		settings.AllowAnonymousMessages = *req.AllowAnonymousMessages
	}
	if req.VisibleTo != nil {
		settings.VisibleTo = models.Visibility(*req.VisibleTo)
	}
	if req.PushNotifications != nil {
		settings.PushNotifications = *req.PushNotifications
	}
	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
	}
	if req.MatchNotifications != nil {
		settings.MatchNotifications = *req.MatchNotifications
	}
	if req.MessageNotifications != nil {
		settings.MessageNotifications = *req.MessageNotifications
	}
	if req.EventNotifications != nil {
		settings.EventNotifications = *req.EventNotifications
	}
	if req.AgeMin != nil {
		settings.AgeMin = *req.AgeMin
	}
	if req.AgeMax != nil {
		settings.AgeMax = *req.AgeMax
	}
	if req.MaxDistance != nil {
		settings.MaxDistanceM = *req.MaxDistance
	}
	if req.ShowMe != nil {
		settings.ShowMe = models.ShowMe(*req.ShowMe)
	}

	if !settings.ValidAgeRange() {
		badRequest(c, "age range must start at 18 or above")
		return
	}
	if !settings.ValidDistance() {
		badRequest(c, "distance must be between 1 and 50000 meters")
		return
	}

	if err := h.db.WithContext(ctx).Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not save settings"})
		return
	}

	respondMessage(c, http.StatusOK, "Settings updated", gin.H{"settings": settings})
}

func defaultSettings(userID string) models.Settings {
	return models.Settings{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		ShowOnlineStatus:       true,
		ShowLocation:           true,
		AllowAnonymousMessages: true,
		VisibleTo:              models.VisibilityEveryone,
		PushNotifications:      true,
		EmailNotifications:     true,
		MatchNotifications:     true,
		MessageNotifications:   true,
		EventNotifications:     true,
		AgeMin:                 18,
		AgeMax:                 30,
		MaxDistanceM:           5000,
		ShowMe:                 models.ShowMeEveryone,
	}
}
