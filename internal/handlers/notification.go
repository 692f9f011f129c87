package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// ListNotifications handles GET /notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	query := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", identity.ID).
		Order("created_at desc").
		Limit(50)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load notifications"})
		return
	}

	out := make([]gin.H, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		out = append(out, gin.H{"notification": n, "icon": n.Icon()})
	}
	respondOK(c, gin.H{"notifications": out, "count": len(out)})
}

// MarkNotificationRead handles POST /notifications/:notificationId/read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var notification models.Notification
	err := h.db.WithContext(c.Request.Context()).
		First(&notification, "id = ? AND user_id = ?", c.Param("notificationId"), identity.ID).Error
	if err != nil {
		notFound(c, "notification not found")
		return
	}

	notification.MarkRead(time.Now())
	if err := h.db.WithContext(c.Request.Context()).Save(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update notification"})
		return
	}

	respondOK(c, gin.H{"notification": notification})
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	now := time.Now()
	result := h.db.WithContext(c.Request.Context()).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", identity.ID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})

	respondOK(c, gin.H{"updated": result.RowsAffected})
}
