package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"
	"bowenhooks/internal/utils"
)

type MessageHandler struct {
	db *gorm.DB
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

type sendMessageRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"messageType"`
	MediaURL    string `json:"mediaUrl"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// SendMessage handles POST /matches/:matchId/messages.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	match, ok := loadMatchFor(c, h.db, c.Param("matchId"), identity.ID)
	if !ok {
		return
	}
	if match.Status != models.MatchStatusMatched {
		badRequest(c, "you can only message active matches")
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Content == "" && req.MediaURL == "") {
		badRequest(c, "message content is required")
		return
	}

	msgType := models.MessageType(req.MessageType)
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	msg := models.Message{
		ID:          uuid.NewString(),
		MatchID:     match.ID,
		SenderID:    identity.ID,
		ReceiverID:  match.OtherUser(identity.ID),
		Content:     utils.SanitizeText(req.Content),
		MessageType: msgType,
		MediaURL:    req.MediaURL,
		IsAnonymous: req.IsAnonymous,
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not send message"})
		return
	}

	if !match.ConversationStarted {
		match.StartConversation()
		h.db.WithContext(ctx).Model(match).Update("conversation_started", true)
	}

	respondMessage(c, http.StatusCreated, "Message sent", gin.H{"message": msg})
}

// GetMessages handles GET /matches/:matchId/messages.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	match, ok := loadMatchFor(c, h.db, c.Param("matchId"), identity.ID)
	if !ok {
		return
	}

	var messages []models.Message
	err := h.db.WithContext(c.Request.Context()).
		Where("match_id = ?", match.ID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load messages"})
		return
	}

	respondOK(c, gin.H{"messages": messages, "count": len(messages)})
}

// MarkMessagesRead handles POST /matches/:matchId/messages/read. Marks
// everything addressed to the caller in this match.
func (h *MessageHandler) MarkMessagesRead(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	match, ok := loadMatchFor(c, h.db, c.Param("matchId"), identity.ID)
	if !ok {
		return
	}

	now := time.Now()
	result := h.db.WithContext(c.Request.Context()).
		Model(&models.Message{}).
		Where("match_id = ? AND receiver_id = ? AND is_read = ?", match.ID, identity.ID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})

	respondOK(c, gin.H{"updated": result.RowsAffected})
}

type sendBombRequest struct {
	Content  string `json:"content"`
	BombType string `json:"bombType"`
	Duration int    `json:"duration"` // seconds, overrides the type default
}

// SendBombMessage handles POST /matches/:matchId/bombs.
func (h *MessageHandler) SendBombMessage(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	match, ok := loadMatchFor(c, h.db, c.Param("matchId"), identity.ID)
	if !ok {
		return
	}
	if match.Status != models.MatchStatusMatched {
		badRequest(c, "you can only message active matches")
		return
	}

	var req sendBombRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		badRequest(c, "message content is required")
		return
	}

	bombType := models.BombType(req.BombType)
	switch bombType {
	case models.BombTypeQuickFuse, models.BombTypeTimeBomb, models.BombTypeSlowBurn:
	case "":
		bombType = models.BombTypeTimeBomb
	default:
		badRequest(c, "invalid bomb type")
		return
	}

	bomb := models.BombMessage{
		ID:              uuid.NewString(),
		MatchID:         match.ID,
		SenderID:        identity.ID,
		ReceiverID:      match.OtherUser(identity.ID),
		Content:         utils.SanitizeText(req.Content),
		BombType:        bombType,
		DurationSeconds: req.Duration,
	}
	bomb.ArmFuse(time.Now())

	if err := h.db.WithContext(c.Request.Context()).Create(&bomb).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not send message"})
		return
	}

	respondMessage(c, http.StatusCreated, "Bomb message sent 💣", gin.H{"message": bomb})
}

// GetBombMessages handles GET /matches/:matchId/bombs. Expired bombs
// are exploded on read and excluded from the response.
func (h *MessageHandler) GetBombMessages(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	match, ok := loadMatchFor(c, h.db, c.Param("matchId"), identity.ID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var bombs []models.BombMessage
	err := h.db.WithContext(ctx).
		Where("match_id = ? AND is_exploded = ?", match.ID, false).
		Order("created_at asc").
		Find(&bombs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load messages"})
		return
	}

	now := time.Now()
	active := make([]gin.H, 0, len(bombs))
	for i := range bombs {
		b := &bombs[i]
		if !b.Active(now) {
			b.Explode()
			h.db.WithContext(ctx).Model(b).Update("is_exploded", true)
			continue
		}
		active = append(active, gin.H{
			"message":          b,
			"secondsRemaining": int(b.TimeRemaining(now).Seconds()),
		})
	}

	respondOK(c, gin.H{"messages": active, "count": len(active)})
}

// MarkBombScreenshot handles POST /bombs/:bombId/screenshot. The
// receiver reports a screenshot; the flag warns the sender.
func (h *MessageHandler) MarkBombScreenshot(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var bomb models.BombMessage
	err := h.db.WithContext(c.Request.Context()).
		First(&bomb, "id = ? AND receiver_id = ?", c.Param("bombId"), identity.ID).Error
	if err != nil {
		notFound(c, "message not found")
		return
	}

	now := time.Now()
	bomb.MarkScreenshot(now)
	if err := h.db.WithContext(c.Request.Context()).Save(&bomb).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update message"})
		return
	}

	respondMessage(c, http.StatusOK, "Screenshot recorded", nil)
}
