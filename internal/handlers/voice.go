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

// maxVoiceNoteSecs caps a single recording.
const maxVoiceNoteSecs = 120

type VoiceNoteHandler struct {
	db *gorm.DB
}

func NewVoiceNoteHandler(db *gorm.DB) *VoiceNoteHandler {
	return &VoiceNoteHandler{db: db}
}

type sendVoiceNoteRequest struct {
	AudioURL      string `json:"audioUrl"`
	DurationSecs  int    `json:"durationSecs"`
	FilterType    string `json:"filterType"`
	Transcription string `json:"transcription"`
}

// SendVoiceNote handles POST /matches/:matchId/voice.
func (h *VoiceNoteHandler) SendVoiceNote(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	match, ok := loadMatchFor(c, h.db, c.Param("matchId"), identity.ID)
	if !ok {
		return
	}
	if match.Status != models.MatchStatusMatched {
		badRequest(c, "you can only message an active match")
		return
	}

	var req sendVoiceNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AudioURL == "" {
		badRequest(c, "audioUrl is required")
		return
	}
	if req.DurationSecs <= 0 || req.DurationSecs > maxVoiceNoteSecs {
		badRequest(c, "durationSecs must be between 1 and 120")
		return
	}

	filter := models.VoiceFilter(req.FilterType)
	if filter == "" {
		filter = models.VoiceFilterNormal
	}
	if !models.ValidVoiceFilter(filter) {
		badRequest(c, "invalid voice filter")
		return
	}

	note := models.VoiceNote{
		ID:            uuid.NewString(),
		SenderID:      identity.ID,
		ReceiverID:    match.OtherUser(identity.ID),
		MatchID:       match.ID,
		AudioURL:      req.AudioURL,
		DurationSecs:  req.DurationSecs,
		FilterType:    filter,
		Transcription: utils.SanitizeText(req.Transcription),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not send voice note"})
		return
	}

	respondMessage(c, http.StatusCreated, "Voice note sent", gin.H{"voiceNote": note})
}

// ListVoiceNotes handles GET /matches/:matchId/voice.
func (h *VoiceNoteHandler) ListVoiceNotes(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	match, ok := loadMatchFor(c, h.db, c.Param("matchId"), identity.ID)
	if !ok {
		return
	}

	var notes []models.VoiceNote
	err := h.db.WithContext(c.Request.Context()).
		Where("match_id = ?", match.ID).
		Order("created_at asc").
		Find(&notes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load voice notes"})
		return
	}

	out := make([]gin.H, 0, len(notes))
	for i := range notes {
		n := &notes[i]
		out = append(out, gin.H{
			"voiceNote": n,
			"audioUrl":  n.FilteredAudioURL(),
		})
	}
	respondOK(c, gin.H{"voiceNotes": out, "count": len(out)})
}

// MarkVoiceNotePlayed handles POST /voice/:noteId/play. Receiver only.
func (h *VoiceNoteHandler) MarkVoiceNotePlayed(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var note models.VoiceNote
	err := h.db.WithContext(c.Request.Context()).
		First(&note, "id = ?", c.Param("noteId")).Error
	if err != nil {
		notFound(c, "voice note not found")
		return
	}
	if note.ReceiverID != identity.ID {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "only the receiver can mark playback"})
		return
	}

	if !note.IsPlayed {
		note.MarkPlayed(time.Now())
		if err := h.db.WithContext(c.Request.Context()).Save(&note).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update voice note"})
			return
		}
	}

	respondOK(c, gin.H{"voiceNote": note})
}
