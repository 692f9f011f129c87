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

type ModerationHandler struct {
	db *gorm.DB
}

func NewModerationHandler(db *gorm.DB) *ModerationHandler {
	return &ModerationHandler{db: db}
}

type blockRequest struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

// BlockUser handles POST /blocks.
func (h *ModerationHandler) BlockUser(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		badRequest(c, "userId is required")
		return
	}
	if req.UserID == identity.ID {
		badRequest(c, "you cannot block yourself")
		return
	}

	ctx := c.Request.Context()
	var existing models.Block
	err := h.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", identity.ID, req.UserID).
		First(&existing).Error
	if err == nil {
		badRequest(c, "user is already blocked")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not block user"})
		return
	}

	block := models.Block{
		ID:        uuid.NewString(),
		BlockerID: identity.ID,
		BlockedID: req.UserID,
		Reason:    utils.SanitizeText(req.Reason),
	}
	if err := h.db.WithContext(ctx).Create(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not block user"})
		return
	}

	// an active match between the pair ends with the block
	h.db.WithContext(ctx).Model(&models.Match{}).
		Where("((user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)) AND status = ?",
			identity.ID, req.UserID, req.UserID, identity.ID, models.MatchStatusMatched).
		Update("status", models.MatchStatusUnmatched)

	respondMessage(c, http.StatusCreated, "User blocked", nil)
}

// UnblockUser handles DELETE /blocks/:userId.
func (h *ModerationHandler) UnblockUser(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	result := h.db.WithContext(c.Request.Context()).
		Where("blocker_id = ? AND blocked_id = ?", identity.ID, c.Param("userId")).
		Delete(&models.Block{})
	if result.RowsAffected == 0 {
		notFound(c, "block not found")
		return
	}

	respondMessage(c, http.StatusOK, "User unblocked", nil)
}

// ListBlocks handles GET /blocks.
func (h *ModerationHandler) ListBlocks(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var blocks []models.Block
	err := h.db.WithContext(c.Request.Context()).
		Where("blocker_id = ?", identity.ID).
		Order("created_at desc").
		Find(&blocks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load blocks"})
		return
	}

	respondOK(c, gin.H{"blocks": blocks, "count": len(blocks)})
}

type reportRequest struct {
	ReportedUserID string `json:"reportedUserId"`
	ContentType    string `json:"contentType"`
	ContentID      string `json:"contentId"`
	Reason         string `json:"reason"`
	Description    string `json:"description"`
}

// CreateReport handles POST /reports.
func (h *ModerationHandler) CreateReport(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Reason == "" || req.ContentType == "" {
		badRequest(c, "reason and contentType are required")
		return
	}

	report := models.Report{
		ID:                  uuid.NewString(),
		ReporterID:          identity.ID,
		ReportedUserID:      req.ReportedUserID,
		ReportedContentType: models.ReportedContentType(req.ContentType),
		ReportedContentID:   req.ContentID,
		Reason:              models.ReportReason(req.Reason),
		Description:         utils.SanitizeText(req.Description),
		Status:              models.ReportStatusPending,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not submit report"})
		return
	}

	respondMessage(c, http.StatusCreated, "Report submitted. Our moderators will review it.", gin.H{
		"reportId": report.ID,
	})
}

// ListReports handles GET /reports. Moderator only; the gate runs in
// middleware. ?status filters, default pending.
func (h *ModerationHandler) ListReports(c *gin.Context) {
	status := c.DefaultQuery("status", string(models.ReportStatusPending))

	var reports []models.Report
	err := h.db.WithContext(c.Request.Context()).
		Where("status = ?", status).
		Order("created_at asc").
		Limit(100).
		Find(&reports).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load reports"})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		out = append(out, gin.H{"report": r, "daysOpen": r.DaysOpen(now)})
	}
	respondOK(c, gin.H{"reports": out, "count": len(out)})
}

type reviewReportRequest struct {
	Action      string `json:"action"` // review, resolve, dismiss
	ActionTaken string `json:"actionTaken"`
}

// ReviewReport handles POST /reports/:reportId/review. Moderator only.
func (h *ModerationHandler) ReviewReport(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req reviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Action == "" {
		badRequest(c, "action is required")
		return
	}

	ctx := c.Request.Context()
	var report models.Report
	if err := h.db.WithContext(ctx).First(&report, "id = ?", c.Param("reportId")).Error; err != nil {
		notFound(c, "report not found")
		return
	}

	now := time.Now()
	switch req.Action {
	case "review":
		if !report.Pending() {
			badRequest(c, "only pending reports can move to review")
			return
		}
		report.AssignForReview(identity.ID, now)
	case "resolve":
		report.Resolve(req.ActionTaken, now)
	case "dismiss":
		report.Dismiss(now)
	default:
		badRequest(c, "action must be review, resolve or dismiss")
		return
	}

	if err := h.db.WithContext(ctx).Save(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update report"})
		return
	}

	respondMessage(c, http.StatusOK, "Report updated", gin.H{"report": report})
}
