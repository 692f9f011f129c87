package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"
	"bowenhooks/internal/utils"
)

type ConfessionHandler struct {
	db *gorm.DB
}

func NewConfessionHandler(db *gorm.DB) *ConfessionHandler {
	return &ConfessionHandler{db: db}
}

type createConfessionRequest struct {
	Content     string `json:"content"`
	LocationTag string `json:"locationTag"`
}

// CreateConfession handles POST /confessions. Verified users only; the
// gate runs in middleware. Authorship is stored but never exposed.
func (h *ConfessionHandler) CreateConfession(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req createConfessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		badRequest(c, "confession content is required")
		return
	}
	if len(req.Content) > 2000 {
		badRequest(c, "confession is too long (max 2000 characters)")
		return
	}

	confession := models.Confession{
		ID:          uuid.NewString(),
		UserID:      identity.ID,
		Content:     utils.SanitizeText(req.Content),
		LocationTag: utils.SanitizeText(req.LocationTag),
		IsApproved:  true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&confession).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not post confession"})
		return
	}

	respondMessage(c, http.StatusCreated, "Confession posted anonymously 🤫", gin.H{"confession": confession})
}

// ListConfessions handles GET /confessions. ?sort=trending orders by
// engagement, anything else by recency.
func (h *ConfessionHandler) ListConfessions(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).
		Where("is_approved = ?", true).
		Limit(50)

	if c.Query("sort") == "trending" {
		query = query.Order("(upvotes * 2 + comment_count * 3 + view_count - downvotes) desc")
	} else {
		query = query.Order("created_at desc")
	}
	if tag := c.Query("location"); tag != "" {
		query = query.Where("location_tag = ?", tag)
	}

	var confessions []models.Confession
	if err := query.Find(&confessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load confessions"})
		return
	}

	respondOK(c, gin.H{"confessions": confessions, "count": len(confessions)})
}

// GetConfession handles GET /confessions/:confessionId and counts the view.
func (h *ConfessionHandler) GetConfession(c *gin.Context) {
	ctx := c.Request.Context()

	var confession models.Confession
	err := h.db.WithContext(ctx).
		First(&confession, "id = ? AND is_approved = ?", c.Param("confessionId"), true).Error
	if err != nil {
		notFound(c, "confession not found")
		return
	}

	confession.ViewCount++
	h.db.WithContext(ctx).Model(&confession).Update("view_count", confession.ViewCount)

	respondOK(c, gin.H{
		"confession": confession,
		"netVotes":   confession.NetVotes(),
		"popularity": confession.PopularityScore(),
	})
}

type voteRequest struct {
	VoteType string `json:"voteType"` // upvote, downvote, or empty to retract
}

// VoteConfession handles POST /confessions/:confessionId/vote. A repeat
// of the same vote retracts it; a different vote replaces it.
func (h *ConfessionHandler) VoteConfession(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	next := models.VoteType(req.VoteType)
	if next != models.VoteTypeUpvote && next != models.VoteTypeDownvote {
		badRequest(c, "voteType must be upvote or downvote")
		return
	}

	ctx := c.Request.Context()
	var confession models.Confession
	if err := h.db.WithContext(ctx).First(&confession, "id = ?", c.Param("confessionId")).Error; err != nil {
		notFound(c, "confession not found")
		return
	}

	var previous models.VoteType
	var vote models.ConfessionVote
	err := h.db.WithContext(ctx).
		Where("confession_id = ? AND user_id = ?", confession.ID, identity.ID).
		First(&vote).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote = models.ConfessionVote{
			ID:           uuid.NewString(),
			ConfessionID: confession.ID,
			UserID:       identity.ID,
			VoteType:     next,
		}
		if err := h.db.WithContext(ctx).Create(&vote).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not record vote"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not record vote"})
		return
	case vote.VoteType == next:
		// same vote again retracts it
		previous = vote.VoteType
		next = ""
		h.db.WithContext(ctx).Delete(&vote)
	default:
		previous = vote.VoteType
		vote.VoteType = next
		h.db.WithContext(ctx).Save(&vote)
	}

	confession.ApplyVote(previous, next)
	h.db.WithContext(ctx).Model(&confession).
		Updates(map[string]interface{}{"upvotes": confession.Upvotes, "downvotes": confession.Downvotes})

	respondOK(c, gin.H{
		"upvotes":   confession.Upvotes,
		"downvotes": confession.Downvotes,
		"netVotes":  confession.NetVotes(),
		"yourVote":  next,
	})
}

// DeleteConfession handles DELETE /confessions/:confessionId. Authors
// can delete their own; moderators can delete any.
func (h *ConfessionHandler) DeleteConfession(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var confession models.Confession
	if err := h.db.WithContext(c.Request.Context()).First(&confession, "id = ?", c.Param("confessionId")).Error; err != nil {
		notFound(c, "confession not found")
		return
	}

	isModerator := identity.Role == models.RoleModerator || identity.Role == models.RoleAdmin
	if confession.UserID != identity.ID && !isModerator {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "you can only delete your own confessions"})
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&confession).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not delete confession"})
		return
	}

	respondMessage(c, http.StatusOK, "Confession deleted", nil)
}
