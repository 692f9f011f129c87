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

type ChallengeHandler struct {
	db *gorm.DB
}

func NewChallengeHandler(db *gorm.DB) *ChallengeHandler {
	return &ChallengeHandler{db: db}
}

type createChallengeRequest struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ChallengeDate      string    `json:"challengeDate"` // YYYY-MM-DD
	SubmissionDeadline time.Time `json:"submissionDeadline"`
	VotingDeadline     time.Time `json:"votingDeadline"`
}

// CreateChallenge handles POST /challenges. Moderator only; the gate
// runs in middleware. One challenge per calendar day.
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		badRequest(c, "title is required")
		return
	}

	day, err := time.Parse("2006-01-02", req.ChallengeDate)
	if err != nil {
		badRequest(c, "challengeDate must be YYYY-MM-DD")
		return
	}
	if req.SubmissionDeadline.IsZero() || req.VotingDeadline.IsZero() ||
		!req.SubmissionDeadline.Before(req.VotingDeadline) {
		badRequest(c, "submissionDeadline must come before votingDeadline")
		return
	}

	challenge := models.PhotoChallenge{
		ID:                 uuid.NewString(),
		Title:              utils.SanitizeText(req.Title),
		Description:        utils.SanitizeText(req.Description),
		ChallengeDate:      day,
		SubmissionDeadline: req.SubmissionDeadline,
		VotingDeadline:     req.VotingDeadline,
		Status:             models.ChallengeStatusUpcoming,
	}
	challenge.RefreshStatus(time.Now())

	if err := h.db.WithContext(c.Request.Context()).Create(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "a challenge already exists for that day"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create challenge"})
		return
	}

	respondMessage(c, http.StatusCreated, "Challenge created", gin.H{"challenge": challenge})
}

// ListChallenges handles GET /challenges. Statuses are rolled forward
// on read and persisted when they change.
func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	ctx := c.Request.Context()

	var challenges []models.PhotoChallenge
	err := h.db.WithContext(ctx).
		Order("challenge_date desc").
		Limit(30).
		Find(&challenges).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load challenges"})
		return
	}

	now := time.Now()
	for i := range challenges {
		ch := &challenges[i]
		before := ch.Status
		ch.RefreshStatus(now)
		if ch.Status != before {
			h.db.WithContext(ctx).Model(ch).Update("status", ch.Status)
		}
	}

	respondOK(c, gin.H{"challenges": challenges, "count": len(challenges)})
}

// GetTodayChallenge handles GET /challenges/today.
func (h *ChallengeHandler) GetTodayChallenge(c *gin.Context) {
	now := time.Now()
	day := now.Format("2006-01-02")

	var challenge models.PhotoChallenge
	err := h.db.WithContext(c.Request.Context()).
		Where("challenge_date = ?", day).
		First(&challenge).Error
	if err != nil {
		notFound(c, "no challenge today")
		return
	}

	before := challenge.Status
	challenge.RefreshStatus(now)
	if challenge.Status != before {
		h.db.WithContext(c.Request.Context()).Model(&challenge).Update("status", challenge.Status)
	}

	respondOK(c, gin.H{
		"challenge":                   challenge,
		"secondsUntilSubmissionClose": int(challenge.TimeUntilSubmissionDeadline(now) / time.Second),
		"secondsUntilVotingClose":     int(challenge.TimeUntilVotingDeadline(now) / time.Second),
	})
}

type submitPhotoRequest struct {
	PhotoURL string `json:"photoUrl"`
	Caption  string `json:"caption"`
}

// SubmitPhoto handles POST /challenges/:challengeId/submissions. One
// entry per user per challenge, only while submissions are open.
func (h *ChallengeHandler) SubmitPhoto(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req submitPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PhotoURL == "" {
		badRequest(c, "photoUrl is required")
		return
	}

	ctx := c.Request.Context()
	var challenge models.PhotoChallenge
	if err := h.db.WithContext(ctx).First(&challenge, "id = ?", c.Param("challengeId")).Error; err != nil {
		notFound(c, "challenge not found")
		return
	}

	now := time.Now()
	challenge.RefreshStatus(now)
	if !challenge.CanSubmit(now) {
		badRequest(c, "submissions are closed for this challenge")
		return
	}

	var existing models.ChallengeSubmission
	err := h.db.WithContext(ctx).
		Where("challenge_id = ? AND user_id = ?", challenge.ID, identity.ID).
		First(&existing).Error
	if err == nil {
		badRequest(c, "you already entered this challenge")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not save submission"})
		return
	}

	submission := models.ChallengeSubmission{
		ID:          uuid.NewString(),
		ChallengeID: challenge.ID,
		UserID:      identity.ID,
		PhotoURL:    req.PhotoURL,
		Caption:     utils.SanitizeText(req.Caption),
		SubmittedAt: now,
	}
	if err := h.db.WithContext(ctx).Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not save submission"})
		return
	}

	h.db.WithContext(ctx).Model(&challenge).
		Update("total_submissions", gorm.Expr("total_submissions + 1"))

	respondMessage(c, http.StatusCreated, "Photo submitted", gin.H{"submission": submission})
}

// ListSubmissions handles GET /challenges/:challengeId/submissions,
// highest vote count first. A completed challenge gets its winners
// finalized on first read.
func (h *ChallengeHandler) ListSubmissions(c *gin.Context) {
	ctx := c.Request.Context()

	var challenge models.PhotoChallenge
	if err := h.db.WithContext(ctx).First(&challenge, "id = ?", c.Param("challengeId")).Error; err != nil {
		notFound(c, "challenge not found")
		return
	}

	now := time.Now()
	before := challenge.Status
	challenge.RefreshStatus(now)
	if challenge.Status != before {
		h.db.WithContext(ctx).Model(&challenge).Update("status", challenge.Status)
	}

	var submissions []models.ChallengeSubmission
	err := h.db.WithContext(ctx).
		Where("challenge_id = ?", challenge.ID).
		Order("vote_count desc, submitted_at asc").
		Find(&submissions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load submissions"})
		return
	}

	if challenge.Status == models.ChallengeStatusCompleted {
		h.finalizeWinners(c, submissions)
	}

	respondOK(c, gin.H{
		"challenge":   challenge,
		"submissions": submissions,
		"count":       len(submissions),
	})
}

// finalizeWinners marks the top three entries once voting has closed.
// Idempotent: an already-finalized list is left alone.
func (h *ChallengeHandler) finalizeWinners(c *gin.Context, submissions []models.ChallengeSubmission) {
	for i := range submissions {
		if submissions[i].IsWinner {
			return
		}
	}
	for i := range submissions {
		if i >= 3 || submissions[i].VoteCount == 0 {
			break
		}
		submissions[i].MarkWinner(i + 1)
		h.db.WithContext(c.Request.Context()).Save(&submissions[i])
	}
}

// VoteSubmission handles POST /challenges/:challengeId/submissions/:submissionId/vote.
// Voting again retracts the vote.
func (h *ChallengeHandler) VoteSubmission(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	ctx := c.Request.Context()

	var challenge models.PhotoChallenge
	if err := h.db.WithContext(ctx).First(&challenge, "id = ?", c.Param("challengeId")).Error; err != nil {
		notFound(c, "challenge not found")
		return
	}

	now := time.Now()
	challenge.RefreshStatus(now)
	if !challenge.CanVote(now) {
		badRequest(c, "voting is not open for this challenge")
		return
	}

	var submission models.ChallengeSubmission
	err := h.db.WithContext(ctx).
		First(&submission, "id = ? AND challenge_id = ?", c.Param("submissionId"), challenge.ID).Error
	if err != nil {
		notFound(c, "submission not found")
		return
	}
	if submission.UserID == identity.ID {
		badRequest(c, "you cannot vote for your own photo")
		return
	}

	var vote models.ChallengeVote
	err = h.db.WithContext(ctx).
		Where("submission_id = ? AND user_id = ?", submission.ID, identity.ID).
		First(&vote).Error

	switch {
	case err == nil:
		// retract
		if err := h.db.WithContext(ctx).Delete(&vote).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not record vote"})
			return
		}
		submission.RemoveVote()
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote = models.ChallengeVote{
			ID:           uuid.NewString(),
			SubmissionID: submission.ID,
			UserID:       identity.ID,
			VotedAt:      now,
		}
		if err := h.db.WithContext(ctx).Create(&vote).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not record vote"})
			return
		}
		submission.AddVote()
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not record vote"})
		return
	}

	if err := h.db.WithContext(ctx).Save(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not record vote"})
		return
	}

	respondOK(c, gin.H{"submission": submission})
}
