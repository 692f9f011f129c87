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

type MatchHandler struct {
	db *gorm.DB
}

func NewMatchHandler(db *gorm.DB) *MatchHandler {
	return &MatchHandler{db: db}
}

type likeRequest struct {
	ToUserID    string `json:"toUserId"`
	LikeType    string `json:"likeType"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// LikeUser handles POST /matches/like. A mutual like creates a match;
// super likes match immediately.
func (h *MatchHandler) LikeUser(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ToUserID == "" {
		badRequest(c, "toUserId is required")
		return
	}
	if req.ToUserID == identity.ID {
		badRequest(c, "you cannot like yourself")
		return
	}

	likeType := models.LikeType(req.LikeType)
	switch likeType {
	case models.LikeTypeLike, models.LikeTypeSuperLike, models.LikeTypePass:
	case "":
		likeType = models.LikeTypeLike
	default:
		badRequest(c, "invalid like type")
		return
	}

	ctx := c.Request.Context()

	var existing models.Like
	err := h.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", identity.ID, req.ToUserID).
		First(&existing).Error
	if err == nil {
		badRequest(c, "you already responded to this user")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not process like"})
		return
	}

	like := models.Like{
		ID:          uuid.NewString(),
		FromUserID:  identity.ID,
		ToUserID:    req.ToUserID,
		LikeType:    likeType,
		IsAnonymous: req.IsAnonymous,
	}
	if err := h.db.WithContext(ctx).Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not save like"})
		return
	}

	if like.IsPass() {
		respondOK(c, gin.H{"like": like, "matched": false})
		return
	}

	// A reciprocal like or a super like produces a match.
	var reciprocal models.Like
	reciprocalErr := h.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND like_type IN ?",
			req.ToUserID, identity.ID,
			[]models.LikeType{models.LikeTypeLike, models.LikeTypeSuperLike}).
		First(&reciprocal).Error

	if reciprocalErr != nil && !like.IsSuperLike() {
		respondOK(c, gin.H{"like": like, "matched": false})
		return
	}

	matchType := models.MatchTypeMutualLike
	if like.IsSuperLike() {
		matchType = models.MatchTypeSuperLike
	}

	match := models.Match{
		ID:        uuid.NewString(),
		User1ID:   identity.ID,
		User2ID:   req.ToUserID,
		MatchType: matchType,
		IsMystery: like.IsAnonymous,
	}
	now := time.Now()
	match.MarkMatched(now)
	if match.IsMystery {
		reveal := now.Add(48 * time.Hour)
		match.RevealAt = &reveal
	}
	if err := h.db.WithContext(ctx).Create(&match).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create match"})
		return
	}

	respondMessage(c, http.StatusCreated, "It's a match! 💘", gin.H{
		"like":    like,
		"matched": true,
		"match":   match,
	})
}

// GetMatches handles GET /matches.
func (h *MatchHandler) GetMatches(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var matches []models.Match
	err := h.db.WithContext(c.Request.Context()).
		Where("(user1_id = ? OR user2_id = ?) AND status = ?",
			identity.ID, identity.ID, models.MatchStatusMatched).
		Order("matched_at desc").
		Find(&matches).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load matches"})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		out = append(out, gin.H{
			"match":    m,
			"otherUser": m.OtherUser(identity.ID),
			"revealed": m.Revealed(now),
		})
	}
	respondOK(c, gin.H{"matches": out, "count": len(out)})
}

// WhoLikedMe handles GET /matches/who-liked-me. Premium only; the
// gate runs in middleware.
func (h *MatchHandler) WhoLikedMe(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var likes []models.Like
	err := h.db.WithContext(c.Request.Context()).
		Where("to_user_id = ? AND like_type IN ?", identity.ID,
			[]models.LikeType{models.LikeTypeLike, models.LikeTypeSuperLike}).
		Order("created_at desc").
		Find(&likes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load likes"})
		return
	}

	out := make([]gin.H, 0, len(likes))
	for i := range likes {
		l := &likes[i]
		entry := gin.H{
			"likeType":  l.LikeType,
			"createdAt": l.CreatedAt,
		}
		if l.IsAnonymous {
			entry["fromUserId"] = ""
			entry["anonymous"] = true
		} else {
			entry["fromUserId"] = l.FromUserID
			entry["anonymous"] = false
		}
		out = append(out, entry)
	}
	respondOK(c, gin.H{"likes": out, "count": len(out)})
}

// Unmatch handles DELETE /matches/:matchId.
func (h *MatchHandler) Unmatch(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	matchID := c.Param("matchId")

	var match models.Match
	err := h.db.WithContext(c.Request.Context()).
		First(&match, "id = ?", matchID).Error
	if err != nil {
		notFound(c, "match not found")
		return
	}
	if !match.Involves(identity.ID) {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "this match does not involve you"})
		return
	}

	match.Status = models.MatchStatusUnmatched
	if err := h.db.WithContext(c.Request.Context()).Save(&match).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not unmatch"})
		return
	}

	respondMessage(c, http.StatusOK, "Unmatched", nil)
}

// loadMatchFor fetches a match and checks the caller is one of the pair.
func loadMatchFor(c *gin.Context, db *gorm.DB, matchID, userID string) (*models.Match, bool) {
	var match models.Match
	err := db.WithContext(c.Request.Context()).First(&match, "id = ?", matchID).Error
	if err != nil {
		notFound(c, "match not found")
		return nil, false
	}
	if !match.Involves(userID) {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "this match does not involve you"})
		return nil, false
	}
	return &match, true
}
