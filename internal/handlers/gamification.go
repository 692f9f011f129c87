package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"
)

// GamificationHandler serves badges, rizz scores and login streaks.
type GamificationHandler struct {
	db *gorm.DB
}

func NewGamificationHandler(db *gorm.DB) *GamificationHandler {
	return &GamificationHandler{db: db}
}

// ListBadges handles GET /badges.
func (h *GamificationHandler) ListBadges(c *gin.Context) {
	var badges []models.Badge
	if err := h.db.WithContext(c.Request.Context()).Order("name asc").Find(&badges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load badges"})
		return
	}

	out := make([]gin.H, 0, len(badges))
	for i := range badges {
		b := &badges[i]
		out = append(out, gin.H{"badge": b, "rarityColor": b.RarityColor()})
	}
	respondOK(c, gin.H{"badges": out})
}

// MyBadges handles GET /badges/me.
func (h *GamificationHandler) MyBadges(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var earned []models.UserBadge
	err := h.db.WithContext(c.Request.Context()).
		Preload("Badge").
		Where("user_id = ?", identity.ID).
		Order("earned_at desc").
		Find(&earned).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load badges"})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(earned))
	for i := range earned {
		ub := &earned[i]
		entry := gin.H{
			"badge":           ub.Badge,
			"earnedAt":        ub.EarnedAt,
			"daysSinceEarned": ub.DaysSinceEarned(now),
		}
		if ub.Badge != nil {
			entry["rarityColor"] = ub.Badge.RarityColor()
		}
		out = append(out, entry)
	}
	respondOK(c, gin.H{"badges": out, "count": len(out)})
}

// MyRizz handles GET /rizz/me. The score is refreshed from its
// components on every read.
func (h *GamificationHandler) MyRizz(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	ctx := c.Request.Context()
	now := time.Now()

	rizz, err := h.loadOrCreateRizz(ctx, identity.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load rizz score"})
		return
	}

	var streak models.LoginStreak
	if err := h.db.WithContext(ctx).Where("user_id = ?", identity.ID).First(&streak).Error; err == nil {
		rizz.LoginStreakBonus = streak.StreakBonus() / 10
	}

	rizz.Recalculate(now)
	h.db.WithContext(ctx).Save(rizz)

	respondOK(c, gin.H{
		"rizz":  rizz,
		"level": rizz.Level(),
	})
}

// MyStreak handles GET /streaks/me and applies today's login to the
// gamification streak record.
func (h *GamificationHandler) MyStreak(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	ctx := c.Request.Context()
	now := time.Now()

	var streak models.LoginStreak
	err := h.db.WithContext(ctx).Where("user_id = ?", identity.ID).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		streak = models.LoginStreak{ID: uuid.NewString(), UserID: identity.ID}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load streak"})
		return
	}

	if streak.RecordLogin(now) {
		if err := h.db.WithContext(ctx).Save(&streak).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update streak"})
			return
		}
	}

	respondOK(c, gin.H{
		"streak":                 streak,
		"active":                 streak.Active(now),
		"streakBonus":            streak.StreakBonus(),
		"nextMilestone":          streak.NextMilestone(),
		"daysUntilNextMilestone": streak.DaysUntilNextMilestone(),
	})
}

// Leaderboard handles GET /rizz/leaderboard, the weekly campus top 20.
func (h *GamificationHandler) Leaderboard(c *gin.Context) {
	var scores []models.RizzScore
	err := h.db.WithContext(c.Request.Context()).
		Order("total_score desc").
		Limit(20).
		Find(&scores).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not load leaderboard"})
		return
	}

	out := make([]gin.H, 0, len(scores))
	for i := range scores {
		r := &scores[i]
		out = append(out, gin.H{
			"rank":   i + 1,
			"userId": r.UserID,
			"score":  r.TotalScore,
			"level":  r.Level(),
		})
	}
	respondOK(c, gin.H{"leaderboard": out})
}

func (h *GamificationHandler) loadOrCreateRizz(ctx context.Context, userID string) (*models.RizzScore, error) {
	var rizz models.RizzScore
	err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&rizz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rizz = models.RizzScore{ID: uuid.NewString(), UserID: userID}
		if err := h.db.WithContext(ctx).Create(&rizz).Error; err != nil {
			return nil, err
		}
		return &rizz, nil
	}
	if err != nil {
		return nil, err
	}
	return &rizz, nil
}
