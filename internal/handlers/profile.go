package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"
	"bowenhooks/internal/repository"
	"bowenhooks/internal/utils"
)

type ProfileHandler struct {
	db       *gorm.DB
	profiles repository.Profiles
}

func NewProfileHandler(db *gorm.DB, profiles repository.Profiles) *ProfileHandler {
	return &ProfileHandler{db: db, profiles: profiles}
}

// GetMyProfile handles GET /profiles/me.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	profile, err := h.profiles.GetByUserID(c.Request.Context(), identity.ID)
	if err != nil {
		notFound(c, "profile not found")
		return
	}

	var photos []models.Photo
	h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", identity.ID).
		Order("order_index asc").
		Find(&photos)

	respondOK(c, gin.H{"profile": profile, "photos": photos})
}

type updateProfileRequest struct {
	DisplayName *string  `json:"displayName"`
	Bio         *string  `json:"bio"`
	Gender      *string  `json:"gender"`
	LookingFor  *string  `json:"lookingFor"`
	Department  *string  `json:"department"`
	YearOfStudy *int     `json:"yearOfStudy"`
	Interests   []string `json:"interests"`
	Hobbies     []string `json:"hobbies"`
	Languages   []string `json:"languages"`
	HeightCM    *int     `json:"height"`
	ShowAge     *bool    `json:"showAge"`
	IsAnonymous *bool    `json:"isAnonymous"`
}

// UpdateMyProfile handles PUT /profiles/me. Only provided fields change;
// the completion percentage is recomputed on save.
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	profile, err := h.profiles.GetByUserID(c.Request.Context(), identity.ID)
	if err != nil {
		notFound(c, "profile not found")
		return
	}

	if req.DisplayName != nil {
		profile.DisplayName = utils.SanitizeText(*req.DisplayName)
	}
	if req.Bio != nil {
		profile.Bio = utils.SanitizeText(*req.Bio)
	}
	if req.Gender != nil {
		profile.Gender = models.Gender(*req.Gender)
	}
	if req.LookingFor != nil {
		profile.LookingFor = models.LookingFor(*req.LookingFor)
	}
	if req.Department != nil {
		profile.Department = *req.Department
	}
	if req.YearOfStudy != nil {
		profile.YearOfStudy = *req.YearOfStudy
	}
	if req.Interests != nil {
		profile.Interests = req.Interests
	}
	if req.Hobbies != nil {
		profile.Hobbies = req.Hobbies
	}
	if req.Languages != nil {
		profile.Languages = req.Languages
	}
	if req.HeightCM != nil {
		profile.HeightCM = *req.HeightCM
	}
	if req.ShowAge != nil {
		profile.ShowAge = *req.ShowAge
	}
	if req.IsAnonymous != nil {
		profile.IsAnonymous = *req.IsAnonymous
		if *req.IsAnonymous {
			until := time.Now().Add(24 * time.Hour)
			profile.AnonymousUntil = &until
		} else {
			profile.AnonymousUntil = nil
		}
	}

	if err := h.profiles.Update(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update profile"})
		return
	}

	respondMessage(c, http.StatusOK, "Profile updated", gin.H{"profile": profile})
}

// GetProfile handles GET /profiles/:userId. Anonymous profiles are
// masked and their photos blurred.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Param("userId")

	profile, err := h.profiles.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		notFound(c, "profile not found")
		return
	}

	now := time.Now()
	info := profile.GetDisplayInfo(now)

	var photos []models.Photo
	h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("order_index asc").
		Find(&photos)

	photoURLs := make([]string, 0, len(photos))
	for i := range photos {
		if info.PhotosBlurred {
			photos[i].BlurLevel = 100
		}
		photoURLs = append(photoURLs, photos[i].BlurredURL())
	}

	respondOK(c, gin.H{
		"userId":  userID,
		"profile": info,
		"photos":  photoURLs,
	})
}

type addPhotoRequest struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	IsPrimary    bool   `json:"isPrimary"`
	Caption      string `json:"caption"`
}

// AddPhoto handles POST /profiles/me/photos.
func (h *ProfileHandler) AddPhoto(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req addPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		badRequest(c, "photo url is required")
		return
	}

	var count int64
	h.db.WithContext(c.Request.Context()).
		Model(&models.Photo{}).
		Where("user_id = ?", identity.ID).
		Count(&count)
	if count >= 6 {
		badRequest(c, "maximum of 6 photos allowed")
		return
	}

	photo := models.Photo{
		ID:           uuid.NewString(),
		UserID:       identity.ID,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		IsPrimary:    req.IsPrimary,
		OrderIndex:   int(count),
		Caption:      utils.SanitizeText(req.Caption),
	}
	if req.IsPrimary {
		h.db.WithContext(c.Request.Context()).
			Model(&models.Photo{}).
			Where("user_id = ?", identity.ID).
			Update("is_primary", false)
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not save photo"})
		return
	}

	respondMessage(c, http.StatusCreated, "Photo added", gin.H{"photo": photo})
}

// DeletePhoto handles DELETE /profiles/me/photos/:photoId.
func (h *ProfileHandler) DeletePhoto(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	photoID := c.Param("photoId")

	result := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", photoID, identity.ID).
		Delete(&models.Photo{})
	if result.RowsAffected == 0 {
		notFound(c, "photo not found")
		return
	}

	respondMessage(c, http.StatusOK, "Photo removed", nil)
}
