package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bowenhooks/internal/auth"
	"bowenhooks/internal/cache"
	"bowenhooks/internal/config"
	"bowenhooks/internal/handlers"
	"bowenhooks/internal/middleware"
	"bowenhooks/internal/models"
	"bowenhooks/internal/repository"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Cache    cache.Cache
	Users    repository.Users
	Profiles repository.Profiles
	Tokens   *auth.TokenService
	Auth     *auth.Service
}

// Register wires every route group onto the engine.
func Register(r *gin.Engine, d Deps) {
	authHandler := handlers.NewAuthHandler(d.Auth, d.Users, d.Profiles, d.Config.RefreshTokenTTL, d.Config.IsProduction())
	profileHandler := handlers.NewProfileHandler(d.DB, d.Profiles)
	matchHandler := handlers.NewMatchHandler(d.DB)
	messageHandler := handlers.NewMessageHandler(d.DB)
	confessionHandler := handlers.NewConfessionHandler(d.DB)
	eventHandler := handlers.NewEventHandler(d.DB)
	dropsHandler := handlers.NewDropsHandler(d.DB)
	gamificationHandler := handlers.NewGamificationHandler(d.DB)
	presenceHandler := handlers.NewPresenceHandler(d.DB, d.Cache)
	settingsHandler := handlers.NewSettingsHandler(d.DB)
	moderationHandler := handlers.NewModerationHandler(d.DB)
	notificationHandler := handlers.NewNotificationHandler(d.DB)
	challengeHandler := handlers.NewChallengeHandler(d.DB)
	sparkHandler := handlers.NewSparkHandler(d.DB)
	voiceHandler := handlers.NewVoiceNoteHandler(d.DB)
	locationHandler := handlers.NewLocationHandler(d.DB)

	requireAuth := middleware.RequireAuth(d.Users, d.Tokens)
	requireVerified := middleware.RequireVerified(d.Users)
	requirePremium := middleware.RequirePremium(d.Users)
	requireModerator := middleware.RequireRoles(models.RoleModerator, models.RoleAdmin)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/verify/:token", authHandler.VerifyEmail)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password/:token", authHandler.ResetPassword)
		authGroup.POST("/logout", requireAuth, authHandler.Logout)
		authGroup.GET("/me", requireAuth, authHandler.GetMe)
	}

	profiles := v1.Group("/profiles", requireAuth)
	{
		profiles.GET("/me", profileHandler.GetMyProfile)
		profiles.PUT("/me", profileHandler.UpdateMyProfile)
		profiles.POST("/me/photos", profileHandler.AddPhoto)
		profiles.DELETE("/me/photos/:photoId", profileHandler.DeletePhoto)
		profiles.GET("/:userId", profileHandler.GetProfile)
	}

	matches := v1.Group("/matches", requireAuth)
	{
		matches.POST("/like", requireVerified, matchHandler.LikeUser)
		matches.GET("", matchHandler.GetMatches)
		matches.GET("/who-liked-me", requirePremium, matchHandler.WhoLikedMe)
		matches.DELETE("/:matchId", matchHandler.Unmatch)

		matches.GET("/:matchId/messages", messageHandler.GetMessages)
		matches.POST("/:matchId/messages", messageHandler.SendMessage)
		matches.POST("/:matchId/messages/read", messageHandler.MarkMessagesRead)
		matches.GET("/:matchId/bombs", messageHandler.GetBombMessages)
		matches.POST("/:matchId/bombs", messageHandler.SendBombMessage)
		matches.GET("/:matchId/voice", voiceHandler.ListVoiceNotes)
		matches.POST("/:matchId/voice", voiceHandler.SendVoiceNote)
	}
	v1.POST("/bombs/:bombId/screenshot", requireAuth, messageHandler.MarkBombScreenshot)
	v1.POST("/voice/:noteId/play", requireAuth, voiceHandler.MarkVoiceNotePlayed)

	confessions := v1.Group("/confessions", requireAuth)
	{
		confessions.GET("", confessionHandler.ListConfessions)
		confessions.POST("", requireVerified, confessionHandler.CreateConfession)
		confessions.GET("/:confessionId", confessionHandler.GetConfession)
		confessions.POST("/:confessionId/vote", confessionHandler.VoteConfession)
		confessions.DELETE("/:confessionId", confessionHandler.DeleteConfession)
	}

	events := v1.Group("/events", requireAuth)
	{
		events.GET("", eventHandler.ListEvents)
		events.POST("", requireVerified, eventHandler.CreateEvent)
		events.GET("/:eventId", eventHandler.GetEvent)
		events.POST("/:eventId/rsvp", eventHandler.RSVP)
		events.POST("/:eventId/attendance", eventHandler.MarkAttendance)
		events.DELETE("/:eventId", eventHandler.CancelEvent)
	}

	drops := v1.Group("/drops", requireAuth)
	{
		drops.GET("", dropsHandler.ListSpotDrops)
		drops.POST("", dropsHandler.CreateSpotDrop)
		drops.POST("/:dropId/view", dropsHandler.ViewSpotDrop)
	}

	vibes := v1.Group("/vibes", requireAuth)
	{
		vibes.GET("", dropsHandler.ListVibes)
		vibes.POST("", dropsHandler.SetVibe)
		vibes.DELETE("", dropsHandler.ClearVibe)
	}

	capsules := v1.Group("/capsules", requireAuth)
	{
		capsules.GET("", dropsHandler.ListCapsules)
		capsules.POST("", dropsHandler.CreateCapsule)
		capsules.DELETE("/:capsuleId", dropsHandler.DeleteCapsule)
	}

	challenges := v1.Group("/challenges", requireAuth)
	{
		challenges.GET("", challengeHandler.ListChallenges)
		challenges.POST("", requireModerator, challengeHandler.CreateChallenge)
		challenges.GET("/today", challengeHandler.GetTodayChallenge)
		challenges.GET("/:challengeId/submissions", challengeHandler.ListSubmissions)
		challenges.POST("/:challengeId/submissions", requireVerified, challengeHandler.SubmitPhoto)
		challenges.POST("/:challengeId/submissions/:submissionId/vote", challengeHandler.VoteSubmission)
	}

	sparks := v1.Group("/sparks", requireAuth)
	{
		sparks.POST("/join", requireVerified, sparkHandler.JoinSpark)
		sparks.GET("/:sessionId", sparkHandler.GetSpark)
		sparks.POST("/:sessionId/spark", sparkHandler.SendSpark)
		sparks.POST("/:sessionId/end", sparkHandler.EndSpark)
	}

	location := v1.Group("/location", requireAuth)
	{
		location.GET("", locationHandler.GetMyLocation)
		location.PUT("", locationHandler.UpdateLocation)
		location.POST("/ghost", locationHandler.SetGhostMode)
	}

	v1.GET("/badges", requireAuth, gamificationHandler.ListBadges)
	v1.GET("/badges/me", requireAuth, gamificationHandler.MyBadges)
	v1.GET("/rizz/me", requireAuth, gamificationHandler.MyRizz)
	v1.GET("/rizz/leaderboard", requireAuth, gamificationHandler.Leaderboard)
	v1.GET("/streaks/me", requireAuth, gamificationHandler.MyStreak)

	v1.GET("/presence/:userId", requireAuth, presenceHandler.GetPresence)
	v1.GET("/hotzones", requireAuth, presenceHandler.ListHotZones)
	v1.POST("/hotzones/:zoneId/checkin", requireAuth, presenceHandler.CheckIn)

	settings := v1.Group("/settings", requireAuth)
	{
		settings.GET("", settingsHandler.GetSettings)
		settings.PUT("", settingsHandler.UpdateSettings)
	}

	blocks := v1.Group("/blocks", requireAuth)
	{
		blocks.GET("", moderationHandler.ListBlocks)
		blocks.POST("", moderationHandler.BlockUser)
		blocks.DELETE("/:userId", moderationHandler.UnblockUser)
	}

	reports := v1.Group("/reports", requireAuth)
	{
		reports.POST("", moderationHandler.CreateReport)
		reports.GET("", requireModerator, moderationHandler.ListReports)
		reports.POST("/:reportId/review", requireModerator, moderationHandler.ReviewReport)
	}

	notifications := v1.Group("/notifications", requireAuth)
	{
		notifications.GET("", notificationHandler.ListNotifications)
		notifications.POST("/:notificationId/read", notificationHandler.MarkNotificationRead)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
	}
}
