package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bowenhooks/internal/auth"
	"bowenhooks/internal/cache"
	"bowenhooks/internal/config"
	"bowenhooks/internal/db"
	"bowenhooks/internal/repository"
	"bowenhooks/internal/router"
	"bowenhooks/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	gdb, err := db.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	store, err := buildCache(cfg, logger)
	if err != nil {
		logger.Error("cache initialization failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	users := repository.NewUsers(gdb)
	profiles := repository.NewProfiles(gdb)

	tokens := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  []byte(cfg.JWTSecret),
		RefreshSecret: []byte(cfg.JWTRefreshSecret),
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})

	mailer := services.NewMailService(cfg, logger)

	authService := auth.NewService(users, profiles, tokens, store, mailer, logger, auth.Config{
		MaxLoginAttempts:     cfg.MaxLoginAttempts,
		LockoutDuration:      cfg.LockoutDuration,
		VerificationTokenTTL: cfg.VerificationTokenTTL,
		ResetTokenTTL:        cfg.ResetTokenTTL,
		PresenceTTL:          cfg.PresenceTTL,
		AllowedEmailDomains:  cfg.AllowedEmailDomains,
		RequireUniEmail:      cfg.RequireUniEmail,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	router.Register(r, router.Deps{
		Config:   cfg,
		DB:       gdb,
		Cache:    store,
		Users:    users,
		Profiles: profiles,
		Tokens:   tokens,
		Auth:     authService,
	})

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// buildCache prefers Redis and falls back to the in-process cache when
// no address is configured. The fallback loses refresh tokens and
// presence on restart, which is acceptable for development only.
func buildCache(cfg *config.Config, logger *slog.Logger) (cache.Cache, error) {
	if cfg.RedisAddr != "" {
		c, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		logger.Info("cache: redis", "addr", cfg.RedisAddr)
		return c, nil
	}

	logger.Warn("cache: in-memory fallback, set REDIS_ADDR in production")
	return cache.NewMemory(100_000)
}
