package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bowenhooks/internal/models"
)

// Connect opens the postgres connection and runs auto-migration. The
// handle is returned for injection; no package-level global.
func Connect(dsn string, log *slog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("database connected and migrated")
	return gdb, nil
}

func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Photo{},
		&models.Like{},
		&models.Match{},
		&models.Message{},
		&models.BombMessage{},
		&models.SpotDrop{},
		&models.VibeStatus{},
		&models.TimeCapsule{},
		&models.Confession{},
		&models.ConfessionVote{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Badge{},
		&models.UserBadge{},
		&models.RizzScore{},
		&models.LoginStreak{},
		&models.Notification{},
		&models.Settings{},
		&models.Block{},
		&models.Report{},
		&models.HotZone{},
		&models.PhotoChallenge{},
		&models.ChallengeSubmission{},
		&models.ChallengeVote{},
		&models.VoiceNote{},
		&models.SparkSession{},
		&models.Location{},
	)
}
