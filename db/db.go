package db

import (
	"fmt"
	"log/slog"

	"github.com/sidhant-sriv/roomshare-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres database. With debug set every SQL statement is logged.
func Connect(dsn string, debug bool, log *slog.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}
	log.Info("connected to the database")
	return db, nil
}

// MakeMigration creates or updates every table, including the unique
// indexes that guard applications and favorites.
func MakeMigration(db *gorm.DB, log *slog.Logger) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database migrated successfully")
	return nil
}
