package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/freementors/backend/internal/config"
	"github.com/freementors/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique-constraint violations must surface as gorm.ErrDuplicatedKey;
		// the review uniqueness guard depends on it.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for every collection.
func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.MentorshipSession{},
		&models.Review{},
		&models.SystemLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
