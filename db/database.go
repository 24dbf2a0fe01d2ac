package db

import (
	"fmt"
	"log"

	"court_agenda_go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the agenda database. WAL mode lets agenda reads keep
// going while a reschedule or delete commits; the busy timeout covers
// the brief writer contention between concurrent mutations.
func Initialize(dbPath string, environment string) error {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to open agenda database: %w", err)
	}

	log.Println("Agenda database ready (WAL mode, 5s busy timeout)")
	return nil
}

// AutoMigrate migrates the agenda schema: the case registry, the
// hearings and their append-only history log.
func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(
		&models.Case{},
		&models.Hearing{},
		&models.HearingHistory{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate agenda schema: %w", err)
	}

	log.Println("Agenda schema migrated")
	return nil
}

// Close closes the underlying connection pool
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
