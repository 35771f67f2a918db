package database

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/velocityrides/template-store/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Template{},
		&models.Reservation{},
		&models.WishlistEntry{},
		&models.Notification{},
		&models.User{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return db, nil
}

// SeedTemplates loads the catalog from a JSON file when the templates table
// is empty. The seed file is the server-side analog of a static catalog.
func SeedTemplates(db *gorm.DB, path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	var count int64
	if err := db.Model(&models.Template{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var templates []models.Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	for i := range templates {
		if err := db.Create(&templates[i]).Error; err != nil {
			return i, fmt.Errorf("seed template %s: %w", templates[i].ID, err)
		}
	}

	return len(templates), nil
}
