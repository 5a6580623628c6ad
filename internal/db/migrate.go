package db

import (
	"errors"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Profile{},
		&model.Category{},
		&model.Product{},
		&model.Setting{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedDefaultSettings(DB); err != nil {
		logger.Error("Failed to seed default settings", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedDefaultSettings inserts the default site name the first time the
// database is created. Existing values are never overwritten.
func seedDefaultSettings(db *gorm.DB) error {
	var setting model.Setting
	err := db.Where("key = ?", model.SettingSiteName).First(&setting).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	logger.Info("Seeding default site name")
	return db.Create(&model.Setting{
		Key:   model.SettingSiteName,
		Value: "🛍️ Ecommercio",
	}).Error
}
