package db

import (
	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/pkg/logger"
)

// defaultCategories are created on first migration so item reports always
// have something to classify against.
var defaultCategories = []string{
	"Electronics",
	"Documents",
	"Keys",
	"Clothing",
	"Bags",
	"Jewelry",
	"Books",
	"Other",
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Otp{},
		&model.PasswordResetToken{},
		&model.Category{},
		&model.VerificationDetails{},
		&model.LostItem{},
		&model.FoundItem{},
		&model.Match{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedCategories(); err != nil {
		logger.Error("Failed to seed categories during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding default categories...")

	for _, name := range defaultCategories {
		if err := DB.Create(&model.Category{Name: name}).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": name,
			})
			return err
		}
	}

	logger.Info("Default categories seeded successfully", map[string]interface{}{
		"total_categories": len(defaultCategories),
	})
	return nil
}
