package repository

import (
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Create(token *model.PasswordResetToken) error
	FindByToken(token string) (*model.PasswordResetToken, error)
	// DeleteByToken removes the row and reports whether anything was
	// deleted, so concurrent consumers cannot both spend the same token.
	DeleteByToken(token string) (bool, error)
	DeleteExpired(before time.Time) (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(token *model.PasswordResetToken) error {
	if err := r.db.Create(token).Error; err != nil {
		logger.Error("Failed to create password reset token in database", err, map[string]interface{}{
			"user_id": token.UserID,
		})
		return err
	}

	logger.Debug("Password reset token created in database", map[string]interface{}{
		"token_id":   token.ID,
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
	})
	return nil
}

func (r *passwordResetRepository) FindByToken(token string) (*model.PasswordResetToken, error) {
	var reset model.PasswordResetToken
	err := r.db.Preload("User").Where("token = ?", token).First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) DeleteByToken(token string) (bool, error) {
	result := r.db.Where("token = ?", token).Delete(&model.PasswordResetToken{})
	if result.Error != nil {
		logger.Error("Failed to delete password reset token from database", result.Error, nil)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *passwordResetRepository) DeleteExpired(before time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", before).Delete(&model.PasswordResetToken{})
	if result.Error != nil {
		logger.Error("Failed to delete expired password reset tokens from database", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
