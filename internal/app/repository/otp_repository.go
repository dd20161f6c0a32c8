package repository

import (
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"gorm.io/gorm"
)

type OtpRepository interface {
	Create(otp *model.Otp) error
	FindBySessionToken(sessionToken string) (*model.Otp, error)
	DeleteBySessionToken(sessionToken string) error
	// ConsumeIfCodeMatches deletes the row only when both the session token
	// and the code match, in a single statement. Returns false when nothing
	// was deleted (wrong code, or the row was consumed concurrently).
	ConsumeIfCodeMatches(sessionToken, code string) (bool, error)
	DeleteExpired(before time.Time) (int64, error)
}

type otpRepository struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(otp *model.Otp) error {
	if err := r.db.Create(otp).Error; err != nil {
		logger.Error("Failed to create OTP in database", err, map[string]interface{}{
			"email": otp.Email,
		})
		return err
	}

	logger.Debug("OTP created in database", map[string]interface{}{
		"otp_id":     otp.ID,
		"email":      otp.Email,
		"expires_at": otp.ExpiresAt,
	})
	return nil
}

func (r *otpRepository) FindBySessionToken(sessionToken string) (*model.Otp, error) {
	var otp model.Otp
	if err := r.db.Where("session_token = ?", sessionToken).First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) DeleteBySessionToken(sessionToken string) error {
	if err := r.db.Where("session_token = ?", sessionToken).Delete(&model.Otp{}).Error; err != nil {
		logger.Error("Failed to delete OTP from database", err, nil)
		return err
	}
	return nil
}

func (r *otpRepository) ConsumeIfCodeMatches(sessionToken, code string) (bool, error) {
	result := r.db.
		Where("session_token = ? AND code = ?", sessionToken, code).
		Delete(&model.Otp{})
	if result.Error != nil {
		logger.Error("Failed to consume OTP in database", result.Error, nil)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *otpRepository) DeleteExpired(before time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", before).Delete(&model.Otp{})
	if result.Error != nil {
		logger.Error("Failed to delete expired OTPs from database", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
