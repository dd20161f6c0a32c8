package service

import (
	"errors"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"github.com/auca/lostandfound-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")

// PasswordResetService issues and consumes single-use reset tokens bound to
// one user.
type PasswordResetService interface {
	Issue(user *model.User) (string, error)
	// Consume returns the bound user and deletes the token. The delete
	// happens before the caller applies a new password: a spent token stays
	// spent even when the follow-up write fails.
	Consume(token string) (*model.User, error)
}

type passwordResetService struct {
	resetRepo repository.PasswordResetRepository
	expiry    time.Duration
	now       func() time.Time
}

func NewPasswordResetService(resetRepo repository.PasswordResetRepository, expiry time.Duration) PasswordResetService {
	return &passwordResetService{
		resetRepo: resetRepo,
		expiry:    expiry,
		now:       time.Now,
	}
}

func (s *passwordResetService) Issue(user *model.User) (string, error) {
	token, err := util.GenerateResetToken()
	if err != nil {
		logger.Error("Failed to generate reset token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", err
	}

	reset := &model.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.expiry),
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return "", err
	}

	logger.Info("Password reset token issued", map[string]interface{}{
		"user_id":    user.ID,
		"expires_at": reset.ExpiresAt,
	})
	return token, nil
}

func (s *passwordResetService) Consume(token string) (*model.User, error) {
	reset, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Reset token lookup failed: unknown token", nil)
			return nil, ErrInvalidOrExpiredToken
		}
		logger.Error("Failed to load reset token", err, nil)
		return nil, err
	}

	if reset.IsExpired(s.now()) {
		// Expired rows are left for the purge job; expiry is always
		// checked here regardless.
		logger.Warn("Reset token rejected: expired", map[string]interface{}{
			"user_id":    reset.UserID,
			"expires_at": reset.ExpiresAt,
		})
		return nil, ErrInvalidOrExpiredToken
	}

	deleted, err := s.resetRepo.DeleteByToken(token)
	if err != nil {
		return nil, err
	}
	if !deleted {
		// Another request consumed the token between lookup and delete.
		logger.Warn("Reset token rejected: already consumed", map[string]interface{}{
			"user_id": reset.UserID,
		})
		return nil, ErrInvalidOrExpiredToken
	}

	if reset.User == nil {
		logger.Error("Reset token has no bound user", nil, map[string]interface{}{
			"user_id": reset.UserID,
		})
		return nil, ErrInvalidOrExpiredToken
	}

	logger.Info("Password reset token consumed", map[string]interface{}{
		"user_id": reset.UserID,
	})
	return reset.User, nil
}
