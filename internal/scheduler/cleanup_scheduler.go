package scheduler

import (
	"time"

	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CleanupScheduler purges expired login codes and reset tokens. Storage
// hygiene only: verification always checks expiry itself, so a missed run
// never extends a credential's life.
type CleanupScheduler struct {
	cron      *cron.Cron
	otpRepo   repository.OtpRepository
	resetRepo repository.PasswordResetRepository
}

func NewCleanupScheduler(
	otpRepo repository.OtpRepository,
	resetRepo repository.PasswordResetRepository,
) *CleanupScheduler {
	return &CleanupScheduler{
		cron:      cron.New(),
		otpRepo:   otpRepo,
		resetRepo: resetRepo,
	}
}

// Start registers the hourly purge.
func (s *CleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", s.purgeExpired)
	if err != nil {
		logger.Error("Failed to add cron job for credential cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Credential cleanup scheduler started (hourly)", nil)
	return nil
}

// Stop stops the scheduler.
func (s *CleanupScheduler) Stop() {
	logger.Info("Stopping credential cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Credential cleanup scheduler stopped", nil)
}

func (s *CleanupScheduler) purgeExpired() {
	now := time.Now()

	otps, err := s.otpRepo.DeleteExpired(now)
	if err != nil {
		logger.Error("Failed to purge expired OTPs", err)
	}

	tokens, err := s.resetRepo.DeleteExpired(now)
	if err != nil {
		logger.Error("Failed to purge expired reset tokens", err)
	}

	if otps > 0 || tokens > 0 {
		logger.Info("Purged expired credentials", map[string]interface{}{
			"otps":         otps,
			"reset_tokens": tokens,
		})
	}
}
