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

// ErrInvalidOrExpiredCode is returned for any failed verification: unknown
// session, expired code, or wrong code. Callers cannot distinguish the
// cases.
var ErrInvalidOrExpiredCode = errors.New("invalid or expired one-time code")

// OTPService issues and verifies the short-lived numeric second factor of a
// login. Codes are single-use: a successful verification removes the row.
type OTPService interface {
	Issue(email string) (sessionToken, code string, err error)
	Verify(sessionToken, suppliedCode string) (email string, err error)
}

type otpService struct {
	otpRepo repository.OtpRepository
	expiry  time.Duration
	now     func() time.Time
}

func NewOTPService(otpRepo repository.OtpRepository, expiry time.Duration) OTPService {
	return &otpService{
		otpRepo: otpRepo,
		expiry:  expiry,
		now:     time.Now,
	}
}

func (s *otpService) Issue(email string) (string, string, error) {
	sessionToken := util.GenerateSessionToken()
	code, err := util.GenerateOTPCode()
	if err != nil {
		logger.Error("Failed to generate one-time code", err, map[string]interface{}{
			"email": email,
		})
		return "", "", err
	}

	otp := &model.Otp{
		SessionToken: sessionToken,
		Email:        email,
		Code:         code,
		ExpiresAt:    s.now().Add(s.expiry),
	}

	// A session token collision violates the unique index. Given the UUID
	// space that signals an entropy problem, so it surfaces as a storage
	// error rather than being retried.
	if err := s.otpRepo.Create(otp); err != nil {
		return "", "", err
	}

	logger.Info("One-time code issued", map[string]interface{}{
		"email":      email,
		"expires_at": otp.ExpiresAt,
	})

	return sessionToken, code, nil
}

func (s *otpService) Verify(sessionToken, suppliedCode string) (string, error) {
	otp, err := s.otpRepo.FindBySessionToken(sessionToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("OTP verification failed: unknown session", nil)
			return "", ErrInvalidOrExpiredCode
		}
		logger.Error("Failed to load OTP", err, nil)
		return "", err
	}

	// Expired codes are purged on the attempt that discovers them, so a
	// later retry fails on the missing row rather than re-checking expiry.
	if s.now().After(otp.ExpiresAt) {
		logger.Warn("OTP verification failed: code expired", map[string]interface{}{
			"email":      otp.Email,
			"expires_at": otp.ExpiresAt,
		})
		if err := s.otpRepo.DeleteBySessionToken(sessionToken); err != nil {
			return "", err
		}
		return "", ErrInvalidOrExpiredCode
	}

	// Single-statement conditional delete: the code is only consumed when
	// it matches, and two concurrent callers cannot both succeed. On a
	// mismatch the row stays so the caller may retry until expiry.
	consumed, err := s.otpRepo.ConsumeIfCodeMatches(sessionToken, suppliedCode)
	if err != nil {
		return "", err
	}
	if !consumed {
		logger.Warn("OTP verification failed: code mismatch", map[string]interface{}{
			"email": otp.Email,
		})
		return "", ErrInvalidOrExpiredCode
	}

	logger.Info("OTP verified", map[string]interface{}{
		"email": otp.Email,
	})
	return otp.Email, nil
}
