package service

import (
	"errors"
	"fmt"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"github.com/auca/lostandfound-backend/pkg/mailer"
	"github.com/auca/lostandfound-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrResetUnavailable   = errors.New("password reset is not configured")
)

// AuthService orchestrates the two-stage login (password check, then a
// mailed one-time code) and the password reset flow.
//
// Per login session: Login moves the caller into the awaiting-code state,
// VerifyOTP out of it. A failed or expired verification drops the session
// back to square one with the code purged.
type AuthService interface {
	Login(email, password string) (sessionToken string, err error)
	VerifyOTP(sessionToken, code string) (*model.User, error)
	RequestPasswordReset(email string) error
	ResetPassword(token, newPassword string) error
}

type authService struct {
	userRepo     repository.UserRepository
	otpService   OTPService
	resetService PasswordResetService // nil when reset is not configured
	mailer       mailer.Mailer        // nil when mail is not configured
	frontendURL  string
}

func NewAuthService(
	userRepo repository.UserRepository,
	otpService OTPService,
	resetService PasswordResetService,
	m mailer.Mailer,
	frontendURL string,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		otpService:   otpService,
		resetService: resetService,
		mailer:       m,
		frontendURL:  frontendURL,
	}
}

func (s *authService) Login(email, password string) (string, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return "", ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return "", err
	}

	if !util.VerifyPassword(user.Password, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return "", ErrInvalidCredentials
	}

	sessionToken, code, err := s.otpService.Issue(email)
	if err != nil {
		return "", err
	}

	// Delivery is fire-and-forget: a mail failure never fails the login
	// step, the user can always request a fresh code.
	s.sendMail(email, "AUCA Lost and Found - Your OTP",
		fmt.Sprintf("Your OTP is: %s\nValid for 10 minutes.", code))

	logger.Info("Second factor required", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return sessionToken, nil
}

func (s *authService) VerifyOTP(sessionToken, code string) (*model.User, error) {
	email, err := s.otpService.Verify(sessionToken, code)
	if err != nil {
		return nil, err
	}

	// Identity is carried by the email bound to the verified session;
	// there is no password re-check at this stage.
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		logger.Error("Failed to load user after OTP verification", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})
	return user, nil
}

func (s *authService) RequestPasswordReset(email string) error {
	logger.Info("Password reset requested", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset requested for unknown email", map[string]interface{}{
				"email": email,
			})
			return ErrUserNotFound
		}
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	// Configuration precondition, not a per-request error: deployments
	// without a token store or mailer do not offer resets at all.
	if s.resetService == nil || s.mailer == nil {
		logger.Error("Password reset dependencies are not configured", nil, nil)
		return ErrResetUnavailable
	}

	token, err := s.resetService.Issue(user)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	s.sendMail(user.Email, "Password Reset Request",
		fmt.Sprintf("To reset your password, click the link below:\n%s\nThis link will expire in 24 hours.", resetURL))

	return nil
}

func (s *authService) ResetPassword(token, newPassword string) error {
	if s.resetService == nil {
		logger.Error("Password reset dependencies are not configured", nil, nil)
		return ErrResetUnavailable
	}

	user, err := s.resetService.Consume(token)
	if err != nil {
		return err
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	user.Password = hashed
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	logger.Info("Password reset successful", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (s *authService) sendMail(to, subject, body string) {
	if s.mailer == nil {
		logger.Warn("Mailer not configured, skipping mail", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return
	}
	if err := s.mailer.Send(to, subject, body); err != nil {
		// Swallowed: the issuing operation already succeeded.
		logger.Error("Failed to send mail", err, map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
	}
}
