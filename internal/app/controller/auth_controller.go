package controller

import (
	"errors"
	"net/http"

	"github.com/auca/lostandfound-backend/internal/app/service"
	apperrors "github.com/auca/lostandfound-backend/internal/errors"
	"github.com/auca/lostandfound-backend/internal/middleware"
	"github.com/auca/lostandfound-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyOTPRequest struct {
	TempToken string `json:"tempToken" binding:"required"`
	OTP       string `json:"otp" binding:"required,len=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// Login checks credentials and starts the second login stage
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and password are required")
		return
	}

	log.Debug("Processing login", map[string]interface{}{
		"email": req.Email,
	})

	tempToken, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	log.Info("OTP sent, awaiting verification", map[string]interface{}{
		"email": req.Email,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":    "2fa_required",
		"tempToken": tempToken,
		"message":   "OTP sent to your email",
	})
}

// VerifyOTP completes the login with the mailed one-time code
// POST /api/auth/verify-otp
func (ctrl *AuthController) VerifyOTP(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid OTP verification request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Temp token and 6-digit OTP are required")
		return
	}

	user, err := ctrl.authService.VerifyOTP(req.TempToken, req.OTP)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrExpiredCode) {
			log.Warn("OTP verification failed", nil)
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthCodeInvalid, "Invalid or expired OTP")
			return
		}
		log.Error("OTP verification failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "verify otp")
		return
	}

	log.Info("Login completed", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	c.JSON(http.StatusOK, gin.H{
		"token": util.FormatAccessToken(user.ID),
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// ForgotPassword mails a single-use reset link
// POST /api/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid forgot password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A valid email is required")
		return
	}

	log.Debug("Processing forgot password request", map[string]interface{}{
		"email": req.Email,
	})

	if err := ctrl.authService.RequestPasswordReset(req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			log.Warn("Forgot password for unknown email", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.BadRequest(c, apperrors.ResourceNotFound, "No account with this email")
			return
		}
		if errors.Is(err, service.ErrResetUnavailable) {
			log.Error("Password reset not configured", err, nil)
			apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.AuthResetUnavailable, "Password reset is currently unavailable")
			return
		}
		log.Error("Failed to process password reset request", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "forgot password")
		return
	}

	log.Info("Password reset link sent", map[string]interface{}{
		"email": req.Email,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset link sent to your email",
	})
}

// ResetPassword sets a new password using the mailed token
// POST /api/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reset password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Token and a new password of at least 6 characters are required")
		return
	}

	if err := ctrl.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidOrExpiredToken) {
			log.Warn("Password reset failed: invalid or expired token", nil)
			apperrors.BadRequest(c, apperrors.AuthResetTokenInvalid, "Invalid or expired reset token")
			return
		}
		if errors.Is(err, service.ErrResetUnavailable) {
			log.Error("Password reset not configured", err, nil)
			apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.AuthResetUnavailable, "Password reset is currently unavailable")
			return
		}
		log.Error("Failed to reset password", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "reset password")
		return
	}

	log.Info("Password reset successful")

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been reset successfully",
	})
}
