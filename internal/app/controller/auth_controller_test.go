package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/internal/app/service"
	"github.com/auca/lostandfound-backend/internal/db"
	"github.com/auca/lostandfound-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentMailer struct{}

func (silentMailer) Send(to, subject, body string) error { return nil }

type authControllerFixture struct {
	router  *gin.Engine
	otpRepo repository.OtpRepository
}

func setupAuthControllerTest(t *testing.T) *authControllerFixture {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	otpRepo := repository.NewOtpRepository(testDB)
	resetRepo := repository.NewPasswordResetRepository(testDB)

	otpService := service.NewOTPService(otpRepo, 10*time.Minute)
	resetService := service.NewPasswordResetService(resetRepo, 24*time.Hour)
	authService := service.NewAuthService(userRepo, otpService, resetService, silentMailer{}, "http://localhost:5173")

	hashed, err := util.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&model.User{
		Username: "student",
		Email:    "student@auca.kg",
		Password: hashed,
		Role:     "USER",
	}))

	ctrl := NewAuthController(authService)

	router := gin.New()
	router.POST("/auth/login", ctrl.Login)
	router.POST("/auth/verify-otp", ctrl.VerifyOTP)
	router.POST("/auth/forgot-password", ctrl.ForgotPassword)
	router.POST("/auth/reset-password", ctrl.ResetPassword)

	return &authControllerFixture{router: router, otpRepo: otpRepo}
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Login_RequiresSecondFactor(t *testing.T) {
	fixture := setupAuthControllerTest(t)

	w := postJSON(t, fixture.router, "/auth/login", LoginRequest{
		Email:    "student@auca.kg",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "2fa_required", response["status"])
	assert.NotEmpty(t, response["tempToken"])
	assert.Nil(t, response["token"], "no access token before OTP verification")
}

func TestAuthController_Login_InvalidCredentials(t *testing.T) {
	fixture := setupAuthControllerTest(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"Wrong password", "student@auca.kg", "wrongpassword"},
		{"Unknown email", "nobody@auca.kg", "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, fixture.router, "/auth/login", LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthController_VerifyOTP_CompletesLogin(t *testing.T) {
	fixture := setupAuthControllerTest(t)

	w := postJSON(t, fixture.router, "/auth/login", LoginRequest{
		Email:    "student@auca.kg",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	tempToken := loginResp["tempToken"].(string)

	otp, err := fixture.otpRepo.FindBySessionToken(tempToken)
	require.NoError(t, err)

	w = postJSON(t, fixture.router, "/auth/verify-otp", VerifyOTPRequest{
		TempToken: tempToken,
		OTP:       otp.Code,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var verifyResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verifyResp))
	assert.NotEmpty(t, verifyResp["token"])

	user := verifyResp["user"].(map[string]interface{})
	assert.Equal(t, "student", user["username"])
	assert.Equal(t, "student@auca.kg", user["email"])
	assert.Equal(t, "USER", user["role"])

	// Replaying the same code fails, it was single-use.
	w = postJSON(t, fixture.router, "/auth/verify-otp", VerifyOTPRequest{
		TempToken: tempToken,
		OTP:       otp.Code,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_VerifyOTP_WrongCode(t *testing.T) {
	fixture := setupAuthControllerTest(t)

	w := postJSON(t, fixture.router, "/auth/login", LoginRequest{
		Email:    "student@auca.kg",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	tempToken := loginResp["tempToken"].(string)

	otp, err := fixture.otpRepo.FindBySessionToken(tempToken)
	require.NoError(t, err)

	wrong := "000000"
	if wrong == otp.Code {
		wrong = "000001"
	}

	w = postJSON(t, fixture.router, "/auth/verify-otp", VerifyOTPRequest{
		TempToken: tempToken,
		OTP:       wrong,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_ForgotPassword_UnknownEmail(t *testing.T) {
	fixture := setupAuthControllerTest(t)

	w := postJSON(t, fixture.router, "/auth/forgot-password", ForgotPasswordRequest{
		Email: "nobody@auca.kg",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_ForgotPassword_Success(t *testing.T) {
	fixture := setupAuthControllerTest(t)

	w := postJSON(t, fixture.router, "/auth/forgot-password", ForgotPasswordRequest{
		Email: "student@auca.kg",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_ResetPassword_InvalidToken(t *testing.T) {
	fixture := setupAuthControllerTest(t)

	w := postJSON(t, fixture.router, "/auth/reset-password", ResetPasswordRequest{
		Token:       "no-such-token",
		NewPassword: "newpassword456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
