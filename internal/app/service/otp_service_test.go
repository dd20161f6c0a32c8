package service

import (
	"testing"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOTPServiceTest(t *testing.T) (*otpService, repository.OtpRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	otpRepo := repository.NewOtpRepository(testDB)
	svc := NewOTPService(otpRepo, 10*time.Minute).(*otpService)

	return svc, otpRepo
}

func TestOTPService_Issue(t *testing.T) {
	svc, otpRepo := setupOTPServiceTest(t)

	sessionToken, code, err := svc.Issue("student@auca.kg")
	require.NoError(t, err)
	assert.NotEmpty(t, sessionToken)
	assert.Len(t, code, 6)

	otp, err := otpRepo.FindBySessionToken(sessionToken)
	require.NoError(t, err)
	assert.Equal(t, "student@auca.kg", otp.Email)
	assert.Equal(t, code, otp.Code)
	assert.True(t, otp.ExpiresAt.After(time.Now()))
}

func TestOTPService_Issue_IndependentSessions(t *testing.T) {
	svc, _ := setupOTPServiceTest(t)

	tokenA, codeA, err := svc.Issue("student@auca.kg")
	require.NoError(t, err)
	tokenB, _, err := svc.Issue("student@auca.kg")
	require.NoError(t, err)

	assert.NotEqual(t, tokenA, tokenB)

	// Each login attempt carries its own code; verifying one leaves the
	// other usable.
	email, err := svc.Verify(tokenA, codeA)
	require.NoError(t, err)
	assert.Equal(t, "student@auca.kg", email)

	_, err = svc.Verify(tokenB, codeA)
	if err == nil {
		// Codes can collide by chance, only the bound session matters.
		return
	}
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestOTPService_Verify_SingleUse(t *testing.T) {
	svc, _ := setupOTPServiceTest(t)

	sessionToken, code, err := svc.Issue("student@auca.kg")
	require.NoError(t, err)

	email, err := svc.Verify(sessionToken, code)
	require.NoError(t, err)
	assert.Equal(t, "student@auca.kg", email)

	// The code is consumed, replaying it must fail.
	_, err = svc.Verify(sessionToken, code)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestOTPService_Verify_WrongCodeAllowsRetry(t *testing.T) {
	svc, _ := setupOTPServiceTest(t)

	sessionToken, code, err := svc.Issue("student@auca.kg")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// A mismatch does not burn the code.
	_, err = svc.Verify(sessionToken, wrong)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)

	email, err := svc.Verify(sessionToken, code)
	require.NoError(t, err)
	assert.Equal(t, "student@auca.kg", email)
}

func TestOTPService_Verify_UnknownSession(t *testing.T) {
	svc, _ := setupOTPServiceTest(t)

	_, err := svc.Verify("no-such-session", "123456")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestOTPService_Verify_ExpiredCodePurged(t *testing.T) {
	svc, otpRepo := setupOTPServiceTest(t)

	sessionToken, code, err := svc.Issue("student@auca.kg")
	require.NoError(t, err)

	// Jump past the expiry.
	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	_, err = svc.Verify(sessionToken, code)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)

	// The discovering attempt removed the row.
	_, err = otpRepo.FindBySessionToken(sessionToken)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Even with the right code and a rewound clock the session is gone.
	svc.now = time.Now
	_, err = svc.Verify(sessionToken, code)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}
