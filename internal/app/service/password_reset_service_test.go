package service

import (
	"testing"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/internal/db"
	"github.com/auca/lostandfound-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupResetServiceTest(t *testing.T) (*passwordResetService, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	hashed, err := util.HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{
		Username: "student",
		Email:    "student@auca.kg",
		Password: hashed,
		Role:     "USER",
	}
	require.NoError(t, testDB.Create(user).Error)

	resetRepo := repository.NewPasswordResetRepository(testDB)
	svc := NewPasswordResetService(resetRepo, 24*time.Hour).(*passwordResetService)

	return svc, user
}

func TestPasswordResetService_IssueAndConsume(t *testing.T) {
	svc, user := setupResetServiceTest(t)

	token, err := svc.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	bound, err := svc.Consume(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, bound.ID)
	assert.Equal(t, user.Email, bound.Email)
}

func TestPasswordResetService_Consume_SingleUse(t *testing.T) {
	svc, user := setupResetServiceTest(t)

	token, err := svc.Issue(user)
	require.NoError(t, err)

	_, err = svc.Consume(token)
	require.NoError(t, err)

	// A consumed token is gone for good.
	_, err = svc.Consume(token)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestPasswordResetService_Consume_UnknownToken(t *testing.T) {
	svc, _ := setupResetServiceTest(t)

	_, err := svc.Consume("no-such-token")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestPasswordResetService_Consume_Expired(t *testing.T) {
	svc, user := setupResetServiceTest(t)

	token, err := svc.Issue(user)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	_, err = svc.Consume(token)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestPasswordResetService_MultipleOutstandingTokens(t *testing.T) {
	svc, user := setupResetServiceTest(t)

	// Requesting twice leaves two valid tokens; each is single-use on its
	// own.
	tokenA, err := svc.Issue(user)
	require.NoError(t, err)
	tokenB, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEqual(t, tokenA, tokenB)

	_, err = svc.Consume(tokenA)
	require.NoError(t, err)

	bound, err := svc.Consume(tokenB)
	require.NoError(t, err)
	assert.Equal(t, user.ID, bound.ID)
}
