package service

import (
	"testing"

	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/internal/db"
	"github.com/auca/lostandfound-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserServiceTest(t *testing.T) UserService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewUserService(repository.NewUserRepository(testDB))
}

func TestUserService_Create(t *testing.T) {
	svc := setupUserServiceTest(t)

	user, err := svc.Create("student", "student@auca.kg", "password123", "user")
	require.NoError(t, err)

	assert.Equal(t, "student", user.Username)
	assert.Equal(t, "USER", user.Role, "role is stored uppercased")
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, util.IsBcryptHash(user.Password))
	assert.True(t, util.VerifyPassword(user.Password, "password123"))
}

func TestUserService_Create_Duplicates(t *testing.T) {
	svc := setupUserServiceTest(t)

	_, err := svc.Create("student", "student@auca.kg", "password123", "USER")
	require.NoError(t, err)

	_, err = svc.Create("other", "student@auca.kg", "password123", "USER")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = svc.Create("student", "other@auca.kg", "password123", "USER")
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestUserService_Update_PasswordHashing(t *testing.T) {
	svc := setupUserServiceTest(t)

	user, err := svc.Create("student", "student@auca.kg", "password123", "USER")
	require.NoError(t, err)
	originalHash := user.Password

	// Round-tripping the stored hash must not hash it again.
	updated, err := svc.Update(user.ID, "", "", originalHash, "")
	require.NoError(t, err)
	assert.Equal(t, originalHash, updated.Password)

	// A new plain text password is hashed.
	updated, err = svc.Update(user.ID, "", "", "newpassword456", "")
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, updated.Password)
	assert.True(t, util.VerifyPassword(updated.Password, "newpassword456"))

	// Empty password leaves the credential untouched.
	latest := updated.Password
	updated, err = svc.Update(user.ID, "newname", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, latest, updated.Password)
	assert.Equal(t, "newname", updated.Username)
}

func TestUserService_IsAdmin(t *testing.T) {
	svc := setupUserServiceTest(t)

	admin, err := svc.Create("admin", "admin@auca.kg", "password123", "admin")
	require.NoError(t, err)
	regular, err := svc.Create("student", "student@auca.kg", "password123", "USER")
	require.NoError(t, err)

	isAdmin, err := svc.IsAdmin(admin.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.IsAdmin(regular.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestUserService_Delete(t *testing.T) {
	svc := setupUserServiceTest(t)

	user, err := svc.Create("student", "student@auca.kg", "password123", "USER")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID))

	_, err = svc.GetByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.Delete(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ExistsChecks(t *testing.T) {
	svc := setupUserServiceTest(t)

	user, err := svc.Create("student", "student@auca.kg", "password123", "USER")
	require.NoError(t, err)

	exists, err := svc.ExistsByEmail("student@auca.kg", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// Excluding the owner itself, for edit screens.
	exists, err = svc.ExistsByEmail("student@auca.kg", user.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = svc.ExistsByUsername("student", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.ExistsByUsername("nobody", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}
