package service

import (
	"testing"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/repository"
	"github.com/ecommercio/storefront-backend/internal/db"
	"github.com/ecommercio/storefront-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAdminUserServiceTest(t *testing.T) (AdminUserService, repository.UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	return NewAdminUserService(userRepo), userRepo
}

func createTestUser(t *testing.T, userRepo repository.UserRepository, username string, role model.UserRole) *model.User {
	t.Helper()

	hash, err := util.HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, userRepo.Create(user))
	return user
}

func TestAdminUserService_ListUsers(t *testing.T) {
	adminService, userRepo := setupAdminUserServiceTest(t)

	createTestUser(t, userRepo, "admin", model.RoleAdmin)
	createTestUser(t, userRepo, "alice", model.RoleUser)

	users, err := adminService.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAdminUserService_SetRole_LastAdminGuard(t *testing.T) {
	adminService, userRepo := setupAdminUserServiceTest(t)

	admin := createTestUser(t, userRepo, "admin", model.RoleAdmin)
	user := createTestUser(t, userRepo, "alice", model.RoleUser)

	// Demoting the only admin is refused
	_, err := adminService.SetRole(admin.ID, model.RoleUser)
	assert.ErrorIs(t, err, ErrLastAdmin)

	// Promote a second admin, then the demotion goes through
	_, err = adminService.SetRole(user.ID, model.RoleAdmin)
	require.NoError(t, err)

	demoted, err := adminService.SetRole(admin.ID, model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, demoted.Role)
}

func TestAdminUserService_SetRole_Validation(t *testing.T) {
	adminService, userRepo := setupAdminUserServiceTest(t)

	user := createTestUser(t, userRepo, "alice", model.RoleUser)

	_, err := adminService.SetRole(user.ID, model.UserRole("superuser"))
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = adminService.SetRole(9999, model.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminUserService_SetBanned(t *testing.T) {
	adminService, userRepo := setupAdminUserServiceTest(t)

	admin := createTestUser(t, userRepo, "admin", model.RoleAdmin)
	user := createTestUser(t, userRepo, "alice", model.RoleUser)

	// Banning the only admin is refused
	_, err := adminService.SetBanned(admin.ID, true)
	assert.ErrorIs(t, err, ErrLastAdmin)

	banned, err := adminService.SetBanned(user.ID, true)
	require.NoError(t, err)
	assert.True(t, banned.Banned)

	unbanned, err := adminService.SetBanned(user.ID, false)
	require.NoError(t, err)
	assert.False(t, unbanned.Banned)

	_, err = adminService.SetBanned(9999, true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
