package services

import (
	"testing"

	"crisislink-http-service/models"
	"crisislink-http-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminService(db *gorm.DB) *AdminService {
	return &AdminService{
		DB:       db,
		Config:   newTestConfig(),
		Verifier: utils.PlaintextVerifier{},
	}
}

func TestAdminService_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	service := newAdminService(db)

	first := &models.Admin{Name: "Ops Admin", Username: "opsadmin", Password: "secret123", IsActive: true}
	require.NoError(t, service.CreateAdmin(first))

	t.Run("duplicate username is rejected", func(t *testing.T) {
		err := service.CreateAdmin(&models.Admin{Name: "Dup", Username: "opsadmin", Password: "x"})
		assert.Error(t, err)
	})

	t.Run("last admin cannot be deleted", func(t *testing.T) {
		assert.Error(t, service.DeleteAdmin(first.ID))
	})

	t.Run("delete works once a second admin exists", func(t *testing.T) {
		second := &models.Admin{Name: "Backup", Username: "backup", Password: "secret123", IsActive: true}
		require.NoError(t, service.CreateAdmin(second))

		require.NoError(t, service.DeleteAdmin(second.ID))
		_, err := service.GetAdminByID(second.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("pagination counts all admins", func(t *testing.T) {
		admins, total, err := service.GetAllAdmins(1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, admins, 1)
	})
}

func TestAdminService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	service := newAdminService(db)

	admin := &models.Admin{Name: "Ops Admin", Username: "opsadmin", Password: "secret123", IsActive: true}
	require.NoError(t, service.CreateAdmin(admin))

	t.Run("valid credentials", func(t *testing.T) {
		found, ok := service.Authenticate("opsadmin", "secret123")
		require.True(t, ok)
		assert.Equal(t, admin.ID, found.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, ok := service.Authenticate("opsadmin", "wrong")
		assert.False(t, ok)
	})

	t.Run("inactive admin cannot log in", func(t *testing.T) {
		_, err := service.UpdateAdmin(admin.ID, map[string]interface{}{"is_active": false})
		require.NoError(t, err)

		_, ok := service.Authenticate("opsadmin", "secret123")
		assert.False(t, ok)
	})
}
