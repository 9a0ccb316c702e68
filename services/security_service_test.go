package services

import (
	"testing"
	"time"

	"crisislink-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSecurityService(db *gorm.DB) *SecurityService {
	return &SecurityService{
		DB:     db,
		Config: newTestConfig(),
	}
}

func TestSecurityService_Logs(t *testing.T) {
	db := setupTestDB(t)
	service := newSecurityService(db)

	t.Run("empty event type is rejected", func(t *testing.T) {
		assert.Error(t, service.LogEvent("", "detail"))
	})

	t.Run("newest event first", func(t *testing.T) {
		require.NoError(t, service.LogEvent(models.SecurityEventFailedLogin, "zhangwei"))
		require.NoError(t, service.LogEvent(models.SecurityEventFailedLogin, "lina"))

		logs, err := service.GetSecurityLogs(0)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "lina", logs[0].Detail)
		assert.Equal(t, "zhangwei", logs[1].Detail)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		logs, err := service.GetSecurityLogs(1)
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})
}

func TestSecurityService_Status(t *testing.T) {
	db := setupTestDB(t)
	service := newSecurityService(db)

	require.NoError(t, service.LogEvent(models.SecurityEventFailedLogin, "zhangwei"))
	// 超过一小时的失败记录不计入
	stale := models.SecurityLog{EventType: models.SecurityEventFailedLogin, Detail: "old"}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Model(&stale).Update("timestamp", time.Now().Add(-2*time.Hour)).Error)

	require.NoError(t, db.Create(&models.EmergencyProtocol{Level: "red", Status: models.ProtocolStatusActive}).Error)
	require.NoError(t, db.Create(&models.EmergencyProtocol{Level: "orange", Status: models.ProtocolStatusResolved}).Error)

	require.NoError(t, db.Create(&models.AccountVerification{UserType: "volunteer", UserID: 1}).Error)

	status, err := service.GetSecurityStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.ActiveSessions)
	assert.Equal(t, int64(1), status.FailedLoginsLastHr)
	assert.Equal(t, int64(1), status.ActiveAlerts)
	assert.Equal(t, int64(1), status.PendingVerification)
}

func TestSecurityService_Settings(t *testing.T) {
	db := setupTestDB(t)
	service := newSecurityService(db)

	t.Run("defaults are created on first read", func(t *testing.T) {
		settings, err := service.UpdateSecuritySettings(nil)
		require.NoError(t, err)
		assert.False(t, settings.TwoFactorEnabled)
		assert.Equal(t, 5, settings.MaxLoginAttempts)
		assert.Equal(t, 30, settings.SessionTimeout)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		settings, err := service.UpdateSecuritySettings(map[string]interface{}{
			"two_factor_enabled": true,
			"session_timeout":    60,
		})
		require.NoError(t, err)
		assert.True(t, settings.TwoFactorEnabled)
		assert.Equal(t, 60, settings.SessionTimeout)
		assert.Equal(t, 5, settings.MaxLoginAttempts)
	})

	t.Run("single settings row", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&models.SecuritySetting{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestSecurityService_VerifyAccount(t *testing.T) {
	db := setupTestDB(t)
	service := newSecurityService(db)

	volunteerService := newVolunteerService(db)
	volunteer := &models.Volunteer{Name: "Li Na", Username: "lina", Password: "secret123"}
	require.NoError(t, volunteerService.Register(volunteer))

	var verification models.AccountVerification
	require.NoError(t, db.Where("user_type = ? AND user_id = ?", "volunteer", volunteer.ID).First(&verification).Error)

	t.Run("pending list includes the record", func(t *testing.T) {
		pending, err := service.GetPendingVerifications()
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, verification.ID, pending[0].ID)
	})

	t.Run("approval marks the volunteer verified", func(t *testing.T) {
		require.NoError(t, service.VerifyAccount(verification.ID, true, "Documents checked"))

		var stored models.AccountVerification
		require.NoError(t, db.First(&stored, verification.ID).Error)
		assert.Equal(t, models.VerificationStatusApproved, stored.Status)
		assert.Equal(t, "Documents checked", stored.Notes)
		require.NotNil(t, stored.VerifiedAt)

		updated, err := volunteerService.GetVolunteerByID(volunteer.ID)
		require.NoError(t, err)
		assert.True(t, updated.Verified)

		pending, err := service.GetPendingVerifications()
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("rejection leaves the user unverified", func(t *testing.T) {
		other := &models.Volunteer{Name: "Wang Fang", Username: "wangfang", Password: "secret123"}
		require.NoError(t, volunteerService.Register(other))

		var rec models.AccountVerification
		require.NoError(t, db.Where("user_type = ? AND user_id = ?", "volunteer", other.ID).First(&rec).Error)
		require.NoError(t, service.VerifyAccount(rec.ID, false, "Incomplete documents"))

		var stored models.AccountVerification
		require.NoError(t, db.First(&stored, rec.ID).Error)
		assert.Equal(t, models.VerificationStatusRejected, stored.Status)

		updated, err := volunteerService.GetVolunteerByID(other.ID)
		require.NoError(t, err)
		assert.False(t, updated.Verified)
	})

	t.Run("unknown record returns not found", func(t *testing.T) {
		err := service.VerifyAccount(99999, true, "")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
