package services

import (
	"testing"

	"crisislink-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProtocolService(db *gorm.DB) (InterfaceEmergencyProtocolService, InterfaceAlertService) {
	alerts := newAlertService(db)
	return NewEmergencyProtocolService(db, newTestConfig(), alerts), alerts
}

func TestEmergencyProtocolService_Level(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newProtocolService(db)

	t.Run("no active protocols yields normal sentinel", func(t *testing.T) {
		level, err := service.GetCurrentEmergencyLevel()
		require.NoError(t, err)
		assert.Equal(t, models.EmergencyLevelNormal, level.Level)
		assert.Equal(t, "No active emergency protocols", level.Description)
	})

	t.Run("latest active protocol wins", func(t *testing.T) {
		first := &models.EmergencyProtocol{Level: "elevated", Description: "Flood watch"}
		require.NoError(t, service.TriggerProtocol(first))

		second := &models.EmergencyProtocol{Level: "severe", Description: "Flood level rising"}
		require.NoError(t, service.TriggerProtocol(second))

		level, err := service.GetCurrentEmergencyLevel()
		require.NoError(t, err)
		assert.Equal(t, "severe", level.Level)
		assert.Equal(t, "Flood level rising", level.Description)

		// 先前的预案仍然是 active，多个预案可以并存
		var active int64
		db.Model(&models.EmergencyProtocol{}).Where("status = ?", models.ProtocolStatusActive).Count(&active)
		assert.EqualValues(t, 2, active)
	})

	t.Run("resolving the latest falls back to the previous", func(t *testing.T) {
		var latest models.EmergencyProtocol
		require.NoError(t, db.Where("level = ?", "severe").First(&latest).Error)
		require.NoError(t, service.ResolveProtocol(latest.ID))

		level, err := service.GetCurrentEmergencyLevel()
		require.NoError(t, err)
		assert.Equal(t, "elevated", level.Level)
	})

	t.Run("resolving twice is rejected", func(t *testing.T) {
		var resolved models.EmergencyProtocol
		require.NoError(t, db.Where("level = ?", "severe").First(&resolved).Error)
		assert.Error(t, service.ResolveProtocol(resolved.ID))
	})

	t.Run("resolving all restores normal", func(t *testing.T) {
		var remaining models.EmergencyProtocol
		require.NoError(t, db.Where("level = ?", "elevated").First(&remaining).Error)
		require.NoError(t, service.ResolveProtocol(remaining.ID))

		level, err := service.GetCurrentEmergencyLevel()
		require.NoError(t, err)
		assert.Equal(t, models.EmergencyLevelNormal, level.Level)
	})

	t.Run("protocol level is required", func(t *testing.T) {
		assert.Error(t, service.TriggerProtocol(&models.EmergencyProtocol{Description: "missing level"}))
	})
}

func TestEmergencyProtocolService_EscalateSeverity(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newProtocolService(db)

	agency := createTestAgency(t, db, "National Disaster Response", 2)

	t.Run("positive delta raises the level", func(t *testing.T) {
		require.NoError(t, service.EscalateSeverity(agency.ID, 3))

		var stored models.GovernmentAgency
		require.NoError(t, db.First(&stored, agency.ID).Error)
		assert.Equal(t, 5, stored.SeverityLevel)
	})

	t.Run("negative delta lowers the level", func(t *testing.T) {
		require.NoError(t, service.EscalateSeverity(agency.ID, -5))

		var stored models.GovernmentAgency
		require.NoError(t, db.First(&stored, agency.ID).Error)
		assert.Equal(t, 0, stored.SeverityLevel)
	})

	t.Run("level can never go negative", func(t *testing.T) {
		err := service.EscalateSeverity(agency.ID, -1)
		assert.Error(t, err)

		var stored models.GovernmentAgency
		require.NoError(t, db.First(&stored, agency.ID).Error)
		assert.Equal(t, 0, stored.SeverityLevel)
	})

	t.Run("unknown agency returns not found", func(t *testing.T) {
		assert.ErrorIs(t, service.EscalateSeverity(99999, 1), gorm.ErrRecordNotFound)
	})
}

func TestEmergencyProtocolService_TriggerAgencyEmergency(t *testing.T) {
	db := setupTestDB(t)
	service, alerts := newProtocolService(db)

	require.NoError(t, alerts.AddSubscriber("ops-team"))
	agency := createTestAgency(t, db, "Coastal Guard", 1)

	require.NoError(t, service.TriggerAgencyEmergency(agency.ID))

	t.Run("severity is bumped by one", func(t *testing.T) {
		var stored models.GovernmentAgency
		require.NoError(t, db.First(&stored, agency.ID).Error)
		assert.Equal(t, 2, stored.SeverityLevel)
	})

	t.Run("subscribers receive the emergency alert", func(t *testing.T) {
		pending, err := alerts.GetPendingNotifications("ops-team")
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "EMERGENCY PROTOCOL triggered by Coastal Guard", pending[0].Message)
		assert.Equal(t, "Emergency", pending[0].AlertType)
	})

	t.Run("unknown agency returns not found", func(t *testing.T) {
		assert.ErrorIs(t, service.TriggerAgencyEmergency(99999), gorm.ErrRecordNotFound)
	})
}
