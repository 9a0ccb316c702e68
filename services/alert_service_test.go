package services

import (
	"testing"

	"crisislink-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAlertService(db *gorm.DB) InterfaceAlertService {
	return NewAlertService(db, newTestConfig(), nil)
}

func TestAlertService_Subscribers(t *testing.T) {
	db := setupTestDB(t)
	service := newAlertService(db)

	t.Run("add and list", func(t *testing.T) {
		require.NoError(t, service.AddSubscriber("ops-team"))
		require.NoError(t, service.AddSubscriber("field-hospital"))
		assert.Equal(t, []string{"ops-team", "field-hospital"}, service.GetSubscribers())
	})

	t.Run("adding twice is idempotent", func(t *testing.T) {
		require.NoError(t, service.AddSubscriber("ops-team"))
		assert.Len(t, service.GetSubscribers(), 2)

		var count int64
		db.Model(&models.AlertSubscriber{}).Where("subscriber = ?", "ops-team").Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("empty subscriber is rejected", func(t *testing.T) {
		assert.Error(t, service.AddSubscriber(""))
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		require.NoError(t, service.RemoveSubscriber("field-hospital"))
		require.NoError(t, service.RemoveSubscriber("field-hospital"))
		assert.Equal(t, []string{"ops-team"}, service.GetSubscribers())
	})

	t.Run("reload restores mirror from database", func(t *testing.T) {
		fresh := newAlertService(db)
		assert.Equal(t, []string{"ops-team"}, fresh.GetSubscribers())
	})
}

func TestAlertService_Broadcast(t *testing.T) {
	db := setupTestDB(t)
	service := newAlertService(db)

	require.NoError(t, service.AddSubscriber("ops-team"))
	require.NoError(t, service.AddSubscriber("field-hospital"))
	require.NoError(t, service.AddSubscriber("shelter-3"))

	require.NoError(t, service.Broadcast("Evacuation route 3 is now open", ""))

	t.Run("one history row is written", func(t *testing.T) {
		history, err := service.GetHistory(10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "Evacuation route 3 is now open", history[0].Message)
		assert.Equal(t, models.AlertTypeGeneral, history[0].Type)
	})

	t.Run("system records the last alert", func(t *testing.T) {
		system, err := service.GetAlertConfig()
		require.NoError(t, err)
		assert.Equal(t, "Evacuation route 3 is now open", system.LastAlertMessage)
		assert.Equal(t, models.AlertTypeGeneral, system.LastAlertType)
		assert.False(t, system.LastAlertTime.IsZero())
	})

	t.Run("every subscriber gets a pending notification", func(t *testing.T) {
		for _, subscriber := range []string{"ops-team", "field-hospital", "shelter-3"} {
			pending, err := service.GetPendingNotifications(subscriber)
			require.NoError(t, err)
			require.Len(t, pending, 1)
			assert.Equal(t, "Evacuation route 3 is now open", pending[0].Message)
			assert.False(t, pending[0].Delivered)
		}
	})

	t.Run("mark delivered only touches that subscriber", func(t *testing.T) {
		require.NoError(t, service.MarkDelivered("ops-team"))

		pending, err := service.GetPendingNotifications("ops-team")
		require.NoError(t, err)
		assert.Empty(t, pending)

		pending, err = service.GetPendingNotifications("field-hospital")
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})

	t.Run("later broadcasts only reach current subscribers", func(t *testing.T) {
		require.NoError(t, service.RemoveSubscriber("shelter-3"))
		require.NoError(t, service.Broadcast("Water distribution at noon", "Supply"))

		pending, err := service.GetPendingNotifications("shelter-3")
		require.NoError(t, err)
		assert.Len(t, pending, 1) // 只剩第一次广播的通知

		pending, err = service.GetPendingNotifications("ops-team")
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "Water distribution at noon", pending[0].Message)
		assert.Equal(t, "Supply", pending[0].AlertType)
	})

	t.Run("history is newest first", func(t *testing.T) {
		history, err := service.GetHistory(10)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "Water distribution at noon", history[0].Message)
	})
}

func TestAlertService_Config(t *testing.T) {
	db := setupTestDB(t)
	service := newAlertService(db)

	t.Run("config is created on first read with defaults", func(t *testing.T) {
		system, err := service.GetAlertConfig()
		require.NoError(t, err)
		assert.Equal(t, 8, system.UrgencyThreshold)
		assert.False(t, system.AutoAssign)
	})

	t.Run("partial update", func(t *testing.T) {
		system, err := service.UpdateAlertConfig(map[string]interface{}{
			"urgency_threshold": 5,
			"auto_assign":       true,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, system.UrgencyThreshold)
		assert.True(t, system.AutoAssign)

		// 单例不会被复制
		var count int64
		db.Model(&models.AlertSystem{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})
}
