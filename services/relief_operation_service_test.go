package services

import (
	"testing"

	"crisislink-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReliefOperationService(db *gorm.DB) InterfaceReliefOperationService {
	return NewReliefOperationService(db, newTestConfig())
}

func TestReliefOperationService_AllocatePersonnel(t *testing.T) {
	db := setupTestDB(t)
	service := newReliefOperationService(db)

	t.Run("first allocation creates operation named after type", func(t *testing.T) {
		allocation := &models.PersonnelAllocation{
			Type:     "Medical",
			Location: "Riverside District",
			Count:    20,
			Priority: 2,
		}
		require.NoError(t, service.AllocatePersonnel(allocation))
		require.NotZero(t, allocation.OperationID)
		assert.Equal(t, models.AllocationStatusPending, allocation.Status)

		var operation models.ReliefOperation
		require.NoError(t, db.First(&operation, allocation.OperationID).Error)
		assert.Equal(t, "Medical Operation", operation.Name)
		assert.Equal(t, "Riverside District", operation.Location)
		assert.Equal(t, models.OperationStatusActive, operation.Status)
	})

	t.Run("second allocation at same location reuses operation", func(t *testing.T) {
		first := &models.PersonnelAllocation{Type: "Medical", Location: "Harbor", Count: 10}
		second := &models.PersonnelAllocation{Type: "Rescue", Location: "Harbor", Count: 5}
		require.NoError(t, service.AllocatePersonnel(first))
		require.NoError(t, service.AllocatePersonnel(second))

		assert.Equal(t, first.OperationID, second.OperationID)

		var count int64
		db.Model(&models.ReliefOperation{}).Where("location = ?", "Harbor").Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("location comparison is exact", func(t *testing.T) {
		lower := &models.PersonnelAllocation{Type: "Medical", Location: "east bank", Count: 1}
		upper := &models.PersonnelAllocation{Type: "Medical", Location: "East Bank", Count: 1}
		require.NoError(t, service.AllocatePersonnel(lower))
		require.NoError(t, service.AllocatePersonnel(upper))

		assert.NotEqual(t, lower.OperationID, upper.OperationID)
	})

	t.Run("location is required", func(t *testing.T) {
		err := service.AllocatePersonnel(&models.PersonnelAllocation{Type: "Medical", Count: 1})
		assert.Error(t, err)
	})
}

func TestReliefOperationService_BudgetAndMilitary(t *testing.T) {
	db := setupTestDB(t)
	service := newReliefOperationService(db)

	t.Run("budget creates operation named after category", func(t *testing.T) {
		budget := &models.EmergencyBudget{
			Category: "Medical Supplies",
			Amount:   50000,
			Priority: 1,
		}
		require.NoError(t, service.CreateBudget(budget, "Riverside District"))
		require.NotZero(t, budget.OperationID)
		assert.Equal(t, models.BudgetStatusAvailable, budget.Status)

		var operation models.ReliefOperation
		require.NoError(t, db.First(&operation, budget.OperationID).Error)
		assert.Equal(t, "Medical Supplies Operation", operation.Name)
	})

	t.Run("military request joins existing operation", func(t *testing.T) {
		request := &models.MilitarySupportRequest{
			Type:        "Engineering",
			Location:    "Riverside District",
			Priority:    3,
			Description: "Need heavy lifting equipment",
		}
		require.NoError(t, service.RequestMilitarySupport(request))
		assert.Equal(t, models.MilitaryStatusPending, request.Status)

		var count int64
		db.Model(&models.ReliefOperation{}).Where("location = ?", "Riverside District").Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("budget requires location", func(t *testing.T) {
		err := service.CreateBudget(&models.EmergencyBudget{Category: "Food"}, "")
		assert.Error(t, err)
	})
}

func TestReliefOperationService_StatusBoards(t *testing.T) {
	db := setupTestDB(t)
	service := newReliefOperationService(db)

	allocation := &models.PersonnelAllocation{Type: "Medical", Location: "Riverside District", Count: 20, Priority: 2}
	require.NoError(t, service.AllocatePersonnel(allocation))

	budget := &models.EmergencyBudget{Category: "Medical Supplies", Amount: 50000}
	require.NoError(t, service.CreateBudget(budget, "Riverside District"))

	military := &models.MilitarySupportRequest{Type: "Engineering", Location: "Riverside District", Description: "bridge"}
	require.NoError(t, service.RequestMilitarySupport(military))

	t.Run("personnel board includes operation name", func(t *testing.T) {
		rows, err := service.GetPersonnelStatus()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Medical", rows[0].Type)
		assert.Equal(t, 20, rows[0].Count)
		assert.Equal(t, "Medical Operation", rows[0].Operation)
	})

	t.Run("budget board includes operation location", func(t *testing.T) {
		rows, err := service.GetBudgetStatus()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Medical Supplies", rows[0].Category)
		assert.EqualValues(t, 50000, rows[0].Amount)
		assert.Equal(t, "Riverside District", rows[0].Location)
	})

	t.Run("completed rows drop off the boards", func(t *testing.T) {
		require.NoError(t, service.CompletePersonnel(allocation.ID))
		require.NoError(t, service.AllocateBudget(budget.ID))
		require.NoError(t, service.CompleteMilitary(military.ID))

		personnel, err := service.GetPersonnelStatus()
		require.NoError(t, err)
		assert.Empty(t, personnel)

		budgets, err := service.GetBudgetStatus()
		require.NoError(t, err)
		assert.Empty(t, budgets)

		militaries, err := service.GetMilitaryStatus()
		require.NoError(t, err)
		assert.Empty(t, militaries)

		var stored models.PersonnelAllocation
		require.NoError(t, db.First(&stored, allocation.ID).Error)
		assert.Equal(t, models.AllocationStatusCompleted, stored.Status)
		assert.NotNil(t, stored.CompletedAt)
	})

	t.Run("completing missing rows returns not found", func(t *testing.T) {
		assert.ErrorIs(t, service.CompletePersonnel(99999), gorm.ErrRecordNotFound)
		assert.ErrorIs(t, service.AllocateBudget(99999), gorm.ErrRecordNotFound)
		assert.ErrorIs(t, service.CompleteMilitary(99999), gorm.ErrRecordNotFound)
	})
}

func TestReliefOperationService_TrackReliefEffort(t *testing.T) {
	db := setupTestDB(t)
	service := newReliefOperationService(db)

	t.Run("empty report", func(t *testing.T) {
		report, err := service.TrackReliefEffort()
		require.NoError(t, err)
		assert.Empty(t, report.Operations)
		assert.Zero(t, report.ActiveOperations)
		assert.Zero(t, report.ResourcesDeployed)
		assert.Zero(t, report.PersonnelDeployed)
	})

	t.Run("aggregates active operations only", func(t *testing.T) {
		require.NoError(t, service.AllocatePersonnel(&models.PersonnelAllocation{Type: "Medical", Location: "Riverside District", Count: 20}))
		require.NoError(t, service.AllocatePersonnel(&models.PersonnelAllocation{Type: "Rescue", Location: "Harbor", Count: 5}))

		require.NoError(t, db.Model(&models.ReliefOperation{}).
			Where("location = ?", "Riverside District").
			Updates(map[string]interface{}{"resources_deployed": 3, "personnel_deployed": 20}).Error)
		require.NoError(t, db.Model(&models.ReliefOperation{}).
			Where("location = ?", "Harbor").
			Updates(map[string]interface{}{"resources_deployed": 1, "personnel_deployed": 5}).Error)

		report, err := service.TrackReliefEffort()
		require.NoError(t, err)
		assert.Len(t, report.Operations, 2)
		assert.Equal(t, 2, report.ActiveOperations)
		assert.Equal(t, 4, report.ResourcesDeployed)
		assert.Equal(t, 25, report.PersonnelDeployed)

		var harbor models.ReliefOperation
		require.NoError(t, db.Where("location = ?", "Harbor").First(&harbor).Error)
		require.NoError(t, service.EndOperation(harbor.ID))

		report, err = service.TrackReliefEffort()
		require.NoError(t, err)
		assert.Len(t, report.Operations, 1)
		assert.Equal(t, 1, report.ActiveOperations)
		assert.Equal(t, 3, report.ResourcesDeployed)
		assert.Equal(t, 20, report.PersonnelDeployed)
	})

	t.Run("new allocation after ending starts a fresh operation", func(t *testing.T) {
		allocation := &models.PersonnelAllocation{Type: "Medical", Location: "Harbor", Count: 2}
		require.NoError(t, service.AllocatePersonnel(allocation))

		var operations []models.ReliefOperation
		require.NoError(t, db.Where("location = ?", "Harbor").Order("id").Find(&operations).Error)
		require.Len(t, operations, 2)
		assert.Equal(t, models.OperationStatusEnded, operations[0].Status)
		assert.Equal(t, models.OperationStatusActive, operations[1].Status)
		assert.Equal(t, operations[1].ID, allocation.OperationID)
	})

	t.Run("ending twice is rejected", func(t *testing.T) {
		var harbor models.ReliefOperation
		require.NoError(t, db.Where("location = ? AND status = ?", "Harbor", models.OperationStatusEnded).First(&harbor).Error)
		assert.Error(t, service.EndOperation(harbor.ID))
	})

	t.Run("ending missing operation returns not found", func(t *testing.T) {
		assert.ErrorIs(t, service.EndOperation(99999), gorm.ErrRecordNotFound)
	})
}
