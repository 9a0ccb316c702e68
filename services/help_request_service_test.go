package services

import (
	"testing"

	"crisislink-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHelpRequestService(db *gorm.DB) InterfaceHelpRequestService {
	return NewHelpRequestService(db, newTestConfig())
}

func TestHelpRequestService_CreateRequest(t *testing.T) {
	db := setupTestDB(t)
	service := newHelpRequestService(db)

	t.Run("create sets pending status and flags requester", func(t *testing.T) {
		person := createTestPerson(t, db, "requester1")
		require.False(t, person.HasActiveRequest)

		request := &models.HelpRequest{
			RequesterID: person.ID,
			Type:        "Medical",
			Description: "Need insulin urgently",
			Location:    "Riverside District",
			Urgency:     7,
			Status:      "whatever the client sent",
		}
		require.NoError(t, service.CreateRequest(request))

		assert.NotZero(t, request.ID)
		assert.Equal(t, models.HelpRequestStatusPending, request.Status)

		var stored models.PersonInCrisis
		require.NoError(t, db.First(&stored, person.ID).Error)
		assert.True(t, stored.HasActiveRequest)
	})

	t.Run("requester id is required", func(t *testing.T) {
		err := service.CreateRequest(&models.HelpRequest{Type: "Food"})
		assert.Error(t, err)
	})

	t.Run("unknown requester is not an error", func(t *testing.T) {
		request := &models.HelpRequest{
			RequesterID: 99999,
			Type:        "Shelter",
			Location:    "North Station",
		}
		require.NoError(t, service.CreateRequest(request))
		assert.NotZero(t, request.ID)
	})
}

func TestHelpRequestService_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	service := newHelpRequestService(db)

	create := func(t *testing.T, username string) (*models.PersonInCrisis, *models.HelpRequest) {
		person := createTestPerson(t, db, username)
		request := &models.HelpRequest{
			RequesterID: person.ID,
			Type:        "Medical",
			Location:    "Riverside District",
			Urgency:     5,
		}
		require.NoError(t, service.CreateRequest(request))
		return person, request
	}

	t.Run("resolved clears requester flag", func(t *testing.T) {
		person, request := create(t, "resolved-user")

		require.NoError(t, service.UpdateStatus(request.ID, models.HelpRequestStatusResolved))

		var stored models.PersonInCrisis
		require.NoError(t, db.First(&stored, person.ID).Error)
		assert.False(t, stored.HasActiveRequest)

		updated, err := service.GetRequestByID(request.ID)
		require.NoError(t, err)
		assert.Equal(t, models.HelpRequestStatusResolved, updated.Status)
	})

	t.Run("cancelled clears requester flag", func(t *testing.T) {
		person, request := create(t, "cancelled-user")

		require.NoError(t, service.UpdateStatus(request.ID, models.HelpRequestStatusCancelled))

		var stored models.PersonInCrisis
		require.NoError(t, db.First(&stored, person.ID).Error)
		assert.False(t, stored.HasActiveRequest)
	})

	t.Run("free-form status is stored verbatim and keeps flag", func(t *testing.T) {
		person, request := create(t, "freeform-user")

		require.NoError(t, service.UpdateStatus(request.ID, "Waiting For Transport"))

		updated, err := service.GetRequestByID(request.ID)
		require.NoError(t, err)
		assert.Equal(t, "Waiting For Transport", updated.Status)

		var stored models.PersonInCrisis
		require.NoError(t, db.First(&stored, person.ID).Error)
		assert.True(t, stored.HasActiveRequest)
	})

	t.Run("missing request returns not found", func(t *testing.T) {
		err := service.UpdateStatus(99999, models.HelpRequestStatusResolved)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestHelpRequestService_Queries(t *testing.T) {
	db := setupTestDB(t)
	service := newHelpRequestService(db)

	person := createTestPerson(t, db, "query-user")
	other := createTestPerson(t, db, "other-user")

	for _, reqType := range []string{"Medical", "Food"} {
		require.NoError(t, service.CreateRequest(&models.HelpRequest{
			RequesterID: person.ID,
			Type:        reqType,
			Location:    "Riverside District",
		}))
	}
	require.NoError(t, service.CreateRequest(&models.HelpRequest{
		RequesterID: other.ID,
		Type:        "Shelter",
		Location:    "North Station",
	}))

	all, err := service.GetAllRequests()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := service.GetRequestsByRequesterID(person.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, service.DeleteRequest(mine[0].ID))

	_, err = service.GetRequestByID(mine[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
