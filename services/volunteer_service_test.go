package services

import (
	"testing"

	"crisislink-http-service/models"
	"crisislink-http-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVolunteerService(db *gorm.DB) *VolunteerService {
	return &VolunteerService{
		DB:       db,
		Config:   newTestConfig(),
		Verifier: utils.PlaintextVerifier{},
	}
}

func TestVolunteerService_Register(t *testing.T) {
	db := setupTestDB(t)
	service := newVolunteerService(db)

	t.Run("register creates pending verification", func(t *testing.T) {
		volunteer := &models.Volunteer{
			Name:     "Li Na",
			Location: "North Station",
			Username: "lina",
			Password: "secret123",
		}
		require.NoError(t, service.Register(volunteer))
		assert.NotZero(t, volunteer.ID)

		var verification models.AccountVerification
		require.NoError(t, db.Where("user_type = ? AND user_id = ?", "volunteer", volunteer.ID).First(&verification).Error)
		assert.Equal(t, models.VerificationStatusPending, verification.Status)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		err := service.Register(&models.Volunteer{
			Name:     "Imposter",
			Username: "lina",
			Password: "other",
		})
		assert.Error(t, err)
	})
}

func TestVolunteerService_Donate(t *testing.T) {
	db := setupTestDB(t)
	service := newVolunteerService(db)

	volunteer := &models.Volunteer{Name: "Li Na", Username: "lina", Password: "secret123"}
	require.NoError(t, service.Register(volunteer))

	t.Run("records donation", func(t *testing.T) {
		require.NoError(t, service.Donate(volunteer.ID, 150.5))

		var donation models.Donation
		require.NoError(t, db.Where("volunteer_id = ?", volunteer.ID).First(&donation).Error)
		assert.Equal(t, 150.5, donation.Amount)
	})

	t.Run("unknown volunteer returns not found", func(t *testing.T) {
		err := service.Donate(99999, 10)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestVolunteerService_OfferHelp(t *testing.T) {
	db := setupTestDB(t)
	service := newVolunteerService(db)

	// 旧客户端不校验志愿者是否存在，直接落库
	require.NoError(t, service.OfferHelp(42, "Deliver water to shelter 3"))

	var offer models.VolunteerHelpOffer
	require.NoError(t, db.Where("volunteer_id = ?", 42).First(&offer).Error)
	assert.Equal(t, "Deliver water to shelter 3", offer.Description)
}

func TestVolunteerService_History(t *testing.T) {
	db := setupTestDB(t)
	service := newVolunteerService(db)

	volunteer := &models.Volunteer{Name: "Li Na", Username: "lina", Password: "secret123"}
	require.NoError(t, service.Register(volunteer))

	require.NoError(t, service.AcceptRequest(volunteer.ID, 7))
	require.NoError(t, service.AcceptRequest(volunteer.ID, 11))
	require.NoError(t, service.AcceptRequest(volunteer.ID, 3))

	t.Run("newest assignment first", func(t *testing.T) {
		history, err := service.GetVolunteerHistory(volunteer.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{3, 11, 7}, history)
	})

	t.Run("no assignments yields empty history", func(t *testing.T) {
		history, err := service.GetVolunteerHistory(99999)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
