package services

import (
	"testing"

	"crisislink-http-service/models"
	"crisislink-http-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAgencyService(db *gorm.DB) *AgencyService {
	return &AgencyService{
		DB:       db,
		Config:   newTestConfig(),
		Verifier: utils.PlaintextVerifier{},
	}
}

func TestAgencyService_Register(t *testing.T) {
	db := setupTestDB(t)
	service := newAgencyService(db)

	agency := &models.GovernmentAgency{
		AgencyName: "National Disaster Response",
		Username:   "ndr_admin",
		Password:   "secret123",
	}
	require.NoError(t, service.Register(agency))
	assert.NotZero(t, agency.ID)

	t.Run("duplicate username is rejected", func(t *testing.T) {
		err := service.Register(&models.GovernmentAgency{
			AgencyName: "Imposter Agency",
			Username:   "ndr_admin",
			Password:   "x",
		})
		assert.Error(t, err)
	})

	t.Run("authenticate", func(t *testing.T) {
		found, ok := service.Authenticate("ndr_admin", "secret123")
		require.True(t, ok)
		assert.Equal(t, agency.ID, found.ID)

		_, ok = service.Authenticate("ndr_admin", "wrong")
		assert.False(t, ok)
	})
}

func TestAgencyService_GetSeverityReport(t *testing.T) {
	db := setupTestDB(t)
	service := newAgencyService(db)

	createTestAgency(t, db, "Coastal Guard", 1)
	createTestAgency(t, db, "National Disaster Response", 7)
	createTestAgency(t, db, "City Fire Department", 4)

	report, err := service.GetSeverityReport()
	require.NoError(t, err)
	require.Len(t, report, 3)

	assert.Equal(t, "National Disaster Response", report[0].AgencyName)
	assert.Equal(t, 7, report[0].SeverityLevel)
	assert.Equal(t, "City Fire Department", report[1].AgencyName)
	assert.Equal(t, "Coastal Guard", report[2].AgencyName)
}
