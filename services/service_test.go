package services

import (
	"testing"

	"crisislink-http-service/config"
	"crisislink-http-service/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Admin{},
		&models.PersonInCrisis{},
		&models.Volunteer{},
		&models.ReliefProvider{},
		&models.GovernmentAgency{},
		&models.HelpRequest{},
		&models.ReliefOperation{},
		&models.PersonnelAllocation{},
		&models.EmergencyBudget{},
		&models.MilitarySupportRequest{},
		&models.EmergencyProtocol{},
		&models.AlertSystem{},
		&models.AlertSubscriber{},
		&models.AlertHistory{},
		&models.AlertNotification{},
		&models.Donation{},
		&models.VolunteerHelpOffer{},
		&models.VolunteerAssignment{},
		&models.SecurityLog{},
		&models.SecuritySetting{},
		&models.AccountVerification{},
	)
	require.NoError(t, err)

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		EnvType:               "test",
		AlertUrgencyThreshold: 8,
		AlertTopicPrefix:      "crisislink/alerts",
	}
}

func createTestPerson(t *testing.T, db *gorm.DB, username string) *models.PersonInCrisis {
	person := &models.PersonInCrisis{
		Name:     "Test Person",
		Location: "Riverside District",
		Username: username,
		Password: "secret123",
	}
	require.NoError(t, db.Create(person).Error)
	return person
}

func createTestAgency(t *testing.T, db *gorm.DB, name string, severity int) *models.GovernmentAgency {
	agency := &models.GovernmentAgency{
		AgencyName:    name,
		SeverityLevel: severity,
		Username:      name,
		Password:      "secret123",
	}
	require.NoError(t, db.Create(agency).Error)
	return agency
}
