package services

import (
	"testing"

	"crisislink-http-service/models"
	"crisislink-http-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPersonService(db *gorm.DB) *PersonService {
	return &PersonService{
		DB:       db,
		Config:   newTestConfig(),
		Verifier: utils.PlaintextVerifier{},
	}
}

func TestPersonService_Register(t *testing.T) {
	db := setupTestDB(t)
	service := newPersonService(db)

	t.Run("register stores hashed password", func(t *testing.T) {
		person := &models.PersonInCrisis{
			Name:     "Zhang Wei",
			Location: "Riverside District",
			Username: "zhangwei",
			Password: "secret123",
		}
		require.NoError(t, service.Register(person))
		assert.NotZero(t, person.ID)

		var stored models.PersonInCrisis
		require.NoError(t, db.First(&stored, person.ID).Error)
		assert.Equal(t, "Pending", stored.Status)
		assert.NotEqual(t, "", stored.Password)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		err := service.Register(&models.PersonInCrisis{
			Name:     "Imposter",
			Username: "zhangwei",
			Password: "other",
		})
		assert.Error(t, err)
	})
}

func TestPersonService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	service := newPersonService(db)

	require.NoError(t, service.Register(&models.PersonInCrisis{
		Name:     "Zhang Wei",
		Username: "zhangwei",
		Password: "secret123",
	}))

	t.Run("valid credentials", func(t *testing.T) {
		person, ok := service.Authenticate("zhangwei", "secret123")
		require.True(t, ok)
		assert.Equal(t, "zhangwei", person.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, ok := service.Authenticate("zhangwei", "wrong")
		assert.False(t, ok)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, ok := service.Authenticate("nobody", "secret123")
		assert.False(t, ok)
	})
}

func TestPersonService_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	service := newPersonService(db)

	person := &models.PersonInCrisis{Name: "Zhang Wei", Username: "zhangwei", Password: "secret123"}
	require.NoError(t, service.Register(person))

	t.Run("update status", func(t *testing.T) {
		updated, err := service.UpdatePerson(person.ID, map[string]interface{}{"status": "Aid Provided"})
		require.NoError(t, err)
		assert.Equal(t, "Aid Provided", updated.Status)
	})

	t.Run("update missing person returns not found", func(t *testing.T) {
		_, err := service.UpdatePerson(99999, map[string]interface{}{"status": "x"})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, service.DeletePerson(person.ID))
		_, err := service.GetPersonByID(person.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
