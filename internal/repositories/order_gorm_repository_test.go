package repositories_test

import (
	"context"
	"testing"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupGORMRepo(t *testing.T) *repositories.GORMOrderRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)

	repo, err := repositories.NewGORMOrderRepository(db)
	assert.NoError(t, err)
	return repo
}

func TestGORMOrderRepository_CreateAndGet(t *testing.T) {
	repo := setupGORMRepo(t)

	draft := draftWorth48(true)
	draft.Position = &models.Position{Latitude: 40.71, Longitude: -74.0}

	created, err := repo.Create(context.Background(), draft)
	assert.NoError(t, err)
	assert.Equal(t, 48.0, created.OrderPrice)
	assert.InDelta(t, 9.6, created.PriorityPrice, 1e-9)

	fetched, err := repo.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Lee", fetched.Customer)
	// The cart snapshot and position survive the JSON round trip.
	assert.Equal(t, created.Cart, fetched.Cart)
	assert.NotNil(t, fetched.Position)
	assert.Equal(t, 40.71, fetched.Position.Latitude)
}

func TestGORMOrderRepository_GetUnknownOrder(t *testing.T) {
	repo := setupGORMRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestGORMOrderRepository_UpdatePriority(t *testing.T) {
	repo := setupGORMRepo(t)

	created, err := repo.Create(context.Background(), draftWorth48(false))
	assert.NoError(t, err)
	assert.Equal(t, 0.0, created.PriorityPrice)

	upgraded, err := repo.UpdatePriority(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.True(t, upgraded.Priority)
	assert.InDelta(t, 9.6, upgraded.PriorityPrice, 1e-9)

	again, err := repo.UpdatePriority(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, upgraded.Priority, again.Priority)
	assert.Equal(t, upgraded.PriorityPrice, again.PriorityPrice)

	_, err = repo.UpdatePriority(context.Background(), "missing")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}
