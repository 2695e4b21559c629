package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue_ops_backend/internal/models"
)

func TestTableService_Create(t *testing.T) {
	f := newFixture()
	event := f.seedEvent(string(models.EventStateScheduled), 100)

	created, err := f.tables.Create(CreateTableRequest{
		EventID:     event.ID,
		TableNumber: 3,
		Capacity:    8,
	})
	require.NoError(t, err)

	assert.True(t, created.Active, "new tables start available")
	assert.Equal(t, 8, created.Capacity)

	// same number on the same event is refused
	_, err = f.tables.Create(CreateTableRequest{
		EventID:     event.ID,
		TableNumber: 3,
		Capacity:    4,
	})
	assert.ErrorIs(t, err, ErrValidation)

	// but another event may reuse the number
	other := f.seedEvent(string(models.EventStateScheduled), 100)
	_, err = f.tables.Create(CreateTableRequest{
		EventID:     other.ID,
		TableNumber: 3,
		Capacity:    4,
	})
	assert.NoError(t, err)
}

func TestTableService_Create_Rejections(t *testing.T) {
	f := newFixture()
	event := f.seedEvent(string(models.EventStateScheduled), 100)

	_, err := f.tables.Create(CreateTableRequest{EventID: event.ID, TableNumber: 1, Capacity: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.tables.Create(CreateTableRequest{EventID: 404, TableNumber: 1, Capacity: 4})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestTableService_UpdateAndDelete(t *testing.T) {
	f := newFixture()
	event := f.seedEvent(string(models.EventStateScheduled), 100)

	created, err := f.tables.Create(CreateTableRequest{
		EventID:     event.ID,
		TableNumber: 7,
		Capacity:    6,
	})
	require.NoError(t, err)

	created.Capacity = 10
	created.Active = false
	updated, err := f.tables.Update(created)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Capacity)
	assert.False(t, updated.Active)

	listed, err := f.tables.ListForEvent(event.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, f.tables.Delete(created.ID))

	listed, err = f.tables.ListForEvent(event.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	err = f.tables.Delete(created.ID)
	assert.ErrorIs(t, err, ErrValidation)
}
