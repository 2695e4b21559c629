package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue_ops_backend/internal/models"
)

func TestCustomerService_Create(t *testing.T) {
	f := newFixture()

	created, err := f.customers.Create(CreateCustomerRequest{
		FirstName: "Dana",
		LastName:  "Kim",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ScanCode, "scan code is generated at creation")
	assert.Equal(t, models.LevelBase, created.Level)
	assert.Equal(t, 0, created.LoyaltyPoints)
	assert.Equal(t, "active", created.AccountState)

	// the generated code resolves back to the same customer
	resolved, err := f.customers.GetByScanCode(created.ScanCode)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
}

func TestCustomerService_Create_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.customers.Create(CreateCustomerRequest{FirstName: "Dana"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.customers.Create(CreateCustomerRequest{LastName: "Kim"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCustomerService_Lookups(t *testing.T) {
	f := newFixture()
	seeded := f.seedCustomer("qr-look")

	got, err := f.customers.GetByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ScanCode, got.ScanCode)

	_, err = f.customers.GetByID(404)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = f.customers.GetByScanCode("qr-missing")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
