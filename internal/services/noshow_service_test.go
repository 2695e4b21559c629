package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue_ops_backend/internal/models"
)

func TestNoShowService_Run(t *testing.T) {
	f := newFixture()
	event := f.seedPastEvent(string(models.EventStateScheduled))

	attended := f.seedCustomer("qr-in")
	absent := f.seedCustomer("qr-out")
	attendedRes := f.seedActiveReservation(attended.ID, event.ID, string(models.ReservationCategoryPresale))
	absentRes := f.seedActiveReservation(absent.ID, event.ID, string(models.ReservationCategoryList))

	// the attendee's entry was recorded manually after the fact
	_, err := f.checkinRepo.CreateCheckin(nil, &models.Checkin{
		CustomerID: attended.ID,
		EventID:    event.ID,
		Category:   string(models.CheckinCategoryPresale),
	})
	require.NoError(t, err)

	result, err := f.noShow.Run(SweepScope{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Fulfilled)
	assert.Equal(t, 1, result.NoShow)
	assert.Equal(t, 0, result.AlreadyTerminal)

	stored, err := f.reservationRepo.GetReservationByID(nil, attendedRes.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationStatusFulfilled), stored.Status)

	stored, err = f.reservationRepo.GetReservationByID(nil, absentRes.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationStatusNoShow), stored.Status)

	// penalty lands only on the absentee
	points, err := f.loyaltyRepo.SumPointsForCustomer(nil, absent.ID)
	require.NoError(t, err)
	assert.Equal(t, PointsNoShow, points)

	points, err = f.loyaltyRepo.SumPointsForCustomer(nil, attended.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, points, "attendance settles without ledger movement")

	assert.Contains(t, f.auditRepo.actionsRecorded(), models.AuditActionReservationFulfilled)
	assert.Contains(t, f.auditRepo.actionsRecorded(), models.AuditActionNoShowAssigned)
}

func TestNoShowService_Run_Idempotent(t *testing.T) {
	f := newFixture()
	event := f.seedPastEvent(string(models.EventStateScheduled))
	absent := f.seedCustomer("qr-out")
	f.seedActiveReservation(absent.ID, event.ID, string(models.ReservationCategoryList))

	first, err := f.noShow.Run(SweepScope{})
	require.NoError(t, err)
	require.Equal(t, 1, first.NoShow)

	second, err := f.noShow.Run(SweepScope{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.NoShow)
	assert.Equal(t, 0, second.Fulfilled)
	assert.Equal(t, 0, second.AlreadyTerminal)

	// exactly one penalty, no matter how often the sweep runs
	entries, err := f.loyaltyRepo.ListEntriesForCustomer(absent.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNoShowService_Run_SkipsFutureEvents(t *testing.T) {
	f := newFixture()
	upcoming := f.seedEvent(string(models.EventStateScheduled), 100)
	customer := f.seedCustomer("qr-soon")
	reservation := f.seedActiveReservation(customer.ID, upcoming.ID, string(models.ReservationCategoryList))

	result, err := f.noShow.Run(SweepScope{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.NoShow)

	stored, err := f.reservationRepo.GetReservationByID(nil, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationStatusActive), stored.Status)
}

func TestNoShowService_Run_Scoped(t *testing.T) {
	f := newFixture()
	eventA := f.seedPastEvent(string(models.EventStateScheduled))
	eventB := f.seedPastEvent(string(models.EventStateScheduled))

	customerA := f.seedCustomer("qr-a")
	customerB := f.seedCustomer("qr-b")
	resA := f.seedActiveReservation(customerA.ID, eventA.ID, string(models.ReservationCategoryList))
	resB := f.seedActiveReservation(customerB.ID, eventB.ID, string(models.ReservationCategoryList))

	result, err := f.noShow.Run(SweepScope{EventID: &eventA.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NoShow)

	stored, err := f.reservationRepo.GetReservationByID(nil, resA.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationStatusNoShow), stored.Status)

	// the other event's reservation is untouched
	stored, err = f.reservationRepo.GetReservationByID(nil, resB.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationStatusActive), stored.Status)

	result, err = f.noShow.Run(SweepScope{CustomerID: &customerB.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NoShow)
}

func TestNoShowService_ReconcileEventWithin(t *testing.T) {
	f := newFixture()
	event := f.seedEvent(string(models.EventStateLive), 100)

	attended := f.seedCustomer("qr-in")
	absent := f.seedCustomer("qr-out")
	f.seedActiveReservation(attended.ID, event.ID, string(models.ReservationCategoryPresale))
	f.seedActiveReservation(absent.ID, event.ID, string(models.ReservationCategoryList))

	_, err := f.checkinRepo.CreateCheckin(nil, &models.Checkin{
		CustomerID: attended.ID,
		EventID:    event.ID,
		Category:   string(models.CheckinCategoryPresale),
	})
	require.NoError(t, err)

	// same-day events are settled even though their date has not passed yet
	result, err := f.noShow.ReconcileEventWithin(nil, event.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Fulfilled)
	assert.Equal(t, 1, result.NoShow)
}
