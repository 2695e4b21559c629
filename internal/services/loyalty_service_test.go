package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue_ops_backend/internal/models"
)

func TestComputeLevel(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   string
	}{
		{name: "negative balance stays base", points: -20, want: models.LevelBase},
		{name: "zero is base", points: 0, want: models.LevelBase},
		{name: "just below loyal", points: 99, want: models.LevelBase},
		{name: "loyal boundary", points: 100, want: models.LevelLoyal},
		{name: "premium boundary", points: 250, want: models.LevelPremium},
		{name: "between premium and vip", points: 499, want: models.LevelPremium},
		{name: "vip boundary", points: 500, want: models.LevelVIP},
		{name: "far above vip", points: 10000, want: models.LevelVIP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLevel(tt.points, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextLevelInfo(t *testing.T) {
	tests := []struct {
		name      string
		points    int
		wantLevel *string
		wantToGo  int
	}{
		{name: "fresh customer aims at loyal", points: 0, wantLevel: ptr(models.LevelLoyal), wantToGo: 100},
		{name: "mid tier aims at premium", points: 120, wantLevel: ptr(models.LevelPremium), wantToGo: 130},
		{name: "at vip there is nothing above", points: 500, wantLevel: nil, wantToGo: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, toGo := NextLevelInfo(tt.points, nil)
			if tt.wantLevel == nil {
				assert.Nil(t, level)
			} else {
				require.NotNil(t, level)
				assert.Equal(t, *tt.wantLevel, *level)
			}
			assert.Equal(t, tt.wantToGo, toGo)
		})
	}
}

func TestPointsForPurchase(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int
	}{
		{name: "free item earns nothing", amount: 0, want: 0},
		{name: "refund earns nothing", amount: -30, want: 0},
		{name: "below one unit floors to zero", amount: 9.99, want: 0},
		{name: "exactly one unit", amount: 10, want: 1},
		{name: "fraction is truncated", amount: 25.70, want: 2},
		{name: "large tab", amount: 347, want: 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsForPurchase(tt.amount))
		})
	}
}

func TestLoyaltyService_AwardOnCheckin(t *testing.T) {
	tests := []struct {
		name           string
		hasReservation bool
		wantPoints     int
	}{
		{name: "reserved guest earns full bonus", hasReservation: true, wantPoints: PointsCheckinReserved},
		{name: "walk-in earns half", hasReservation: false, wantPoints: PointsCheckinWalkIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			customer := f.seedCustomer("qr-1")
			event := f.seedEvent(string(models.EventStateLive), 100)

			err := f.loyalty.AwardOnCheckin(nil, customer.ID, event.ID, tt.hasReservation)
			require.NoError(t, err)

			entries, err := f.loyalty.EntriesForCustomer(customer.ID)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantPoints, entries[0].Points)

			// cached balance tracks the ledger sum
			cached, err := f.customerRepo.GetCustomerByID(nil, customer.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPoints, cached.LoyaltyPoints)
			assert.Equal(t, models.LevelBase, cached.Level)
		})
	}
}

func TestLoyaltyService_CacheFollowsLedger(t *testing.T) {
	f := newFixture()
	customer := f.seedCustomer("qr-2")
	event := f.seedEvent(string(models.EventStateLive), 100)

	// 10 check-ins at +10 each crosses the loyal boundary exactly
	for i := 0; i < 10; i++ {
		require.NoError(t, f.loyalty.AwardOnCheckin(nil, customer.ID, event.ID+int64(i), true))
	}

	cached, err := f.customerRepo.GetCustomerByID(nil, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, cached.LoyaltyPoints)
	assert.Equal(t, models.LevelLoyal, cached.Level)

	// a penalty drops the balance and demotes the cached level
	require.NoError(t, f.loyalty.AwardOnNoShow(nil, customer.ID, event.ID))

	cached, err = f.customerRepo.GetCustomerByID(nil, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 95, cached.LoyaltyPoints)
	assert.Equal(t, models.LevelBase, cached.Level)
}

func TestLoyaltyService_AwardOnPurchase_SkipsZeroPoint(t *testing.T) {
	f := newFixture()
	customer := f.seedCustomer("qr-3")
	event := f.seedEvent(string(models.EventStateLive), 100)

	require.NoError(t, f.loyalty.AwardOnPurchase(nil, customer.ID, event.ID, 9.50))

	entries, err := f.loyalty.EntriesForCustomer(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, entries, "sub-unit purchase must not write a ledger row")

	require.NoError(t, f.loyalty.AwardOnPurchase(nil, customer.ID, event.ID, 47))

	entries, err = f.loyalty.EntriesForCustomer(customer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Points)
}

func TestLoyaltyService_AwardOnFeedback_OncePerEvent(t *testing.T) {
	f := newFixture()
	customer := f.seedCustomer("qr-4")
	event := f.seedEvent(string(models.EventStateLive), 100)

	require.NoError(t, f.loyalty.AwardOnFeedback(nil, customer.ID, event.ID))
	require.NoError(t, f.loyalty.AwardOnFeedback(nil, customer.ID, event.ID))

	entries, err := f.loyalty.EntriesForCustomer(customer.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "feedback bonus is once per customer and event")

	// a different event earns again
	require.NoError(t, f.loyalty.AwardOnFeedback(nil, customer.ID, event.ID+1))

	entries, err = f.loyalty.EntriesForCustomer(customer.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLoyaltyService_Reverse(t *testing.T) {
	f := newFixture()
	customer := f.seedCustomer("qr-5")
	event := f.seedEvent(string(models.EventStateLive), 100)
	staffID := int64(7)

	require.NoError(t, f.loyalty.AwardOnCheckin(nil, customer.ID, event.ID, true))
	entries, err := f.loyalty.EntriesForCustomer(customer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	reversal, err := f.loyalty.Reverse(entries[0].ID, &staffID)
	require.NoError(t, err)
	assert.Equal(t, -PointsCheckinReserved, reversal.Points)

	// original untouched, reversal appended, balance nets to zero
	entries, err = f.loyalty.EntriesForCustomer(customer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, PointsCheckinReserved, entries[0].Points)

	cached, err := f.customerRepo.GetCustomerByID(nil, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, cached.LoyaltyPoints)

	assert.Contains(t, f.auditRepo.actionsRecorded(), models.AuditActionLedgerReversal)
}

func TestLoyaltyService_Reverse_UnknownEntry(t *testing.T) {
	f := newFixture()

	_, err := f.loyalty.Reverse(404, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoyaltyService_UpdateThresholds(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateThresholdsRequest
		wantErr bool
	}{
		{name: "valid ascending", req: UpdateThresholdsRequest{Loyal: 50, Premium: 150, VIP: 400}},
		{name: "equal boundaries allowed", req: UpdateThresholdsRequest{Loyal: 100, Premium: 100, VIP: 100}},
		{name: "negative rejected", req: UpdateThresholdsRequest{Loyal: -1, Premium: 100, VIP: 200}, wantErr: true},
		{name: "non-monotonic rejected", req: UpdateThresholdsRequest{Loyal: 300, Premium: 100, VIP: 500}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			got, err := f.loyalty.UpdateThresholds(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, 4)
			assert.Equal(t, 0, got[0].MinPoints, "base stays pinned at zero")
			assert.Equal(t, tt.req.VIP, got[3].MinPoints)
		})
	}
}

func ptr[T any](v T) *T { return &v }
