package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue_ops_backend/internal/models"
)

func TestPurchaseService_Record(t *testing.T) {
	f := newFixture()
	customer := f.seedCustomer("qr-bar")
	event := f.seedEvent(string(models.EventStateLive), 100)
	_, err := f.checkins.PerformScan(ScanRequest{ScanCode: "qr-bar"})
	require.NoError(t, err)

	purchase, err := f.purchases.Record(RecordPurchaseRequest{
		CustomerID:  customer.ID,
		EventID:     event.ID,
		ProductName: "Bottle",
		Amount:      120,
		SalesPoint:  models.SalesPointTable,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(120), purchase.Amount)

	// entry bonus plus floor(120/10) purchase points
	points, err := f.loyaltyRepo.SumPointsForCustomer(nil, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, PointsCheckinWalkIn+12, points)

	listed, err := f.purchases.ListForCustomerEvent(customer.ID, event.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestPurchaseService_Record_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *RecordPurchaseRequest)
		wantErr error
	}{
		{name: "unknown sales point", mutate: func(req *RecordPurchaseRequest) { req.SalesPoint = "rooftop" }, wantErr: ErrValidation},
		{name: "zero amount", mutate: func(req *RecordPurchaseRequest) { req.Amount = 0 }, wantErr: ErrValidation},
		{name: "missing product", mutate: func(req *RecordPurchaseRequest) { req.ProductName = "" }, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			customer := f.seedCustomer("qr-bar")
			event := f.seedEvent(string(models.EventStateLive), 100)
			_, err := f.checkins.PerformScan(ScanRequest{ScanCode: "qr-bar"})
			require.NoError(t, err)

			req := RecordPurchaseRequest{
				CustomerID:  customer.ID,
				EventID:     event.ID,
				ProductName: "Drink",
				Amount:      15,
				SalesPoint:  models.SalesPointTable,
			}
			tt.mutate(&req)

			_, err = f.purchases.Record(req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPurchaseService_Record_WithoutCheckin(t *testing.T) {
	f := newFixture()
	customer := f.seedCustomer("qr-nobody")
	event := f.seedEvent(string(models.EventStateLive), 100)

	_, err := f.purchases.Record(RecordPurchaseRequest{
		CustomerID:  customer.ID,
		EventID:     event.ID,
		ProductName: "Drink",
		Amount:      15,
		SalesPoint:  models.SalesPointPrive,
	})
	assert.ErrorIs(t, err, ErrCheckinRequired)
	assert.Empty(t, f.purchaseRepo.purchases)
}
