package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue_ops_backend/internal/models"
)

func TestFeedbackService_Submit(t *testing.T) {
	f := newFixture()
	customer := f.seedCustomer("qr-fb")
	event := f.seedEvent(string(models.EventStateLive), 100)
	_, err := f.checkins.PerformScan(ScanRequest{ScanCode: "qr-fb"})
	require.NoError(t, err)

	feedback, err := f.feedback.Submit(SubmitFeedbackRequest{
		CustomerID:  customer.ID,
		EventID:     event.ID,
		MusicRating: 8,
		EntryRating: 7,
		VenueRating: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, feedback.MusicRating)

	points, err := f.loyaltyRepo.SumPointsForCustomer(nil, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, PointsCheckinWalkIn+PointsFeedback, points)

	stored, err := f.feedback.GetForCustomerEvent(customer.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, feedback.ID, stored.ID)
}

func TestFeedbackService_Submit_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture, req *SubmitFeedbackRequest)
		wantErr error
	}{
		{
			name: "rating out of range",
			prepare: func(f *fixture, req *SubmitFeedbackRequest) {
				req.MusicRating = 11
			},
			wantErr: ErrValidation,
		},
		{
			name: "service rating out of range",
			prepare: func(f *fixture, req *SubmitFeedbackRequest) {
				req.ServiceRating = -2
			},
			wantErr: ErrValidation,
		},
		{
			name: "no check-in recorded",
			prepare: func(f *fixture, req *SubmitFeedbackRequest) {
				_ = f.checkinRepo.DeleteCheckin(nil, 1)
			},
			wantErr: ErrCheckinRequired,
		},
		{
			name: "second submission same event",
			prepare: func(f *fixture, req *SubmitFeedbackRequest) {
				_, err := f.feedback.Submit(*req)
				require.NoError(t, err)
			},
			wantErr: ErrFeedbackAlreadyGiven,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			customer := f.seedCustomer("qr-fb")
			event := f.seedEvent(string(models.EventStateLive), 100)
			_, err := f.checkins.PerformScan(ScanRequest{ScanCode: "qr-fb"})
			require.NoError(t, err)

			req := SubmitFeedbackRequest{
				CustomerID:  customer.ID,
				EventID:     event.ID,
				MusicRating: 5,
				EntryRating: 5,
				VenueRating: 5,
			}
			tt.prepare(f, &req)

			_, err = f.feedback.Submit(req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFeedbackService_BonusIsOncePerEvent(t *testing.T) {
	f := newFixture()
	customer := f.seedCustomer("qr-fb2")
	event := f.seedEvent(string(models.EventStateLive), 100)
	_, err := f.checkins.PerformScan(ScanRequest{ScanCode: "qr-fb2"})
	require.NoError(t, err)

	_, err = f.feedback.Submit(SubmitFeedbackRequest{
		CustomerID:  customer.ID,
		EventID:     event.ID,
		MusicRating: 6,
		EntryRating: 6,
		VenueRating: 6,
	})
	require.NoError(t, err)

	// the duplicate submit fails before the ledger is touched again
	_, err = f.feedback.Submit(SubmitFeedbackRequest{
		CustomerID:  customer.ID,
		EventID:     event.ID,
		MusicRating: 9,
		EntryRating: 9,
		VenueRating: 9,
	})
	require.ErrorIs(t, err, ErrFeedbackAlreadyGiven)

	entries, err := f.loyaltyRepo.ListEntriesForCustomer(customer.ID)
	require.NoError(t, err)

	bonus := 0
	for _, e := range entries {
		if e.Points == PointsFeedback {
			bonus++
		}
	}
	assert.Equal(t, 1, bonus)
}
