package services

import (
	"errors"
	"fmt"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/repositories"
)

// --- Feedback DTOs ---
type SubmitFeedbackRequest struct {
	CustomerID    int64   `json:"customer_id" binding:"required"`
	EventID       int64   `json:"event_id" binding:"required"`
	MusicRating   int     `json:"music_rating" binding:"required"`
	EntryRating   int     `json:"entry_rating" binding:"required"`
	VenueRating   int     `json:"venue_rating" binding:"required"`
	ServiceRating int     `json:"service_rating"`
	Notes         *string `json:"notes,omitempty"`
}

// FeedbackService accepts one review per customer per attended event. The
// bonus points are granted with the submission, in the same transaction.
type FeedbackService interface {
	Submit(req SubmitFeedbackRequest) (*models.Feedback, error)
	GetForCustomerEvent(customerID, eventID int64) (*models.Feedback, error)
}

type feedbackService struct {
	feedbackRepo   repositories.FeedbackRepository
	checkinRepo    repositories.CheckinRepository
	loyaltyService LoyaltyService
	txRunner       repositories.TxRunner
}

// NewFeedbackService creates a new instance of FeedbackService.
func NewFeedbackService(
	fr repositories.FeedbackRepository,
	chr repositories.CheckinRepository,
	ls LoyaltyService,
	tx repositories.TxRunner,
) FeedbackService {
	return &feedbackService{
		feedbackRepo:   fr,
		checkinRepo:    chr,
		loyaltyService: ls,
		txRunner:       tx,
	}
}

func validRating(r int) bool { return r >= 1 && r <= 10 }

func (s *feedbackService) Submit(req SubmitFeedbackRequest) (*models.Feedback, error) {
	if !validRating(req.MusicRating) || !validRating(req.EntryRating) || !validRating(req.VenueRating) {
		return nil, fmt.Errorf("%w: ratings must be between 1 and 10", ErrValidation)
	}
	if req.ServiceRating != 0 && !validRating(req.ServiceRating) {
		return nil, fmt.Errorf("%w: service rating must be between 1 and 10", ErrValidation)
	}

	var feedback *models.Feedback
	err := s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		if _, err := s.checkinRepo.GetCheckinForCustomerEvent(ex, req.CustomerID, req.EventID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCheckinRequired
			}
			return fmt.Errorf("failed to check attendance: %w", err)
		}

		created, err := s.feedbackRepo.CreateFeedback(ex, &models.Feedback{
			CustomerID:    req.CustomerID,
			EventID:       req.EventID,
			MusicRating:   req.MusicRating,
			EntryRating:   req.EntryRating,
			VenueRating:   req.VenueRating,
			ServiceRating: req.ServiceRating,
			Notes:         req.Notes,
		})
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrFeedbackAlreadyGiven
			}
			return fmt.Errorf("failed to record feedback: %w", err)
		}
		feedback = created
		return s.loyaltyService.AwardOnFeedback(ex, req.CustomerID, req.EventID)
	})
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *feedbackService) GetForCustomerEvent(customerID, eventID int64) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.GetForCustomerEvent(nil, customerID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: no feedback recorded", ErrValidation)
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return feedback, nil
}
