package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/queue"
	"venue_ops_backend/internal/repositories"
)

// --- No-show DTOs ---
type SweepScope struct {
	EventID    *int64 `json:"event_id,omitempty"`
	CustomerID *int64 `json:"customer_id,omitempty"`
}

type SweepResult struct {
	Fulfilled       int `json:"fulfilled"`
	NoShow          int `json:"no_show"`
	AlreadyTerminal int `json:"already_terminal"`
}

// NoShowService reconciles active reservations after their event has passed:
// reservations matched by a recorded check-in become fulfilled, the rest
// become no-shows and take the ledger penalty. The sweep is idempotent;
// rerunning it touches nothing, because only still-active rows qualify and
// every status write is guarded on the active state.
type NoShowService interface {
	Run(scope SweepScope) (*SweepResult, error)
	ReconcileEventWithin(ex repositories.SQLExecutor, eventID int64, actorStaffID *int64) (*SweepResult, error)
}

type noShowService struct {
	reservationRepo repositories.ReservationRepository
	checkinRepo     repositories.CheckinRepository
	auditRepo       repositories.AuditRepository
	loyaltyService  LoyaltyService
	txRunner        repositories.TxRunner
	publisher       *queue.Publisher
}

// NewNoShowService creates a new instance of NoShowService.
func NewNoShowService(
	rr repositories.ReservationRepository,
	chr repositories.CheckinRepository,
	ar repositories.AuditRepository,
	ls LoyaltyService,
	tx repositories.TxRunner,
	pub *queue.Publisher,
) NoShowService {
	return &noShowService{
		reservationRepo: rr,
		checkinRepo:     chr,
		auditRepo:       ar,
		loyaltyService:  ls,
		txRunner:        tx,
		publisher:       pub,
	}
}

// Run sweeps active reservations whose event date has passed, optionally
// narrowed to one event or one customer. Each reservation is settled in its
// own transaction; a row that fails is logged and skipped so one bad record
// cannot stall the whole sweep.
func (s *noShowService) Run(scope SweepScope) (*SweepResult, error) {
	stale, err := s.reservationRepo.ListStaleActive(scope.EventID, scope.CustomerID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list stale reservations: %w", err)
	}

	result := &SweepResult{}
	for i := range stale {
		res := stale[i]
		before := result.NoShow
		err := s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
			return s.settleWithin(ex, &res, nil, result)
		})
		if err != nil {
			log.Error().Err(err).
				Int64("reservation_id", res.ID).
				Msg("No-show sweep: failed to settle reservation")
			continue
		}
		if result.NoShow > before {
			s.publisher.NoShowFinalized(queue.NoShowFinalizedEvent{
				ReservationID: res.ID,
				CustomerID:    res.CustomerID,
				EventID:       res.EventID,
				FinalizedAt:   time.Now(),
			})
		}
	}
	return result, nil
}

// ReconcileEventWithin settles every remaining active reservation for one
// event inside the caller's transaction. The event-close transition calls
// this so closing and reconciling commit or roll back together.
func (s *noShowService) ReconcileEventWithin(ex repositories.SQLExecutor, eventID int64, actorStaffID *int64) (*SweepResult, error) {
	active, err := s.reservationRepo.ListActiveForEvent(ex, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}

	result := &SweepResult{}
	for i := range active {
		if err := s.settleWithin(ex, &active[i], actorStaffID, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// settleWithin decides one reservation's fate. A check-in for the same
// customer+event means the guest did attend, so the reservation is marked
// fulfilled with no ledger movement. Otherwise it becomes a no-show with
// the penalty. Both writes are guarded on the active status; a false
// rows-affected result means someone else settled the row first.
func (s *noShowService) settleWithin(ex repositories.SQLExecutor, res *models.Reservation, actorStaffID *int64, result *SweepResult) error {
	checkin, err := s.checkinRepo.GetCheckinForCustomerEvent(ex, res.CustomerID, res.EventID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up check-in: %w", err)
	}

	if checkin != nil {
		applied, err := s.reservationRepo.UpdateReservationStatusIfActive(ex, res.ID, string(models.ReservationStatusFulfilled))
		if err != nil {
			return fmt.Errorf("failed to mark reservation fulfilled: %w", err)
		}
		if !applied {
			result.AlreadyTerminal++
			return nil
		}
		result.Fulfilled++
		return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
			TableName: "reservations",
			RecordID:  res.ID,
			StaffID:   actorStaffID,
			Action:    models.AuditActionReservationFulfilled,
			Note:      fmt.Sprintf("Matched check-in #%d during reconciliation", checkin.ID),
		})
	}

	applied, err := s.reservationRepo.UpdateReservationStatusIfActive(ex, res.ID, string(models.ReservationStatusNoShow))
	if err != nil {
		return fmt.Errorf("failed to mark reservation no-show: %w", err)
	}
	if !applied {
		result.AlreadyTerminal++
		return nil
	}
	if err := s.loyaltyService.AwardOnNoShow(ex, res.CustomerID, res.EventID); err != nil {
		return err
	}
	result.NoShow++
	return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
		TableName: "reservations",
		RecordID:  res.ID,
		StaffID:   actorStaffID,
		Action:    models.AuditActionNoShowAssigned,
		Note:      fmt.Sprintf("No check-in recorded for event #%d", res.EventID),
	})
}
