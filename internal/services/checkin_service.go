package services

import (
	"errors"
	"fmt"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/queue"
	"venue_ops_backend/internal/repositories"
)

// --- Check-in DTOs ---
type ScanRequest struct {
	ScanCode string  `json:"scan_code" binding:"required"`
	StaffID  *int64  `json:"staff_id,omitempty"`
	Override bool    `json:"override,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type ManualCheckinRequest struct {
	CustomerID int64   `json:"customer_id" binding:"required"`
	EventID    int64   `json:"event_id" binding:"required"`
	Category   string  `json:"category" binding:"required"`
	StaffID    *int64  `json:"staff_id,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// CheckinResult is what the door screen renders after a scan: the recorded
// entry plus the customer and reservation context behind it.
type CheckinResult struct {
	Checkin     *models.Checkin     `json:"checkin"`
	Customer    *models.Customer    `json:"customer"`
	Event       *models.Event       `json:"event"`
	Reservation *models.Reservation `json:"reservation,omitempty"`
}

// CheckinService records door entries against the operative event. The
// check-in row's uniqueness per (customer, event) is the final authority on
// attendance; everything else (reservation fulfillment, loyalty points)
// follows from it inside the same transaction.
type CheckinService interface {
	PerformScan(req ScanRequest) (*CheckinResult, error)
	ManualCheckin(req ManualCheckinRequest) (*CheckinResult, error)
	Undo(checkinID int64, actorStaffID *int64) error
	GetByID(id int64) (*models.Checkin, error)
	List(filters models.CheckinFilters) ([]models.Checkin, int, error)
}

type checkinService struct {
	checkinRepo     repositories.CheckinRepository
	reservationRepo repositories.ReservationRepository
	eventRepo       repositories.EventRepository
	customerRepo    repositories.CustomerRepository
	auditRepo       repositories.AuditRepository
	loyaltyService  LoyaltyService
	txRunner        repositories.TxRunner
	publisher       *queue.Publisher
}

// NewCheckinService creates a new instance of CheckinService.
func NewCheckinService(
	chr repositories.CheckinRepository,
	rr repositories.ReservationRepository,
	er repositories.EventRepository,
	cr repositories.CustomerRepository,
	ar repositories.AuditRepository,
	ls LoyaltyService,
	tx repositories.TxRunner,
	pub *queue.Publisher,
) CheckinService {
	return &checkinService{
		checkinRepo:     chr,
		reservationRepo: rr,
		eventRepo:       er,
		customerRepo:    cr,
		auditRepo:       ar,
		loyaltyService:  ls,
		txRunner:        tx,
		publisher:       pub,
	}
}

// PerformScan handles one door scan end to end: resolve the code, charge
// against the operative event, enforce uniqueness and capacity, admit, and
// settle the side effects. Everything commits or rolls back as one unit; a
// rejected scan leaves no trace beyond the audit row for an applied
// override.
func (s *checkinService) PerformScan(req ScanRequest) (*CheckinResult, error) {
	result := &CheckinResult{}
	err := s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		customer, err := s.customerRepo.GetCustomerByScanCode(ex, req.ScanCode)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("failed to resolve scan code: %w", err)
		}
		result.Customer = customer

		event, err := s.operativeEventWithin(ex)
		if err != nil {
			return err
		}
		result.Event = event

		if _, err := s.checkinRepo.GetCheckinForCustomerEvent(ex, customer.ID, event.ID); err == nil {
			return ErrAlreadyCheckedIn
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to check existing check-in: %w", err)
		}

		occupancy, err := s.checkinRepo.CountForEvent(ex, event.ID)
		if err != nil {
			return fmt.Errorf("failed to count occupancy: %w", err)
		}
		if occupancy >= event.MaxCapacity {
			if !req.Override {
				return &CapacityError{Current: occupancy, Max: event.MaxCapacity}
			}
			err := s.auditRepo.InsertEntry(ex, &models.AuditEntry{
				TableName: "events",
				RecordID:  event.ID,
				StaffID:   req.StaffID,
				Action:    models.AuditActionCapacityOverride,
				Note:      fmt.Sprintf("Admitted at %d/%d", occupancy, event.MaxCapacity),
			})
			if err != nil {
				return err
			}
		}

		reservation, err := s.reservationRepo.GetActiveReservation(ex, customer.ID, event.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to look up reservation: %w", err)
		}

		category := string(models.CheckinCategoryList)
		if reservation != nil {
			if reservation.Category == string(models.ReservationCategoryTable) &&
				(reservation.TableApproval == nil || *reservation.TableApproval != models.TableApprovalApproved) {
				return ErrTableNotApproved
			}
			category = reservation.Category
			result.Reservation = reservation
		}

		checkin := &models.Checkin{
			CustomerID: customer.ID,
			EventID:    event.ID,
			StaffID:    req.StaffID,
			Category:   category,
			Notes:      req.Notes,
		}
		if reservation != nil {
			checkin.ReservationID = &reservation.ID
		}
		created, err := s.checkinRepo.CreateCheckin(ex, checkin)
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrAlreadyCheckedIn
			}
			return fmt.Errorf("failed to record check-in: %w", err)
		}
		result.Checkin = created

		if reservation != nil {
			if err := s.fulfillWithin(ex, reservation, created.ID, req.StaffID); err != nil {
				return err
			}
		}
		if err := s.loyaltyService.AwardOnCheckin(ex, customer.ID, event.ID, reservation != nil); err != nil {
			return err
		}
		return s.customerRepo.TouchLastSeen(ex, customer.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.CheckinRecorded(queue.CheckinRecordedEvent{
		CheckinID:   result.Checkin.ID,
		CustomerID:  result.Customer.ID,
		EventID:     result.Event.ID,
		Category:    result.Checkin.Category,
		HadOverride: req.Override,
		EnteredAt:   result.Checkin.EnteredAt,
	})
	return result, nil
}

// operativeEventWithin resolves and validates the operative event using the
// transaction's executor, so a concurrent close cannot slip between the
// lookup and the insert.
func (s *checkinService) operativeEventWithin(ex repositories.SQLExecutor) (*models.Event, error) {
	id, err := s.eventRepo.GetOperativeEventID(ex)
	if err != nil {
		return nil, fmt.Errorf("failed to read operative pointer: %w", err)
	}
	if id == nil {
		return nil, ErrNoOperativeEvent
	}
	event, err := s.eventRepo.GetEventByID(ex, *id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoOperativeEvent
		}
		return nil, fmt.Errorf("failed to get operative event: %w", err)
	}
	if !event.IsStaffOperative || event.PublicState != string(models.EventStateLive) {
		return nil, ErrEventNotOperative
	}
	return event, nil
}

func (s *checkinService) fulfillWithin(ex repositories.SQLExecutor, reservation *models.Reservation, checkinID int64, staffID *int64) error {
	applied, err := s.reservationRepo.UpdateReservationStatusIfActive(ex, reservation.ID, string(models.ReservationStatusFulfilled))
	if err != nil {
		return fmt.Errorf("failed to fulfill reservation: %w", err)
	}
	if !applied {
		return nil
	}
	reservation.Status = string(models.ReservationStatusFulfilled)
	return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
		TableName: "reservations",
		RecordID:  reservation.ID,
		StaffID:   staffID,
		Action:    models.AuditActionReservationFulfilled,
		Note:      fmt.Sprintf("Fulfilled by check-in #%d", checkinID),
	})
}

// ManualCheckin records an entry without a scan, for staff correcting the
// door log. The event does not have to be operative, only not closed. An
// active reservation is linked and fulfilled only when its category matches
// the one being recorded.
func (s *checkinService) ManualCheckin(req ManualCheckinRequest) (*CheckinResult, error) {
	if !models.IsValidCheckinCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}

	result := &CheckinResult{}
	err := s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		customer, err := s.customerRepo.GetCustomerByID(ex, req.CustomerID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("failed to get customer: %w", err)
		}
		result.Customer = customer

		event, err := s.eventRepo.GetEventByID(ex, req.EventID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}
		if event.PublicState == string(models.EventStateClosed) {
			return ErrEventNotBookable
		}
		result.Event = event

		if _, err := s.checkinRepo.GetCheckinForCustomerEvent(ex, customer.ID, event.ID); err == nil {
			return ErrAlreadyCheckedIn
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to check existing check-in: %w", err)
		}

		reservation, err := s.reservationRepo.GetActiveReservation(ex, customer.ID, event.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to look up reservation: %w", err)
		}
		linked := reservation != nil && reservation.Category == req.Category

		checkin := &models.Checkin{
			CustomerID: customer.ID,
			EventID:    event.ID,
			StaffID:    req.StaffID,
			Category:   req.Category,
			Notes:      req.Notes,
		}
		if linked {
			checkin.ReservationID = &reservation.ID
			result.Reservation = reservation
		}
		created, err := s.checkinRepo.CreateCheckin(ex, checkin)
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrAlreadyCheckedIn
			}
			return fmt.Errorf("failed to record check-in: %w", err)
		}
		result.Checkin = created

		if linked {
			if err := s.fulfillWithin(ex, reservation, created.ID, req.StaffID); err != nil {
				return err
			}
		}
		if err := s.loyaltyService.AwardOnCheckin(ex, customer.ID, event.ID, linked); err != nil {
			return err
		}
		return s.customerRepo.TouchLastSeen(ex, customer.ID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Undo removes a check-in and reverts its fulfilled reservation back to
// active. Loyalty points awarded at entry are deliberately left alone; the
// ledger is corrected through an explicit reversal, never silently.
func (s *checkinService) Undo(checkinID int64, actorStaffID *int64) error {
	return s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		checkin, err := s.checkinRepo.GetCheckinByID(ex, checkinID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCheckinNotFound
			}
			return fmt.Errorf("failed to get check-in: %w", err)
		}

		if err := s.checkinRepo.DeleteCheckin(ex, checkinID); err != nil {
			return fmt.Errorf("failed to delete check-in: %w", err)
		}

		if checkin.ReservationID != nil {
			reservation, err := s.reservationRepo.GetReservationByID(ex, *checkin.ReservationID)
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("failed to get reservation: %w", err)
			}
			if reservation != nil && reservation.Status == string(models.ReservationStatusFulfilled) {
				if err := s.reservationRepo.UpdateReservationStatus(ex, reservation.ID, string(models.ReservationStatusActive)); err != nil {
					return fmt.Errorf("failed to reactivate reservation: %w", err)
				}
			}
		}
		return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
			TableName: "checkins",
			RecordID:  checkinID,
			StaffID:   actorStaffID,
			Action:    models.AuditActionCheckinUndo,
			Note:      fmt.Sprintf("Check-in for customer #%d at event #%d removed", checkin.CustomerID, checkin.EventID),
		})
	})
}

func (s *checkinService) GetByID(id int64) (*models.Checkin, error) {
	checkin, err := s.checkinRepo.GetCheckinByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCheckinNotFound
		}
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}
	return checkin, nil
}

func (s *checkinService) List(filters models.CheckinFilters) ([]models.Checkin, int, error) {
	checkins, total, err := s.checkinRepo.GetCheckins(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkins, total, nil
}
