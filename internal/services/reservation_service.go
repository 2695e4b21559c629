package services

import (
	"errors"
	"fmt"
	"time"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/repositories"
)

// --- Reservation DTOs ---
type CreateReservationRequest struct {
	CustomerID      int64   `json:"customer_id" binding:"required"`
	EventID         int64   `json:"event_id" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	PartySize       *int    `json:"party_size,omitempty"`
	ExpectedArrival *string `json:"expected_arrival,omitempty"`
	TableName       *string `json:"table_name,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CoGuestIDs      []int64 `json:"co_guest_ids,omitempty"`
}

// ReservationService handles pre-registered attendance. One customer holds
// at most one active reservation per event; table reservations form a group
// under an organizer and carry an approval sub-state that gates check-in.
type ReservationService interface {
	Create(req CreateReservationRequest) (*models.Reservation, error)
	GetByID(id int64) (*models.Reservation, error)
	List(filters models.ReservationFilters) ([]models.Reservation, int, error)
	Cancel(id int64, actorStaffID *int64) error
	SetTableApproval(id int64, approval string, actorStaffID *int64) error
	AssignTable(reservationID, tableID int64, actorStaffID *int64) error
}

type reservationService struct {
	reservationRepo  repositories.ReservationRepository
	eventRepo        repositories.EventRepository
	customerRepo     repositories.CustomerRepository
	tableRepo        repositories.TableRepository
	auditRepo        repositories.AuditRepository
	txRunner         repositories.TxRunner
	cancelCutoffHour int
}

// NewReservationService creates a new instance of ReservationService.
// cancelCutoffHour is the hour of day on the event date after which
// cancellation is refused.
func NewReservationService(
	rr repositories.ReservationRepository,
	er repositories.EventRepository,
	cr repositories.CustomerRepository,
	tr repositories.TableRepository,
	ar repositories.AuditRepository,
	tx repositories.TxRunner,
	cancelCutoffHour int,
) ReservationService {
	return &reservationService{
		reservationRepo:  rr,
		eventRepo:        er,
		customerRepo:     cr,
		tableRepo:        tr,
		auditRepo:        ar,
		txRunner:         tx,
		cancelCutoffHour: cancelCutoffHour,
	}
}

func (s *reservationService) Create(req CreateReservationRequest) (*models.Reservation, error) {
	if !models.IsValidReservationCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}
	if req.PartySize != nil && *req.PartySize <= 0 {
		return nil, fmt.Errorf("%w: party size must be positive", ErrValidation)
	}
	if req.Category == string(models.ReservationCategoryTable) && (req.TableName == nil || *req.TableName == "") {
		return nil, fmt.Errorf("%w: table reservations require a table name", ErrValidation)
	}
	if req.Category != string(models.ReservationCategoryTable) && len(req.CoGuestIDs) > 0 {
		return nil, fmt.Errorf("%w: co-guests are only allowed on table reservations", ErrValidation)
	}

	if _, err := s.customerRepo.GetCustomerByID(nil, req.CustomerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	event, err := s.eventRepo.GetEventByID(nil, req.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if !event.IsBookable() {
		return nil, ErrEventNotBookable
	}

	reservation := &models.Reservation{
		CustomerID:      req.CustomerID,
		EventID:         req.EventID,
		Category:        req.Category,
		Status:          string(models.ReservationStatusActive),
		PartySize:       req.PartySize,
		ExpectedArrival: req.ExpectedArrival,
		TableName:       req.TableName,
		Notes:           req.Notes,
		Role:            models.ReservationRoleNone,
	}
	if req.Category == string(models.ReservationCategoryTable) {
		reservation.Role = models.ReservationRoleOrganizer
		pending := models.TableApprovalPending
		reservation.TableApproval = &pending
	}

	err = s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		if existing, err := s.reservationRepo.GetActiveReservation(ex, req.CustomerID, req.EventID); err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("failed to check existing reservation: %w", err)
			}
		} else if existing != nil {
			return ErrDuplicateActiveReservation
		}

		created, err := s.reservationRepo.CreateReservation(ex, reservation)
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return ErrDuplicateActiveReservation
			}
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		reservation = created

		for _, guestID := range req.CoGuestIDs {
			if guestID == req.CustomerID {
				return fmt.Errorf("%w: organizer cannot be their own co-guest", ErrValidation)
			}
			if _, err := s.customerRepo.GetCustomerByID(ex, guestID); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("%w: co-guest %d", ErrCustomerNotFound, guestID)
				}
				return fmt.Errorf("failed to get co-guest: %w", err)
			}
			pending := models.TableApprovalPending
			child := &models.Reservation{
				CustomerID:    guestID,
				EventID:       req.EventID,
				Category:      string(models.ReservationCategoryTable),
				Status:        string(models.ReservationStatusActive),
				TableName:     req.TableName,
				ParentID:      &reservation.ID,
				Role:          models.ReservationRoleCoGuest,
				TableApproval: &pending,
			}
			if _, err := s.reservationRepo.CreateReservation(ex, child); err != nil {
				if errors.Is(err, repositories.ErrDuplicateKey) {
					return fmt.Errorf("%w: co-guest %d", ErrDuplicateActiveReservation, guestID)
				}
				return fmt.Errorf("failed to create co-guest reservation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) GetByID(id int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) List(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	reservations, total, err := s.reservationRepo.GetReservations(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, total, nil
}

// Cancel marks an active reservation cancelled. Refused once the cutoff hour
// on the event date has passed. Cancelling an organizer also cancels every
// still-active co-guest in the same transaction.
func (s *reservationService) Cancel(id int64, actorStaffID *int64) error {
	reservation, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if reservation.Status != string(models.ReservationStatusActive) {
		return fmt.Errorf("%w: only active reservations can be cancelled", ErrValidation)
	}

	event, err := s.eventRepo.GetEventByID(nil, reservation.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}
	d := event.EventDate
	cutoff := time.Date(d.Year(), d.Month(), d.Day(), s.cancelCutoffHour, 0, 0, 0, d.Location())
	if time.Now().After(cutoff) {
		return ErrCancellationWindowClosed
	}

	return s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		applied, err := s.reservationRepo.UpdateReservationStatusIfActive(ex, id, string(models.ReservationStatusCancelled))
		if err != nil {
			return fmt.Errorf("failed to cancel reservation: %w", err)
		}
		if !applied {
			return fmt.Errorf("%w: only active reservations can be cancelled", ErrValidation)
		}

		if reservation.Role == models.ReservationRoleOrganizer {
			children, err := s.reservationRepo.ListChildren(ex, id)
			if err != nil {
				return fmt.Errorf("failed to list co-guest reservations: %w", err)
			}
			for _, child := range children {
				if _, err := s.reservationRepo.UpdateReservationStatusIfActive(ex, child.ID, string(models.ReservationStatusCancelled)); err != nil {
					return fmt.Errorf("failed to cancel co-guest reservation: %w", err)
				}
			}
		}
		return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
			TableName: "reservations",
			RecordID:  id,
			StaffID:   actorStaffID,
			Action:    models.AuditActionUpdate,
			Note:      "Reservation cancelled",
		})
	})
}

// SetTableApproval updates the approval sub-state of a table reservation.
// Applied on the organizer, it propagates to co-guest rows so the whole
// group is admitted or held together.
func (s *reservationService) SetTableApproval(id int64, approval string, actorStaffID *int64) error {
	switch approval {
	case models.TableApprovalPending, models.TableApprovalApproved, models.TableApprovalRejected:
	default:
		return fmt.Errorf("%w: unknown approval state %q", ErrValidation, approval)
	}

	reservation, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if reservation.Category != string(models.ReservationCategoryTable) {
		return fmt.Errorf("%w: approval applies to table reservations only", ErrValidation)
	}
	if reservation.Role == models.ReservationRoleCoGuest {
		return fmt.Errorf("%w: approval is set on the organizer reservation", ErrValidation)
	}

	return s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		if err := s.reservationRepo.UpdateTableApproval(ex, id, approval); err != nil {
			return fmt.Errorf("failed to update table approval: %w", err)
		}
		children, err := s.reservationRepo.ListChildren(ex, id)
		if err != nil {
			return fmt.Errorf("failed to list co-guest reservations: %w", err)
		}
		for _, child := range children {
			if err := s.reservationRepo.UpdateTableApproval(ex, child.ID, approval); err != nil {
				return fmt.Errorf("failed to update co-guest approval: %w", err)
			}
		}
		return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
			TableName: "reservations",
			RecordID:  id,
			StaffID:   actorStaffID,
			Action:    models.AuditActionUpdate,
			Note:      fmt.Sprintf("Table approval set to %s", approval),
		})
	})
}

// AssignTable links a reservation to a physical table. The table's capacity
// becomes the authoritative party size.
func (s *reservationService) AssignTable(reservationID, tableID int64, actorStaffID *int64) error {
	reservation, err := s.GetByID(reservationID)
	if err != nil {
		return err
	}
	if reservation.Category != string(models.ReservationCategoryTable) {
		return fmt.Errorf("%w: only table reservations can be assigned a table", ErrValidation)
	}

	table, err := s.tableRepo.GetTableByID(nil, tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: table %d", ErrValidation, tableID)
		}
		return fmt.Errorf("failed to get table: %w", err)
	}
	if table.EventID != reservation.EventID {
		return fmt.Errorf("%w: table belongs to a different event", ErrValidation)
	}
	if !table.Active {
		return fmt.Errorf("%w: table is not available", ErrValidation)
	}

	return s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		if err := s.reservationRepo.AssignTable(ex, reservationID, tableID, table.Capacity); err != nil {
			return fmt.Errorf("failed to assign table: %w", err)
		}
		return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
			TableName: "reservations",
			RecordID:  reservationID,
			StaffID:   actorStaffID,
			Action:    models.AuditActionUpdate,
			Note:      fmt.Sprintf("Assigned to table #%d", table.ID),
		})
	})
}
