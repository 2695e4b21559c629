package services

import (
	"errors"
	"fmt"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/repositories"
)

// Point policy. Values mirror the venue's standing rules and feed every
// ledger write in the system.
const (
	PointsCheckinReserved = 10
	PointsCheckinWalkIn   = 5
	PointsNoShow          = -5
	PointsFeedback        = 2
	PurchaseUnitAmount    = 10 // one point per this many currency units, floor
)

// --- Loyalty DTOs ---
type UpdateThresholdsRequest struct {
	Loyal   int `json:"loyal" binding:"required"`
	Premium int `json:"premium" binding:"required"`
	VIP     int `json:"vip" binding:"required"`
}

// LoyaltyService owns the append-only ledger and the level derivation. The
// cached customer balance/level is recomputed from the ledger sum inside the
// same transaction as every write, so cache and ledger can never drift.
type LoyaltyService interface {
	AwardOnCheckin(ex repositories.SQLExecutor, customerID, eventID int64, hasReservation bool) error
	AwardOnNoShow(ex repositories.SQLExecutor, customerID, eventID int64) error
	AwardOnPurchase(ex repositories.SQLExecutor, customerID, eventID int64, amount float64) error
	AwardOnFeedback(ex repositories.SQLExecutor, customerID, eventID int64) error
	Reverse(entryID int64, actorStaffID *int64) (*models.LoyaltyEntry, error)
	StatusForCustomer(customerID int64) (*models.LoyaltyStatus, error)
	StatusForScanCode(scanCode string) (*models.LoyaltyStatus, *models.Customer, error)
	EntriesForCustomer(customerID int64) ([]models.LoyaltyEntry, error)
	Thresholds() ([]models.LevelThreshold, error)
	UpdateThresholds(req UpdateThresholdsRequest) ([]models.LevelThreshold, error)
}

type loyaltyService struct {
	loyaltyRepo  repositories.LoyaltyRepository
	customerRepo repositories.CustomerRepository
	auditRepo    repositories.AuditRepository
	txRunner     repositories.TxRunner
}

// NewLoyaltyService creates a new instance of LoyaltyService.
func NewLoyaltyService(
	lr repositories.LoyaltyRepository,
	cr repositories.CustomerRepository,
	ar repositories.AuditRepository,
	tx repositories.TxRunner,
) LoyaltyService {
	return &loyaltyService{
		loyaltyRepo:  lr,
		customerRepo: cr,
		auditRepo:    ar,
		txRunner:     tx,
	}
}

// ComputeLevel returns the highest level whose threshold is <= points.
// Thresholds must be ordered by MinPoints ascending; the first (lowest)
// level is the floor for any balance, including negative ones.
func ComputeLevel(points int, thresholds []models.LevelThreshold) string {
	if len(thresholds) == 0 {
		thresholds = models.DefaultThresholds()
	}
	current := thresholds[0].Level
	for _, t := range thresholds {
		if points >= t.MinPoints {
			current = t.Level
		}
	}
	return current
}

// NextLevelInfo returns the next higher level and the point gap to reach it,
// or (nil, 0) when already at the top level.
func NextLevelInfo(points int, thresholds []models.LevelThreshold) (*string, int) {
	if len(thresholds) == 0 {
		thresholds = models.DefaultThresholds()
	}
	for _, t := range thresholds {
		if points < t.MinPoints {
			level := t.Level
			return &level, t.MinPoints - points
		}
	}
	return nil, 0
}

// PointsForPurchase converts a purchase amount into points: one point per
// full PurchaseUnitAmount spent, truncated toward zero.
func PointsForPurchase(amount float64) int {
	if amount <= 0 {
		return 0
	}
	return int(amount) / PurchaseUnitAmount
}

// appendAndRecache appends a ledger entry, then recomputes the customer's
// balance and level from the full ledger sum. Both writes use the same
// executor so they share the caller's transaction.
func (s *loyaltyService) appendAndRecache(ex repositories.SQLExecutor, entry *models.LoyaltyEntry) error {
	if _, err := s.loyaltyRepo.AppendEntry(ex, entry); err != nil {
		return fmt.Errorf("failed to append loyalty entry: %w", err)
	}
	sum, err := s.loyaltyRepo.SumPointsForCustomer(ex, entry.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to sum loyalty points: %w", err)
	}
	thresholds, err := s.loyaltyRepo.GetThresholds(ex)
	if err != nil {
		return fmt.Errorf("failed to load level thresholds: %w", err)
	}
	level := ComputeLevel(sum, thresholds)
	if err := s.customerRepo.UpdateLoyaltyCache(ex, entry.CustomerID, sum, level); err != nil {
		return fmt.Errorf("failed to update loyalty cache: %w", err)
	}
	return nil
}

func (s *loyaltyService) AwardOnCheckin(ex repositories.SQLExecutor, customerID, eventID int64, hasReservation bool) error {
	points := PointsCheckinWalkIn
	reason := fmt.Sprintf("Check-in event #%d (walk-in)", eventID)
	if hasReservation {
		points = PointsCheckinReserved
		reason = fmt.Sprintf("Check-in event #%d (reservation)", eventID)
	}
	return s.appendAndRecache(ex, &models.LoyaltyEntry{
		CustomerID: customerID,
		EventID:    eventID,
		Points:     points,
		Reason:     reason,
	})
}

func (s *loyaltyService) AwardOnNoShow(ex repositories.SQLExecutor, customerID, eventID int64) error {
	return s.appendAndRecache(ex, &models.LoyaltyEntry{
		CustomerID: customerID,
		EventID:    eventID,
		Points:     PointsNoShow,
		Reason:     fmt.Sprintf("No-show event #%d", eventID),
	})
}

// AwardOnPurchase writes nothing for purchases below one point unit.
func (s *loyaltyService) AwardOnPurchase(ex repositories.SQLExecutor, customerID, eventID int64, amount float64) error {
	points := PointsForPurchase(amount)
	if points == 0 {
		return nil
	}
	return s.appendAndRecache(ex, &models.LoyaltyEntry{
		CustomerID: customerID,
		EventID:    eventID,
		Points:     points,
		Reason:     fmt.Sprintf("Purchase event #%d", eventID),
	})
}

// AwardOnFeedback grants the flat feedback bonus at most once per
// (customer, event) pair.
func (s *loyaltyService) AwardOnFeedback(ex repositories.SQLExecutor, customerID, eventID int64) error {
	reason := fmt.Sprintf("Feedback event #%d", eventID)
	exists, err := s.loyaltyRepo.HasEntryWithReason(ex, customerID, eventID, reason)
	if err != nil {
		return fmt.Errorf("failed to check feedback award: %w", err)
	}
	if exists {
		return nil
	}
	return s.appendAndRecache(ex, &models.LoyaltyEntry{
		CustomerID: customerID,
		EventID:    eventID,
		Points:     PointsFeedback,
		Reason:     reason,
	})
}

// Reverse nets out an existing entry with an opposite-signed one. The
// original row is left untouched; this is the only sanctioned correction
// path for the ledger.
func (s *loyaltyService) Reverse(entryID int64, actorStaffID *int64) (*models.LoyaltyEntry, error) {
	original, err := s.loyaltyRepo.GetEntryByID(nil, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: loyalty entry %d", ErrValidation, entryID)
		}
		return nil, fmt.Errorf("failed to load loyalty entry: %w", err)
	}

	reversal := &models.LoyaltyEntry{
		CustomerID: original.CustomerID,
		EventID:    original.EventID,
		Points:     -original.Points,
		Reason:     fmt.Sprintf("Reversal of entry #%d", original.ID),
	}
	err = s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		if err := s.appendAndRecache(ex, reversal); err != nil {
			return err
		}
		return s.auditRepo.InsertEntry(ex, &models.AuditEntry{
			TableName: "loyalty_entries",
			RecordID:  original.ID,
			StaffID:   actorStaffID,
			Action:    models.AuditActionLedgerReversal,
			Note:      fmt.Sprintf("Entry #%d (%+d pts) netted out", original.ID, original.Points),
		})
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

func (s *loyaltyService) statusFor(customer *models.Customer) (*models.LoyaltyStatus, error) {
	thresholds, err := s.loyaltyRepo.GetThresholds(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load level thresholds: %w", err)
	}
	points := customer.LoyaltyPoints
	next, toGo := NextLevelInfo(points, thresholds)
	return &models.LoyaltyStatus{
		CustomerID: customer.ID,
		Points:     points,
		Level:      ComputeLevel(points, thresholds),
		NextLevel:  next,
		PointsToGo: toGo,
	}, nil
}

func (s *loyaltyService) StatusForCustomer(customerID int64) (*models.LoyaltyStatus, error) {
	customer, err := s.customerRepo.GetCustomerByID(nil, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return s.statusFor(customer)
}

// StatusForScanCode powers the staff scan screen: resolve the code, return
// standing plus the customer for display.
func (s *loyaltyService) StatusForScanCode(scanCode string) (*models.LoyaltyStatus, *models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByScanCode(nil, scanCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrCustomerNotFound
		}
		return nil, nil, fmt.Errorf("failed to resolve scan code: %w", err)
	}
	status, err := s.statusFor(customer)
	if err != nil {
		return nil, nil, err
	}
	return status, customer, nil
}

func (s *loyaltyService) EntriesForCustomer(customerID int64) ([]models.LoyaltyEntry, error) {
	entries, err := s.loyaltyRepo.ListEntriesForCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loyalty entries: %w", err)
	}
	return entries, nil
}

func (s *loyaltyService) Thresholds() ([]models.LevelThreshold, error) {
	thresholds, err := s.loyaltyRepo.GetThresholds(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load level thresholds: %w", err)
	}
	if len(thresholds) == 0 {
		thresholds = models.DefaultThresholds()
	}
	return thresholds, nil
}

// UpdateThresholds replaces the adjustable levels. Base stays pinned at
// zero and the sequence must be non-decreasing.
func (s *loyaltyService) UpdateThresholds(req UpdateThresholdsRequest) ([]models.LevelThreshold, error) {
	if req.Loyal < 0 || req.Premium < 0 || req.VIP < 0 {
		return nil, fmt.Errorf("%w: thresholds cannot be negative", ErrValidation)
	}
	if !(0 <= req.Loyal && req.Loyal <= req.Premium && req.Premium <= req.VIP) {
		return nil, fmt.Errorf("%w: thresholds must be non-decreasing (base 0 <= loyal <= premium <= vip)", ErrValidation)
	}

	updated := []models.LevelThreshold{
		{Level: models.LevelBase, MinPoints: 0},
		{Level: models.LevelLoyal, MinPoints: req.Loyal},
		{Level: models.LevelPremium, MinPoints: req.Premium},
		{Level: models.LevelVIP, MinPoints: req.VIP},
	}
	err := s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		for _, t := range updated {
			if err := s.loyaltyRepo.UpsertThreshold(ex, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update thresholds: %w", err)
	}
	return updated, nil
}
