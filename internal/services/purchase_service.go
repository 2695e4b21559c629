package services

import (
	"errors"
	"fmt"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/repositories"
)

// --- Purchase DTOs ---
type RecordPurchaseRequest struct {
	CustomerID  int64   `json:"customer_id" binding:"required"`
	EventID     int64   `json:"event_id" binding:"required"`
	StaffID     *int64  `json:"staff_id,omitempty"`
	ProductName string  `json:"product_name" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	SalesPoint  string  `json:"sales_point" binding:"required"`
	Notes       *string `json:"notes,omitempty"`
}

// PurchaseService records in-venue spending. A purchase presumes presence:
// the customer must have a check-in for the event before anything can be
// charged against it.
type PurchaseService interface {
	Record(req RecordPurchaseRequest) (*models.Purchase, error)
	ListForCustomerEvent(customerID, eventID int64) ([]models.Purchase, error)
}

type purchaseService struct {
	purchaseRepo   repositories.PurchaseRepository
	checkinRepo    repositories.CheckinRepository
	loyaltyService LoyaltyService
	txRunner       repositories.TxRunner
}

// NewPurchaseService creates a new instance of PurchaseService.
func NewPurchaseService(
	pr repositories.PurchaseRepository,
	chr repositories.CheckinRepository,
	ls LoyaltyService,
	tx repositories.TxRunner,
) PurchaseService {
	return &purchaseService{
		purchaseRepo:   pr,
		checkinRepo:    chr,
		loyaltyService: ls,
		txRunner:       tx,
	}
}

func (s *purchaseService) Record(req RecordPurchaseRequest) (*models.Purchase, error) {
	if !models.IsValidSalesPoint(req.SalesPoint) {
		return nil, fmt.Errorf("%w: unknown sales point %q", ErrValidation, req.SalesPoint)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if req.ProductName == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}

	var purchase *models.Purchase
	err := s.txRunner.RunInTx(func(ex repositories.SQLExecutor) error {
		if _, err := s.checkinRepo.GetCheckinForCustomerEvent(ex, req.CustomerID, req.EventID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCheckinRequired
			}
			return fmt.Errorf("failed to check attendance: %w", err)
		}

		created, err := s.purchaseRepo.CreatePurchase(ex, &models.Purchase{
			CustomerID:  req.CustomerID,
			EventID:     req.EventID,
			StaffID:     req.StaffID,
			ProductName: req.ProductName,
			Amount:      req.Amount,
			SalesPoint:  req.SalesPoint,
			Notes:       req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to record purchase: %w", err)
		}
		purchase = created
		return s.loyaltyService.AwardOnPurchase(ex, req.CustomerID, req.EventID, req.Amount)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *purchaseService) ListForCustomerEvent(customerID, eventID int64) ([]models.Purchase, error) {
	purchases, err := s.purchaseRepo.ListForCustomerEvent(customerID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}
