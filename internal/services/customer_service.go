package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/repositories"
)

// --- Customer DTOs ---
type CreateCustomerRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	City        *string `json:"city,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	StaffNote   *string `json:"staff_note,omitempty"`
}

// CustomerService manages guest profiles. Every customer gets an opaque
// scan code at creation; the door resolves people by that code, never by
// name or phone.
type CustomerService interface {
	Create(req CreateCustomerRequest) (*models.Customer, error)
	GetByID(id int64) (*models.Customer, error)
	GetByScanCode(scanCode string) (*models.Customer, error)
	List(page, pageSize int, searchTerm *string) ([]models.Customer, int, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(cr repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: cr}
}

func (s *customerService) Create(req CreateCustomerRequest) (*models.Customer, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrValidation)
	}

	customer := &models.Customer{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		City:         req.City,
		DateOfBirth:  req.DateOfBirth,
		ScanCode:     uuid.NewString(),
		Level:        models.LevelBase,
		AccountState: "active",
		StaffNote:    req.StaffNote,
	}

	created, err := s.customerRepo.CreateCustomer(nil, customer)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: scan code collision, retry", ErrValidation)
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return created, nil
}

func (s *customerService) GetByID(id int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetByScanCode(scanCode string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByScanCode(nil, scanCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to resolve scan code: %w", err)
	}
	return customer, nil
}

func (s *customerService) List(page, pageSize int, searchTerm *string) ([]models.Customer, int, error) {
	customers, total, err := s.customerRepo.GetCustomers(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}
