package services

import (
	"errors"
	"fmt"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/repositories"
)

// --- Event table DTOs ---
type CreateTableRequest struct {
	EventID     int64   `json:"event_id" binding:"required"`
	TableNumber int     `json:"table_number" binding:"required"`
	Name        *string `json:"name,omitempty"`
	Capacity    int     `json:"capacity" binding:"required"`
	MinSpend    *int    `json:"min_spend,omitempty"`
}

// TableService manages the physical table layout of an event.
type TableService interface {
	Create(req CreateTableRequest) (*models.EventTable, error)
	GetByID(id int64) (*models.EventTable, error)
	ListForEvent(eventID int64) ([]models.EventTable, error)
	Update(table *models.EventTable) (*models.EventTable, error)
	Delete(id int64) error
}

type tableService struct {
	tableRepo repositories.TableRepository
	eventRepo repositories.EventRepository
}

// NewTableService creates a new instance of TableService.
func NewTableService(tr repositories.TableRepository, er repositories.EventRepository) TableService {
	return &tableService{tableRepo: tr, eventRepo: er}
}

func (s *tableService) Create(req CreateTableRequest) (*models.EventTable, error) {
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrValidation)
	}
	if _, err := s.eventRepo.GetEventByID(nil, req.EventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	created, err := s.tableRepo.CreateTable(nil, &models.EventTable{
		EventID:     req.EventID,
		TableNumber: req.TableNumber,
		Name:        req.Name,
		Capacity:    req.Capacity,
		MinSpend:    req.MinSpend,
		Active:      true,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: table number already exists for this event", ErrValidation)
		}
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return created, nil
}

func (s *tableService) GetByID(id int64) (*models.EventTable, error) {
	table, err := s.tableRepo.GetTableByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: table %d", ErrValidation, id)
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return table, nil
}

func (s *tableService) ListForEvent(eventID int64) ([]models.EventTable, error) {
	tables, err := s.tableRepo.ListTablesForEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

func (s *tableService) Update(table *models.EventTable) (*models.EventTable, error) {
	if table.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrValidation)
	}
	updated, err := s.tableRepo.UpdateTable(nil, table)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: table %d", ErrValidation, table.ID)
		}
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	return updated, nil
}

func (s *tableService) Delete(id int64) error {
	if err := s.tableRepo.DeleteTable(nil, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: table %d", ErrValidation, id)
		}
		return fmt.Errorf("failed to delete table: %w", err)
	}
	return nil
}
