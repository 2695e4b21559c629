package services

import (
	"fmt"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/repositories"
)

// AuditService exposes the append-only audit trail for review.
type AuditService interface {
	List(filters models.AuditFilters) ([]models.AuditEntry, int, error)
}

type auditService struct {
	auditRepo repositories.AuditRepository
}

// NewAuditService creates a new instance of AuditService.
func NewAuditService(ar repositories.AuditRepository) AuditService {
	return &auditService{auditRepo: ar}
}

func (s *auditService) List(filters models.AuditFilters) ([]models.AuditEntry, int, error) {
	entries, total, err := s.auditRepo.GetEntries(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, total, nil
}
