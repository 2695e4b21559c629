package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"venue_ops_backend/internal/models"
)

// AuditRepository defines the interface for audit log database operations.
// Entries are append-only.
type AuditRepository interface {
	InsertEntry(executor SQLExecutor, entry *models.AuditEntry) error
	GetEntries(filters models.AuditFilters) ([]models.AuditEntry, int, error)
}

type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new instance of AuditRepository.
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) InsertEntry(executor SQLExecutor, entry *models.AuditEntry) error {
	query := `INSERT INTO audit_log (table_name, record_id, staff_id, action, note, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	entry.CreatedAt = time.Now()

	err := executor.QueryRow(query,
		entry.TableName, entry.RecordID, entry.StaffID, entry.Action, entry.Note, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("%w: inserting audit entry: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *auditRepository) GetEntries(filters models.AuditFilters) ([]models.AuditEntry, int, error) {
	entries := []models.AuditEntry{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, table_name, record_id, staff_id, action, note, created_at,
	          COUNT(*) OVER() as total_count FROM audit_log`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.TableName != nil && *filters.TableName != "" {
		conditions = append(conditions, fmt.Sprintf("table_name = $%d", argCount))
		args = append(args, *filters.TableName)
		argCount++
	}
	if filters.RecordID != nil {
		conditions = append(conditions, fmt.Sprintf("record_id = $%d", argCount))
		args = append(args, *filters.RecordID)
		argCount++
	}
	if filters.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("staff_id = $%d", argCount))
		args = append(args, *filters.StaffID)
		argCount++
	}
	if filters.Action != nil && *filters.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argCount))
		args = append(args, *filters.Action)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying audit log: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.AuditEntry
		var staffID sql.NullInt64
		if err := rows.Scan(&entry.ID, &entry.TableName, &entry.RecordID, &staffID,
			&entry.Action, &entry.Note, &entry.CreatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning audit entry: %v", ErrDatabaseError, err)
		}
		if staffID.Valid {
			entry.StaffID = &staffID.Int64
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating audit rows: %v", ErrDatabaseError, err)
	}
	if len(entries) == 0 {
		totalCount = 0
	}
	return entries, totalCount, nil
}
