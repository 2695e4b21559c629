package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"venue_ops_backend/internal/models"
)

// CheckinRepository defines the interface for check-in related database operations.
type CheckinRepository interface {
	CreateCheckin(executor SQLExecutor, checkin *models.Checkin) (*models.Checkin, error)
	GetCheckinByID(executor SQLExecutor, id int64) (*models.Checkin, error)
	GetCheckinForCustomerEvent(executor SQLExecutor, customerID, eventID int64) (*models.Checkin, error)
	CountForEvent(executor SQLExecutor, eventID int64) (int, error)
	GetCheckins(filters models.CheckinFilters) ([]models.Checkin, int, error)
	DeleteCheckin(executor SQLExecutor, id int64) error
}

type checkinRepository struct {
	db *sql.DB
}

// NewCheckinRepository creates a new instance of CheckinRepository.
func NewCheckinRepository(db *sql.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

const selectCheckinFields = `
	id, customer_id, event_id, reservation_id, staff_id, category, entered_at, notes
`

func scanCheckinRow(row scanner, isList bool) (*models.Checkin, int, error) {
	var checkin models.Checkin
	var reservationID, staffID sql.NullInt64
	var notes sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&checkin.ID, &checkin.CustomerID, &checkin.EventID, &reservationID,
		&staffID, &checkin.Category, &checkin.EnteredAt, &notes,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning check-in: %v", ErrDatabaseError, err)
	}

	if reservationID.Valid {
		checkin.ReservationID = &reservationID.Int64
	}
	if staffID.Valid {
		checkin.StaffID = &staffID.Int64
	}
	if notes.Valid {
		checkin.Notes = &notes.String
	}
	return &checkin, totalCount, nil
}

// CreateCheckin inserts a check-in row. The unique constraint on
// (customer_id, event_id) is the final authority under concurrent scans;
// a violation surfaces as ErrDuplicateKey for the service to translate.
func (r *checkinRepository) CreateCheckin(executor SQLExecutor, checkin *models.Checkin) (*models.Checkin, error) {
	query := `INSERT INTO checkins
	            (customer_id, event_id, reservation_id, staff_id, category, entered_at, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, entered_at`

	if checkin.EnteredAt.IsZero() {
		checkin.EnteredAt = time.Now()
	}

	err := executor.QueryRow(query,
		checkin.CustomerID, checkin.EventID, checkin.ReservationID,
		checkin.StaffID, checkin.Category, checkin.EnteredAt, checkin.Notes,
	).Scan(&checkin.ID, &checkin.EnteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating check-in: %v", ErrDatabaseError, err)
	}
	return checkin, nil
}

func (r *checkinRepository) GetCheckinByID(executor SQLExecutor, id int64) (*models.Checkin, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectCheckinFields + " FROM checkins WHERE id = $1"
	checkin, _, err := scanCheckinRow(executor.QueryRow(query, id), false)
	return checkin, err
}

func (r *checkinRepository) GetCheckinForCustomerEvent(executor SQLExecutor, customerID, eventID int64) (*models.Checkin, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectCheckinFields + " FROM checkins WHERE customer_id = $1 AND event_id = $2"
	checkin, _, err := scanCheckinRow(executor.QueryRow(query, customerID, eventID), false)
	return checkin, err
}

func (r *checkinRepository) CountForEvent(executor SQLExecutor, eventID int64) (int, error) {
	if executor == nil {
		executor = r.db
	}
	var count int
	query := `SELECT COUNT(*) FROM checkins WHERE event_id = $1`
	if err := executor.QueryRow(query, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting check-ins for event %d: %v", ErrDatabaseError, eventID, err)
	}
	return count, nil
}

func (r *checkinRepository) GetCheckins(filters models.CheckinFilters) ([]models.Checkin, int, error) {
	checkins := []models.Checkin{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectCheckinFields + ", COUNT(*) OVER() as total_count FROM checkins")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.EventID != nil {
		conditions = append(conditions, fmt.Sprintf("event_id = $%d", argCount))
		args = append(args, *filters.EventID)
		argCount++
	}
	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argCount))
		args = append(args, *filters.CustomerID)
		argCount++
	}
	if filters.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("staff_id = $%d", argCount))
		args = append(args, *filters.StaffID)
		argCount++
	}
	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("entered_at >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("entered_at < $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY entered_at DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying check-ins: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		checkin, scannedTotalCount, scanErr := scanCheckinRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		checkins = append(checkins, *checkin)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating check-in rows: %v", ErrDatabaseError, err)
	}
	if len(checkins) == 0 {
		totalCount = 0
	}
	return checkins, totalCount, nil
}

func (r *checkinRepository) DeleteCheckin(executor SQLExecutor, id int64) error {
	query := `DELETE FROM checkins WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting check-in ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
