package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"venue_ops_backend/internal/models"
)

// ReservationRepository defines the interface for reservation-related database operations.
type ReservationRepository interface {
	CreateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error)
	GetReservationByID(executor SQLExecutor, id int64) (*models.Reservation, error)
	GetActiveReservation(executor SQLExecutor, customerID, eventID int64) (*models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
	UpdateReservationStatus(executor SQLExecutor, id int64, status string) error
	UpdateReservationStatusIfActive(executor SQLExecutor, id int64, status string) (bool, error)
	UpdateTableApproval(executor SQLExecutor, id int64, approval string) error
	AssignTable(executor SQLExecutor, id int64, tableID int64, partySize int) error
	ListChildren(executor SQLExecutor, parentID int64) ([]models.Reservation, error)
	ListActiveForEvent(executor SQLExecutor, eventID int64) ([]models.Reservation, error)
	ListStaleActive(eventID, customerID *int64, before time.Time) ([]models.Reservation, error)
	DeleteReservation(executor SQLExecutor, id int64) error
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const selectReservationFields = `
	id, customer_id, event_id, category, status, party_size, expected_arrival,
	table_name, notes, parent_id, role, table_id, table_approval, created_at, updated_at
`

func scanReservationRow(row scanner, isList bool) (*models.Reservation, int, error) {
	var res models.Reservation
	var partySize sql.NullInt32
	var expectedArrival, tableName, notes, tableApproval sql.NullString
	var parentID, tableID sql.NullInt64
	var totalCount int

	scanDest := []interface{}{
		&res.ID, &res.CustomerID, &res.EventID, &res.Category, &res.Status,
		&partySize, &expectedArrival, &tableName, &notes,
		&parentID, &res.Role, &tableID, &tableApproval,
		&res.CreatedAt, &res.UpdatedAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
	}

	if partySize.Valid {
		n := int(partySize.Int32)
		res.PartySize = &n
	}
	if expectedArrival.Valid {
		res.ExpectedArrival = &expectedArrival.String
	}
	if tableName.Valid {
		res.TableName = &tableName.String
	}
	if notes.Valid {
		res.Notes = &notes.String
	}
	if parentID.Valid {
		res.ParentID = &parentID.Int64
	}
	if tableID.Valid {
		res.TableID = &tableID.Int64
	}
	if tableApproval.Valid {
		res.TableApproval = &tableApproval.String
	}
	return &res, totalCount, nil
}

// CreateReservation inserts a reservation. The partial unique index on
// (customer_id, event_id) WHERE status = 'active' is the final authority on
// the one-active-reservation rule; violations come back as ErrDuplicateKey.
func (r *reservationRepository) CreateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	query := `INSERT INTO reservations
	            (customer_id, event_id, category, status, party_size, expected_arrival,
	             table_name, notes, parent_id, role, table_id, table_approval, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	reservation.CreatedAt = currentTime
	reservation.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		reservation.CustomerID, reservation.EventID, reservation.Category, reservation.Status,
		reservation.PartySize, reservation.ExpectedArrival, reservation.TableName, reservation.Notes,
		reservation.ParentID, reservation.Role, reservation.TableID, reservation.TableApproval,
		reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation, nil
}

func (r *reservationRepository) GetReservationByID(executor SQLExecutor, id int64) (*models.Reservation, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectReservationFields + " FROM reservations WHERE id = $1"
	res, _, err := scanReservationRow(executor.QueryRow(query, id), false)
	return res, err
}

func (r *reservationRepository) GetActiveReservation(executor SQLExecutor, customerID, eventID int64) (*models.Reservation, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectReservationFields + ` FROM reservations
	          WHERE customer_id = $1 AND event_id = $2 AND status = $3`
	res, _, err := scanReservationRow(executor.QueryRow(query, customerID, eventID, string(models.ReservationStatusActive)), false)
	return res, err
}

func (r *reservationRepository) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	reservations := []models.Reservation{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectReservationFields + ", COUNT(*) OVER() as total_count FROM reservations")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argCount))
		args = append(args, *filters.CustomerID)
		argCount++
	}
	if filters.EventID != nil {
		conditions = append(conditions, fmt.Sprintf("event_id = $%d", argCount))
		args = append(args, *filters.EventID)
		argCount++
	}
	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

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
		return nil, 0, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		res, scannedTotalCount, scanErr := scanReservationRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		reservations = append(reservations, *res)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	if len(reservations) == 0 {
		totalCount = 0
	}
	return reservations, totalCount, nil
}

func (r *reservationRepository) UpdateReservationStatus(executor SQLExecutor, id int64, status string) error {
	query := `UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating reservation status for ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateReservationStatusIfActive transitions a reservation out of active
// only when it still is active. The guarded transition is what makes the
// no-show sweep safe to re-run: a second pass matches zero rows.
func (r *reservationRepository) UpdateReservationStatusIfActive(executor SQLExecutor, id int64, status string) (bool, error) {
	query := `UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	result, err := executor.Exec(query, status, time.Now(), id, string(models.ReservationStatusActive))
	if err != nil {
		return false, fmt.Errorf("%w: updating reservation status for ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

func (r *reservationRepository) UpdateTableApproval(executor SQLExecutor, id int64, approval string) error {
	query := `UPDATE reservations SET table_approval = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, approval, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating table approval for ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) AssignTable(executor SQLExecutor, id int64, tableID int64, partySize int) error {
	query := `UPDATE reservations SET table_id = $1, party_size = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, tableID, partySize, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: assigning table for reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) ListChildren(executor SQLExecutor, parentID int64) ([]models.Reservation, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectReservationFields + " FROM reservations WHERE parent_id = $1 ORDER BY id ASC"
	rows, err := executor.Query(query, parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying co-guest reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	children := []models.Reservation{}
	for rows.Next() {
		res, _, scanErr := scanReservationRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		children = append(children, *res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating co-guest rows: %v", ErrDatabaseError, err)
	}
	return children, nil
}

// ListActiveForEvent returns every still-active reservation for an event.
// The event-close path calls it inside the closing transaction so the
// reconciler sees a consistent snapshot.
func (r *reservationRepository) ListActiveForEvent(executor SQLExecutor, eventID int64) ([]models.Reservation, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectReservationFields + ` FROM reservations
	          WHERE event_id = $1 AND status = $2 ORDER BY id ASC`
	rows, err := executor.Query(query, eventID, string(models.ReservationStatusActive))
	if err != nil {
		return nil, fmt.Errorf("%w: querying active reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	active := []models.Reservation{}
	for rows.Next() {
		res, _, scanErr := scanReservationRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		active = append(active, *res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating active reservation rows: %v", ErrDatabaseError, err)
	}
	return active, nil
}

// ListStaleActive returns active reservations whose event date is strictly
// before the given instant, optionally scoped to one event or one customer.
func (r *reservationRepository) ListStaleActive(eventID, customerID *int64, before time.Time) ([]models.Reservation, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + qualifyReservationFields("r") + ` FROM reservations r
	          JOIN events e ON r.event_id = e.id
	          WHERE r.status = $1 AND e.event_date < $2`)

	args := []interface{}{string(models.ReservationStatusActive), before}
	argCount := 3

	if eventID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.event_id = $%d", argCount))
		args = append(args, *eventID)
		argCount++
	}
	if customerID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.customer_id = $%d", argCount))
		args = append(args, *customerID)
	}
	queryBuilder.WriteString(" ORDER BY r.id ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying stale reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	stale := []models.Reservation{}
	for rows.Next() {
		res, _, scanErr := scanReservationRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		stale = append(stale, *res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stale reservation rows: %v", ErrDatabaseError, err)
	}
	return stale, nil
}

func (r *reservationRepository) DeleteReservation(executor SQLExecutor, id int64) error {
	query := `DELETE FROM reservations WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func qualifyReservationFields(alias string) string {
	fields := strings.Split(selectReservationFields, ",")
	for i, f := range fields {
		fields[i] = alias + "." + strings.TrimSpace(f)
	}
	return strings.Join(fields, ", ")
}
