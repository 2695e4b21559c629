package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"venue_ops_backend/internal/models"
)

// Key under which the single operative event id is stored in app_config.
const operativeEventConfigKey = "OPERATIVE_EVENT_ID"

// EventRepository defines the interface for event-related database operations.
type EventRepository interface {
	CreateEvent(executor SQLExecutor, event *models.Event) (*models.Event, error)
	GetEventByID(executor SQLExecutor, id int64) (*models.Event, error)
	GetEvents(filters models.EventFilters) ([]models.Event, int, error)
	UpdateEvent(executor SQLExecutor, event *models.Event) (*models.Event, error)
	UpdateEventState(executor SQLExecutor, id int64, state string, operative bool) error
	ClearOperativeFlagExcept(executor SQLExecutor, id int64) (int64, error)
	GetOperativeEventID(executor SQLExecutor) (*int64, error)
	SetOperativeEventID(executor SQLExecutor, id *int64) error
	ListDueAutoOpen(now time.Time) ([]models.Event, error)
	ListDueAutoClose(now time.Time) ([]models.Event, error)
}

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const selectEventFields = `
	id, name, event_date, music_genre, dj_artist, max_capacity, category,
	public_state, is_staff_operative, cover_url, auto_open_at, auto_close_at,
	created_at, updated_at
`

func scanEventRow(row scanner, isList bool) (*models.Event, int, error) {
	var event models.Event
	var musicGenre, djArtist, coverURL sql.NullString
	var autoOpenAt, autoCloseAt sql.NullTime
	var totalCount int

	scanDest := []interface{}{
		&event.ID, &event.Name, &event.EventDate, &musicGenre, &djArtist,
		&event.MaxCapacity, &event.Category, &event.PublicState, &event.IsStaffOperative,
		&coverURL, &autoOpenAt, &autoCloseAt, &event.CreatedAt, &event.UpdatedAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning event: %v", ErrDatabaseError, err)
	}

	if musicGenre.Valid {
		event.MusicGenre = &musicGenre.String
	}
	if djArtist.Valid {
		event.DJArtist = &djArtist.String
	}
	if coverURL.Valid {
		event.CoverURL = &coverURL.String
	}
	if autoOpenAt.Valid {
		t := autoOpenAt.Time
		event.AutoOpenAt = &t
	}
	if autoCloseAt.Valid {
		t := autoCloseAt.Time
		event.AutoCloseAt = &t
	}
	return &event, totalCount, nil
}

func (r *eventRepository) CreateEvent(executor SQLExecutor, event *models.Event) (*models.Event, error) {
	query := `INSERT INTO events
	            (name, event_date, music_genre, dj_artist, max_capacity, category,
	             public_state, is_staff_operative, cover_url, auto_open_at, auto_close_at,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	event.CreatedAt = currentTime
	event.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		event.Name, event.EventDate, event.MusicGenre, event.DJArtist,
		event.MaxCapacity, event.Category, event.PublicState, event.IsStaffOperative,
		event.CoverURL, event.AutoOpenAt, event.AutoCloseAt,
		event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating event: %v", ErrDatabaseError, err)
	}
	return event, nil
}

func (r *eventRepository) GetEventByID(executor SQLExecutor, id int64) (*models.Event, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectEventFields + " FROM events WHERE id = $1"
	event, _, err := scanEventRow(executor.QueryRow(query, id), false)
	return event, err
}

func (r *eventRepository) GetEvents(filters models.EventFilters) ([]models.Event, int, error) {
	events := []models.Event{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectEventFields + ", COUNT(*) OVER() as total_count FROM events")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.State != nil && *filters.State != "" {
		conditions = append(conditions, fmt.Sprintf("public_state = $%d", argCount))
		args = append(args, *filters.State)
		argCount++
	}
	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("event_date >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("event_date <= $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY event_date DESC")

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
		return nil, 0, fmt.Errorf("%w: querying events: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		event, scannedTotalCount, scanErr := scanEventRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		events = append(events, *event)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating event rows: %v", ErrDatabaseError, err)
	}
	if len(events) == 0 {
		totalCount = 0
	}
	return events, totalCount, nil
}

func (r *eventRepository) UpdateEvent(executor SQLExecutor, event *models.Event) (*models.Event, error) {
	query := `UPDATE events SET
	            name = $1, event_date = $2, music_genre = $3, dj_artist = $4,
	            max_capacity = $5, category = $6, cover_url = $7,
	            auto_open_at = $8, auto_close_at = $9, updated_at = $10
	          WHERE id = $11
	          RETURNING updated_at`
	event.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		event.Name, event.EventDate, event.MusicGenre, event.DJArtist,
		event.MaxCapacity, event.Category, event.CoverURL,
		event.AutoOpenAt, event.AutoCloseAt, event.UpdatedAt, event.ID,
	).Scan(&event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating event ID %d: %v", ErrDatabaseError, event.ID, err)
	}
	return event, nil
}

func (r *eventRepository) UpdateEventState(executor SQLExecutor, id int64, state string, operative bool) error {
	query := `UPDATE events SET public_state = $1, is_staff_operative = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, state, operative, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating event state for ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearOperativeFlagExcept drops the staff-operative flag on every event but
// the given one. Returns the number of events that lost the flag.
func (r *eventRepository) ClearOperativeFlagExcept(executor SQLExecutor, id int64) (int64, error) {
	query := `UPDATE events SET is_staff_operative = FALSE, updated_at = $1
	          WHERE is_staff_operative = TRUE AND id != $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return 0, fmt.Errorf("%w: clearing operative flags: %v", ErrDatabaseError, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

func (r *eventRepository) GetOperativeEventID(executor SQLExecutor) (*int64, error) {
	if executor == nil {
		executor = r.db
	}
	var value sql.NullInt64
	query := `SELECT value::bigint FROM app_config WHERE key = $1 AND value IS NOT NULL`
	err := executor.QueryRow(query, operativeEventConfigKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading operative event id: %v", ErrDatabaseError, err)
	}
	if !value.Valid {
		return nil, nil
	}
	id := value.Int64
	return &id, nil
}

// SetOperativeEventID writes the single-row operative event config entry.
// Callers must invoke it inside the same transaction as the event state
// change so two events can never appear operative at once.
func (r *eventRepository) SetOperativeEventID(executor SQLExecutor, id *int64) error {
	var value *string
	if id != nil {
		s := fmt.Sprintf("%d", *id)
		value = &s
	}
	query := `INSERT INTO app_config (key, value, updated_at) VALUES ($1, $2, $3)
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := executor.Exec(query, operativeEventConfigKey, value, time.Now()); err != nil {
		return fmt.Errorf("%w: writing operative event id: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *eventRepository) ListDueAutoOpen(now time.Time) ([]models.Event, error) {
	query := "SELECT " + selectEventFields + ` FROM events
	          WHERE auto_open_at IS NOT NULL AND auto_open_at <= $1 AND public_state = $2
	          ORDER BY auto_open_at ASC`
	return r.listEvents(query, now, string(models.EventStateScheduled))
}

func (r *eventRepository) ListDueAutoClose(now time.Time) ([]models.Event, error) {
	query := "SELECT " + selectEventFields + ` FROM events
	          WHERE auto_close_at IS NOT NULL AND auto_close_at <= $1 AND public_state IN ($2, $3)
	          ORDER BY auto_close_at ASC`
	return r.listEvents(query, now, string(models.EventStateScheduled), string(models.EventStateLive))
}

func (r *eventRepository) listEvents(query string, args ...interface{}) ([]models.Event, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying events: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, _, scanErr := scanEventRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, *event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating event rows: %v", ErrDatabaseError, err)
	}
	return events, nil
}
