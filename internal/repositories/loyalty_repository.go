package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"venue_ops_backend/internal/models"
)

// LoyaltyRepository defines the interface for loyalty ledger and threshold
// database operations. The ledger is append-only: there is deliberately no
// update or delete method.
type LoyaltyRepository interface {
	AppendEntry(executor SQLExecutor, entry *models.LoyaltyEntry) (*models.LoyaltyEntry, error)
	GetEntryByID(executor SQLExecutor, id int64) (*models.LoyaltyEntry, error)
	SumPointsForCustomer(executor SQLExecutor, customerID int64) (int, error)
	ListEntriesForCustomer(customerID int64) ([]models.LoyaltyEntry, error)
	HasEntryWithReason(executor SQLExecutor, customerID, eventID int64, reason string) (bool, error)
	GetThresholds(executor SQLExecutor) ([]models.LevelThreshold, error)
	UpsertThreshold(executor SQLExecutor, threshold models.LevelThreshold) error
}

type loyaltyRepository struct {
	db *sql.DB
}

// NewLoyaltyRepository creates a new instance of LoyaltyRepository.
func NewLoyaltyRepository(db *sql.DB) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) AppendEntry(executor SQLExecutor, entry *models.LoyaltyEntry) (*models.LoyaltyEntry, error) {
	query := `INSERT INTO loyalty_entries (customer_id, event_id, points, reason, awarded_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, awarded_at`

	if entry.AwardedAt.IsZero() {
		entry.AwardedAt = time.Now()
	}

	err := executor.QueryRow(query,
		entry.CustomerID, entry.EventID, entry.Points, entry.Reason, entry.AwardedAt,
	).Scan(&entry.ID, &entry.AwardedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: appending loyalty entry: %v", ErrDatabaseError, err)
	}
	return entry, nil
}

func (r *loyaltyRepository) GetEntryByID(executor SQLExecutor, id int64) (*models.LoyaltyEntry, error) {
	if executor == nil {
		executor = r.db
	}
	var entry models.LoyaltyEntry
	query := `SELECT id, customer_id, event_id, points, reason, awarded_at FROM loyalty_entries WHERE id = $1`
	err := executor.QueryRow(query, id).Scan(
		&entry.ID, &entry.CustomerID, &entry.EventID, &entry.Points, &entry.Reason, &entry.AwardedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: reading loyalty entry %d: %v", ErrDatabaseError, id, err)
	}
	return &entry, nil
}

func (r *loyaltyRepository) SumPointsForCustomer(executor SQLExecutor, customerID int64) (int, error) {
	if executor == nil {
		executor = r.db
	}
	var sum int
	query := `SELECT COALESCE(SUM(points), 0) FROM loyalty_entries WHERE customer_id = $1`
	if err := executor.QueryRow(query, customerID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: summing loyalty points for customer %d: %v", ErrDatabaseError, customerID, err)
	}
	return sum, nil
}

func (r *loyaltyRepository) ListEntriesForCustomer(customerID int64) ([]models.LoyaltyEntry, error) {
	query := `SELECT id, customer_id, event_id, points, reason, awarded_at
	          FROM loyalty_entries WHERE customer_id = $1 ORDER BY awarded_at DESC, id DESC`
	rows, err := r.db.Query(query, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying loyalty entries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	entries := []models.LoyaltyEntry{}
	for rows.Next() {
		var entry models.LoyaltyEntry
		if err := rows.Scan(&entry.ID, &entry.CustomerID, &entry.EventID, &entry.Points, &entry.Reason, &entry.AwardedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning loyalty entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating loyalty entries: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

func (r *loyaltyRepository) HasEntryWithReason(executor SQLExecutor, customerID, eventID int64, reason string) (bool, error) {
	if executor == nil {
		executor = r.db
	}
	var count int
	query := `SELECT COUNT(*) FROM loyalty_entries WHERE customer_id = $1 AND event_id = $2 AND reason = $3`
	if err := executor.QueryRow(query, customerID, eventID, reason).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: checking loyalty entry existence: %v", ErrDatabaseError, err)
	}
	return count > 0, nil
}

// GetThresholds returns the threshold table ordered by minimum points
// ascending. An empty result means the defaults apply; that fallback lives
// in the service.
func (r *loyaltyRepository) GetThresholds(executor SQLExecutor) ([]models.LevelThreshold, error) {
	if executor == nil {
		executor = r.db
	}
	query := `SELECT level, min_points FROM level_thresholds ORDER BY min_points ASC`
	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying level thresholds: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	thresholds := []models.LevelThreshold{}
	for rows.Next() {
		var t models.LevelThreshold
		if err := rows.Scan(&t.Level, &t.MinPoints); err != nil {
			return nil, fmt.Errorf("%w: scanning level threshold: %v", ErrDatabaseError, err)
		}
		thresholds = append(thresholds, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating level thresholds: %v", ErrDatabaseError, err)
	}
	return thresholds, nil
}

func (r *loyaltyRepository) UpsertThreshold(executor SQLExecutor, threshold models.LevelThreshold) error {
	query := `INSERT INTO level_thresholds (level, min_points) VALUES ($1, $2)
	          ON CONFLICT (level) DO UPDATE SET min_points = EXCLUDED.min_points`
	if _, err := executor.Exec(query, threshold.Level, threshold.MinPoints); err != nil {
		return fmt.Errorf("%w: upserting level threshold %s: %v", ErrDatabaseError, threshold.Level, err)
	}
	return nil
}
