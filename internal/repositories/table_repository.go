package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"venue_ops_backend/internal/models"
)

// TableRepository defines the interface for event-table database operations.
type TableRepository interface {
	CreateTable(executor SQLExecutor, table *models.EventTable) (*models.EventTable, error)
	GetTableByID(executor SQLExecutor, id int64) (*models.EventTable, error)
	ListTablesForEvent(eventID int64) ([]models.EventTable, error)
	UpdateTable(executor SQLExecutor, table *models.EventTable) (*models.EventTable, error)
	DeleteTable(executor SQLExecutor, id int64) error
}

type tableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new instance of TableRepository.
func NewTableRepository(db *sql.DB) TableRepository {
	return &tableRepository{db: db}
}

func scanTableRow(row scanner) (*models.EventTable, error) {
	var table models.EventTable
	var name sql.NullString
	var minSpend sql.NullInt32

	err := row.Scan(&table.ID, &table.EventID, &table.TableNumber, &name,
		&table.Capacity, &minSpend, &table.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning event table: %v", ErrDatabaseError, err)
	}

	if name.Valid {
		table.Name = &name.String
	}
	if minSpend.Valid {
		n := int(minSpend.Int32)
		table.MinSpend = &n
	}
	return &table, nil
}

func (r *tableRepository) CreateTable(executor SQLExecutor, table *models.EventTable) (*models.EventTable, error) {
	query := `INSERT INTO event_tables (event_id, table_number, name, capacity, min_spend, active)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := executor.QueryRow(query,
		table.EventID, table.TableNumber, table.Name, table.Capacity, table.MinSpend, table.Active,
	).Scan(&table.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating event table: %v", ErrDatabaseError, err)
	}
	return table, nil
}

func (r *tableRepository) GetTableByID(executor SQLExecutor, id int64) (*models.EventTable, error) {
	if executor == nil {
		executor = r.db
	}
	query := `SELECT id, event_id, table_number, name, capacity, min_spend, active
	          FROM event_tables WHERE id = $1`
	return scanTableRow(executor.QueryRow(query, id))
}

func (r *tableRepository) ListTablesForEvent(eventID int64) ([]models.EventTable, error) {
	query := `SELECT id, event_id, table_number, name, capacity, min_spend, active
	          FROM event_tables WHERE event_id = $1 ORDER BY table_number ASC`
	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying event tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	tables := []models.EventTable{}
	for rows.Next() {
		table, scanErr := scanTableRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tables = append(tables, *table)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating event table rows: %v", ErrDatabaseError, err)
	}
	return tables, nil
}

func (r *tableRepository) UpdateTable(executor SQLExecutor, table *models.EventTable) (*models.EventTable, error) {
	query := `UPDATE event_tables SET table_number = $1, name = $2, capacity = $3, min_spend = $4, active = $5
	          WHERE id = $6`
	result, err := executor.Exec(query,
		table.TableNumber, table.Name, table.Capacity, table.MinSpend, table.Active, table.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: updating event table ID %d: %v", ErrDatabaseError, table.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}
	return table, nil
}

func (r *tableRepository) DeleteTable(executor SQLExecutor, id int64) error {
	query := `DELETE FROM event_tables WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting event table ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
