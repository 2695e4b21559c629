package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"venue_ops_backend/internal/models"
)

// CustomerRepository defines the interface for customer-related database operations.
type CustomerRepository interface {
	CreateCustomer(executor SQLExecutor, customer *models.Customer) (*models.Customer, error)
	GetCustomerByID(executor SQLExecutor, id int64) (*models.Customer, error)
	GetCustomerByScanCode(executor SQLExecutor, scanCode string) (*models.Customer, error)
	GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error)
	UpdateLoyaltyCache(executor SQLExecutor, id int64, points int, level string) error
	TouchLastSeen(executor SQLExecutor, id int64) error
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const selectCustomerFields = `
	id, first_name, last_name, phone_number, city, date_of_birth, scan_code,
	loyalty_points, level, account_state, staff_note, created_at, last_seen_at
`

func scanCustomerRow(row scanner, isList bool) (*models.Customer, int, error) {
	var customer models.Customer
	var phoneNumber, city, dateOfBirth, staffNote sql.NullString
	var lastSeenAt sql.NullTime
	var totalCount int

	scanDest := []interface{}{
		&customer.ID, &customer.FirstName, &customer.LastName, &phoneNumber, &city,
		&dateOfBirth, &customer.ScanCode, &customer.LoyaltyPoints, &customer.Level,
		&customer.AccountState, &staffNote, &customer.CreatedAt, &lastSeenAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
	}

	if phoneNumber.Valid {
		customer.PhoneNumber = &phoneNumber.String
	}
	if city.Valid {
		customer.City = &city.String
	}
	if dateOfBirth.Valid {
		customer.DateOfBirth = &dateOfBirth.String
	}
	if staffNote.Valid {
		customer.StaffNote = &staffNote.String
	}
	if lastSeenAt.Valid {
		t := lastSeenAt.Time
		customer.LastSeenAt = &t
	}
	return &customer, totalCount, nil
}

func (r *customerRepository) CreateCustomer(executor SQLExecutor, customer *models.Customer) (*models.Customer, error) {
	query := `INSERT INTO customers
	            (first_name, last_name, phone_number, city, date_of_birth, scan_code,
	             loyalty_points, level, account_state, staff_note, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at`

	customer.CreatedAt = time.Now()

	err := executor.QueryRow(query,
		customer.FirstName, customer.LastName, customer.PhoneNumber, customer.City,
		customer.DateOfBirth, customer.ScanCode, customer.LoyaltyPoints, customer.Level,
		customer.AccountState, customer.StaffNote, customer.CreatedAt,
	).Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return customer, nil
}

func (r *customerRepository) GetCustomerByID(executor SQLExecutor, id int64) (*models.Customer, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectCustomerFields + " FROM customers WHERE id = $1"
	customer, _, err := scanCustomerRow(executor.QueryRow(query, id), false)
	return customer, err
}

func (r *customerRepository) GetCustomerByScanCode(executor SQLExecutor, scanCode string) (*models.Customer, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + selectCustomerFields + " FROM customers WHERE scan_code = $1"
	customer, _, err := scanCustomerRow(executor.QueryRow(query, scanCode), false)
	return customer, err
}

func (r *customerRepository) GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error) {
	customers := []models.Customer{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectCustomerFields + ", COUNT(*) OVER() as total_count FROM customers")

	var args []interface{}
	argCount := 1
	if searchTerm != nil && *searchTerm != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE first_name ILIKE $%d OR last_name ILIKE $%d OR phone_number ILIKE $%d", argCount, argCount, argCount))
		args = append(args, "%"+*searchTerm+"%")
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY last_name ASC, first_name ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		customer, scannedTotalCount, scanErr := scanCustomerRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		customers = append(customers, *customer)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating customer rows: %v", ErrDatabaseError, err)
	}
	if len(customers) == 0 {
		totalCount = 0
	}
	return customers, totalCount, nil
}

// UpdateLoyaltyCache rewrites the denormalized points/level columns. It runs
// in the same transaction as the ledger write that changed the sum.
func (r *customerRepository) UpdateLoyaltyCache(executor SQLExecutor, id int64, points int, level string) error {
	query := `UPDATE customers SET loyalty_points = $1, level = $2 WHERE id = $3`
	result, err := executor.Exec(query, points, level, id)
	if err != nil {
		return fmt.Errorf("%w: updating loyalty cache for customer %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) TouchLastSeen(executor SQLExecutor, id int64) error {
	query := `UPDATE customers SET last_seen_at = $1 WHERE id = $2`
	if _, err := executor.Exec(query, time.Now(), id); err != nil {
		return fmt.Errorf("%w: touching last seen for customer %d: %v", ErrDatabaseError, id, err)
	}
	return nil
}
