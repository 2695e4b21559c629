package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"venue_ops_backend/internal/models"
)

// PurchaseRepository defines the interface for purchase database operations.
type PurchaseRepository interface {
	CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (*models.Purchase, error)
	ListForCustomerEvent(customerID, eventID int64) ([]models.Purchase, error)
}

// FeedbackRepository defines the interface for feedback database operations.
type FeedbackRepository interface {
	CreateFeedback(executor SQLExecutor, feedback *models.Feedback) (*models.Feedback, error)
	GetForCustomerEvent(executor SQLExecutor, customerID, eventID int64) (*models.Feedback, error)
}

type purchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new instance of PurchaseRepository.
func NewPurchaseRepository(db *sql.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (*models.Purchase, error) {
	query := `INSERT INTO purchases
	            (customer_id, event_id, staff_id, product_name, amount, sales_point, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at`

	purchase.CreatedAt = time.Now()

	err := executor.QueryRow(query,
		purchase.CustomerID, purchase.EventID, purchase.StaffID, purchase.ProductName,
		purchase.Amount, purchase.SalesPoint, purchase.Notes, purchase.CreatedAt,
	).Scan(&purchase.ID, &purchase.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating purchase: %v", ErrDatabaseError, err)
	}
	return purchase, nil
}

func (r *purchaseRepository) ListForCustomerEvent(customerID, eventID int64) ([]models.Purchase, error) {
	query := `SELECT id, customer_id, event_id, staff_id, product_name, amount, sales_point, notes, created_at
	          FROM purchases WHERE customer_id = $1 AND event_id = $2 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, customerID, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying purchases: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	purchases := []models.Purchase{}
	for rows.Next() {
		var p models.Purchase
		var staffID sql.NullInt64
		var notes sql.NullString
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.EventID, &staffID, &p.ProductName,
			&p.Amount, &p.SalesPoint, &notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning purchase: %v", ErrDatabaseError, err)
		}
		if staffID.Valid {
			p.StaffID = &staffID.Int64
		}
		if notes.Valid {
			p.Notes = &notes.String
		}
		purchases = append(purchases, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating purchase rows: %v", ErrDatabaseError, err)
	}
	return purchases, nil
}

type feedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository.
func NewFeedbackRepository(db *sql.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// CreateFeedback inserts a feedback row. The unique constraint on
// (customer_id, event_id) keeps feedback to one per pair; violations come
// back as ErrDuplicateKey.
func (r *feedbackRepository) CreateFeedback(executor SQLExecutor, feedback *models.Feedback) (*models.Feedback, error) {
	query := `INSERT INTO feedback
	            (customer_id, event_id, music_rating, entry_rating, venue_rating, service_rating, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at`

	feedback.CreatedAt = time.Now()

	err := executor.QueryRow(query,
		feedback.CustomerID, feedback.EventID, feedback.MusicRating, feedback.EntryRating,
		feedback.VenueRating, feedback.ServiceRating, feedback.Notes, feedback.CreatedAt,
	).Scan(&feedback.ID, &feedback.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating feedback: %v", ErrDatabaseError, err)
	}
	return feedback, nil
}

func (r *feedbackRepository) GetForCustomerEvent(executor SQLExecutor, customerID, eventID int64) (*models.Feedback, error) {
	if executor == nil {
		executor = r.db
	}
	var fb models.Feedback
	var notes sql.NullString
	query := `SELECT id, customer_id, event_id, music_rating, entry_rating, venue_rating, service_rating, notes, created_at
	          FROM feedback WHERE customer_id = $1 AND event_id = $2`
	err := executor.QueryRow(query, customerID, eventID).Scan(
		&fb.ID, &fb.CustomerID, &fb.EventID, &fb.MusicRating, &fb.EntryRating,
		&fb.VenueRating, &fb.ServiceRating, &notes, &fb.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: reading feedback: %v", ErrDatabaseError, err)
	}
	if notes.Valid {
		fb.Notes = &notes.String
	}
	return &fb, nil
}
