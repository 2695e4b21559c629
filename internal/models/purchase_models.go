package models

import "time"

// Sales points where a purchase can be recorded.
const (
	SalesPointTable = "table"
	SalesPointPrive = "prive"
)

// IsValidSalesPoint checks if the provided sales point string is valid.
func IsValidSalesPoint(salesPoint string) bool {
	return salesPoint == SalesPointTable || salesPoint == SalesPointPrive
}

// Purchase is an on-site consumption recorded for a checked-in customer.
type Purchase struct {
	ID          int64     `json:"id" db:"id"`
	CustomerID  int64     `json:"customer_id" db:"customer_id" binding:"required"`
	EventID     int64     `json:"event_id" db:"event_id" binding:"required"`
	StaffID     *int64    `json:"staff_id,omitempty" db:"staff_id"`
	ProductName string    `json:"product_name" db:"product_name" binding:"required"`
	Amount      float64   `json:"amount" db:"amount" binding:"required"`
	SalesPoint  string    `json:"sales_point" db:"sales_point"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Feedback is a customer's post-entry review of an event, one per
// (customer, event) pair.
type Feedback struct {
	ID            int64     `json:"id" db:"id"`
	CustomerID    int64     `json:"customer_id" db:"customer_id" binding:"required"`
	EventID       int64     `json:"event_id" db:"event_id" binding:"required"`
	MusicRating   int       `json:"music_rating" db:"music_rating" binding:"required"`
	EntryRating   int       `json:"entry_rating" db:"entry_rating" binding:"required"`
	VenueRating   int       `json:"venue_rating" db:"venue_rating" binding:"required"`
	ServiceRating int       `json:"service_rating" db:"service_rating"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
