package models

import "time"

// CheckinCategory defines the closed set of entry categories. Walk-ins
// without a reservation default to the general list; "comp" exists only for
// manual admin entries.
type CheckinCategory string

const (
	CheckinCategoryList    CheckinCategory = "list"
	CheckinCategoryTable   CheckinCategory = "table"
	CheckinCategoryComp    CheckinCategory = "comp"
	CheckinCategoryPresale CheckinCategory = "presale"
)

// IsValidCheckinCategory checks if the provided category string is valid.
func IsValidCheckinCategory(category string) bool {
	switch CheckinCategory(category) {
	case CheckinCategoryList, CheckinCategoryTable, CheckinCategoryComp, CheckinCategoryPresale:
		return true
	default:
		return false
	}
}

// Checkin is the durable record that a customer physically entered an event.
// At most one row exists per (customer, event); the unique constraint is the
// final authority under concurrent scans. Rows are never mutated, only
// deleted to undo a check-in.
type Checkin struct {
	ID            int64     `json:"id" db:"id"`
	CustomerID    int64     `json:"customer_id" db:"customer_id"`
	EventID       int64     `json:"event_id" db:"event_id"`
	ReservationID *int64    `json:"reservation_id,omitempty" db:"reservation_id"`
	StaffID       *int64    `json:"staff_id,omitempty" db:"staff_id"`
	Category      string    `json:"category" db:"category"`
	EnteredAt     time.Time `json:"entered_at" db:"entered_at"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	Customer      *Customer `json:"customer,omitempty"`
	Event         *Event    `json:"event,omitempty"`
}

// CheckinFilters defines the available filters for querying check-ins.
type CheckinFilters struct {
	EventID    *int64     `form:"event_id"`
	CustomerID *int64     `form:"customer_id"`
	StaffID    *int64     `form:"staff_id"`
	Category   *string    `form:"category"`
	DateFrom   *time.Time `form:"date_from"`
	DateTo     *time.Time `form:"date_to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}
