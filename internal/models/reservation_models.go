package models

import "time"

// ReservationStatus defines the type for reservation statuses
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusNoShow    ReservationStatus = "no-show"
	ReservationStatusFulfilled ReservationStatus = "fulfilled"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// IsValidReservationStatus checks if the provided status string is a valid ReservationStatus.
func IsValidReservationStatus(status string) bool {
	switch ReservationStatus(status) {
	case ReservationStatusActive,
		ReservationStatusNoShow,
		ReservationStatusFulfilled,
		ReservationStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminalReservationStatus reports whether a status admits no further
// transitions outside administrative override.
func IsTerminalReservationStatus(status string) bool {
	return IsValidReservationStatus(status) && status != string(ReservationStatusActive)
}

// ReservationCategory defines the closed set of reservation categories.
// Category-specific validation is selected by a switch, never by subtyping.
type ReservationCategory string

const (
	ReservationCategoryList    ReservationCategory = "list"
	ReservationCategoryTable   ReservationCategory = "table"
	ReservationCategoryPresale ReservationCategory = "presale"
)

// IsValidReservationCategory checks if the provided category string is valid.
func IsValidReservationCategory(category string) bool {
	switch ReservationCategory(category) {
	case ReservationCategoryList, ReservationCategoryTable, ReservationCategoryPresale:
		return true
	default:
		return false
	}
}

// Table-group roles for reservations that share one physical table.
const (
	ReservationRoleNone      = "none"
	ReservationRoleOrganizer = "organizer"
	ReservationRoleCoGuest   = "co-guest"
)

// Table approval sub-states (table-category reservations only).
const (
	TableApprovalPending  = "pending"
	TableApprovalApproved = "approved"
	TableApprovalRejected = "rejected"
)

// Reservation represents a customer's pre-registered intent to attend an
// event. A customer holds at most one active reservation per event; the
// database enforces this with a partial unique index.
type Reservation struct {
	ID              int64      `json:"id" db:"id"`
	CustomerID      int64      `json:"customer_id" db:"customer_id" binding:"required"`
	EventID         int64      `json:"event_id" db:"event_id" binding:"required"`
	Category        string     `json:"category" db:"category"`
	Status          string     `json:"status" db:"status"`
	PartySize       *int       `json:"party_size,omitempty" db:"party_size"`
	ExpectedArrival *string    `json:"expected_arrival,omitempty" db:"expected_arrival"`
	TableName       *string    `json:"table_name,omitempty" db:"table_name"`
	Notes           *string    `json:"notes,omitempty" db:"notes"`
	ParentID        *int64     `json:"parent_id,omitempty" db:"parent_id"` // organizer's reservation for co-guests
	Role            string     `json:"role" db:"role"`
	TableID         *int64     `json:"table_id,omitempty" db:"table_id"` // assigned physical table
	TableApproval   *string    `json:"table_approval,omitempty" db:"table_approval"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	Customer        *Customer  `json:"customer,omitempty"`
	Event           *Event     `json:"event,omitempty"`
	EventTable      *EventTable `json:"event_table,omitempty"`
}

// EventTable is a physical table configured for a specific event. Its
// capacity is authoritative over any customer-supplied party size.
type EventTable struct {
	ID          int64   `json:"id" db:"id"`
	EventID     int64   `json:"event_id" db:"event_id" binding:"required"`
	TableNumber int     `json:"table_number" db:"table_number" binding:"required"`
	Name        *string `json:"name,omitempty" db:"name"`
	Capacity    int     `json:"capacity" db:"capacity"`
	MinSpend    *int    `json:"min_spend,omitempty" db:"min_spend"`
	Active      bool    `json:"active" db:"active"`
}

// ReservationFilters defines the available filters for querying reservations.
type ReservationFilters struct {
	CustomerID *int64  `form:"customer_id"`
	EventID    *int64  `form:"event_id"`
	Category   *string `form:"category"`
	Status     *string `form:"status"`
	Page       int     `form:"page"`
	PageSize   int     `form:"page_size"`
}
