package models

import "time"

// Customer represents a guest of the venue. LoyaltyPoints and Level are a
// denormalized cache of the loyalty ledger; they are recomputed on every
// ledger write and must never be edited independently.
type Customer struct {
	ID            int64      `json:"id" db:"id"`
	FirstName     string     `json:"first_name" db:"first_name" binding:"required"`
	LastName      string     `json:"last_name" db:"last_name" binding:"required"`
	PhoneNumber   *string    `json:"phone_number,omitempty" db:"phone_number"`
	City          *string    `json:"city,omitempty" db:"city"`
	DateOfBirth   *string    `json:"date_of_birth,omitempty" db:"date_of_birth"`
	ScanCode      string     `json:"scan_code" db:"scan_code"` // opaque code resolved at the door
	LoyaltyPoints int        `json:"loyalty_points" db:"loyalty_points"`
	Level         string     `json:"level" db:"level"`
	AccountState  string     `json:"account_state" db:"account_state"` // active / disabled
	StaffNote     *string    `json:"staff_note,omitempty" db:"staff_note"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty" db:"last_seen_at"`
}
