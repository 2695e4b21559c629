package models

import "time"

// LoyaltyEntry is one append-only point movement. Entries are never mutated
// or deleted; administrative corrections append a netting reverse entry.
type LoyaltyEntry struct {
	ID         int64     `json:"id" db:"id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	EventID    int64     `json:"event_id" db:"event_id"`
	Points     int       `json:"points" db:"points"` // signed
	Reason     string    `json:"reason" db:"reason"`
	AwardedAt  time.Time `json:"awarded_at" db:"awarded_at"`
}

// Loyalty levels, lowest first.
const (
	LevelBase    = "base"
	LevelLoyal   = "loyal"
	LevelPremium = "premium"
	LevelVIP     = "vip"
)

// LevelThreshold maps a level to the minimum cumulative points required for
// it. Thresholds are monotonically non-decreasing with level rank, and the
// base level always sits at zero.
type LevelThreshold struct {
	Level     string `json:"level" db:"level"`
	MinPoints int    `json:"min_points" db:"min_points"`
}

// DefaultThresholds returns the threshold table used when the database holds
// no rows yet.
func DefaultThresholds() []LevelThreshold {
	return []LevelThreshold{
		{Level: LevelBase, MinPoints: 0},
		{Level: LevelLoyal, MinPoints: 100},
		{Level: LevelPremium, MinPoints: 250},
		{Level: LevelVIP, MinPoints: 500},
	}
}

// LoyaltyStatus is the staff-facing view of a customer's standing.
type LoyaltyStatus struct {
	CustomerID  int64   `json:"customer_id"`
	Points      int     `json:"points"`
	Level       string  `json:"level"`
	NextLevel   *string `json:"next_level,omitempty"`
	PointsToGo  int     `json:"points_to_go"`
}
