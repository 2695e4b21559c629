package models

import "time"

// EventState defines the type for event lifecycle states
type EventState string

const (
	EventStateScheduled EventState = "scheduled"
	EventStateLive      EventState = "live"
	EventStateClosed    EventState = "closed" // terminal
)

// IsValidEventState checks if the provided state string is a valid EventState.
func IsValidEventState(state string) bool {
	switch EventState(state) {
	case EventStateScheduled, EventStateLive, EventStateClosed:
		return true
	default:
		return false
	}
}

// Event represents a single scheduled occasion at the venue.
// At most one event holds IsStaffOperative at any time; the state-changing
// code enforces this inside the same transaction that flips the flag.
type Event struct {
	ID               int64      `json:"id" db:"id"`
	Name             string     `json:"name" db:"name" binding:"required"`
	EventDate        time.Time  `json:"event_date" db:"event_date" binding:"required"`
	MusicGenre       *string    `json:"music_genre,omitempty" db:"music_genre"`
	DJArtist         *string    `json:"dj_artist,omitempty" db:"dj_artist"`
	MaxCapacity      int        `json:"max_capacity" db:"max_capacity"`
	Category         string     `json:"category" db:"category"` // e.g., reggaeton, techno, private, other
	PublicState      string     `json:"public_state" db:"public_state"`
	IsStaffOperative bool       `json:"is_staff_operative" db:"is_staff_operative"`
	CoverURL         *string    `json:"cover_url,omitempty" db:"cover_url"`
	AutoOpenAt       *time.Time `json:"auto_open_at,omitempty" db:"auto_open_at"`
	AutoCloseAt      *time.Time `json:"auto_close_at,omitempty" db:"auto_close_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// IsBookable reports whether reservations may still be taken for the event.
func (e *Event) IsBookable() bool {
	return e.PublicState == string(EventStateScheduled) || e.PublicState == string(EventStateLive)
}

// EventFilters defines the available filters for querying events.
type EventFilters struct {
	State    *string    `form:"state"`
	Category *string    `form:"category"`
	DateFrom *time.Time `form:"date_from"`
	DateTo   *time.Time `form:"date_to"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}
