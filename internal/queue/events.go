package queue

import "time"

// Queue names. Routing uses the default exchange, so the routing key is the
// queue name itself.
const (
	QueueCheckinRecorded = "checkin.recorded"
	QueueEventClosed     = "event.closed"
	QueueNoShowFinalized = "noshow.finalized"
)

// CheckinRecordedEvent is published after a door scan commits.
type CheckinRecordedEvent struct {
	CheckinID   int64     `json:"checkin_id"`
	CustomerID  int64     `json:"customer_id"`
	EventID     int64     `json:"event_id"`
	Category    string    `json:"category"`
	HadOverride bool      `json:"had_override"`
	EnteredAt   time.Time `json:"entered_at"`
}

// EventClosedEvent is published after an event transitions to closed and its
// reservations have been reconciled.
type EventClosedEvent struct {
	EventID   int64     `json:"event_id"`
	Fulfilled int       `json:"fulfilled"`
	NoShow    int       `json:"no_show"`
	ClosedAt  time.Time `json:"closed_at"`
}

// NoShowFinalizedEvent is published per reservation settled as a no-show by
// the standalone sweep.
type NoShowFinalizedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	CustomerID    int64     `json:"customer_id"`
	EventID       int64     `json:"event_id"`
	FinalizedAt   time.Time `json:"finalized_at"`
}
