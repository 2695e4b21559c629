package services

import (
	"errors"
	"fmt"
)

// --- Domain error taxonomy ---
// All of these are expected, recoverable conditions surfaced to the caller
// for user-facing messaging. None should crash the process, and a rejected
// operation leaves every entity exactly as it was before the call.
var (
	ErrEventNotFound              = errors.New("event not found")
	ErrEventNotBookable           = errors.New("event is not open for reservations or check-ins")
	ErrEventNotOperative          = errors.New("event is not live and operative for staff")
	ErrNoOperativeEvent           = errors.New("no operative event is currently set")
	ErrInvalidTransition          = errors.New("event state transition not allowed")
	ErrCustomerNotFound           = errors.New("customer not found")
	ErrReservationNotFound        = errors.New("reservation not found")
	ErrDuplicateActiveReservation = errors.New("customer already holds an active reservation for this event")
	ErrCancellationWindowClosed   = errors.New("cancellation window for this reservation has closed")
	ErrAlreadyCheckedIn           = errors.New("customer already checked in for this event")
	ErrCapacityExceeded           = errors.New("event capacity exceeded")
	ErrTableNotApproved           = errors.New("table reservation is not approved for check-in")
	ErrCheckinNotFound            = errors.New("check-in not found")
	ErrFeedbackAlreadyGiven       = errors.New("feedback already submitted for this event")
	ErrCheckinRequired            = errors.New("customer has no check-in for this event")
	ErrValidation                 = errors.New("validation error")
)

// CapacityError carries the occupancy counts alongside ErrCapacityExceeded
// so the caller can present a confirmation step before retrying with the
// override flag.
type CapacityError struct {
	Current int
	Max     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: %d/%d", ErrCapacityExceeded, e.Current, e.Max)
}

// Unwrap lets errors.Is(err, ErrCapacityExceeded) match.
func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
