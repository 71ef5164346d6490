package reservation

import (
	"errors"
	"fmt"
)

// Kind classifies why a confirmation did not commit.
type Kind string

const (
	KindSlotNotFound      Kind = "slot_not_found"
	KindSlotFull          Kind = "slot_full"
	KindInsufficientSeats Kind = "insufficient_seats"
	KindInvalidPartySize  Kind = "invalid_party_size"
	KindInFlight          Kind = "reservation_in_flight"
	KindUnauthenticated   Kind = "unauthenticated"
	KindWriteFailed       Kind = "write_failed"
)

// Error is the single outcome type for failed selections and confirmations.
// Available carries the true remaining seats for insufficient_seats.
type Error struct {
	Kind      Kind
	SlotID    string
	Available int
	Cause     error
}

var (
	ErrSlotNotFound      = &Error{Kind: KindSlotNotFound}
	ErrSlotFull          = &Error{Kind: KindSlotFull}
	ErrInsufficientSeats = &Error{Kind: KindInsufficientSeats}
	ErrInvalidPartySize  = &Error{Kind: KindInvalidPartySize}
	ErrInFlight          = &Error{Kind: KindInFlight}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated}
	ErrWriteFailed       = &Error{Kind: KindWriteFailed}
)

// ErrNoCaller is returned by the writer when no requester is attached.
var ErrNoCaller = errors.New("reservation: no authenticated caller")

// ErrNoReservation marks a writer that reported success without a reservation.
var ErrNoReservation = errors.New("reservation: writer returned no reservation")

func (e *Error) Error() string {
	switch e.Kind {
	case KindSlotNotFound:
		return "slot no longer exists"
	case KindSlotFull:
		return "this time slot just became full"
	case KindInsufficientSeats:
		return fmt.Sprintf("only %d seats left for this time", e.Available)
	case KindInvalidPartySize:
		return "party size must be at least 1"
	case KindInFlight:
		return "a reservation for this slot is already being saved"
	case KindUnauthenticated:
		return "no user signed in"
	case KindWriteFailed:
		if e.Cause != nil {
			return "reservation could not be saved: " + e.Cause.Error()
		}
		return "reservation could not be saved"
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Local reports whether the failure was decided without touching the store.
func (e *Error) Local() bool {
	switch e.Kind {
	case KindSlotNotFound, KindSlotFull, KindInsufficientSeats, KindInvalidPartySize, KindInFlight:
		return true
	default:
		return false
	}
}

// KindOf returns the outcome kind carried by err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
