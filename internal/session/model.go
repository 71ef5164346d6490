package session

import (
	"errors"
	"net/http"
	"time"

	"prestigo/internal/reservation"
	"prestigo/internal/slot"
)

type OpenRequest struct {
	VenueID string `json:"venue_id" validate:"required,max=64"`
	Day     string `json:"day" validate:"required,day" example:"2025-08-08"`
}

type DayRequest struct {
	Day string `json:"day" validate:"required,day" example:"2025-08-08"`
}

type SlotRequest struct {
	SlotID    string `json:"slot_id" validate:"required,max=128"`
	PartySize int    `json:"party_size" example:"2"`
}

type SessionResponse struct {
	ID        string                 `json:"id"`
	VenueID   string                 `json:"venue_id"`
	VenueName string                 `json:"venue_name"`
	Day       string                 `json:"day" example:"2025-08-08"`
	Slots     []slot.Slot            `json:"slots"`
	Selection *reservation.Selection `json:"selection,omitempty"`
}

// OutcomeError is the body of every failed selection or confirmation.
type OutcomeError struct {
	Error     string           `json:"error" example:"only 3 seats left for this time"`
	Kind      reservation.Kind `json:"kind" example:"insufficient_seats"`
	SlotID    string           `json:"slot_id,omitempty"`
	Available *int             `json:"available,omitempty"`
}

type AttemptResponse struct {
	ID          string                   `json:"id"`
	SlotID      string                   `json:"slot_id"`
	PartySize   int                      `json:"party_size"`
	State       reservation.State        `json:"state"`
	Reservation *reservation.Reservation `json:"reservation,omitempty"`
	Error       *OutcomeError            `json:"error,omitempty"`
	StartedAt   time.Time                `json:"started_at"`
	FinishedAt  *time.Time               `json:"finished_at,omitempty"`
}

func newSessionResponse(s *Session) SessionResponse {
	resp := SessionResponse{
		ID:        s.ID,
		VenueID:   s.VenueID,
		VenueName: s.VenueName,
		Day:       s.Day().Format(time.DateOnly),
		Slots:     s.Cache.Slots(),
	}
	if sel, ok := s.Negotiator.Selection(); ok {
		resp.Selection = &sel
	}
	return resp
}

func newAttemptResponse(a reservation.Attempt) AttemptResponse {
	resp := AttemptResponse{
		ID:          a.ID,
		SlotID:      a.SlotID,
		PartySize:   a.PartySize,
		State:       a.State,
		Reservation: a.Reservation,
		StartedAt:   a.StartedAt,
	}
	if !a.FinishedAt.IsZero() {
		finished := a.FinishedAt
		resp.FinishedAt = &finished
	}
	if a.Err != nil {
		_, body := outcomeError(a.Err)
		resp.Error = &body
	}
	return resp
}

// outcomeError maps a reservation failure to its HTTP status and body.
func outcomeError(err error) (int, OutcomeError) {
	var rerr *reservation.Error
	if !errors.As(err, &rerr) {
		return http.StatusInternalServerError, OutcomeError{Error: "internal error"}
	}

	body := OutcomeError{Error: rerr.Error(), Kind: rerr.Kind, SlotID: rerr.SlotID}
	switch rerr.Kind {
	case reservation.KindSlotNotFound:
		return http.StatusNotFound, body
	case reservation.KindSlotFull, reservation.KindInFlight:
		return http.StatusConflict, body
	case reservation.KindInsufficientSeats:
		available := rerr.Available
		body.Available = &available
		return http.StatusConflict, body
	case reservation.KindInvalidPartySize:
		return http.StatusBadRequest, body
	case reservation.KindUnauthenticated:
		return http.StatusUnauthorized, body
	case reservation.KindWriteFailed:
		return http.StatusBadGateway, body
	default:
		return http.StatusInternalServerError, body
	}
}
