package events

import (
	"context"
	"time"

	"prestigo/internal/logger"
	"prestigo/internal/reservation"
)

const (
	TopicReservationCommitted  = "reservation.committed"
	TopicReservationRolledBack = "reservation.rolled_back"
)

type ReservationEvent struct {
	AttemptID     string    `json:"attempt_id"`
	ReservationID string    `json:"reservation_id,omitempty"`
	RequesterID   string    `json:"requester_id"`
	VenueID       string    `json:"venue_id"`
	VenueName     string    `json:"venue_name"`
	SlotID        string    `json:"slot_id"`
	SlotStart     time.Time `json:"slot_start"`
	SlotEnd       time.Time `json:"slot_end"`
	PartySize     int       `json:"party_size"`
	Error         string    `json:"error,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Sink publishes a message under a routing key. *Publisher is one.
type Sink interface {
	Publish(ctx context.Context, key string, message any) error
}

// ReservationNotifier turns reservation outcomes into broker events.
type ReservationNotifier struct {
	Sink Sink
}

func (n ReservationNotifier) Notify(ctx context.Context, o reservation.Outcome) {
	topic, ev, ok := Event(o)
	if !ok {
		return
	}
	if err := n.Sink.Publish(ctx, topic, ev); err != nil {
		logger.Warn("reservation event not published", "topic", topic, "slot_id", o.Slot.ID, "error", err)
	}
}

// Event maps an outcome to its topic and payload. ok is false for unresolved attempts.
func Event(o reservation.Outcome) (string, ReservationEvent, bool) {
	ev := ReservationEvent{
		AttemptID:   o.Attempt.ID,
		RequesterID: o.RequesterID,
		VenueID:     o.VenueID,
		VenueName:   o.VenueName,
		SlotID:      o.Slot.ID,
		SlotStart:   o.Slot.StartAt.UTC(),
		SlotEnd:     o.Slot.EndAt.UTC(),
		PartySize:   o.Attempt.PartySize,
		OccurredAt:  o.Attempt.FinishedAt.UTC(),
	}

	switch o.Attempt.State {
	case reservation.StateCommitted:
		if o.Attempt.Reservation != nil {
			ev.ReservationID = o.Attempt.Reservation.ID
		}
		return TopicReservationCommitted, ev, true
	case reservation.StateRolledBack:
		if o.Attempt.Err != nil {
			ev.Error = o.Attempt.Err.Error()
		}
		return TopicReservationRolledBack, ev, true
	default:
		return "", ev, false
	}
}
