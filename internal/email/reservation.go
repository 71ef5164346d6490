package email

import (
	"context"
	"fmt"
	"time"

	"prestigo/internal/auth"
	"prestigo/internal/logger"
	"prestigo/internal/reservation"
	"prestigo/internal/slot"
)

const (
	KindReservationConfirmed = "reservation_confirmed"
	KindReservationFailed    = "reservation_failed"
)

const whenLayout = "Mon, Jan 2 2006 at 15:04"

func (s *Service) SendReservationConfirmed(ctx context.Context, to, name, venueName string, sl slot.Slot, partySize int) error {
	subject := "Reservation confirmed - " + venueName
	body := fmt.Sprintf(`Hi %s,

Your table is booked.

Venue: %s
Time: %s - %s
Guests: %d

See you there!

- Prestigo`, name, venueName,
		sl.StartAt.In(s.location).Format(whenLayout),
		sl.EndAt.In(s.location).Format("15:04"),
		partySize)

	return s.Send(ctx, to, name, subject, body, KindReservationConfirmed)
}

func (s *Service) SendReservationFailed(ctx context.Context, to, name, venueName string, startAt time.Time, partySize int) error {
	subject := "Reservation not saved - " + venueName
	body := fmt.Sprintf(`Hi %s,

We could not save your reservation for %d at %s on %s.
The seats were released. Please try again.

- Prestigo`, name, partySize, venueName, startAt.In(s.location).Format(whenLayout))

	return s.Send(ctx, to, name, subject, body, KindReservationFailed)
}

// Notify queues a message for a resolved reservation attempt. The caller's
// address comes from the request context.
func (s *Service) Notify(ctx context.Context, o reservation.Outcome) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok || caller.Email == "" {
		logger.Debug("no address for reservation email", "requester_id", o.RequesterID)
		return
	}

	var err error
	switch o.Attempt.State {
	case reservation.StateCommitted:
		err = s.SendReservationConfirmed(ctx, caller.Email, caller.Name, o.VenueName, o.Slot, o.Attempt.PartySize)
	case reservation.StateRolledBack:
		err = s.SendReservationFailed(ctx, caller.Email, caller.Name, o.VenueName, o.Slot.StartAt, o.Attempt.PartySize)
	default:
		return
	}
	if err != nil {
		logger.Warn("reservation email not queued", "slot_id", o.Slot.ID, "error", err)
	}
}
