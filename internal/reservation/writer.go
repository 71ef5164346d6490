package reservation

import (
	"context"
	"fmt"
	"time"

	"prestigo/internal/slot"
	"prestigo/internal/store"
)

// WriteRequest is what the negotiator hands to the durable writer.
type WriteRequest struct {
	RequesterID string
	VenueID     string
	VenueName   string
	Slot        slot.Slot
	PartySize   int
}

// Writer durably records a reservation.
type Writer interface {
	Write(ctx context.Context, req WriteRequest) (*Reservation, error)
}

// CapacityGuard is an optional cross-session check consulted before the record is written.
type CapacityGuard interface {
	Reserve(ctx context.Context, s slot.Slot, n int) error
	Release(ctx context.Context, s slot.Slot, n int) error
}

// StoreWriter appends reservations to the document store.
type StoreWriter struct {
	store store.Store
	guard CapacityGuard
	now   func() time.Time
}

// NewWriter returns a writer over s. guard may be nil.
func NewWriter(s store.Store, guard CapacityGuard) *StoreWriter {
	return &StoreWriter{store: s, guard: guard, now: time.Now}
}

func (w *StoreWriter) Write(ctx context.Context, req WriteRequest) (*Reservation, error) {
	if req.RequesterID == "" {
		return nil, ErrNoCaller
	}
	if req.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}

	if w.guard != nil {
		if err := w.guard.Reserve(ctx, req.Slot, req.PartySize); err != nil {
			return nil, fmt.Errorf("reserve capacity: %w", err)
		}
	}

	r := Reservation{
		RequesterID: req.RequesterID,
		VenueID:     req.VenueID,
		VenueName:   req.VenueName,
		SlotID:      req.Slot.ID,
		SlotStart:   req.Slot.StartAt,
		SlotEnd:     req.Slot.EndAt,
		PartySize:   req.PartySize,
		Status:      StatusConfirmed,
		CreatedAt:   w.now(),
	}

	id, err := w.store.CreateRecord(ctx, Collection, r.Document())
	if err != nil {
		if w.guard != nil {
			// ctx may already be past its deadline here
			if rerr := w.guard.Release(context.WithoutCancel(ctx), req.Slot, req.PartySize); rerr != nil {
				return nil, fmt.Errorf("write reservation: %w (release capacity: %v)", err, rerr)
			}
		}
		return nil, fmt.Errorf("write reservation: %w", err)
	}

	r.ID = id
	return &r, nil
}
