package reservation

import (
	"fmt"
	"time"

	"prestigo/internal/store"
)

const (
	Collection      = "reservations"
	StatusConfirmed = "confirmed"
)

// Document field names in the reservations collection.
const (
	fieldRequesterID = "userId"
	fieldVenueID     = "venueId"
	fieldVenueName   = "venueName"
	fieldSlotID      = "slotId"
	fieldSlotStart   = "slotStart"
	fieldSlotEnd     = "slotEnd"
	fieldPartySize   = "partySize"
	fieldStatus      = "status"
	fieldCreatedAt   = "createdAt"
)

// Reservation is a confirmed booking. It is never updated after it is written.
type Reservation struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	VenueID     string    `json:"venue_id"`
	VenueName   string    `json:"venue_name"`
	SlotID      string    `json:"slot_id"`
	SlotStart   time.Time `json:"slot_start"`
	SlotEnd     time.Time `json:"slot_end"`
	PartySize   int       `json:"party_size"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Document encodes r into the store's document format.
func (r Reservation) Document() store.Document {
	return store.Document{
		fieldRequesterID: r.RequesterID,
		fieldVenueID:     r.VenueID,
		fieldVenueName:   r.VenueName,
		fieldSlotID:      r.SlotID,
		fieldSlotStart:   store.FormatTime(r.SlotStart),
		fieldSlotEnd:     store.FormatTime(r.SlotEnd),
		fieldPartySize:   r.PartySize,
		fieldStatus:      r.Status,
		fieldCreatedAt:   store.FormatTime(r.CreatedAt),
	}
}

// FromRecord decodes a stored reservations record.
func FromRecord(rec store.Record) (Reservation, error) {
	d := rec.Fields
	r := Reservation{ID: rec.ID}

	var ok bool
	if r.RequesterID, ok = d.String(fieldRequesterID); !ok {
		return r, fieldError(rec.ID, fieldRequesterID)
	}
	if r.VenueID, ok = d.String(fieldVenueID); !ok {
		return r, fieldError(rec.ID, fieldVenueID)
	}
	r.VenueName, _ = d.String(fieldVenueName)
	if r.SlotID, ok = d.String(fieldSlotID); !ok {
		return r, fieldError(rec.ID, fieldSlotID)
	}
	if r.SlotStart, ok = d.Time(fieldSlotStart); !ok {
		return r, fieldError(rec.ID, fieldSlotStart)
	}
	if r.SlotEnd, ok = d.Time(fieldSlotEnd); !ok {
		return r, fieldError(rec.ID, fieldSlotEnd)
	}
	if r.PartySize, ok = d.Int(fieldPartySize); !ok {
		return r, fieldError(rec.ID, fieldPartySize)
	}
	if r.Status, ok = d.String(fieldStatus); !ok {
		r.Status = StatusConfirmed
	}
	if r.CreatedAt, ok = d.Time(fieldCreatedAt); !ok {
		r.CreatedAt = rec.CreatedAt
	}
	return r, nil
}

func fieldError(id, field string) error {
	return fmt.Errorf("reservation %s: %s: %w", id, field, store.ErrMissingField)
}
