package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prestigo/internal/slot"
	"prestigo/internal/store"
)

// Filter selects which of a requester's reservations to list.
type Filter string

const (
	FilterUpcoming Filter = "upcoming"
	FilterPast     Filter = "past"
	FilterAll      Filter = "all"
)

var ErrInvalidFilter = errors.New("invalid reservation filter")

// ParseFilter maps a query value to a Filter; empty means upcoming.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "":
		return FilterUpcoming, nil
	case FilterUpcoming, FilterPast, FilterAll:
		return Filter(s), nil
	default:
		return "", ErrInvalidFilter
	}
}

// Repository is the read side of the reservations collection.
type Repository struct {
	store store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// ListByRequester returns the requester's reservations ordered by slot start.
func (r *Repository) ListByRequester(ctx context.Context, requesterID string, filter Filter, now time.Time) ([]Reservation, error) {
	q := store.Query{
		Collection: Collection,
		Filters:    []store.Filter{{Field: fieldRequesterID, Op: store.OpEq, Value: requesterID}},
		OrderBy:    fieldSlotStart,
	}
	switch filter {
	case FilterUpcoming:
		q.Filters = append(q.Filters, store.Filter{Field: fieldSlotStart, Op: store.OpGt, Value: store.FormatTime(now)})
	case FilterPast:
		q.Filters = append(q.Filters, store.Filter{Field: fieldSlotStart, Op: store.OpLt, Value: store.FormatTime(now)})
	case FilterAll:
	default:
		return nil, ErrInvalidFilter
	}

	records, err := r.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return decodeAll(records)
}

// Availability implements slot.AvailabilitySource by summing confirmed party sizes per slot.
func (r *Repository) Availability(ctx context.Context, slots []slot.Slot) (map[string]int, error) {
	if len(slots) == 0 {
		return map[string]int{}, nil
	}

	from, to := slots[0].StartAt, slots[0].StartAt
	for _, s := range slots[1:] {
		if s.StartAt.Before(from) {
			from = s.StartAt
		}
		if s.StartAt.After(to) {
			to = s.StartAt
		}
	}

	records, err := r.store.Find(ctx, store.Query{
		Collection: Collection,
		Filters: []store.Filter{
			{Field: fieldVenueID, Op: store.OpEq, Value: slots[0].VenueID},
			{Field: fieldSlotStart, Op: store.OpGte, Value: store.FormatTime(from)},
			{Field: fieldSlotStart, Op: store.OpLte, Value: store.FormatTime(to)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	booked := make(map[string]int)
	for _, rec := range records {
		res, err := FromRecord(rec)
		if err != nil {
			return nil, err
		}
		if res.Status != StatusConfirmed {
			continue
		}
		booked[res.SlotID] += res.PartySize
	}

	out := make(map[string]int, len(slots))
	for _, s := range slots {
		out[s.ID] = s.Capacity - booked[s.ID]
	}
	return out, nil
}

func decodeAll(records []store.Record) ([]Reservation, error) {
	out := make([]Reservation, 0, len(records))
	for _, rec := range records {
		res, err := FromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
