package slot

import (
	"context"
	"fmt"
	"time"
)

// AvailabilitySource reads remaining seats for a batch of slots. It must not
// mutate anything. Slots missing from the result are treated as fully free.
type AvailabilitySource interface {
	Availability(ctx context.Context, slots []Slot) (map[string]int, error)
}

// FullCapacity reports every seat as free.
type FullCapacity struct{}

func (FullCapacity) Availability(context.Context, []Slot) (map[string]int, error) {
	return map[string]int{}, nil
}

type Generator struct {
	source AvailabilitySource
}

func NewGenerator(source AvailabilitySource) *Generator {
	if source == nil {
		source = FullCapacity{}
	}
	return &Generator{source: source}
}

// Layout cuts the venue's day into contiguous slots with every seat free.
// A slot that would run past closing time is not produced.
func Layout(venueID string, day time.Time, h Hours) []Slot {
	if h.Duration <= 0 || h.Capacity <= 0 {
		return nil
	}
	start, end, ok := h.Window(day)
	if !ok {
		return nil
	}

	var slots []Slot
	for t := start; t.Before(end); t = t.Add(h.Duration) {
		e := t.Add(h.Duration)
		if e.After(end) {
			break
		}
		slots = append(slots, Slot{
			ID:        ID(venueID, t),
			VenueID:   venueID,
			StartAt:   t,
			EndAt:     e,
			Capacity:  h.Capacity,
			Available: h.Capacity,
		})
	}
	return slots
}

// Generate lays out the day and fills Available from the source.
func (g *Generator) Generate(ctx context.Context, venueID string, day time.Time, h Hours) ([]Slot, error) {
	slots := Layout(venueID, day, h)
	if len(slots) == 0 {
		return slots, nil
	}

	avail, err := g.source.Availability(ctx, slots)
	if err != nil {
		return nil, fmt.Errorf("read availability for venue %s: %w", venueID, err)
	}

	for i := range slots {
		if n, ok := avail[slots[i].ID]; ok {
			slots[i].Available = n
			slots[i] = slots[i].Clamp()
		}
	}
	return slots, nil
}
