package slot

import (
	"fmt"
	"time"
)

// Slot is one bookable window at a venue. Available stays within [0, Capacity].
type Slot struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venue_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Capacity  int       `json:"capacity"`
	Available int       `json:"available"`
}

func (s Slot) IsFull() bool {
	return s.Available <= 0
}

// Clamp returns s with Available forced into [0, Capacity].
func (s Slot) Clamp() Slot {
	s.Available = min(max(s.Available, 0), s.Capacity)
	return s
}

// ID derives the stable slot identity from venue and start instant.
func ID(venueID string, startAt time.Time) string {
	return fmt.Sprintf("%s_%d", venueID, startAt.Unix())
}
