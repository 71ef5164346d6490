package availability

import (
	"context"
	"time"

	"prestigo/internal/logger"
	"prestigo/internal/metrics"
	"prestigo/internal/slot"
)

// Loader reads a fresh copy of a day's slots.
type Loader func(ctx context.Context, venueID string, day time.Time) ([]slot.Slot, error)

// Gate lets the cache's writer veto a refresh. Generation changes whenever an
// optimistic change is made; ApplyIfQuiet runs apply only if the generation is
// unchanged and no write is in flight.
type Gate interface {
	Generation() uint64
	ApplyIfQuiet(generation uint64, apply func()) bool
}

// Refresher periodically replaces the cache with fresh reads.
type Refresher struct {
	Cache    *Cache
	Load     Loader
	Gate     Gate
	Interval time.Duration
}

func (r *Refresher) Run(ctx context.Context) error {
	if r.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	t := time.NewTicker(r.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("availability refresh failed",
					"venue_id", r.Cache.VenueID(),
					"error", err,
				)
			}
		}
	}
}

// Refresh reloads the current day once and reports whether it was applied.
func (r *Refresher) Refresh(ctx context.Context) (bool, error) {
	venueID, day := r.Cache.VenueID(), r.Cache.Day()
	if venueID == "" {
		return false, nil
	}

	var generation uint64
	if r.Gate != nil {
		generation = r.Gate.Generation()
	}

	slots, err := r.Load(ctx, venueID, day)
	if err != nil {
		metrics.RecordAvailabilityRefresh("error")
		return false, err
	}

	applied := false
	apply := func() {
		if r.Cache.VenueID() != venueID || !r.Cache.Day().Equal(day) {
			return
		}
		r.Cache.Replace(venueID, day, slots)
		applied = true
	}

	if r.Gate == nil {
		apply()
	} else {
		r.Gate.ApplyIfQuiet(generation, apply)
	}

	if applied {
		metrics.RecordAvailabilityRefresh("applied")
	} else {
		metrics.RecordAvailabilityRefresh("skipped")
		logger.Debug("availability refresh skipped", "venue_id", venueID)
	}
	return applied, nil
}
