package slot

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultOpenAt   = "19:00"
	DefaultCloseAt  = "23:00"
	DefaultDuration = 30 * time.Minute
	DefaultCapacity = 10
)

var ErrInvalidClock = errors.New("invalid clock time, want HH:MM")

// Clock is a wall-clock time of day in a venue's local zone.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) on(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

// Hours describes how a venue's day is cut into slots.
type Hours struct {
	OpenAt   Clock
	CloseAt  Clock
	Duration time.Duration
	Capacity int
	Location *time.Location
}

func DefaultHours() Hours {
	return Hours{
		OpenAt:   Clock{Hour: 19},
		CloseAt:  Clock{Hour: 23},
		Duration: DefaultDuration,
		Capacity: DefaultCapacity,
		Location: time.Local,
	}
}

// Midnight resolves day to local midnight in the venue zone.
func (h Hours) Midnight(day time.Time) time.Time {
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Window returns the business-hour window of day; ok is false when it is empty or inverted.
func (h Hours) Window(day time.Time) (start, end time.Time, ok bool) {
	midnight := h.Midnight(day)
	start = h.OpenAt.on(midnight)
	end = h.CloseAt.on(midnight)
	if !start.Before(end) {
		return start, end, false
	}
	return start, end, true
}

// Days lists n consecutive local days starting with the day containing from.
func (h Hours) Days(from time.Time, n int) []time.Time {
	start := h.Midnight(from)
	days := make([]time.Time, 0, n)
	for i := range n {
		y, m, d := start.Date()
		days = append(days, time.Date(y, m, d+i, 0, 0, 0, 0, start.Location()))
	}
	return days
}
