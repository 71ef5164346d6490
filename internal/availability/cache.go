package availability

import (
	"sync"
	"time"

	"prestigo/internal/slot"
)

// Listener observes a slot after its availability changed.
type Listener func(s slot.Slot)

// Cache is the in-memory view of slot availability for one (venue, day).
// ApplyDelta is the only per-slot mutation; Replace swaps the whole day.
type Cache struct {
	mu        sync.RWMutex
	venueID   string
	day       time.Time
	slots     []slot.Slot
	index     map[string]int
	listeners []Listener
}

func NewCache() *Cache {
	return &Cache{index: make(map[string]int)}
}

func (c *Cache) VenueID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.venueID
}

func (c *Cache) Day() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.day
}

func (c *Cache) Get(slotID string) (slot.Slot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[slotID]
	if !ok {
		return slot.Slot{}, false
	}
	return c.slots[i], true
}

// Slots returns a copy of the displayed slots in start order.
func (c *Cache) Slots() []slot.Slot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]slot.Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// ApplyDelta adjusts Available by delta, clamped to [0, Capacity].
// An unknown id is a no-op and reports false.
func (c *Cache) ApplyDelta(slotID string, delta int) (slot.Slot, bool) {
	c.mu.Lock()
	i, ok := c.index[slotID]
	if !ok {
		c.mu.Unlock()
		return slot.Slot{}, false
	}

	before := c.slots[i]
	after := before
	after.Available += delta
	after = after.Clamp()
	c.slots[i] = after
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	if after.Available != before.Available {
		notify(listeners, after)
	}
	return after, true
}

// Replace installs a fresh day of slots, e.g. after a day change or refresh.
func (c *Cache) Replace(venueID string, day time.Time, slots []slot.Slot) {
	next := make([]slot.Slot, len(slots))
	index := make(map[string]int, len(slots))
	for i, s := range slots {
		next[i] = s.Clamp()
		index[s.ID] = i
	}

	c.mu.Lock()
	var changed []slot.Slot
	for _, s := range next {
		if j, ok := c.index[s.ID]; !ok || c.slots[j].Available != s.Available {
			changed = append(changed, s)
		}
	}
	c.venueID = venueID
	c.day = day
	c.slots = next
	c.index = index
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	for _, s := range changed {
		notify(listeners, s)
	}
}

func (c *Cache) Subscribe(l Listener) {
	if l == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

func (c *Cache) snapshotListeners() []Listener {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]Listener, len(c.listeners))
	copy(out, c.listeners)
	return out
}

func notify(listeners []Listener, s slot.Slot) {
	for _, l := range listeners {
		l(s)
	}
}
