package availability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prestigo/internal/slot"
)

var testDay = time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC)

func testSlots(avail ...int) []slot.Slot {
	start := testDay.Add(19 * time.Hour)
	out := make([]slot.Slot, len(avail))
	for i, a := range avail {
		at := start.Add(time.Duration(i) * 30 * time.Minute)
		out[i] = slot.Slot{
			ID:        slot.ID("v1", at),
			VenueID:   "v1",
			StartAt:   at,
			EndAt:     at.Add(30 * time.Minute),
			Capacity:  10,
			Available: a,
		}
	}
	return out
}

func TestCacheGetAndSlots(t *testing.T) {
	c := NewCache()
	slots := testSlots(3, 10)
	c.Replace("v1", testDay, slots)

	got, ok := c.Get(slots[0].ID)
	require.True(t, ok)
	assert.Equal(t, 3, got.Available)

	_, ok = c.Get("v1_0")
	assert.False(t, ok)

	all := c.Slots()
	require.Len(t, all, 2)
	all[0].Available = 99
	got, _ = c.Get(slots[0].ID)
	assert.Equal(t, 3, got.Available, "Slots must return a copy")

	assert.Equal(t, "v1", c.VenueID())
	assert.Equal(t, testDay, c.Day())
}

func TestApplyDeltaClamps(t *testing.T) {
	c := NewCache()
	slots := testSlots(3)
	c.Replace("v1", testDay, slots)
	id := slots[0].ID

	s, ok := c.ApplyDelta(id, -5)
	require.True(t, ok)
	assert.Equal(t, 0, s.Available)

	s, _ = c.ApplyDelta(id, 4)
	assert.Equal(t, 4, s.Available)

	s, _ = c.ApplyDelta(id, 50)
	assert.Equal(t, 10, s.Available)
}

func TestApplyDeltaUnknownSlotIsNoop(t *testing.T) {
	c := NewCache()
	c.Replace("v1", testDay, testSlots(3))

	s, ok := c.ApplyDelta("v1_1", -1)
	assert.False(t, ok)
	assert.Equal(t, slot.Slot{}, s)
}

func TestReplaceClampsIncomingSlots(t *testing.T) {
	c := NewCache()
	slots := testSlots(-1, 12)
	c.Replace("v1", testDay, slots)

	a, _ := c.Get(slots[0].ID)
	b, _ := c.Get(slots[1].ID)
	assert.Equal(t, 0, a.Available)
	assert.Equal(t, 10, b.Available)
}

func TestListenersSeeChanges(t *testing.T) {
	c := NewCache()
	slots := testSlots(3, 5)
	c.Replace("v1", testDay, slots)

	var seen []slot.Slot
	c.Subscribe(func(s slot.Slot) { seen = append(seen, s) })

	c.ApplyDelta(slots[0].ID, -1)
	c.ApplyDelta(slots[0].ID, 0)
	c.Replace("v1", testDay, testSlots(2, 4))

	require.Len(t, seen, 2)
	assert.Equal(t, 2, seen[0].Available)
	assert.Equal(t, slots[1].ID, seen[1].ID)
	assert.Equal(t, 4, seen[1].Available)
}

func TestInvariantHoldsUnderConcurrentDeltas(t *testing.T) {
	c := NewCache()
	slots := testSlots(5)
	c.Replace("v1", testDay, slots)
	id := slots[0].ID

	var wg sync.WaitGroup
	for i := range 200 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			delta := -3
			if i%2 == 0 {
				delta = 4
			}
			s, _ := c.ApplyDelta(id, delta)
			assert.GreaterOrEqual(t, s.Available, 0)
			assert.LessOrEqual(t, s.Available, s.Capacity)
		}(i)
	}
	wg.Wait()

	s, _ := c.Get(id)
	assert.GreaterOrEqual(t, s.Available, 0)
	assert.LessOrEqual(t, s.Available, 10)
}
