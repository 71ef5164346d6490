package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prestigo/internal/slot"
)

type fakeGate struct {
	generation uint64
	busy       bool
	bump       bool
}

func (g *fakeGate) Generation() uint64 { return g.generation }

func (g *fakeGate) ApplyIfQuiet(generation uint64, apply func()) bool {
	if g.busy || generation != g.generation {
		return false
	}
	apply()
	return true
}

func staticLoader(slots []slot.Slot, gate *fakeGate) Loader {
	return func(context.Context, string, time.Time) ([]slot.Slot, error) {
		if gate != nil && gate.bump {
			gate.generation++
		}
		return slots, nil
	}
}

func TestRefreshApplies(t *testing.T) {
	c := NewCache()
	c.Replace("v1", testDay, testSlots(3))
	fresh := testSlots(1)

	r := &Refresher{Cache: c, Load: staticLoader(fresh, nil)}
	applied, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)

	s, _ := c.Get(fresh[0].ID)
	assert.Equal(t, 1, s.Available)
}

func TestRefreshSkippedWhileWriteInFlight(t *testing.T) {
	c := NewCache()
	slots := testSlots(3)
	c.Replace("v1", testDay, slots)

	gate := &fakeGate{busy: true}
	r := &Refresher{Cache: c, Load: staticLoader(testSlots(9), gate), Gate: gate}

	applied, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)

	s, _ := c.Get(slots[0].ID)
	assert.Equal(t, 3, s.Available)
}

func TestRefreshSkippedWhenGenerationMoved(t *testing.T) {
	c := NewCache()
	slots := testSlots(3)
	c.Replace("v1", testDay, slots)

	gate := &fakeGate{bump: true}
	r := &Refresher{Cache: c, Load: staticLoader(testSlots(9), gate), Gate: gate}

	applied, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestRefreshSkippedWhenDayChangedDuringLoad(t *testing.T) {
	c := NewCache()
	c.Replace("v1", testDay, testSlots(3))
	nextDay := testDay.AddDate(0, 0, 1)

	r := &Refresher{Cache: c, Load: func(context.Context, string, time.Time) ([]slot.Slot, error) {
		c.Replace("v1", nextDay, nil)
		return testSlots(9), nil
	}}

	applied, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, c.Slots())
}

func TestRefreshLoadError(t *testing.T) {
	c := NewCache()
	c.Replace("v1", testDay, testSlots(3))

	r := &Refresher{Cache: c, Load: func(context.Context, string, time.Time) ([]slot.Slot, error) {
		return nil, errors.New("store unavailable")
	}}

	applied, err := r.Refresh(context.Background())
	assert.Error(t, err)
	assert.False(t, applied)
}

func TestRefreshEmptyCacheIsNoop(t *testing.T) {
	r := &Refresher{Cache: NewCache(), Load: func(context.Context, string, time.Time) ([]slot.Slot, error) {
		t.Fatal("loader must not be called")
		return nil, nil
	}}

	applied, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewCache()
	c.Replace("v1", testDay, testSlots(3))

	r := &Refresher{Cache: c, Load: staticLoader(testSlots(2), nil), Interval: time.Millisecond}
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool {
		s := c.Slots()
		return len(s) == 1 && s[0].Available == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
