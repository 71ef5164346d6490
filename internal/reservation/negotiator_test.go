package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prestigo/internal/availability"
	"prestigo/internal/slot"
)

var testDay = time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) Write(ctx context.Context, req WriteRequest) (*Reservation, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*Reservation)
	return res, args.Error(1)
}

type recordingNotifier struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *recordingNotifier) Notify(_ context.Context, o Outcome) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, o)
	r.mu.Unlock()
}

func (r *recordingNotifier) all() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Outcome(nil), r.outcomes...)
}

func signedIn(id string) Identity {
	return IdentityFunc(func(context.Context) (string, bool) { return id, id != "" })
}

func newTestCache(available int) (*availability.Cache, slot.Slot) {
	at := testDay.Add(19 * time.Hour)
	s := slot.Slot{
		ID:        slot.ID("v1", at),
		VenueID:   "v1",
		StartAt:   at,
		EndAt:     at.Add(30 * time.Minute),
		Capacity:  10,
		Available: available,
	}
	c := availability.NewCache()
	c.Replace("v1", testDay, []slot.Slot{s})
	return c, s
}

func availableIn(t *testing.T, c *availability.Cache, id string) int {
	t.Helper()
	s, ok := c.Get(id)
	require.True(t, ok)
	return s.Available
}

func TestConfirmInsufficientThenCommitThenFull(t *testing.T) {
	cache, s := newTestCache(3)
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.MatchedBy(func(r WriteRequest) bool {
		return r.RequesterID == "u1" && r.PartySize == 3 && r.Slot.ID == s.ID
	})).Return(&Reservation{ID: "r1", SlotID: s.ID, PartySize: 3}, nil).Once()

	n := NewNegotiator(Venue{ID: "v1", Name: "Prestige"}, cache, w, signedIn("u1"))
	ctx := context.Background()

	_, err := n.Confirm(ctx, s.ID, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientSeats))
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 3, rerr.Available)
	assert.Equal(t, "only 3 seats left for this time", err.Error())
	assert.Equal(t, 3, availableIn(t, cache, s.ID))

	p, err := n.Confirm(ctx, s.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, StateReserving, p.Attempt().State)
	assert.Equal(t, 0, availableIn(t, cache, s.ID))

	a, err := p.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, a.State)
	require.NotNil(t, a.Reservation)
	assert.Equal(t, "r1", a.Reservation.ID)

	_, err = n.Confirm(ctx, s.ID, 1)
	assert.True(t, errors.Is(err, ErrSlotFull))
	assert.Equal(t, 0, availableIn(t, cache, s.ID))

	n.Close()
	w.AssertExpectations(t)
}

func TestConfirmWriteFailureRollsBack(t *testing.T) {
	cache, s := newTestCache(4)
	release := make(chan struct{})
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(nil, errors.New("connection reset")).Once()

	notes := &recordingNotifier{}
	n := NewNegotiator(Venue{ID: "v1"}, cache, w, signedIn("u1"), WithNotifier(notes))

	p, err := n.Confirm(context.Background(), s.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, availableIn(t, cache, s.ID))
	assert.True(t, n.Busy())
	assert.Equal(t, StateReserving, n.State(s.ID))

	close(release)
	a, err := p.Wait(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteFailed))
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, StateRolledBack, a.State)
	assert.Equal(t, 4, availableIn(t, cache, s.ID))
	assert.False(t, n.Busy())
	assert.Equal(t, StateRolledBack, n.State(s.ID))

	n.Close()
	out := notes.all()
	require.Len(t, out, 1)
	assert.Equal(t, StateRolledBack, out[0].Attempt.State)
	assert.Equal(t, "u1", out[0].RequesterID)
}

func TestConfirmRejectsSecondAttemptWhileInFlight(t *testing.T) {
	cache, s := newTestCache(6)
	release := make(chan struct{})
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(&Reservation{ID: "r1"}, nil).Once()

	n := NewNegotiator(Venue{ID: "v1"}, cache, w, signedIn("u1"))

	p, err := n.Confirm(context.Background(), s.ID, 2)
	require.NoError(t, err)

	_, err = n.Confirm(context.Background(), s.ID, 1)
	assert.True(t, errors.Is(err, ErrInFlight))
	assert.Equal(t, 4, availableIn(t, cache, s.ID))

	close(release)
	_, err = p.Wait(context.Background())
	require.NoError(t, err)
	n.Close()
	w.AssertNumberOfCalls(t, "Write", 1)
}

func TestConfirmLocalFailures(t *testing.T) {
	cache, s := newTestCache(3)
	w := new(mockWriter)

	tests := []struct {
		name     string
		identity Identity
		slotID   string
		party    int
		want     error
	}{
		{"zero party", signedIn("u1"), s.ID, 0, ErrInvalidPartySize},
		{"no caller", signedIn(""), s.ID, 1, ErrUnauthenticated},
		{"unknown slot", signedIn("u1"), "v1_0", 1, ErrSlotNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNegotiator(Venue{ID: "v1"}, cache, w, tt.identity)
			_, err := n.Confirm(context.Background(), tt.slotID, tt.party)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	assert.Equal(t, 3, availableIn(t, cache, s.ID))
	w.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestConfirmTimeoutRollsBack(t *testing.T) {
	cache, s := newTestCache(5)
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded).Once()

	n := NewNegotiator(Venue{ID: "v1"}, cache, w, signedIn("u1"), WithWriteTimeout(20*time.Millisecond))

	p, err := n.Confirm(context.Background(), s.ID, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	a, err := p.Wait(ctx)
	assert.True(t, errors.Is(err, ErrWriteFailed))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, StateRolledBack, a.State)
	assert.Equal(t, 5, availableIn(t, cache, s.ID))
	n.Close()
}

func TestConfirmSurvivesCallerCancel(t *testing.T) {
	cache, s := newTestCache(5)
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.Anything).Return(&Reservation{ID: "r1"}, nil).Once()

	n := NewNegotiator(Venue{ID: "v1"}, cache, w, signedIn("u1"))

	ctx, cancel := context.WithCancel(context.Background())
	p, err := n.Confirm(ctx, s.ID, 1)
	require.NoError(t, err)
	cancel()

	a, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, a.State)
	assert.Equal(t, 4, availableIn(t, cache, s.ID))
	n.Close()
}

func TestSelectClampsAndFollowsCache(t *testing.T) {
	cache, s := newTestCache(3)
	n := NewNegotiator(Venue{ID: "v1"}, cache, new(mockWriter), signedIn("u1"))

	sel, err := n.Select(s.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, sel.PartySize)

	sel, err = n.Select(s.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.PartySize)

	_, err = n.Select(s.ID, 3)
	require.NoError(t, err)
	cache.ApplyDelta(s.ID, -2)

	sel, ok := n.Selection()
	require.True(t, ok)
	assert.Equal(t, 1, sel.PartySize)
	assert.Equal(t, 1, sel.Available)
	assert.Equal(t, StateSelecting, n.State(s.ID))

	_, err = n.Select("v1_0", 1)
	assert.True(t, errors.Is(err, ErrSlotNotFound))

	cache.ApplyDelta(s.ID, -1)
	_, err = n.Select(s.ID, 1)
	assert.True(t, errors.Is(err, ErrSlotFull))
}

func TestApplyIfQuiet(t *testing.T) {
	cache, s := newTestCache(5)
	release := make(chan struct{})
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(&Reservation{ID: "r1"}, nil).Once()

	n := NewNegotiator(Venue{ID: "v1"}, cache, w, signedIn("u1"))

	gen := n.Generation()
	ran := false
	assert.True(t, n.ApplyIfQuiet(gen, func() { ran = true }))
	assert.True(t, ran)

	p, err := n.Confirm(context.Background(), s.ID, 1)
	require.NoError(t, err)

	ran = false
	assert.False(t, n.ApplyIfQuiet(n.Generation(), func() { ran = true }), "write in flight")
	assert.False(t, n.ApplyIfQuiet(gen, func() { ran = true }), "stale generation")
	assert.False(t, ran)

	close(release)
	_, err = p.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, n.ApplyIfQuiet(n.Generation(), func() { ran = true }))
	n.Close()
}

func TestRefreshDoesNotClobberOptimisticDecrement(t *testing.T) {
	cache, s := newTestCache(5)
	release := make(chan struct{})
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(&Reservation{ID: "r1"}, nil).Once()

	n := NewNegotiator(Venue{ID: "v1"}, cache, w, signedIn("u1"))
	stale := s
	r := &availability.Refresher{
		Cache: cache,
		Gate:  n,
		Load: func(context.Context, string, time.Time) ([]slot.Slot, error) {
			return []slot.Slot{stale}, nil
		},
	}

	p, err := n.Confirm(context.Background(), s.ID, 2)
	require.NoError(t, err)

	applied, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 3, availableIn(t, cache, s.ID))

	close(release)
	_, err = p.Wait(context.Background())
	require.NoError(t, err)
	n.Close()
}

func TestSequentialConfirmsDecrementAdditively(t *testing.T) {
	cache, s := newTestCache(5)
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.MatchedBy(func(r WriteRequest) bool { return r.PartySize == 2 })).
		Return(&Reservation{ID: "r1", SlotID: s.ID, PartySize: 2}, nil).Once()
	w.On("Write", mock.Anything, mock.MatchedBy(func(r WriteRequest) bool { return r.PartySize == 3 })).
		Return(&Reservation{ID: "r2", SlotID: s.ID, PartySize: 3}, nil).Once()

	n := NewNegotiator(Venue{ID: "v1"}, cache, w, signedIn("u1"))
	ctx := context.Background()

	p, err := n.Confirm(ctx, s.ID, 2)
	require.NoError(t, err)
	a, err := p.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, a.State)
	assert.Equal(t, 3, availableIn(t, cache, s.ID))

	p, err = n.Confirm(ctx, s.ID, 3)
	require.NoError(t, err)
	a, err = p.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, a.State)
	assert.Equal(t, 0, availableIn(t, cache, s.ID))

	n.Close()
	w.AssertExpectations(t)
}

func TestSecondConfirmRevalidatesAgainstReducedAvailability(t *testing.T) {
	cache, s := newTestCache(5)
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.Anything).
		Return(&Reservation{ID: "r1", SlotID: s.ID, PartySize: 2}, nil).Once()

	n := NewNegotiator(Venue{ID: "v1"}, cache, w, signedIn("u1"))
	ctx := context.Background()

	p, err := n.Confirm(ctx, s.ID, 2)
	require.NoError(t, err)
	_, err = p.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, availableIn(t, cache, s.ID))

	_, err = n.Confirm(ctx, s.ID, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientSeats))
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 3, rerr.Available)
	assert.Equal(t, 3, availableIn(t, cache, s.ID))

	n.Close()
	w.AssertExpectations(t)
}

func TestWriterReturningNoReservationRollsBack(t *testing.T) {
	cache, s := newTestCache(4)
	w := new(mockWriter)
	w.On("Write", mock.Anything, mock.Anything).Return(nil, nil).Once()

	n := NewNegotiator(Venue{ID: "v1"}, cache, w, signedIn("u1"))
	ctx := context.Background()

	p, err := n.Confirm(ctx, s.ID, 2)
	require.NoError(t, err)
	a, err := p.Wait(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteFailed))
	assert.True(t, errors.Is(err, ErrNoReservation))
	assert.Equal(t, StateRolledBack, a.State)
	assert.Equal(t, 4, availableIn(t, cache, s.ID))

	n.Close()
	w.AssertExpectations(t)
}
