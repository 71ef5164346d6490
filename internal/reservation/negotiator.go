package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"prestigo/internal/availability"
	"prestigo/internal/logger"
	"prestigo/internal/metrics"
	"prestigo/internal/slot"
)

const DefaultWriteTimeout = 10 * time.Second

// State is the negotiation state of one slot within a session.
type State string

const (
	StateIdle       State = "idle"
	StateSelecting  State = "selecting"
	StateReserving  State = "reserving"
	StateCommitted  State = "committed"
	StateRolledBack State = "rolled_back"
)

// Identity resolves the authenticated caller for a request.
type Identity interface {
	CallerID(ctx context.Context) (string, bool)
}

// IdentityFunc adapts a function to Identity.
type IdentityFunc func(ctx context.Context) (string, bool)

func (f IdentityFunc) CallerID(ctx context.Context) (string, bool) { return f(ctx) }

// Outcome is delivered once per confirmation after the durable write resolves.
type Outcome struct {
	Attempt     Attempt
	RequesterID string
	VenueID     string
	VenueName   string
	Slot        slot.Slot
}

// Notifier receives committed and rolled back outcomes.
type Notifier interface {
	Notify(ctx context.Context, o Outcome)
}

// Notifiers fans an outcome out to several notifiers in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, o Outcome) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ctx, o)
		}
	}
}

// Venue identifies the venue a negotiator books against.
type Venue struct {
	ID   string
	Name string
}

// Selection is the slot and party size the caller is currently considering.
type Selection struct {
	SlotID    string `json:"slot_id"`
	PartySize int    `json:"party_size"`
	Available int    `json:"available"`
}

// Attempt describes one confirmation.
type Attempt struct {
	ID          string       `json:"id"`
	SlotID      string       `json:"slot_id"`
	PartySize   int          `json:"party_size"`
	State       State        `json:"state"`
	Reservation *Reservation `json:"reservation,omitempty"`
	Err         error        `json:"-"`
	StartedAt   time.Time    `json:"started_at"`
	FinishedAt  time.Time    `json:"finished_at,omitempty"`
}

// Pending is returned by Confirm while the durable write is outstanding.
type Pending struct {
	attempt Attempt
	done    chan struct{}
	final   Attempt
}

// Attempt returns the attempt as it was when Confirm returned.
func (p *Pending) Attempt() Attempt { return p.attempt }

func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the write commits or rolls back. The returned error is the
// write failure, if any; ctx only bounds the wait.
func (p *Pending) Wait(ctx context.Context) (Attempt, error) {
	select {
	case <-p.done:
		return p.final, p.final.Err
	case <-ctx.Done():
		return p.attempt, ctx.Err()
	}
}

type Option func(*Negotiator)

func WithNotifier(n Notifier) Option {
	return func(ng *Negotiator) { ng.notifier = n }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(ng *Negotiator) {
		if d > 0 {
			ng.writeTimeout = d
		}
	}
}

// Negotiator owns the optimistic booking flow for one session. Every change to
// the cache made on the caller's behalf goes through Cache.ApplyDelta.
type Negotiator struct {
	venue        Venue
	cache        *availability.Cache
	writer       Writer
	identity     Identity
	notifier     Notifier
	writeTimeout time.Duration
	now          func() time.Time
	newID        func() string

	mu         sync.Mutex
	generation uint64
	inflight   map[string]*Pending
	attempts   map[string]Attempt
	wg         sync.WaitGroup

	// selMu guards selection only; cache listeners take it while mu may be held.
	selMu     sync.Mutex
	selection *Selection
}

func NewNegotiator(venue Venue, cache *availability.Cache, writer Writer, identity Identity, opts ...Option) *Negotiator {
	n := &Negotiator{
		venue:        venue,
		cache:        cache,
		writer:       writer,
		identity:     identity,
		writeTimeout: DefaultWriteTimeout,
		now:          time.Now,
		newID:        uuid.NewString,
		inflight:     make(map[string]*Pending),
		attempts:     make(map[string]Attempt),
	}
	for _, opt := range opts {
		opt(n)
	}
	cache.Subscribe(n.reclamp)
	return n
}

// Select validates slotID against the cache and records a clamped party size.
func (n *Negotiator) Select(slotID string, partySize int) (Selection, error) {
	s, ok := n.cache.Get(slotID)
	if !ok {
		return Selection{}, &Error{Kind: KindSlotNotFound, SlotID: slotID}
	}
	if s.IsFull() {
		return Selection{}, &Error{Kind: KindSlotFull, SlotID: slotID}
	}

	sel := Selection{SlotID: slotID, PartySize: clampParty(partySize, s.Available), Available: s.Available}

	n.selMu.Lock()
	n.selection = &sel
	n.selMu.Unlock()
	return sel, nil
}

// Selection returns the current selection, if any.
func (n *Negotiator) Selection() (Selection, bool) {
	n.selMu.Lock()
	defer n.selMu.Unlock()
	if n.selection == nil {
		return Selection{}, false
	}
	return *n.selection, true
}

func (n *Negotiator) ClearSelection() {
	n.selMu.Lock()
	n.selection = nil
	n.selMu.Unlock()
}

func (n *Negotiator) clearSelectionFor(slotID string) {
	n.selMu.Lock()
	if n.selection != nil && n.selection.SlotID == slotID {
		n.selection = nil
	}
	n.selMu.Unlock()
}

func (n *Negotiator) reclamp(s slot.Slot) {
	n.selMu.Lock()
	defer n.selMu.Unlock()
	if n.selection == nil || n.selection.SlotID != s.ID {
		return
	}
	n.selection.Available = s.Available
	n.selection.PartySize = clampParty(n.selection.PartySize, s.Available)
}

// Confirm re-validates the request against the cache, decrements availability
// immediately and starts the durable write in the background.
func (n *Negotiator) Confirm(ctx context.Context, slotID string, partySize int) (*Pending, error) {
	p, err := n.confirm(ctx, slotID, partySize)
	if err != nil {
		metrics.RecordReservationAttempt(string(KindOf(err)))
		return nil, err
	}
	return p, nil
}

func (n *Negotiator) confirm(ctx context.Context, slotID string, partySize int) (*Pending, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if partySize < 1 {
		return nil, &Error{Kind: KindInvalidPartySize, SlotID: slotID}
	}
	callerID, ok := n.identity.CallerID(ctx)
	if !ok || callerID == "" {
		return nil, &Error{Kind: KindUnauthenticated, SlotID: slotID}
	}
	if _, busy := n.inflight[slotID]; busy {
		return nil, &Error{Kind: KindInFlight, SlotID: slotID}
	}

	s, ok := n.cache.Get(slotID)
	if !ok {
		return nil, &Error{Kind: KindSlotNotFound, SlotID: slotID}
	}
	if s.IsFull() {
		return nil, &Error{Kind: KindSlotFull, SlotID: slotID}
	}
	if partySize > s.Available {
		return nil, &Error{Kind: KindInsufficientSeats, SlotID: slotID, Available: s.Available}
	}

	n.clearSelectionFor(slotID)
	n.generation++
	n.cache.ApplyDelta(slotID, -partySize)

	p := &Pending{
		attempt: Attempt{
			ID:        n.newID(),
			SlotID:    slotID,
			PartySize: partySize,
			State:     StateReserving,
			StartedAt: n.now(),
		},
		done: make(chan struct{}),
	}
	n.inflight[slotID] = p
	n.attempts[slotID] = p.attempt

	n.wg.Add(1)
	metrics.WriteStarted()
	go n.persist(context.WithoutCancel(ctx), callerID, s, p)

	return p, nil
}

type writeResult struct {
	res *Reservation
	err error
}

func (n *Negotiator) persist(ctx context.Context, callerID string, s slot.Slot, p *Pending) {
	defer n.wg.Done()

	req := WriteRequest{
		RequesterID: callerID,
		VenueID:     n.venue.ID,
		VenueName:   n.venue.Name,
		Slot:        s,
		PartySize:   p.attempt.PartySize,
	}

	writeCtx, cancel := context.WithTimeout(ctx, n.writeTimeout)
	defer cancel()

	started := time.Now()
	results := make(chan writeResult, 1)
	go func() {
		res, err := n.writer.Write(writeCtx, req)
		results <- writeResult{res: res, err: err}
	}()

	var out writeResult
	select {
	case out = <-results:
		if out.err == nil && out.res == nil {
			out.err = ErrNoReservation
		}
	case <-writeCtx.Done():
		out = writeResult{err: writeCtx.Err()}
		go n.watchLateWrite(results, s.ID)
	}

	final := p.attempt
	n.mu.Lock()
	delete(n.inflight, s.ID)
	final.FinishedAt = n.now()
	if out.err != nil {
		n.generation++
		n.cache.ApplyDelta(s.ID, p.attempt.PartySize)
		final.State = StateRolledBack
		final.Err = &Error{Kind: KindWriteFailed, SlotID: s.ID, Cause: out.err}
	} else {
		final.State = StateCommitted
		final.Reservation = out.res
	}
	n.attempts[s.ID] = final
	n.mu.Unlock()

	p.final = final
	close(p.done)

	if out.err != nil {
		metrics.WriteFinished("error", time.Since(started).Seconds())
		metrics.RecordRollback()
		metrics.RecordReservationAttempt(string(KindWriteFailed))
		logger.Error("reservation write failed, rolled back",
			"venue_id", n.venue.ID, "slot_id", s.ID, "party_size", p.attempt.PartySize, "error", out.err)
	} else {
		metrics.WriteFinished("ok", time.Since(started).Seconds())
		metrics.RecordReservationAttempt("committed")
		logger.Info("reservation committed",
			"venue_id", n.venue.ID, "slot_id", s.ID, "party_size", p.attempt.PartySize, "reservation_id", out.res.ID)
	}

	if n.notifier != nil {
		n.notifier.Notify(ctx, Outcome{
			Attempt:     final,
			RequesterID: callerID,
			VenueID:     n.venue.ID,
			VenueName:   n.venue.Name,
			Slot:        s,
		})
	}
}

// watchLateWrite logs writes that land after their deadline already rolled the cache back.
func (n *Negotiator) watchLateWrite(results <-chan writeResult, slotID string) {
	out := <-results
	if out.err == nil && out.res != nil {
		logger.Warn("reservation written after timeout",
			"venue_id", n.venue.ID, "slot_id", slotID, "reservation_id", out.res.ID)
	}
}

// State reports where slotID is in the negotiation.
func (n *Negotiator) State(slotID string) State {
	n.mu.Lock()
	_, busy := n.inflight[slotID]
	last, seen := n.attempts[slotID]
	n.mu.Unlock()

	if busy {
		return StateReserving
	}
	if sel, ok := n.Selection(); ok && sel.SlotID == slotID {
		return StateSelecting
	}
	if seen {
		return last.State
	}
	return StateIdle
}

// Attempt returns the latest confirmation for slotID.
func (n *Negotiator) Attempt(slotID string) (Attempt, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	a, ok := n.attempts[slotID]
	return a, ok
}

// Busy reports whether any write is outstanding.
func (n *Negotiator) Busy() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.inflight) > 0
}

// Generation changes every time the negotiator touches the cache.
func (n *Negotiator) Generation() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.generation
}

// ApplyIfQuiet runs apply only if nothing changed since gen and no write is outstanding.
func (n *Negotiator) ApplyIfQuiet(gen uint64, apply func()) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.generation || len(n.inflight) > 0 {
		return false
	}
	apply()
	return true
}

// Reset forgets selection and attempt history, for example after the day changes.
// Outstanding writes still resolve.
func (n *Negotiator) Reset() {
	n.ClearSelection()
	n.mu.Lock()
	for id := range n.attempts {
		if _, busy := n.inflight[id]; !busy {
			delete(n.attempts, id)
		}
	}
	n.generation++
	n.mu.Unlock()
}

// Close waits for outstanding writes.
func (n *Negotiator) Close() {
	n.wg.Wait()
}

func clampParty(p, available int) int {
	if p > available {
		p = available
	}
	if p < 1 {
		p = 1
	}
	return p
}
