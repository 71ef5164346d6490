package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"prestigo/internal/availability"
	"prestigo/internal/logger"
	"prestigo/internal/metrics"
	"prestigo/internal/reservation"
	"prestigo/internal/slot"
	"prestigo/internal/venue"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrClosed          = errors.New("session manager closed")
)

// Catalog is what sessions need from the venue service.
type Catalog interface {
	GetVenue(ctx context.Context, id string) (*venue.Venue, error)
	Slots(ctx context.Context, id string, day time.Time) ([]slot.Slot, error)
}

type Config struct {
	WriteTimeout    time.Duration
	RefreshInterval time.Duration
	IdleTTL         time.Duration
}

// Session is one caller's booking view of a venue. It owns the availability
// cache and the negotiator that mutates it.
type Session struct {
	ID         string
	OwnerID    string
	VenueID    string
	VenueName  string
	Cache      *availability.Cache
	Negotiator *reservation.Negotiator

	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) Day() time.Time {
	return s.Cache.Day()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Manager struct {
	catalog  Catalog
	writer   reservation.Writer
	identity reservation.Identity
	notifier reservation.Notifier
	cfg      Config
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

func NewManager(catalog Catalog, writer reservation.Writer, identity reservation.Identity, notifier reservation.Notifier, cfg Config) *Manager {
	return &Manager{
		catalog:  catalog,
		writer:   writer,
		identity: identity,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Open loads the day's slots for venueID and starts a session owned by ownerID.
func (m *Manager) Open(ctx context.Context, ownerID, venueID string, day time.Time) (*Session, error) {
	v, err := m.catalog.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	slots, err := m.catalog.Slots(ctx, venueID, day)
	if err != nil {
		return nil, err
	}

	cache := availability.NewCache()
	cache.Replace(venueID, day, slots)

	opts := []reservation.Option{reservation.WithWriteTimeout(m.cfg.WriteTimeout)}
	if m.notifier != nil {
		opts = append(opts, reservation.WithNotifier(m.notifier))
	}
	neg := reservation.NewNegotiator(reservation.Venue{ID: v.ID, Name: v.Name}, cache, m.writer, m.identity, opts...)

	runCtx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		VenueID:    v.ID,
		VenueName:  v.Name,
		Cache:      cache,
		Negotiator: neg,
		cancel:     cancel,
		done:       make(chan struct{}),
		lastSeen:   m.now(),
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		cancel()
		return nil, ErrClosed
	}
	m.sessions[s.ID] = s
	open := len(m.sessions)
	m.mu.Unlock()
	metrics.SetSessionsOpen(open)

	refresher := &availability.Refresher{
		Cache:    cache,
		Load:     m.catalog.Slots,
		Gate:     neg,
		Interval: m.cfg.RefreshInterval,
	}
	go func() {
		defer close(s.done)
		_ = refresher.Run(runCtx)
	}()

	logger.Info("booking session opened", "session_id", s.ID, "venue_id", venueID, "day", day.Format(time.DateOnly))
	return s, nil
}

// Get returns the session if ownerID owns it. Sessions owned by others are reported as missing.
func (m *Manager) Get(sessionID, ownerID string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok || s.OwnerID != ownerID {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

// SetDay reloads the session for another day. Selection and finished attempts are dropped.
// Reloading the day already shown is gated like a refresh: it is skipped while a write is in flight.
func (m *Manager) SetDay(ctx context.Context, s *Session, day time.Time) error {
	gen := s.Negotiator.Generation()
	slots, err := m.catalog.Slots(ctx, s.VenueID, day)
	if err != nil {
		return err
	}

	if day.Equal(s.Cache.Day()) {
		applied := s.Negotiator.ApplyIfQuiet(gen, func() {
			s.Cache.Replace(s.VenueID, day, slots)
		})
		if !applied {
			logger.Debug("same-day reload skipped, write in flight", "session_id", s.ID)
		}
		s.Negotiator.Reset()
		return nil
	}

	s.Negotiator.Reset()
	s.Cache.Replace(s.VenueID, day, slots)
	return nil
}

// Close ends a session after its outstanding writes resolve.
func (m *Manager) Close(sessionID, ownerID string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok || s.OwnerID != ownerID {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	open := len(m.sessions)
	m.mu.Unlock()

	metrics.SetSessionsOpen(open)
	m.stop(s)
	return nil
}

func (m *Manager) stop(s *Session) {
	s.cancel()
	<-s.done
	s.Negotiator.Close()
	logger.Debug("booking session closed", "session_id", s.ID)
}

// Sweep closes sessions idle longer than the TTL. Sessions with a write in flight are kept.
func (m *Manager) Sweep() int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	var stale []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) && !s.Negotiator.Busy() {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	open := len(m.sessions)
	m.mu.Unlock()

	for _, s := range stale {
		m.stop(s)
	}
	if len(stale) > 0 {
		metrics.SetSessionsOpen(open)
		logger.Info("idle booking sessions evicted", "count", len(stale))
	}
	return len(stale)
}

// Run sweeps idle sessions until ctx is done, then shuts every session down.
func (m *Manager) Run(ctx context.Context) {
	interval := m.cfg.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Shutdown()
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

// Shutdown closes all sessions and rejects new ones.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range all {
		m.stop(s)
	}
	metrics.SetSessionsOpen(0)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
