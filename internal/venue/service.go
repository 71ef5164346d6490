package venue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"prestigo/internal/slot"
)

const BookableDays = 7

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrVenueExists   = errors.New("venue already exists")
	ErrInvalidVenue  = errors.New("invalid venue settings")
	ErrInvalidDay    = errors.New("invalid day, want YYYY-MM-DD")
)

type Service interface {
	CreateVenue(ctx context.Context, req CreateVenueRequest) (*Venue, error)
	ListVenues(ctx context.Context) ([]Venue, error)
	GetVenue(ctx context.Context, id string) (*Venue, error)
	Hours(v *Venue) (slot.Hours, error)
	Days(ctx context.Context, id string, now time.Time) ([]time.Time, error)
	ParseDay(ctx context.Context, id, day string) (time.Time, error)
	Slots(ctx context.Context, id string, day time.Time) ([]slot.Slot, error)
}

type service struct {
	repo      Repository
	defaults  slot.Hours
	generator *slot.Generator
}

// NewService returns a venue service. defaults apply to venues without their own slot settings.
func NewService(repo Repository, defaults slot.Hours, generator *slot.Generator) Service {
	if generator == nil {
		generator = slot.NewGenerator(nil)
	}
	return &service{repo: repo, defaults: defaults, generator: generator}
}

func (s *service) CreateVenue(ctx context.Context, req CreateVenueRequest) (*Venue, error) {
	v := &Venue{
		ID:       strings.TrimSpace(req.ID),
		Name:     strings.TrimSpace(req.Name),
		Category: req.Category,
		City:     req.City,
		Address:  req.Address,
	}
	if v.ID == "" {
		v.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if v.Name == "" {
		return nil, ErrInvalidVenue
	}
	if req.OpenAt != "" {
		v.OpenAt = &req.OpenAt
	}
	if req.CloseAt != "" {
		v.CloseAt = &req.CloseAt
	}
	if req.SlotMinutes > 0 {
		v.SlotMinutes = &req.SlotMinutes
	}
	if req.SlotCapacity > 0 {
		v.SlotCapacity = &req.SlotCapacity
	}
	if req.Timezone != "" {
		v.Timezone = &req.Timezone
	}

	h, err := s.Hours(v)
	if err != nil {
		return nil, err
	}
	if _, _, ok := h.Window(time.Now()); !ok {
		return nil, fmt.Errorf("%w: close must be after open", ErrInvalidVenue)
	}

	exists, err := s.repo.VenueExists(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrVenueExists
	}

	if err := s.repo.CreateVenue(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) ListVenues(ctx context.Context) ([]Venue, error) {
	return s.repo.GetAllVenues(ctx)
}

func (s *service) GetVenue(ctx context.Context, id string) (*Venue, error) {
	v, err := s.repo.GetVenueByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// Hours resolves the slot layout of v over the service defaults.
func (s *service) Hours(v *Venue) (slot.Hours, error) {
	h := s.defaults
	if v.OpenAt != nil {
		c, err := slot.ParseClock(*v.OpenAt)
		if err != nil {
			return h, fmt.Errorf("%w: %v", ErrInvalidVenue, err)
		}
		h.OpenAt = c
	}
	if v.CloseAt != nil {
		c, err := slot.ParseClock(*v.CloseAt)
		if err != nil {
			return h, fmt.Errorf("%w: %v", ErrInvalidVenue, err)
		}
		h.CloseAt = c
	}
	if v.SlotMinutes != nil {
		h.Duration = time.Duration(*v.SlotMinutes) * time.Minute
	}
	if v.SlotCapacity != nil {
		h.Capacity = *v.SlotCapacity
	}
	if v.Timezone != nil {
		loc, err := time.LoadLocation(*v.Timezone)
		if err != nil {
			return h, fmt.Errorf("%w: timezone %q", ErrInvalidVenue, *v.Timezone)
		}
		h.Location = loc
	}
	if h.Duration <= 0 || h.Capacity <= 0 {
		return h, ErrInvalidVenue
	}
	return h, nil
}

func (s *service) hoursFor(ctx context.Context, id string) (slot.Hours, error) {
	v, err := s.GetVenue(ctx, id)
	if err != nil {
		return slot.Hours{}, err
	}
	return s.Hours(v)
}

// Days returns the bookable days starting with today in the venue's zone.
func (s *service) Days(ctx context.Context, id string, now time.Time) ([]time.Time, error) {
	h, err := s.hoursFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return h.Days(now, BookableDays), nil
}

// ParseDay reads a YYYY-MM-DD date as midnight in the venue's zone.
func (s *service) ParseDay(ctx context.Context, id, day string) (time.Time, error) {
	h, err := s.hoursFor(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(time.DateOnly, day, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}
	return t, nil
}

func (s *service) Slots(ctx context.Context, id string, day time.Time) ([]slot.Slot, error) {
	h, err := s.hoursFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.generator.Generate(ctx, id, day, h)
}
