package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prestigo/internal/slot"
	"prestigo/internal/store"
)

func reservationRecord(id, slotID string, start time.Time, party int) store.Record {
	r := Reservation{
		RequesterID: "u1",
		VenueID:     "v1",
		VenueName:   "Prestige",
		SlotID:      slotID,
		SlotStart:   start,
		SlotEnd:     start.Add(30 * time.Minute),
		PartySize:   party,
		Status:      StatusConfirmed,
		CreatedAt:   start.Add(-time.Hour),
	}
	return store.Record{ID: id, Collection: Collection, Fields: r.Document()}
}

func TestListByRequesterUpcoming(t *testing.T) {
	now := time.Date(2025, 8, 8, 12, 0, 0, 0, time.UTC)
	start := now.Add(4 * time.Hour)

	st := new(mockStore)
	st.On("Find", mock.Anything, store.Query{
		Collection: Collection,
		Filters: []store.Filter{
			{Field: "userId", Op: store.OpEq, Value: "u1"},
			{Field: "slotStart", Op: store.OpGt, Value: "2025-08-08T12:00:00.000Z"},
		},
		OrderBy: "slotStart",
	}).Return([]store.Record{reservationRecord("r1", "v1_1", start, 2)}, nil)

	got, err := NewRepository(st).ListByRequester(context.Background(), "u1", FilterUpcoming, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, 2, got[0].PartySize)
	assert.True(t, start.Equal(got[0].SlotStart))
	st.AssertExpectations(t)
}

func TestListByRequesterPast(t *testing.T) {
	now := time.Date(2025, 8, 8, 12, 0, 0, 0, time.UTC)
	st := new(mockStore)
	st.On("Find", mock.Anything, mock.MatchedBy(func(q store.Query) bool {
		return !q.Descending && len(q.Filters) == 2 && q.Filters[1].Op == store.OpLt
	})).Return([]store.Record{}, nil)

	got, err := NewRepository(st).ListByRequester(context.Background(), "u1", FilterPast, now)
	require.NoError(t, err)
	assert.Empty(t, got)
	st.AssertExpectations(t)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterUpcoming, f)

	f, err = ParseFilter("all")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseFilter("soon")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestAvailabilitySumsConfirmedParties(t *testing.T) {
	first := time.Date(2025, 8, 8, 16, 0, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)
	slots := []slot.Slot{
		{ID: slot.ID("v1", first), VenueID: "v1", StartAt: first, EndAt: second, Capacity: 10},
		{ID: slot.ID("v1", second), VenueID: "v1", StartAt: second, EndAt: second.Add(30 * time.Minute), Capacity: 10},
	}

	st := new(mockStore)
	st.On("Find", mock.Anything, store.Query{
		Collection: Collection,
		Filters: []store.Filter{
			{Field: "venueId", Op: store.OpEq, Value: "v1"},
			{Field: "slotStart", Op: store.OpGte, Value: "2025-08-08T16:00:00.000Z"},
			{Field: "slotStart", Op: store.OpLte, Value: "2025-08-08T16:30:00.000Z"},
		},
	}).Return([]store.Record{
		reservationRecord("r1", slots[0].ID, first, 4),
		reservationRecord("r2", slots[0].ID, first, 3),
	}, nil)

	got, err := NewRepository(st).Availability(context.Background(), slots)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{slots[0].ID: 3, slots[1].ID: 10}, got)
}

func TestFromRecordMissingField(t *testing.T) {
	rec := store.Record{ID: "r1", Fields: store.Document{"userId": "u1"}}
	_, err := FromRecord(rec)
	assert.ErrorIs(t, err, store.ErrMissingField)
}
