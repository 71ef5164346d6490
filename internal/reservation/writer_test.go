package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prestigo/internal/slot"
	"prestigo/internal/store"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateRecord(ctx context.Context, collection string, fields store.Document) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *mockStore) Find(ctx context.Context, q store.Query) ([]store.Record, error) {
	args := m.Called(ctx, q)
	recs, _ := args.Get(0).([]store.Record)
	return recs, args.Error(1)
}

type mockGuard struct {
	mock.Mock
}

func (m *mockGuard) Reserve(ctx context.Context, s slot.Slot, n int) error {
	return m.Called(ctx, s, n).Error(0)
}

func (m *mockGuard) Release(ctx context.Context, s slot.Slot, n int) error {
	return m.Called(ctx, s, n).Error(0)
}

func testRequest() WriteRequest {
	at := time.Date(2025, 8, 8, 16, 0, 0, 0, time.UTC)
	return WriteRequest{
		RequesterID: "u1",
		VenueID:     "v1",
		VenueName:   "Prestige",
		Slot: slot.Slot{
			ID:        slot.ID("v1", at),
			VenueID:   "v1",
			StartAt:   at,
			EndAt:     at.Add(30 * time.Minute),
			Capacity:  10,
			Available: 4,
		},
		PartySize: 2,
	}
}

func TestWriterRequiresCaller(t *testing.T) {
	st := new(mockStore)
	w := NewWriter(st, nil)

	req := testRequest()
	req.RequesterID = ""
	_, err := w.Write(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoCaller)
	st.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything, mock.Anything)
}

func TestWriterCreatesDocument(t *testing.T) {
	created := time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)
	st := new(mockStore)
	st.On("CreateRecord", mock.Anything, Collection, store.Document{
		"userId":    "u1",
		"venueId":   "v1",
		"venueName": "Prestige",
		"slotId":    "v1_1754668800",
		"slotStart": "2025-08-08T16:00:00.000Z",
		"slotEnd":   "2025-08-08T16:30:00.000Z",
		"partySize": 2,
		"status":    StatusConfirmed,
		"createdAt": "2025-08-01T09:30:00.000Z",
	}).Return("rec-1", nil)

	w := NewWriter(st, nil)
	w.now = func() time.Time { return created }

	res, err := w.Write(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "rec-1", res.ID)
	assert.Equal(t, 2, res.PartySize)
	assert.Equal(t, StatusConfirmed, res.Status)
	st.AssertExpectations(t)
}

func TestWriterReleasesGuardOnStoreFailure(t *testing.T) {
	req := testRequest()
	st := new(mockStore)
	st.On("CreateRecord", mock.Anything, Collection, mock.Anything).Return("", errors.New("db down"))

	g := new(mockGuard)
	g.On("Reserve", mock.Anything, req.Slot, 2).Return(nil)
	g.On("Release", mock.Anything, req.Slot, 2).Return(nil)

	_, err := NewWriter(st, g).Write(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	g.AssertExpectations(t)
}

func TestWriterStopsWhenGuardRefuses(t *testing.T) {
	req := testRequest()
	exhausted := errors.New("capacity exhausted")
	st := new(mockStore)
	g := new(mockGuard)
	g.On("Reserve", mock.Anything, req.Slot, 2).Return(exhausted)

	_, err := NewWriter(st, g).Write(context.Background(), req)
	assert.ErrorIs(t, err, exhausted)
	st.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything, mock.Anything)
	g.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}
