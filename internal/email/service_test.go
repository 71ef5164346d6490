package email

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prestigo/internal/auth"
	"prestigo/internal/logger"
	"prestigo/internal/reservation"
	"prestigo/internal/slot"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []Job
}

func (f *fakeSender) Send(_ context.Context, job Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, job)
	return f.err
}

func newTestService(rdb *redis.Client, sender Sender) *Service {
	svc := New(rdb, sender, time.UTC)
	svc.retryDelay = 0
	return svc
}

func testSlot() slot.Slot {
	at := time.Date(2025, 8, 8, 19, 0, 0, 0, time.UTC)
	return slot.Slot{ID: slot.ID("v1", at), VenueID: "v1", StartAt: at, EndAt: at.Add(30 * time.Minute), Capacity: 10}
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)

	svc := newTestService(db, &fakeSender{})

	err := svc.Send(ctx, "guest@example.com", "Guest", "Hello", "Test body", "test")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetErr(assert.AnError)

	svc := newTestService(db, &fakeSender{})

	err := svc.Send(ctx, "guest@example.com", "Guest", "Hello", "Test body", "test")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendReservationConfirmed(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*Prestige Lounge.*`).SetVal(1)

	svc := newTestService(db, &fakeSender{})

	err := svc.SendReservationConfirmed(ctx, "guest@example.com", "Guest", "Prestige Lounge", testSlot(), 4)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifyUsesCallerFromContext(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := newTestService(db, &fakeSender{})

	mock.Regexp().ExpectLPush("emails", `.*reservation_failed.*`).SetVal(1)

	ctx := auth.WithCaller(context.Background(), auth.Caller{ID: "u1", Email: "guest@example.com", Name: "Guest"})
	svc.Notify(ctx, reservation.Outcome{
		Attempt:     reservation.Attempt{State: reservation.StateRolledBack, PartySize: 2},
		RequesterID: "u1",
		VenueName:   "Prestige Lounge",
		Slot:        testSlot(),
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifyWithoutAddressSkips(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := newTestService(db, &fakeSender{})

	svc.Notify(context.Background(), reservation.Outcome{
		Attempt: reservation.Attempt{State: reservation.StateCommitted, PartySize: 2},
		Slot:    testSlot(),
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNextSends(t *testing.T) {
	db, mock := redismock.NewClientMock()
	sender := &fakeSender{}
	svc := newTestService(db, sender)

	data, err := json.Marshal(Job{To: "guest@example.com", Subject: "Hi", Body: "Body", Kind: "test"})
	require.NoError(t, err)
	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", string(data)})

	svc.processNext(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, 1, sender.sent[0].Tries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNextRequeuesOnFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := newTestService(db, &fakeSender{err: assert.AnError})

	data, _ := json.Marshal(Job{To: "guest@example.com", Kind: "test"})
	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", string(data)})
	mock.Regexp().ExpectLPush("emails", `.*"tries":1.*`).SetVal(1)

	svc.processNext(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNextMovesToFailedQueue(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := newTestService(db, &fakeSender{err: assert.AnError})

	data, _ := json.Marshal(Job{To: "guest@example.com", Kind: "test", Tries: maxTries - 1})
	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", string(data)})
	mock.Regexp().ExpectLPush("emails:failed", `.*`).SetVal(1)

	svc.processNext(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen("emails").SetVal(5)

	svc := newTestService(db, &fakeSender{})

	assert.Equal(t, int64(5), svc.QueueLength(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
