package capacity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"prestigo/internal/metrics"
	"prestigo/internal/slot"
)

var ErrExhausted = errors.New("capacity exhausted")

// Counters outlive the slot by this much so late releases still find them.
const DefaultRetention = 24 * time.Hour

// reserveScript decrements the remaining count only if enough seats are left.
// A missing key means nobody has booked yet.
const reserveScript = `
local cur = redis.call('GET', KEYS[1])
if cur then cur = tonumber(cur) else cur = tonumber(ARGV[1]) end
local n = tonumber(ARGV[2])
if cur < n then return -1 end
redis.call('SET', KEYS[1], cur - n)
redis.call('PEXPIREAT', KEYS[1], ARGV[3])
return cur - n
`

const releaseScript = `
local cur = redis.call('GET', KEYS[1])
if not cur then return tonumber(ARGV[1]) end
local v = math.min(tonumber(cur) + tonumber(ARGV[2]), tonumber(ARGV[1]))
redis.call('SET', KEYS[1], v, 'KEEPTTL')
return v
`

// Ledger keeps a remaining-seats counter per slot in Redis. It is shared by
// every session, so it refuses bookings the per-session caches cannot see.
type Ledger struct {
	rdb       redis.Cmdable
	retention time.Duration
}

func NewLedger(rdb redis.Cmdable) *Ledger {
	return &Ledger{rdb: rdb, retention: DefaultRetention}
}

func Key(slotID string) string {
	return "capacity:" + slotID
}

// Reserve takes n seats from s or returns ErrExhausted.
func (l *Ledger) Reserve(ctx context.Context, s slot.Slot, n int) error {
	expireAt := s.EndAt.Add(l.retention).UnixMilli()
	left, err := l.rdb.Eval(ctx, reserveScript, []string{Key(s.ID)}, s.Capacity, n, expireAt).Int64()
	if err != nil {
		metrics.RecordCapacityGuard("error")
		return fmt.Errorf("reserve %s: %w", s.ID, err)
	}
	if left < 0 {
		metrics.RecordCapacityGuard("exhausted")
		return ErrExhausted
	}
	metrics.RecordCapacityGuard("reserved")
	return nil
}

// Release gives n seats back to s, never above capacity.
func (l *Ledger) Release(ctx context.Context, s slot.Slot, n int) error {
	if err := l.rdb.Eval(ctx, releaseScript, []string{Key(s.ID)}, s.Capacity, n).Err(); err != nil {
		metrics.RecordCapacityGuard("error")
		return fmt.Errorf("release %s: %w", s.ID, err)
	}
	metrics.RecordCapacityGuard("released")
	return nil
}

// Availability implements slot.AvailabilitySource from the counters.
func (l *Ledger) Availability(ctx context.Context, slots []slot.Slot) (map[string]int, error) {
	out := make(map[string]int, len(slots))
	if len(slots) == 0 {
		return out, nil
	}

	keys := make([]string, len(slots))
	for i, s := range slots {
		keys[i] = Key(s.ID)
	}

	vals, err := l.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read capacity counters: %w", err)
	}

	for i, s := range slots {
		if i >= len(vals) || vals[i] == nil {
			out[s.ID] = s.Capacity
			continue
		}
		str, ok := vals[i].(string)
		if !ok {
			return nil, fmt.Errorf("capacity counter %s: unexpected %T", keys[i], vals[i])
		}
		n, err := strconv.Atoi(str)
		if err != nil {
			return nil, fmt.Errorf("capacity counter %s: %w", keys[i], err)
		}
		out[s.ID] = n
	}
	return out, nil
}
