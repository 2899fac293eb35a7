package redis

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var details = domain.BookingDetails{
	Date:            time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	StartTime:       "10:00",
	DurationMinutes: 45,
	ServiceIDs:      []string{"haircut", "beard_trim"},
	Customer:        domain.Customer{Name: "Ivan", Email: "ivan@example.com", Phone: "+1"},
	Lang:            "en",
}

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis, *manualClock) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := &manualClock{now: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)}
	store := NewStore(client, "test:pending:", 30*time.Minute, time.Hour, 6).WithTimeProvider(clock)
	return store, mr, clock
}

func TestStore_CreateAndLookup(t *testing.T) {
	s, mr, _ := newTestStore(t)
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)
	assert.Len(t, record.Code, 6)

	key := "test:pending:" + record.Token
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 90*time.Minute, mr.TTL(key))

	got, err := s.Lookup(ctx, record.Token)
	require.NoError(t, err)
	assert.Equal(t, record.Code, got.Code)
	assert.Equal(t, details, got.Details)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, pending.ErrNotFound)
}

func TestStore_Consume(t *testing.T) {
	s, mr, _ := newTestStore(t)
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)

	_, err = s.Consume(ctx, record.Token, "ZZZZZZ")
	assert.ErrorIs(t, err, pending.ErrCodeMismatch)
	assert.True(t, mr.Exists("test:pending:"+record.Token))

	consumed, err := s.Consume(ctx, record.Token, strings.ToLower(record.Code))
	require.NoError(t, err)
	assert.Equal(t, record.Code, consumed.Code)
	assert.Equal(t, details, consumed.Details)
	assert.False(t, mr.Exists("test:pending:"+record.Token))

	_, err = s.Consume(ctx, record.Token, record.Code)
	assert.ErrorIs(t, err, pending.ErrNotFound)
}

func TestStore_Consume_Expired(t *testing.T) {
	s, _, clock := newTestStore(t)
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)

	clock.Advance(30*time.Minute + time.Second)

	_, err = s.Lookup(ctx, record.Token)
	assert.ErrorIs(t, err, pending.ErrExpired)

	_, err = s.Consume(ctx, record.Token, record.Code)
	assert.ErrorIs(t, err, pending.ErrExpired)

	_, err = s.Consume(ctx, record.Token, record.Code)
	assert.ErrorIs(t, err, pending.ErrNotFound)
}

func TestStore_Consume_ExactlyOnce(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Consume(ctx, record.Token, record.Code); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
}

func TestStore_CancelAndRestore(t *testing.T) {
	s, mr, clock := newTestStore(t)
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)

	consumed, err := s.Consume(ctx, record.Token, record.Code)
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	require.NoError(t, s.Restore(ctx, consumed))
	assert.Equal(t, 80*time.Minute, mr.TTL("test:pending:"+record.Token))

	require.NoError(t, s.Cancel(ctx, record.Token))
	assert.ErrorIs(t, s.Cancel(ctx, record.Token), pending.ErrNotFound)

	clock.Advance(25 * time.Minute)
	assert.ErrorIs(t, s.Restore(ctx, consumed), pending.ErrExpired)
}

func TestStore_Unavailable(t *testing.T) {
	s, mr, _ := newTestStore(t)
	mr.Close()

	_, err := s.Create(context.Background(), details)
	assert.ErrorIs(t, err, pending.ErrUnavailable)

	_, err = s.Consume(context.Background(), "token", "CODE12")
	assert.ErrorIs(t, err, pending.ErrUnavailable)
}
