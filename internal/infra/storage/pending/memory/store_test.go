package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

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
}

func newTestStore() (*Store, *manualClock) {
	clock := &manualClock{now: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)}
	return NewStore(30*time.Minute, time.Hour, 6).WithTimeProvider(clock), clock
}

func TestStore_CreateAndConsume(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)
	assert.Len(t, record.Code, 6)
	assert.NotEmpty(t, record.Token)

	got, err := s.Lookup(ctx, record.Token)
	require.NoError(t, err)
	assert.Equal(t, details, got.Details)

	_, err = s.Consume(ctx, record.Token, "WRONG1")
	assert.ErrorIs(t, err, pending.ErrCodeMismatch)

	consumed, err := s.Consume(ctx, record.Token, record.Code)
	require.NoError(t, err)
	assert.Equal(t, record.Token, consumed.Token)

	_, err = s.Consume(ctx, record.Token, record.Code)
	assert.ErrorIs(t, err, pending.ErrNotFound)
}

func TestStore_Consume_CaseInsensitive(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)

	_, err = s.Consume(ctx, record.Token, " "+toLower(record.Code)+" ")
	assert.NoError(t, err)
}

func TestStore_Consume_Expired(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)

	// Ровно на границе TTL код еще действует
	clock.Advance(30 * time.Minute)
	_, err = s.Lookup(ctx, record.Token)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = s.Lookup(ctx, record.Token)
	assert.ErrorIs(t, err, pending.ErrExpired)

	_, err = s.Consume(ctx, record.Token, record.Code)
	assert.ErrorIs(t, err, pending.ErrExpired)

	_, err = s.Consume(ctx, record.Token, record.Code)
	assert.ErrorIs(t, err, pending.ErrNotFound)
}

func TestStore_Consume_ExactlyOnce(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := 0; i < 50; i++ {
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

func TestStore_Cancel(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)

	require.NoError(t, s.Cancel(ctx, record.Token))
	assert.ErrorIs(t, s.Cancel(ctx, record.Token), pending.ErrNotFound)

	_, err = s.Lookup(ctx, record.Token)
	assert.ErrorIs(t, err, pending.ErrNotFound)
}

func TestStore_Restore(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)
	consumed, err := s.Consume(ctx, record.Token, record.Code)
	require.NoError(t, err)

	require.NoError(t, s.Restore(ctx, consumed))

	again, err := s.Consume(ctx, record.Token, record.Code)
	require.NoError(t, err)
	assert.Equal(t, record.CreatedAt, again.CreatedAt)

	clock.Advance(31 * time.Minute)
	assert.ErrorIs(t, s.Restore(ctx, again), pending.ErrExpired)
}

func TestStore_Sweep(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	_, err := s.Create(ctx, details)
	require.NoError(t, err)
	clock.Advance(45 * time.Minute)
	fresh, err := s.Create(ctx, details)
	require.NoError(t, err)

	// Первая запись просрочена, но еще в пределах retention
	assert.Equal(t, 0, s.Sweep())

	clock.Advance(50 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, err = s.Lookup(ctx, fresh.Token)
	assert.ErrorIs(t, err, pending.ErrExpired)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	record, err := s.Create(ctx, details)
	require.NoError(t, err)
	record.Details.ServiceIDs[0] = "tampered"

	got, err := s.Lookup(ctx, record.Token)
	require.NoError(t, err)
	assert.Equal(t, "haircut", got.Details.ServiceIDs[0])
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
