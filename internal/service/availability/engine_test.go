package availability

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy/memory"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type mockStore struct{ mock.Mock }

func (m *mockStore) ReadDay(ctx context.Context, date time.Time) (*domain.DayGrid, error) {
	args := m.Called(ctx, date)
	grid, _ := args.Get(0).(*domain.DayGrid)
	return grid, args.Error(1)
}

func (m *mockStore) Reserve(ctx context.Context, date time.Time, start types.TimeString, count int, occupant domain.Occupant) error {
	return m.Called(ctx, date, start, count, occupant).Error(0)
}

type countingMetrics struct {
	mu  sync.Mutex
	ops []string
}

func (m *countingMetrics) GridError(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
}

// Среда, 14 октября 2026, 08:00
var now = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

// Четверг
var thursday = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func testSettings(t *testing.T) Settings {
	days, err := domain.ParseWorkingDays([]string{"mon", "tue", "wed", "thu", "fri", "sun"})
	require.NoError(t, err)
	return Settings{
		IntervalMinutes: 15,
		MaxBookingDays:  7,
		WorkingDays:     days,
		DurationPolicy:  domain.DurationRoundUp,
		Location:        time.UTC,
	}
}

func newTestEngine(t *testing.T, store OccupancyStore) *Engine {
	e := NewEngine(store, testSettings(t), nil, logger.NewNop())
	e.timeProvider = fixedClock{now: now}
	return e
}

func TestAvailableSlots_ReferenceDay(t *testing.T) {
	store := memory.NewStore("09:00", "15:00", 15)
	e := newTestEngine(t, store)
	ctx := context.Background()

	slots, err := e.AvailableSlots(ctx, thursday, 30)
	require.NoError(t, err)
	require.Len(t, slots, 23)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("14:30"), slots[len(slots)-1])

	require.NoError(t, e.CommitBooking(ctx, Commit{
		Date:            thursday,
		Start:           "09:00",
		DurationMinutes: 30,
		Occupant:        domain.Occupant{Name: "Ivan", Contact: "+1"},
	}))

	slots, err = e.AvailableSlots(ctx, thursday, 30)
	require.NoError(t, err)
	assert.NotContains(t, slots, types.TimeString("09:00"))
	assert.NotContains(t, slots, types.TimeString("09:15"))
	assert.Contains(t, slots, types.TimeString("09:30"))
	assert.Len(t, slots, 21)
}

func TestAvailableSlots_NonBookableDates(t *testing.T) {
	store := &mockStore{}
	e := newTestEngine(t, store)

	dates := map[string]time.Time{
		"past":       now.AddDate(0, 0, -1),
		"saturday":   time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		"too far":    now.AddDate(0, 0, 8),
		"far sunday": time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC),
	}
	for name, date := range dates {
		t.Run(name, func(t *testing.T) {
			slots, err := e.AvailableSlots(context.Background(), date, 30)
			require.NoError(t, err)
			assert.Empty(t, slots)
		})
	}

	// Хранилище не вызывалось
	store.AssertNotCalled(t, "ReadDay", mock.Anything, mock.Anything)
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	store := memory.NewStore("09:00", "15:00", 15)
	e := newTestEngine(t, store)
	require.NoError(t, store.Reserve(context.Background(), thursday, "11:00", 3, domain.Occupant{Name: "A"}))

	first, err := e.AvailableSlots(context.Background(), thursday, 45)
	require.NoError(t, err)
	second, err := e.AvailableSlots(context.Background(), thursday, 45)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAvailableSlots_WindowCorrectness(t *testing.T) {
	occupied := &domain.Occupant{Name: "X"}
	grid := &domain.DayGrid{
		Open:  "09:00",
		Close: "10:30",
		Cells: []domain.Cell{
			{Slot: "09:00"},
			{Slot: "09:15", Occupant: occupied},
			{Slot: "09:30"},
			{Slot: "09:45"},
			{Slot: "10:00"},
			{Slot: "10:15"},
		},
	}
	store := &mockStore{}
	store.On("ReadDay", mock.Anything, thursday).Return(grid, nil)
	e := newTestEngine(t, store)

	slots, err := e.AvailableSlots(context.Background(), thursday, 30)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:30", "09:45", "10:00"}, slots)

	slots, err = e.AvailableSlots(context.Background(), thursday, 15)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "09:45", "10:00", "10:15"}, slots)

	// Услуга длиннее любой свободной серии
	slots, err = e.AvailableSlots(context.Background(), thursday, 100)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_GapInGrid(t *testing.T) {
	grid := &domain.DayGrid{
		Open:  "09:00",
		Close: "10:00",
		Cells: []domain.Cell{
			{Slot: "09:00"},
			{Slot: "09:15"},
			// 09:30 нет в таблице
			{Slot: "09:45"},
		},
	}
	store := &mockStore{}
	store.On("ReadDay", mock.Anything, thursday).Return(grid, nil)
	e := newTestEngine(t, store)

	slots, err := e.AvailableSlots(context.Background(), thursday, 30)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00"}, slots)
}

func TestAvailableSlots_InvalidDuration(t *testing.T) {
	e := newTestEngine(t, &mockStore{})

	_, err := e.AvailableSlots(context.Background(), thursday, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAvailableSlots_DateAbsentFromGrid(t *testing.T) {
	store := &mockStore{}
	store.On("ReadDay", mock.Anything, thursday).Return(nil, occupancy.ErrDateNotFound)
	e := newTestEngine(t, store)

	slots, err := e.AvailableSlots(context.Background(), thursday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_GridUnavailable(t *testing.T) {
	store := &mockStore{}
	store.On("ReadDay", mock.Anything, thursday).Return(nil, occupancy.ErrUnavailable)
	metrics := &countingMetrics{}
	e := NewEngine(store, testSettings(t), metrics, logger.NewNop())
	e.timeProvider = fixedClock{now: now}

	_, err := e.AvailableSlots(context.Background(), thursday, 30)
	assert.ErrorIs(t, err, ErrGridUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, []string{"read_day"}, metrics.ops)
}

func TestAvailableSlots_Timeout(t *testing.T) {
	store := &mockStore{}
	store.On("ReadDay", mock.Anything, thursday).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, errors.New("request aborted"))

	settings := testSettings(t)
	settings.StoreTimeout = 20 * time.Millisecond
	e := NewEngine(store, settings, nil, logger.NewNop())
	e.timeProvider = fixedClock{now: now}

	_, err := e.AvailableSlots(context.Background(), thursday, 30)
	assert.ErrorIs(t, err, ErrGridTimeout)
	assert.ErrorIs(t, err, ErrGridUnavailable)
}

func TestCommitBooking_Validation(t *testing.T) {
	store := memory.NewStore("09:00", "15:00", 15)
	e := newTestEngine(t, store)
	occupant := domain.Occupant{Name: "Ivan"}

	tests := []struct {
		name    string
		commit  Commit
		wantErr error
	}{
		{name: "misaligned start", commit: Commit{Date: thursday, Start: "09:07", DurationMinutes: 30, Occupant: occupant}, wantErr: ErrSlotOutsideGrid},
		{name: "before open", commit: Commit{Date: thursday, Start: "08:45", DurationMinutes: 30, Occupant: occupant}, wantErr: ErrSlotOutsideGrid},
		{name: "overruns close", commit: Commit{Date: thursday, Start: "14:45", DurationMinutes: 30, Occupant: occupant}, wantErr: ErrSlotOutsideGrid},
		{name: "bad start format", commit: Commit{Date: thursday, Start: "nine", DurationMinutes: 30, Occupant: occupant}, wantErr: ErrSlotOutsideGrid},
		{name: "zero duration", commit: Commit{Date: thursday, Start: "09:00", DurationMinutes: 0, Occupant: occupant}, wantErr: ErrInvalidDuration},
		{name: "saturday", commit: Commit{Date: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), Start: "09:00", DurationMinutes: 30, Occupant: occupant}, wantErr: ErrInvalidDate},
		{name: "no occupant", commit: Commit{Date: thursday, Start: "09:00", DurationMinutes: 30}, wantErr: ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.CommitBooking(context.Background(), tt.commit)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestCommitBooking_Conflict(t *testing.T) {
	store := memory.NewStore("09:00", "15:00", 15)
	e := newTestEngine(t, store)
	ctx := context.Background()

	require.NoError(t, e.CommitBooking(ctx, Commit{Date: thursday, Start: "10:15", DurationMinutes: 15, Occupant: domain.Occupant{Name: "A"}}))

	err := e.CommitBooking(ctx, Commit{Date: thursday, Start: "10:00", DurationMinutes: 30, Occupant: domain.Occupant{Name: "B"}})
	assert.ErrorIs(t, err, ErrSlotConflict)

	slots, err := e.AvailableSlots(ctx, thursday, 15)
	require.NoError(t, err)
	assert.Contains(t, slots, types.TimeString("10:00"))
}

func TestCommitBooking_ConcurrentOverlapping(t *testing.T) {
	store := memory.NewStore("09:00", "15:00", 15)
	e := newTestEngine(t, store)

	starts := []types.TimeString{"10:00", "10:15", "10:30", "10:00", "10:15"}
	var wg sync.WaitGroup
	var ok atomic.Int32
	var conflicts atomic.Int32
	for _, start := range starts {
		wg.Add(1)
		go func(start types.TimeString) {
			defer wg.Done()
			err := e.CommitBooking(context.Background(), Commit{Date: thursday, Start: start, DurationMinutes: 45, Occupant: domain.Occupant{Name: string(start)}})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, ErrSlotConflict):
				conflicts.Add(1)
			}
		}(start)
	}
	wg.Wait()

	// Все окна пересекаются по 10:30, успешной может быть только одна запись
	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(len(starts)-1), conflicts.Load())
}

func TestCommitBooking_StoreUnavailable(t *testing.T) {
	grid := &domain.DayGrid{
		Open:  "09:00",
		Close: "10:00",
		Cells: []domain.Cell{{Slot: "09:00"}, {Slot: "09:15"}, {Slot: "09:30"}, {Slot: "09:45"}},
	}
	store := &mockStore{}
	store.On("ReadDay", mock.Anything, thursday).Return(grid, nil)
	store.On("Reserve", mock.Anything, thursday, types.TimeString("09:00"), 2, domain.Occupant{Name: "A"}).
		Return(occupancy.ErrUnavailable)
	e := newTestEngine(t, store)

	err := e.CommitBooking(context.Background(), Commit{Date: thursday, Start: "09:00", DurationMinutes: 30, Occupant: domain.Occupant{Name: "A"}})
	assert.ErrorIs(t, err, ErrGridUnavailable)
	store.AssertExpectations(t)
}
