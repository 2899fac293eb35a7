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
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy"
)

var day = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func TestStore_ReadDay_Empty(t *testing.T) {
	s := NewStore("09:00", "15:00", 15)

	grid, err := s.ReadDay(context.Background(), day)
	require.NoError(t, err)

	assert.Len(t, grid.Cells, 24)
	for _, c := range grid.Cells {
		assert.True(t, c.IsFree())
	}
}

func TestStore_Reserve(t *testing.T) {
	s := NewStore("09:00", "15:00", 15)
	ctx := context.Background()
	occupant := domain.Occupant{Name: "Ivan", Contact: "+380501112233"}

	require.NoError(t, s.Reserve(ctx, day, "09:00", 2, occupant))

	grid, err := s.ReadDay(ctx, day)
	require.NoError(t, err)
	require.NotNil(t, grid.Cells[0].Occupant)
	assert.Equal(t, occupant, *grid.Cells[0].Occupant)
	assert.False(t, grid.Cells[1].IsFree())
	assert.True(t, grid.Cells[2].IsFree())

	// Другая дата не затронута
	other, err := s.ReadDay(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, other.Cells[0].IsFree())
}

func TestStore_Reserve_Errors(t *testing.T) {
	s := NewStore("09:00", "15:00", 15)
	ctx := context.Background()
	occupant := domain.Occupant{Name: "A"}

	require.NoError(t, s.Reserve(ctx, day, "09:15", 1, occupant))

	assert.ErrorIs(t, s.Reserve(ctx, day, "09:00", 2, occupant), occupancy.ErrConflict)
	assert.ErrorIs(t, s.Reserve(ctx, day, "09:07", 1, occupant), occupancy.ErrSlotNotFound)
	assert.ErrorIs(t, s.Reserve(ctx, day, "14:45", 2, occupant), occupancy.ErrSlotNotFound)
	assert.ErrorIs(t, s.Reserve(ctx, day, "10:00", 0, occupant), occupancy.ErrInvalidRange)

	// Отклоненная попытка ничего не записала
	grid, err := s.ReadDay(ctx, day)
	require.NoError(t, err)
	assert.True(t, grid.Cells[0].IsFree())
}

func TestStore_Reserve_ConcurrentOverlap(t *testing.T) {
	s := NewStore("09:00", "15:00", 15)
	ctx := context.Background()

	var wg sync.WaitGroup
	var succeeded atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Reserve(ctx, day, "10:00", 2, domain.Occupant{Name: "racer"}); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
}

func TestStore_CancelledContext(t *testing.T) {
	s := NewStore("09:00", "15:00", 15)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ReadDay(ctx, day)
	assert.ErrorIs(t, err, context.Canceled)
}
