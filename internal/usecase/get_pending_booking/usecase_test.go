package get_pending_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending/memory"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

var catalog = domain.NewCatalog([]domain.Service{
	{ID: "haircut", Name: "Haircut", DurationMinutes: 30},
})

func TestExecute(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)}
	store := memory.NewStore(30*time.Minute, time.Hour, 6).WithTimeProvider(clock)
	record, err := store.Create(context.Background(), domain.BookingDetails{
		Date:            time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 40,
		ServiceIDs:      []string{"haircut", "waxing"},
		Customer:        domain.Customer{Name: "Ivan", Email: "ivan@example.com", Phone: "+1"},
	})
	require.NoError(t, err)

	uc := NewUseCase(store, catalog, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Token: record.Token})
	require.NoError(t, err)
	assert.Equal(t, domain.StatePendingConfirmation, resp.State)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
	assert.Equal(t, "waxing", resp.Services[1].Name)
	assert.Equal(t, clock.now.Add(30*time.Minute), resp.ExpiresAt)

	clock.now = clock.now.Add(31 * time.Minute)
	_, err = uc.Execute(context.Background(), &Request{Token: record.Token})
	assert.ErrorIs(t, err, ErrExpired)

	_, err = uc.Execute(context.Background(), &Request{Token: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
