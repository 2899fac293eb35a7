package cancel_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending/memory"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Cancel(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func TestExecute_Cancels(t *testing.T) {
	store := memory.NewStore(30*time.Minute, time.Hour, 6)
	record, err := store.Create(context.Background(), domain.BookingDetails{StartTime: "10:00", DurationMinutes: 30})
	require.NoError(t, err)

	uc := NewUseCase(store, nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Token: record.Token})
	require.NoError(t, err)
	assert.Equal(t, domain.StateCancelled, resp.State)
	assert.Equal(t, 0, store.Len())

	_, err = uc.Execute(context.Background(), &Request{Token: record.Token})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExecute_Errors(t *testing.T) {
	store := &mockStore{}
	store.On("Cancel", mock.Anything, "down").Return(fmt.Errorf("%w: dial", pending.ErrUnavailable))
	store.On("Cancel", mock.Anything, "weird").Return(fmt.Errorf("boom"))

	uc := NewUseCase(store, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Token: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Token: "down"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = uc.Execute(context.Background(), &Request{Token: "weird"})
	assert.ErrorIs(t, err, ErrInternal)
}
