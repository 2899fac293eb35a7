package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending"
)

// UseCase use case для отмены неподтвержденной заявки
type UseCase struct {
	pendingStore PendingStore
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(pendingStore PendingStore, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		pendingStore: pendingStore,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute удаляет заявку; сетка не затрагивается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: token=%s", req.Token)

	if strings.TrimSpace(req.Token) == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if err := uc.pendingStore.Cancel(ctx, req.Token); err != nil {
		switch {
		case errors.Is(err, pending.ErrNotFound):
			uc.logger.Warn("CancelBooking: token=%s not found", req.Token)
			return nil, ErrNotFound
		case errors.Is(err, pending.ErrUnavailable):
			uc.logger.Error("CancelBooking: pending store unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		default:
			uc.logger.Error("CancelBooking: failed to cancel token=%s: %v", req.Token, err)
			return nil, fmt.Errorf("%w: failed to cancel: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CancelBooking: token=%s cancelled", req.Token)
	if uc.metrics != nil {
		uc.metrics.BookingOutcome("cancel_booking", string(domain.StateCancelled))
	}

	return &Response{Token: req.Token, State: domain.StateCancelled}, nil
}
