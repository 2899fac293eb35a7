package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

const operationName = "confirm_booking"

// UseCase use case для подтверждения бронирования кодом
type UseCase struct {
	pendingStore PendingStore
	committer    BookingCommitter
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(pendingStore PendingStore, committer BookingCommitter, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		pendingStore: pendingStore,
		committer:    committer,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute проверяет код и занимает слоты
// Код потребляется до записи в сетку, поэтому два параллельных подтверждения не дойдут до сетки оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: token=%s", req.Token)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		uc.outcome("invalid")
		return nil, err
	}

	// 2. Потребляем заявку
	record, err := uc.pendingStore.Consume(ctx, req.Token, req.Code)
	if err != nil {
		return nil, uc.consumeFailure(req.Token, err)
	}
	details := record.Details

	// 3. Записываем бронирование в сетку
	err = uc.committer.CommitBooking(ctx, availability.Commit{
		Date:            details.Date,
		Start:           details.StartTime,
		DurationMinutes: details.DurationMinutes,
		Occupant:        details.Customer.Occupant(),
	})
	if err != nil {
		return nil, uc.commitFailure(ctx, record, err)
	}

	uc.logger.Info("ConfirmBooking: confirmed token=%s, date=%s, time=%s, duration=%d",
		record.Token, details.Date.Format(domain.DateFormat), details.StartTime, details.DurationMinutes)
	uc.outcome(string(domain.StateConfirmed))

	return &Response{
		Token:           record.Token,
		State:           domain.StateConfirmed,
		Date:            details.Date,
		StartTime:       details.StartTime,
		DurationMinutes: details.DurationMinutes,
		ServiceIDs:      details.ServiceIDs,
		CustomerName:    details.Customer.Name,
	}, nil
}

func (uc *UseCase) consumeFailure(token string, err error) error {
	switch {
	case errors.Is(err, pending.ErrNotFound):
		uc.logger.Warn("ConfirmBooking: token=%s not found", token)
		uc.outcome("not_found")
		return ErrNotFound
	case errors.Is(err, pending.ErrCodeMismatch):
		uc.logger.Warn("ConfirmBooking: code mismatch for token=%s", token)
		uc.outcome(string(domain.StateRejected))
		return ErrCodeMismatch
	case errors.Is(err, pending.ErrExpired):
		uc.logger.Warn("ConfirmBooking: token=%s expired", token)
		uc.outcome(string(domain.StateExpired))
		return ErrExpired
	case errors.Is(err, pending.ErrUnavailable):
		uc.logger.Error("ConfirmBooking: pending store unavailable: %v", err)
		uc.outcome("store_unavailable")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		uc.logger.Error("ConfirmBooking: failed to consume token=%s: %v", token, err)
		return fmt.Errorf("%w: failed to consume: %v", ErrInternal, err)
	}
}

// commitFailure для повторяемых отказов сетки возвращает заявку в хранилище
func (uc *UseCase) commitFailure(ctx context.Context, record *domain.PendingConfirmation, err error) error {
	switch {
	case errors.Is(err, availability.ErrSlotConflict):
		uc.logger.Warn("ConfirmBooking: slot conflict for token=%s: %v", record.Token, err)
		uc.outcome("conflict")
		return fmt.Errorf("%w: %v", ErrSlotConflict, err)

	case errors.Is(err, availability.ErrInvalidRequest):
		uc.logger.Warn("ConfirmBooking: token=%s is no longer bookable: %v", record.Token, err)
		uc.outcome("no_longer_bookable")
		return fmt.Errorf("%w: %v", ErrNoLongerBookable, err)

	case errors.Is(err, availability.ErrGridUnavailable):
		uc.logger.Error("ConfirmBooking: grid unavailable for token=%s: %v", record.Token, err)
		uc.outcome("grid_unavailable")
		if restoreErr := uc.pendingStore.Restore(context.WithoutCancel(ctx), record); restoreErr != nil {
			uc.logger.Error("ConfirmBooking: failed to restore token=%s: %v", record.Token, restoreErr)
		}
		return fmt.Errorf("%w: %v", ErrGridUnavailable, err)

	default:
		uc.logger.Error("ConfirmBooking: failed to commit token=%s: %v", record.Token, err)
		return fmt.Errorf("%w: failed to commit: %v", ErrInternal, err)
	}
}

func (uc *UseCase) outcome(outcome string) {
	if uc.metrics != nil {
		uc.metrics.BookingOutcome(operationName, outcome)
	}
}
