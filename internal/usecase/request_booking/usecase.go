package request_booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/mailer"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

const (
	operationName = "request_booking"
	notifierName  = "mailer"
)

// UseCase use case для создания заявки на бронирование
// Сетку не меняет: слоты занимаются только после подтверждения кодом
type UseCase struct {
	engine        AvailabilityEngine
	catalog       ServiceCatalog
	pendingStore  PendingStore
	notifier      Notifier
	metrics       Metrics
	notifyTimeout time.Duration
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine AvailabilityEngine,
	catalog ServiceCatalog,
	pendingStore PendingStore,
	notifier Notifier,
	metrics Metrics,
	notifyTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:        engine,
		catalog:       catalog,
		pendingStore:  pendingStore,
		notifier:      notifier,
		metrics:       metrics,
		notifyTimeout: notifyTimeout,
		logger:        logger,
	}
}

// Execute выполняет use case создания заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestBooking: date=%s, time=%s, services=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, strings.Join(req.ServiceIDs, ","))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		uc.outcome("invalid")
		return nil, err
	}
	start, _ := types.NewTimeStringFromString(req.StartTime)
	customer := normalizeCustomer(req.Customer)

	// 2. Считаем длительность по каталогу
	services, duration, err := uc.catalog.Resolve(req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("RequestBooking: %v", err)
		uc.outcome("invalid")
		if errors.Is(err, domain.ErrUnknownService) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownService, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Время должно входить в текущий список свободных окон
	slots, err := uc.engine.AvailableSlots(ctx, req.Date, duration)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrGridUnavailable):
			uc.logger.Error("RequestBooking: grid unavailable: %v", err)
			uc.outcome("grid_unavailable")
			return nil, fmt.Errorf("%w: %v", ErrGridUnavailable, err)
		case errors.Is(err, availability.ErrInvalidRequest):
			uc.logger.Warn("RequestBooking: rejected by engine: %v", err)
			uc.outcome("invalid")
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("RequestBooking: failed to get slots: %v", err)
			return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}
	}
	if !slices.Contains(slots, start) {
		uc.logger.Warn("RequestBooking: %s on %s is not available for %d minutes",
			start, req.Date.Format(domain.DateFormat), duration)
		uc.outcome("not_available")
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotNotAvailable, start, req.Date.Format(domain.DateFormat))
	}

	// 4. Создаем заявку с кодом
	record, err := uc.pendingStore.Create(ctx, domain.BookingDetails{
		Date:            req.Date,
		StartTime:       start,
		DurationMinutes: duration,
		ServiceIDs:      slices.Clone(req.ServiceIDs),
		Customer:        customer,
		Lang:            req.Lang,
	})
	if err != nil {
		uc.logger.Error("RequestBooking: failed to create pending record: %v", err)
		return nil, fmt.Errorf("%w: failed to create pending record: %v", ErrInternal, err)
	}
	if uc.metrics != nil {
		uc.metrics.PendingCreated()
	}
	expiresAt := record.ExpiresAt(uc.pendingStore.TTL())

	// 5. Отправляем код; ошибка доставки заявку не отменяет
	delivered := uc.deliver(ctx, record, customer, services, expiresAt)

	uc.logger.Info("RequestBooking: pending token=%s, date=%s, time=%s, duration=%d, delivered=%t",
		record.Token, req.Date.Format(domain.DateFormat), start, duration, delivered)
	uc.outcome("pending")

	return &Response{
		Token:           record.Token,
		State:           domain.StatePendingConfirmation,
		ExpiresAt:       expiresAt,
		DurationMinutes: duration,
		CodeDelivered:   delivered,
	}, nil
}

func (uc *UseCase) deliver(
	ctx context.Context,
	record *domain.PendingConfirmation,
	customer domain.Customer,
	services []domain.Service,
	expiresAt time.Time,
) bool {
	notifyCtx := ctx
	if uc.notifyTimeout > 0 {
		var cancel context.CancelFunc
		notifyCtx, cancel = context.WithTimeout(ctx, uc.notifyTimeout)
		defer cancel()
	}

	err := uc.notifier.Deliver(notifyCtx, customer.Email, mailer.Notification{
		Code:         record.Code,
		ExpiresAt:    expiresAt,
		Date:         record.Details.Date,
		StartTime:    record.Details.StartTime.String(),
		ServiceNames: domain.ServiceNames(services),
		CustomerName: customer.Name,
		Lang:         record.Details.Lang,
	})
	if err != nil {
		uc.logger.Warn("RequestBooking: failed to deliver code for token=%s: %v", record.Token, err)
		if uc.metrics != nil {
			uc.metrics.NotificationFailed(notifierName)
		}
		return false
	}
	return true
}

func (uc *UseCase) outcome(outcome string) {
	if uc.metrics != nil {
		uc.metrics.BookingOutcome(operationName, outcome)
	}
}
