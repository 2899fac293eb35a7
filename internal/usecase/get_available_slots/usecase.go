package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	engine  AvailabilityEngine
	catalog ServiceCatalog
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine AvailabilityEngine, catalog ServiceCatalog, logger Logger) *UseCase {
	return &UseCase{
		engine:  engine,
		catalog: catalog,
		logger:  logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Недоступность сетки не является ошибкой: возвращается пустой список с Degraded=true
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, services=%s",
		req.Date.Format(domain.DateFormat), strings.Join(req.ServiceIDs, ","))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Считаем длительность по каталогу
	_, duration, err := uc.catalog.Resolve(req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		if errors.Is(err, domain.ErrUnknownService) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownService, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	response := &Response{
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           []types.TimeString{},
	}

	// 3. Запрашиваем окна у движка
	slots, err := uc.engine.AvailableSlots(ctx, req.Date, duration)
	switch {
	case err == nil:
		response.Slots = slots
	case errors.Is(err, availability.ErrGridUnavailable):
		uc.logger.Warn("GetAvailableSlots: grid unavailable for %s, returning no slots: %v",
			req.Date.Format(domain.DateFormat), err)
		response.Degraded = true
		return response, nil
	case errors.Is(err, availability.ErrInvalidRequest):
		uc.logger.Warn("GetAvailableSlots: rejected by engine: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("GetAvailableSlots: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for %d minutes on %s",
		len(response.Slots), duration, req.Date.Format(domain.DateFormat))

	return response, nil
}
