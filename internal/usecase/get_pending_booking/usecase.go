package get_pending_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending"
)

// UseCase use case для страницы подтверждения
type UseCase struct {
	pendingStore PendingStore
	catalog      ServiceCatalog
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(pendingStore PendingStore, catalog ServiceCatalog, logger Logger) *UseCase {
	return &UseCase{
		pendingStore: pendingStore,
		catalog:      catalog,
		logger:       logger,
	}
}

// Execute возвращает детали заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	record, err := uc.pendingStore.Lookup(ctx, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, pending.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, pending.ErrExpired):
			return nil, ErrExpired
		case errors.Is(err, pending.ErrUnavailable):
			uc.logger.Error("GetPendingBooking: pending store unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		default:
			uc.logger.Error("GetPendingBooking: failed to lookup token=%s: %v", req.Token, err)
			return nil, fmt.Errorf("%w: failed to lookup: %v", ErrInternal, err)
		}
	}

	// Услуги, удаленные из каталога после создания заявки, показываются по ID
	services := make([]domain.Service, 0, len(record.Details.ServiceIDs))
	for _, id := range record.Details.ServiceIDs {
		s, ok := uc.catalog.Get(id)
		if !ok {
			s = domain.Service{ID: id, Name: id}
		}
		services = append(services, s)
	}

	return &Response{
		Token:           record.Token,
		State:           domain.StatePendingConfirmation,
		Date:            record.Details.Date,
		StartTime:       record.Details.StartTime,
		DurationMinutes: record.Details.DurationMinutes,
		Services:        services,
		CustomerName:    record.Details.Customer.Name,
		CustomerEmail:   record.Details.Customer.Email,
		ExpiresAt:       record.ExpiresAt(uc.pendingStore.TTL()),
	}, nil
}
