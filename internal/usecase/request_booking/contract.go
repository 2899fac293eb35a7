package request_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/mailer"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	AvailableSlots(ctx context.Context, date time.Time, durationMinutes int) ([]types.TimeString, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	Resolve(ids []string) ([]domain.Service, int, error)
}

// PendingStore интерфейс хранилища неподтвержденных бронирований
type PendingStore interface {
	Create(ctx context.Context, details domain.BookingDetails) (*domain.PendingConfirmation, error)
	TTL() time.Duration
}

// Notifier интерфейс доставки кода подтверждения
type Notifier interface {
	Deliver(ctx context.Context, contact string, n mailer.Notification) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	BookingOutcome(operation, outcome string)
	NotificationFailed(notifier string)
	PendingCreated()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
