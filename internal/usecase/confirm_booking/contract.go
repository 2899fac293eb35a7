package confirm_booking

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

// PendingStore интерфейс хранилища неподтвержденных бронирований
type PendingStore interface {
	Consume(ctx context.Context, token, code string) (*domain.PendingConfirmation, error)
	Restore(ctx context.Context, record *domain.PendingConfirmation) error
}

// BookingCommitter интерфейс записи бронирования в сетку
type BookingCommitter interface {
	CommitBooking(ctx context.Context, c availability.Commit) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	BookingOutcome(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
