package get_pending_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// PendingStore интерфейс хранилища неподтвержденных бронирований
type PendingStore interface {
	Lookup(ctx context.Context, token string) (*domain.PendingConfirmation, error)
	TTL() time.Duration
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	Get(id string) (domain.Service, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
