package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
