package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// OccupancyStore хранилище сетки занятости
type OccupancyStore interface {
	ReadDay(ctx context.Context, date time.Time) (*domain.DayGrid, error)
	Reserve(ctx context.Context, date time.Time, start types.TimeString, count int, occupant domain.Occupant) error
}

// Metrics счетчик отказов хранилища
type Metrics interface {
	GridError(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
