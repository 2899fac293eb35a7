package cancel_booking

import "context"

// PendingStore интерфейс хранилища неподтвержденных бронирований
type PendingStore interface {
	Cancel(ctx context.Context, token string) error
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
