package get_booking

import (
	"context"

	getPendingBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_pending_booking"
)

type GetPendingBookingUseCase interface {
	Execute(ctx context.Context, req *getPendingBooking.Request) (*getPendingBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
