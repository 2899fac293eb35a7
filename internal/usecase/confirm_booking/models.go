package confirm_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на подтверждение
type Request struct {
	Token string
	Code  string
}

// Response подтвержденное бронирование
type Response struct {
	Token           string
	State           domain.BookingState
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	ServiceIDs      []string
	CustomerName    string
}
