package request_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модель запроса на бронирование
type Request struct {
	Date       time.Time
	StartTime  string // "HH:MM"
	ServiceIDs []string
	Customer   domain.Customer
	Lang       string
}

// Response модель ответа: заявка ждет подтверждения кодом
type Response struct {
	Token           string
	State           domain.BookingState
	ExpiresAt       time.Time
	DurationMinutes int
	CodeDelivered   bool
}
