package get_pending_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса
type Request struct {
	Token string
}

// Response детали заявки без кода подтверждения
type Response struct {
	Token           string
	State           domain.BookingState
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Services        []domain.Service
	CustomerName    string
	CustomerEmail   string
	ExpiresAt       time.Time
}
