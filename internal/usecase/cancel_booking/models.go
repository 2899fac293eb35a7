package cancel_booking

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// Request модель запроса на отмену заявки
type Request struct {
	Token string
}

// Response результат отмены
type Response struct {
	Token string
	State domain.BookingState
}
