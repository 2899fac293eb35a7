package cancel_booking

import cancelBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/cancel_booking"

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Token string `json:"token"`
	State string `json:"state"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{Token: resp.Token, State: string(resp.State)}
}
