package confirm_booking

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	confirmBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/confirm_booking"
)

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	Code string `json:"code"`
}

// ConfirmedBookingResponse HTTP response model
type ConfirmedBookingResponse struct {
	Token           string   `json:"token"`
	State           string   `json:"state"`
	BookingDate     string   `json:"bookingDate"`
	StartTime       string   `json:"startTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Services        []string `json:"services"`
	Name            string   `json:"name"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmBookingRequest) ToUseCaseRequest(token string) *confirmBooking.Request {
	return &confirmBooking.Request{Token: token, Code: r.Code}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmedBookingResponse {
	return &ConfirmedBookingResponse{
		Token:           resp.Token,
		State:           string(resp.State),
		BookingDate:     resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Services:        resp.ServiceIDs,
		Name:            resp.CustomerName,
	}
}
