package request_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	requestBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/request_booking"
)

// RequestBookingRequest HTTP request model
type RequestBookingRequest struct {
	BookingDate string   `json:"bookingDate"` // "2026-10-15"
	StartTime   string   `json:"startTime"`   // "10:00"
	ServiceIDs  []string `json:"services"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Lang        string   `json:"lang,omitempty"`
}

// PendingBookingResponse HTTP response model
type PendingBookingResponse struct {
	Token           string `json:"token"`
	State           string `json:"state"`
	ExpiresAt       string `json:"expiresAt"`
	DurationMinutes int    `json:"durationMinutes"`
	CodeDelivered   bool   `json:"codeDelivered"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestBookingRequest) ToUseCaseRequest() (*requestBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &requestBooking.Request{
		Date:       bookingDate,
		StartTime:  r.StartTime,
		ServiceIDs: r.ServiceIDs,
		Customer: domain.Customer{
			Name:  r.Name,
			Email: r.Email,
			Phone: r.Phone,
		},
		Lang: r.Lang,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestBooking.Response) *PendingBookingResponse {
	return &PendingBookingResponse{
		Token:           resp.Token,
		State:           string(resp.State),
		ExpiresAt:       resp.ExpiresAt.UTC().Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		CodeDelivered:   resp.CodeDelivered,
	}
}
