package get_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getPendingBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_pending_booking"
)

// PendingBookingResponse HTTP response model (без кода подтверждения)
type PendingBookingResponse struct {
	Token           string            `json:"token"`
	State           string            `json:"state"`
	BookingDate     string            `json:"bookingDate"`
	StartTime       string            `json:"startTime"`
	DurationMinutes int               `json:"durationMinutes"`
	Services        []ServiceResponse `json:"services"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	ExpiresAt       string            `json:"expiresAt"`
}

type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPendingBooking.Response) *PendingBookingResponse {
	services := make([]ServiceResponse, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = ServiceResponse{ID: s.ID, Name: s.Name, DurationMinutes: s.DurationMinutes}
	}

	return &PendingBookingResponse{
		Token:           resp.Token,
		State:           string(resp.State),
		BookingDate:     resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Services:        services,
		Name:            resp.CustomerName,
		Email:           resp.CustomerEmail,
		ExpiresAt:       resp.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
