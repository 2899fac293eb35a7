package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// BookingState состояние процесса подтверждения
type BookingState string

const (
	StateRequested           BookingState = "requested"
	StatePendingConfirmation BookingState = "pending_confirmation"
	StateConfirmed           BookingState = "confirmed"
	StateExpired             BookingState = "expired"
	StateCancelled           BookingState = "cancelled"
	StateRejected            BookingState = "rejected"
)

// IsTerminal true для конечных состояний
func (s BookingState) IsTerminal() bool {
	switch s {
	case StateConfirmed, StateExpired, StateCancelled, StateRejected:
		return true
	default:
		return false
	}
}

// Customer контактные данные клиента
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Occupant данные для записи в сетку
func (c Customer) Occupant() Occupant {
	return Occupant{Name: c.Name, Contact: c.Phone}
}

// BookingDetails параметры запрошенного бронирования
type BookingDetails struct {
	Date            time.Time        `json:"date"`
	StartTime       types.TimeString `json:"start_time"`
	DurationMinutes int              `json:"duration_minutes"`
	ServiceIDs      []string         `json:"service_ids"`
	Customer        Customer         `json:"customer"`
	Lang            string           `json:"lang,omitempty"`
}

// PendingConfirmation неподтвержденное бронирование
// Не резервирует сетку: свободность проверяется заново при подтверждении
type PendingConfirmation struct {
	Token     string
	Code      string
	Details   BookingDetails
	CreatedAt time.Time
}

// ExpiresAt момент, после которого код недействителен
func (p *PendingConfirmation) ExpiresAt(ttl time.Duration) time.Time {
	return p.CreatedAt.Add(ttl)
}

// IsExpired now - created_at > ttl
func (p *PendingConfirmation) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.CreatedAt) > ttl
}
