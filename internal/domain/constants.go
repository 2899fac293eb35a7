package domain

import "time"

// Значения по умолчанию для сетки и подтверждений
const (
	DefaultSlotIntervalMinutes = 15
	DefaultMaxBookingDays      = 7
	DefaultPendingTTL          = 30 * time.Minute
	DefaultCodeLength          = 6
)

// Ограничения на данные клиента
const (
	MaxCustomerNameLength  = 100
	MaxCustomerPhoneLength = 32
	MaxCustomerEmailLength = 254
	MaxServicesPerBooking  = 10
)

// Time format constants
const (
	TimeFormat      = "15:04"      // HH:MM
	DateFormat      = "2006-01-02" // YYYY-MM-DD
	SheetDateFormat = "02/01"      // dd/mm, строка дат в таблице
)
