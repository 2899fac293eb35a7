package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrNotFound заявки нет или она уже закрыта
	ErrNotFound = errors.New("cancel_booking: booking request not found")

	// ErrStoreUnavailable хранилище заявок недоступно
	ErrStoreUnavailable = errors.New("cancel_booking: pending store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
