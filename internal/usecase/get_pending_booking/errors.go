package get_pending_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_pending_booking: invalid input data")

	// ErrNotFound заявки нет
	ErrNotFound = errors.New("get_pending_booking: booking request not found")

	// ErrExpired срок действия кода истек
	ErrExpired = errors.New("get_pending_booking: confirmation code expired")

	// ErrStoreUnavailable хранилище заявок недоступно
	ErrStoreUnavailable = errors.New("get_pending_booking: pending store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_pending_booking: internal error")
)
