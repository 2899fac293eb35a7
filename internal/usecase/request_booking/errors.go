package request_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_booking: invalid input data")

	// ErrUnknownService возвращается, когда услуги нет в каталоге
	ErrUnknownService = errors.New("request_booking: unknown service")

	// ErrSlotNotAvailable выбранное время не входит в список свободных окон
	ErrSlotNotAvailable = errors.New("request_booking: slot is not available")

	// ErrGridUnavailable сетка недоступна, доступность проверить нельзя
	ErrGridUnavailable = errors.New("request_booking: grid unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_booking: internal error")
)
