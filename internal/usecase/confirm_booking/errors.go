package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrNotFound заявки нет (не создавалась, уже подтверждена или отменена)
	ErrNotFound = errors.New("confirm_booking: booking request not found")

	// ErrCodeMismatch неверный код, заявка остается активной
	ErrCodeMismatch = errors.New("confirm_booking: invalid confirmation code")

	// ErrExpired срок действия кода истек, сетка не менялась
	ErrExpired = errors.New("confirm_booking: confirmation code expired")

	// ErrSlotConflict время заняли, пока клиент вводил код; заявка закрыта
	ErrSlotConflict = errors.New("confirm_booking: slot already taken")

	// ErrNoLongerBookable дата или время перестали подходить; заявка закрыта
	ErrNoLongerBookable = errors.New("confirm_booking: slot is no longer bookable")

	// ErrGridUnavailable сетка недоступна, заявка восстановлена и код можно ввести повторно
	ErrGridUnavailable = errors.New("confirm_booking: grid unavailable")

	// ErrStoreUnavailable хранилище заявок недоступно
	ErrStoreUnavailable = errors.New("confirm_booking: pending store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
