package pending

import "errors"

var (
	// ErrNotFound нет записи с таким токеном (не создавалась, подтверждена или отменена)
	ErrNotFound = errors.New("pending: confirmation not found")

	// ErrCodeMismatch код не совпал, запись остается до истечения срока
	ErrCodeMismatch = errors.New("pending: confirmation code mismatch")

	// ErrExpired истек срок действия кода
	ErrExpired = errors.New("pending: confirmation expired")

	// ErrUnavailable хранилище недоступно
	ErrUnavailable = errors.New("pending: store unavailable")

	// ErrEncode не удалось сериализовать или разобрать запись
	ErrEncode = errors.New("pending: failed to encode record")
)
