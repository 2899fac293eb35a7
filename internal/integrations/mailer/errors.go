package mailer

import "errors"

var (
	// ErrDeliveryFailed возвращается, когда письмо с кодом не удалось отправить
	ErrDeliveryFailed = errors.New("mailer: delivery failed")

	// ErrInvalidRecipient некорректный адрес получателя
	ErrInvalidRecipient = errors.New("mailer: invalid recipient")

	// ErrRender не удалось собрать тело письма
	ErrRender = errors.New("mailer: failed to render message")
)
