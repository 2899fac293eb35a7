package availability

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest некорректные параметры запроса
	ErrInvalidRequest = errors.New("availability: invalid request")

	// ErrInvalidDate дата вне окна бронирования или нерабочий день
	ErrInvalidDate = fmt.Errorf("%w: date is not bookable", ErrInvalidRequest)

	// ErrInvalidDuration длительность не переводится в слоты
	ErrInvalidDuration = fmt.Errorf("%w: invalid duration", ErrInvalidRequest)

	// ErrSlotOutsideGrid время начала не на сетке или услуга не помещается до закрытия
	ErrSlotOutsideGrid = fmt.Errorf("%w: slot is outside the grid", ErrInvalidRequest)

	// ErrGridUnavailable хранилище сетки недоступно, операцию можно повторить
	ErrGridUnavailable = errors.New("availability: grid unavailable")

	// ErrGridTimeout хранилище не ответило за отведенное время
	ErrGridTimeout = fmt.Errorf("%w: timeout", ErrGridUnavailable)

	// ErrSlotConflict слот заняли между проверкой и записью
	ErrSlotConflict = errors.New("availability: slot conflict")
)
