package occupancy

import "errors"

var (
	// ErrUnavailable хранилище сетки недоступно (сеть, таймаут, авторизация)
	ErrUnavailable = errors.New("occupancy: store unavailable")

	// ErrConflict хотя бы один из слотов уже занят
	ErrConflict = errors.New("occupancy: slot already occupied")

	// ErrDateNotFound в сетке нет такой даты
	ErrDateNotFound = errors.New("occupancy: date not found in grid")

	// ErrSlotNotFound слот не определен в сетке этой даты
	ErrSlotNotFound = errors.New("occupancy: slot not found in grid")

	// ErrInvalidRange запрошено неположительное число слотов
	ErrInvalidRange = errors.New("occupancy: invalid slot range")

	// ErrMalformedGrid данные сетки не разбираются
	ErrMalformedGrid = errors.New("occupancy: malformed grid data")
)
