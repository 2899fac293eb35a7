package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date       time.Time // Дата (без времени)
	ServiceIDs []string  // Выбранные услуги, длительность суммируется
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	DurationMinutes int
	Slots           []types.TimeString // По возрастанию
	Degraded        bool               // Сетка недоступна, список пуст
}
