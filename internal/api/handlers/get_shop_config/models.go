package get_shop_config

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// Schedule параметры сетки, которые нужны форме бронирования
type Schedule struct {
	OpenTime            string   `json:"openTime"`
	CloseTime           string   `json:"closeTime"`
	SlotIntervalMinutes int      `json:"slotIntervalMinutes"`
	MaxBookingDays      int      `json:"maxBookingDays"`
	WorkingDays         []string `json:"workingDays"`
	Timezone            string   `json:"timezone"`
	PendingTTLMinutes   int      `json:"pendingTtlMinutes"`
}

type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

type ShopConfigResponse struct {
	Services []ServiceResponse `json:"services"`
	Schedule Schedule          `json:"schedule"`
}

// FromCatalog формирует ответ из каталога и расписания
func FromCatalog(services []domain.Service, schedule Schedule) ShopConfigResponse {
	resp := ShopConfigResponse{
		Services: make([]ServiceResponse, 0, len(services)),
		Schedule: schedule,
	}
	for _, s := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
		})
	}
	if resp.Schedule.WorkingDays == nil {
		resp.Schedule.WorkingDays = []string{}
	}
	return resp
}
