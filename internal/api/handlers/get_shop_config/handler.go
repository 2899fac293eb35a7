package get_shop_config

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

type Handler struct {
	catalog  ServiceCatalog
	schedule Schedule
	logger   Logger
}

func NewHandler(catalog ServiceCatalog, schedule Schedule, logger Logger) *Handler {
	return &Handler{
		catalog:  catalog,
		schedule: schedule,
		logger:   logger,
	}
}

// Handle GET /api/v1/config
// Каталог услуг и расписание для формы бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services := h.catalog.All()

	h.logger.Info("GET /config - Config retrieved: services=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(services, h.schedule))
}
