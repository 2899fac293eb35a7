package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgMissingServices = "необходимо выбрать хотя бы одну услугу"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnknownService  = "услуга не найдена"
	msgInvalidRequest  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD), services (required, через запятую)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	servicesStr := query.Get("services")
	if servicesStr == "" {
		h.logger.Warn("GET /available-slots - Missing services")
		handlers.RespondBadRequest(w, msgMissingServices)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, servicesStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrUnknownService):
			h.logger.Warn("GET /available-slots - Unknown service: services=%s", servicesStr)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: date=%s, services=%s, slots_count=%d, degraded=%t",
		dateStr, servicesStr, len(result.Slots), result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
