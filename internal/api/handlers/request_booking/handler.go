package request_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	requestBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/request_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidRequest     = "некорректные данные бронирования"
	msgUnknownService     = "услуга не найдена"
	msgSlotNotAvailable   = "выбранное время недоступно"
	msgGridUnavailable    = "расписание временно недоступно, попробуйте позже"
)

type Handler struct {
	useCase RequestBookingUseCase
	logger  Logger
}

func NewHandler(useCase RequestBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Создает заявку и отправляет код; слот занимается только после подтверждения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RequestBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, requestBooking.ErrUnknownService):
			h.logger.Warn("POST /bookings - Unknown service: %v", err)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, requestBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, requestBooking.ErrGridUnavailable):
			h.logger.Error("POST /bookings - Grid unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgGridUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to request booking: date=%s, time=%s, error=%v",
				req.BookingDate, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking requested: token=%s, date=%s, time=%s, code_delivered=%t",
		result.Token, req.BookingDate, req.StartTime, result.CodeDelivered)
	handlers.RespondJSON(w, http.StatusAccepted, FromUseCaseResponse(result))
}
