package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	confirmBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "токен и код подтверждения обязательны"
	msgNotFound           = "заявка на бронирование не найдена"
	msgCodeMismatch       = "неверный код подтверждения"
	msgExpired            = "срок действия кода истек, создайте бронирование заново"
	msgSlotConflict       = "выбранное время уже занято, выберите другое"
	msgNoLongerBookable   = "выбранное время больше недоступно для бронирования"
	msgGridUnavailable    = "расписание временно недоступно, повторите подтверждение позже"
	msgStoreUnavailable   = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{token}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{token}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(token))
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{token}/confirm - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, confirmBooking.ErrNotFound):
			h.logger.Warn("POST /bookings/{token}/confirm - Not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmBooking.ErrCodeMismatch):
			h.logger.Warn("POST /bookings/{token}/confirm - Code mismatch: token=%s", token)
			handlers.RespondBadRequest(w, msgCodeMismatch)

		case errors.Is(err, confirmBooking.ErrExpired):
			h.logger.Warn("POST /bookings/{token}/confirm - Expired: token=%s", token)
			handlers.RespondGone(w, msgExpired)

		case errors.Is(err, confirmBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings/{token}/confirm - Slot conflict: token=%s", token)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, confirmBooking.ErrNoLongerBookable):
			h.logger.Warn("POST /bookings/{token}/confirm - No longer bookable: token=%s", token)
			handlers.RespondConflict(w, msgNoLongerBookable)

		case errors.Is(err, confirmBooking.ErrGridUnavailable):
			h.logger.Error("POST /bookings/{token}/confirm - Grid unavailable: token=%s, error=%v", token, err)
			handlers.RespondServiceUnavailable(w, msgGridUnavailable)

		case errors.Is(err, confirmBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/{token}/confirm - Pending store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings/{token}/confirm - Failed to confirm: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{token}/confirm - Booking confirmed: token=%s, date=%s, time=%s",
		token, result.Date.Format(domain.DateFormat), result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
