package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	getPendingBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_pending_booking"
)

const (
	msgInvalidToken     = "некорректный токен заявки"
	msgNotFound         = "заявка на бронирование не найдена"
	msgExpired          = "срок действия кода истек, создайте бронирование заново"
	msgStoreUnavailable = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase GetPendingBookingUseCase
	logger  Logger
}

func NewHandler(useCase GetPendingBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.useCase.Execute(r.Context(), &getPendingBooking.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, getPendingBooking.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{token} - Invalid token")
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, getPendingBooking.ErrNotFound):
			h.logger.Warn("GET /bookings/{token} - Not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getPendingBooking.ErrExpired):
			h.logger.Warn("GET /bookings/{token} - Expired: token=%s", token)
			handlers.RespondGone(w, msgExpired)

		case errors.Is(err, getPendingBooking.ErrStoreUnavailable):
			h.logger.Error("GET /bookings/{token} - Pending store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /bookings/{token} - Failed to get booking request: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{token} - Booking request retrieved: token=%s", token)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
