package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/cancel_booking"
)

const (
	msgInvalidToken     = "некорректный токен заявки"
	msgNotFound         = "заявка на бронирование не найдена"
	msgStoreUnavailable = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("DELETE /bookings/{token} - Invalid token")
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, cancelBooking.ErrNotFound):
			h.logger.Warn("DELETE /bookings/{token} - Not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrStoreUnavailable):
			h.logger.Error("DELETE /bookings/{token} - Pending store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("DELETE /bookings/{token} - Failed to cancel: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{token} - Booking request cancelled: token=%s", token)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
