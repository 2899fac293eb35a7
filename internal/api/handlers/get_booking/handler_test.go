package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getPendingBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_pending_booking"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getPendingBooking.Request) (*getPendingBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getPendingBooking.Response)
	return resp, args.Error(1)
}

func serve(uc GetPendingBookingUseCase) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{token}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/tok", nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getPendingBooking.Request{Token: "tok"}).
		Return(&getPendingBooking.Response{
			Token:           "tok",
			State:           domain.StatePendingConfirmation,
			Date:            time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:       "10:00",
			DurationMinutes: 30,
			Services:        []domain.Service{{ID: "haircut", Name: "Haircut", DurationMinutes: 30}},
			CustomerName:    "Ivan",
			CustomerEmail:   "ivan@example.com",
			ExpiresAt:       time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC),
		}, nil)

	w := serve(uc)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "code")

	var resp PendingBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending_confirmation", resp.State)
	assert.Equal(t, "2026-10-14T10:30:00Z", resp.ExpiresAt)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
}

func TestHandle_ErrorStatuses(t *testing.T) {
	tests := []struct {
		ucErr      error
		wantStatus int
	}{
		{getPendingBooking.ErrNotFound, http.StatusNotFound},
		{getPendingBooking.ErrExpired, http.StatusGone},
		{getPendingBooking.ErrInvalidInput, http.StatusBadRequest},
		{getPendingBooking.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
		assert.Equal(t, tt.wantStatus, serve(uc).Code, tt.ucErr.Error())
	}
}
