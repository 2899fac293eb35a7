package confirm_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	confirmBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/confirm_booking"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*confirmBooking.Response)
	return resp, args.Error(1)
}

func serve(uc ConfirmBookingUseCase, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{token}/confirm", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/tok/confirm", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle_Confirmed(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &confirmBooking.Request{Token: "tok", Code: "ab12cd"}).
		Return(&confirmBooking.Response{
			Token:           "tok",
			State:           domain.StateConfirmed,
			Date:            time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:       "10:00",
			DurationMinutes: 30,
			ServiceIDs:      []string{"haircut"},
			CustomerName:    "Ivan",
		}, nil)

	w := serve(uc, `{"code":"ab12cd"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ConfirmedBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.State)
	assert.Equal(t, "2026-10-15", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestHandle_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		ucErr      error
		wantStatus int
	}{
		{"invalid", confirmBooking.ErrInvalidInput, http.StatusBadRequest},
		{"not found", confirmBooking.ErrNotFound, http.StatusNotFound},
		{"mismatch", confirmBooking.ErrCodeMismatch, http.StatusBadRequest},
		{"expired", confirmBooking.ErrExpired, http.StatusGone},
		{"conflict", confirmBooking.ErrSlotConflict, http.StatusConflict},
		{"no longer bookable", confirmBooking.ErrNoLongerBookable, http.StatusConflict},
		{"grid down", confirmBooking.ErrGridUnavailable, http.StatusServiceUnavailable},
		{"store down", confirmBooking.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)

			w := serve(uc, `{"code":"AB12CD"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &mockUseCase{}
	w := serve(uc, `{"code":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
