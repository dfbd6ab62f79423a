package deleteBooking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"tableBooker/internal/http-server/handlers/booking/deleteBooking/mocks"
	"tableBooker/internal/lib/logger/handlers/slogdiscard"
	"tableBooker/internal/storage"
	"tableBooker/internal/storage/inmem"
	"tableBooker/internal/storage/storagetest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		bookingID      string
		mockSetup      func(m *mocks.BookingDeleter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "Success",
			bookingID: "b1",
			mockSetup: func(m *mocks.BookingDeleter) {
				m.On("Delete", mock.Anything, "b1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","message":"booking deleted"}`,
		},
		{
			name:      "Malformed id",
			bookingID: "xyz",
			mockSetup: func(m *mocks.BookingDeleter) {
				m.On("Delete", mock.Anything, "xyz").Return(fmt.Errorf("service.booking.Delete: %w", storage.ErrInvalidID))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid booking id"}`,
		},
		{
			name:      "Not found",
			bookingID: "b2",
			mockSetup: func(m *mocks.BookingDeleter) {
				m.On("Delete", mock.Anything, "b2").Return(fmt.Errorf("service.booking.Delete: %w", storage.ErrBookingNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name:      "Internal server error",
			bookingID: "b1",
			mockSetup: func(m *mocks.BookingDeleter) {
				m.On("Delete", mock.Anything, "b1").Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to delete booking"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockDeleter := mocks.NewBookingDeleter(t)
			tc.mockSetup(mockDeleter)

			router := chi.NewRouter()
			router.Delete("/bookings/{id}", New(logger, mockDeleter))

			req, err := http.NewRequest(http.MethodDelete, "/bookings/"+tc.bookingID, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}

type storeDeleter struct {
	*inmem.Storage
}

func (s storeDeleter) Delete(ctx context.Context, id string) error {
	return s.DeleteBooking(ctx, id)
}

func TestDeleteTwice(t *testing.T) {
	t.Parallel()

	store := inmem.New()
	saved, err := store.SaveBooking(context.Background(), storagetest.Booking("Alice", time.Now()))
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Delete("/bookings/{id}", New(slogdiscard.NewDiscardLogger(), storeDeleter{store}))

	expected := []int{http.StatusOK, http.StatusNotFound}
	for _, status := range expected {
		req, err := http.NewRequest(http.MethodDelete, "/bookings/"+saved.ID, nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, status, rr.Code)
	}
}

func TestHandlerWithoutChiContext(t *testing.T) {
	t.Parallel()

	handler := New(slogdiscard.NewDiscardLogger(), mocks.NewBookingDeleter(t))

	req, err := http.NewRequest(http.MethodDelete, "/", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "booking id is required")
}
