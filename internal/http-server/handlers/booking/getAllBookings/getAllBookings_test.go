package getAllBookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"tableBooker/internal/http-server/handlers/booking/getAllBookings/mocks"
	"tableBooker/internal/lib/logger/handlers/slogdiscard"
	"tableBooker/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAllBookingsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testTime := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	testBookings := []models.Booking{
		{
			ID:                "b3",
			CustomerName:      "Carol",
			NumberOfGuests:    3,
			SeatingPreference: models.SeatingIndoor,
			Status:            models.StatusConfirmed,
			CreatedAt:         testTime.Add(2 * time.Hour),
		},
		{
			ID:                "b1",
			CustomerName:      "Alice",
			NumberOfGuests:    2,
			WeatherInfo:       &models.WeatherInfo{Temp: 25, Description: "clear sky"},
			SeatingPreference: models.SeatingOutdoor,
			Status:            models.StatusConfirmed,
			CreatedAt:         testTime,
		},
	}

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.BookingsLister)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success with bookings",
			mockSetup: func(m *mocks.BookingsLister) {
				m.On("List", mock.Anything).Return(testBookings, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var response BookingsResponse
				require.NoError(t, json.Unmarshal([]byte(body), &response))

				assert.Equal(t, "OK", response.Status)
				assert.Equal(t, "", response.Error)
				require.Len(t, response.Bookings, 2)
				assert.Equal(t, "b3", response.Bookings[0].ID)
				assert.Equal(t, "b1", response.Bookings[1].ID)
				assert.Nil(t, response.Bookings[0].WeatherInfo)
				assert.Equal(t, models.SeatingOutdoor, response.Bookings[1].SeatingPreference)
			},
		},
		{
			name: "Success with no bookings",
			mockSetup: func(m *mocks.BookingsLister) {
				m.On("List", mock.Anything).Return([]models.Booking{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","bookings":[]}`,
		},
		{
			name: "Nil bookings render as empty list",
			mockSetup: func(m *mocks.BookingsLister) {
				m.On("List", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","bookings":[]}`,
		},
		{
			name: "Internal server error",
			mockSetup: func(m *mocks.BookingsLister) {
				m.On("List", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get bookings"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockLister := mocks.NewBookingsLister(t)
			tc.mockSetup(mockLister)

			handler := New(logger, mockLister)

			req, err := http.NewRequest(http.MethodGet, "/bookings", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
