package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"tableBooker/internal/config"
	"tableBooker/internal/lib/logger/handlers/slogdiscard"
	"tableBooker/internal/models"
	"tableBooker/internal/service/booking"
	"tableBooker/internal/storage/inmem"
	"tableBooker/internal/weather"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status   string           `json:"status"`
	Error    string           `json:"error"`
	Message  string           `json:"message"`
	Booking  *models.Booking  `json:"booking"`
	Bookings []models.Booking `json:"bookings"`
}

func newTestServer(t *testing.T, weatherHandler http.HandlerFunc) *httptest.Server {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()

	weatherSrv := httptest.NewServer(weatherHandler)
	t.Cleanup(weatherSrv.Close)

	fetcher := weather.New(config.Weather{BaseURL: weatherSrv.URL, APIKey: "key", Timeout: time.Second}, log)

	clock := time.Date(2024, 4, 20, 9, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	svc := booking.New(log, fetcher, inmem.New(), booking.WithClock(tick))

	srv := httptest.NewServer(newRouter(log, config.HTTPServer{BasePath: "/api", AllowedOrigins: []string{"*"}}, svc))
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, method, url, body string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	return resp.StatusCode, env
}

func TestBookingLifecycle(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "Lagos":
			_, _ = w.Write([]byte(`{"main":{"temp":25.4},"weather":[{"description":"clear sky"}]}`))
		case "Oslo":
			_, _ = w.Write([]byte(`{"main":{"temp":4.2},"weather":[{"description":"clear sky"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}
	})
	base := srv.URL + "/api/bookings"

	status, b1 := do(t, http.MethodPost, base,
		`{"customerName":"Alice","numberOfGuests":2,"bookingDate":"2024-05-01","bookingTime":"19:00","city":"Lagos"}`)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, b1.Booking)
	assert.Equal(t, models.SeatingOutdoor, b1.Booking.SeatingPreference)
	assert.Equal(t, &models.WeatherInfo{Temp: 25, Description: "clear sky"}, b1.Booking.WeatherInfo)

	status, b2 := do(t, http.MethodPost, base,
		`{"customerName":"Bob","numberOfGuests":4,"bookingDate":"2024-05-02","bookingTime":"12:30","city":"Oslo"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.SeatingIndoor, b2.Booking.SeatingPreference)

	status, b3 := do(t, http.MethodPost, base,
		`{"customerName":"Carol","numberOfGuests":1,"bookingDate":"2024-05-03","bookingTime":"08:15","city":"Nowhere"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.SeatingIndoor, b3.Booking.SeatingPreference)
	assert.Nil(t, b3.Booking.WeatherInfo)

	status, bad := do(t, http.MethodPost, base, `{"customerName":"Dan"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Error", bad.Status)

	status, list := do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Bookings, 3)
	assert.Equal(t, []string{b3.Booking.ID, b2.Booking.ID, b1.Booking.ID},
		[]string{list.Bookings[0].ID, list.Bookings[1].ID, list.Bookings[2].ID})

	status, got := do(t, http.MethodGet, base+"/"+b1.Booking.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, b1.Booking, got.Booking)

	for _, id := range []string{strings.ToUpper(b1.Booking.ID), "urn:uuid:" + b1.Booking.ID} {
		status, got = do(t, http.MethodGet, base+"/"+id, "")
		require.Equal(t, http.StatusOK, status, id)
		assert.Equal(t, b1.Booking.ID, got.Booking.ID)
	}

	status, _ = do(t, http.MethodGet, base+"/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, deleted := do(t, http.MethodDelete, base+"/"+b1.Booking.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "booking deleted", deleted.Message)

	status, _ = do(t, http.MethodDelete, base+"/"+b1.Booking.ID, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodGet, base+"/"+b1.Booking.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/bookings", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)

	req, err = http.NewRequest(http.MethodGet, srv.URL+"/api/bookings", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSetupStorageUnknownDriver(t *testing.T) {
	t.Parallel()

	_, _, err := setupStorage(&config.Config{Storage: config.Storage{Driver: "cassandra"}})
	assert.Error(t, err)
}

func TestSetupStorageMemory(t *testing.T) {
	t.Parallel()

	store, closeStore, err := setupStorage(&config.Config{Storage: config.Storage{Driver: driverMemory}})
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NoError(t, closeStore(context.Background()))
}
