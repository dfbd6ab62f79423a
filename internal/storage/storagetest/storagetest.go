// Package storagetest holds the behaviour every booking store driver must share.
package storagetest

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"tableBooker/internal/models"
	"tableBooker/internal/storage"
	"testing"
	"time"
)

type Store interface {
	SaveBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	Bookings(ctx context.Context) ([]models.Booking, error)
	Booking(ctx context.Context, id string) (models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// Run exercises a store. newStore must return an empty store.
// malformedID and missingID are driver specific: the first cannot be an id, the second could be but is unused.
// idForms returns other spellings the driver accepts for a saved id.
func Run(t *testing.T, newStore func(t *testing.T) Store, malformedID, missingID string, idForms func(id string) []string) {
	t.Helper()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("RoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := Booking("Alice", base)
		in.CuisinePreference = "italian"
		in.SpecialRequests = "window seat"

		saved, err := s.SaveBooking(ctx, in)
		require.NoError(t, err)
		require.NotEmpty(t, saved.ID)
		assert.Equal(t, in.CustomerName, saved.CustomerName)
		assert.Equal(t, in.NumberOfGuests, saved.NumberOfGuests)
		assert.Equal(t, in.WeatherInfo, saved.WeatherInfo)
		assert.True(t, in.CreatedAt.Equal(saved.CreatedAt))

		got, err := s.Booking(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved, got)

		again, err := s.Booking(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	})

	t.Run("NoWeather", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := Booking("Bob", base)
		in.WeatherInfo = nil
		in.SeatingPreference = models.SeatingIndoor

		saved, err := s.SaveBooking(ctx, in)
		require.NoError(t, err)
		assert.Nil(t, saved.WeatherInfo)

		got, err := s.Booking(ctx, saved.ID)
		require.NoError(t, err)
		assert.Nil(t, got.WeatherInfo)
		assert.Equal(t, models.SeatingIndoor, got.SeatingPreference)
	})

	t.Run("NewestFirst", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		b1, err := s.SaveBooking(ctx, Booking("B1", base))
		require.NoError(t, err)
		b2, err := s.SaveBooking(ctx, Booking("B2", base.Add(time.Minute)))
		require.NoError(t, err)
		b3, err := s.SaveBooking(ctx, Booking("B3", base.Add(2*time.Minute)))
		require.NoError(t, err)

		list, err := s.Bookings(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Booking{b3, b2, b1}, list)
	})

	t.Run("Empty", func(t *testing.T) {
		list, err := newStore(t).Bookings(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("GetErrors", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Booking(ctx, malformedID)
		assert.ErrorIs(t, err, storage.ErrInvalidID)

		_, err = s.Booking(ctx, missingID)
		assert.ErrorIs(t, err, storage.ErrBookingNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		keep, err := s.SaveBooking(ctx, Booking("Keep", base))
		require.NoError(t, err)
		gone, err := s.SaveBooking(ctx, Booking("Gone", base.Add(time.Minute)))
		require.NoError(t, err)

		require.NoError(t, s.DeleteBooking(ctx, gone.ID))
		assert.ErrorIs(t, s.DeleteBooking(ctx, gone.ID), storage.ErrBookingNotFound)
		assert.ErrorIs(t, s.DeleteBooking(ctx, malformedID), storage.ErrInvalidID)

		_, err = s.Booking(ctx, gone.ID)
		assert.ErrorIs(t, err, storage.ErrBookingNotFound)

		list, err := s.Bookings(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Booking{keep}, list)
	})

	t.Run("IDForms", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		saved, err := s.SaveBooking(ctx, Booking("Alice", base))
		require.NoError(t, err)

		forms := idForms(saved.ID)
		require.NotEmpty(t, forms)

		for _, id := range forms {
			got, err := s.Booking(ctx, id)
			require.NoError(t, err, id)
			assert.Equal(t, saved, got, id)
		}

		_, err = s.Booking(ctx, idForms(missingID)[0])
		assert.ErrorIs(t, err, storage.ErrBookingNotFound)

		require.NoError(t, s.DeleteBooking(ctx, forms[len(forms)-1]))
		assert.ErrorIs(t, s.DeleteBooking(ctx, saved.ID), storage.ErrBookingNotFound)
	})
}

// UUIDForms returns the non-canonical spellings of a uuid id.
func UUIDForms(id string) []string {
	return []string{
		strings.ToUpper(id),
		"{" + id + "}",
		"urn:uuid:" + id,
		strings.ReplaceAll(id, "-", ""),
	}
}

// Booking returns a valid confirmed booking with an outdoor recommendation.
func Booking(name string, createdAt time.Time) models.Booking {
	return models.Booking{
		CustomerName:      name,
		NumberOfGuests:    2,
		BookingDate:       "2024-05-01",
		BookingTime:       "19:00",
		WeatherInfo:       &models.WeatherInfo{Temp: 25, Description: "clear sky"},
		SeatingPreference: models.SeatingOutdoor,
		Status:            models.StatusConfirmed,
		CreatedAt:         createdAt,
	}
}
