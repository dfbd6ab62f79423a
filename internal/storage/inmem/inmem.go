// Package inmem keeps bookings in process memory. It backs the "memory" storage driver
// for local runs and is used by tests that need a real store.
package inmem

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"slices"
	"sync"
	"tableBooker/internal/models"
	"tableBooker/internal/storage"
)

type Storage struct {
	mu sync.RWMutex
	// bookings is kept in insertion order.
	bookings []models.Booking
}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) SaveBooking(_ context.Context, b models.Booking) (models.Booking, error) {
	b.ID = uuid.NewString()
	b.WeatherInfo = copyWeather(b.WeatherInfo)

	s.mu.Lock()
	s.bookings = append(s.bookings, b)
	s.mu.Unlock()

	return withWeatherCopy(b), nil
}

// Bookings returns bookings newest first. Equal timestamps keep reverse insertion order.
func (s *Storage) Bookings(_ context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.Booking, 0, len(s.bookings))
	for i := len(s.bookings) - 1; i >= 0; i-- {
		res = append(res, withWeatherCopy(s.bookings[i]))
	}

	// insertion order already follows createdAt except for clock skew between writers
	sortNewestFirst(res)

	return res, nil
}

func (s *Storage) Booking(_ context.Context, id string) (models.Booking, error) {
	const op = "storage.inmem.Booking"

	id, err := storage.CanonicalID(id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return withWeatherCopy(s.bookings[i]), nil
}

func (s *Storage) DeleteBooking(_ context.Context, id string) error {
	const op = "storage.inmem.DeleteBooking"

	id, err := storage.CanonicalID(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)

	return nil
}

func (s *Storage) indexOf(id string) int {
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func sortNewestFirst(bookings []models.Booking) {
	slices.SortStableFunc(bookings, func(a, b models.Booking) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

func withWeatherCopy(b models.Booking) models.Booking {
	b.WeatherInfo = copyWeather(b.WeatherInfo)
	return b
}

func copyWeather(w *models.WeatherInfo) *models.WeatherInfo {
	if w == nil {
		return nil
	}
	c := *w
	return &c
}
