package booking

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"reflect"
	"strings"
	"tableBooker/internal/lib/logger/sl"
	"tableBooker/internal/models"
	"tableBooker/internal/seating"
	"tableBooker/internal/weather"
	"time"
)

var ErrValidation = errors.New("invalid booking request")

// Request is an inbound booking. City is optional and only used for the weather lookup.
type Request struct {
	CustomerName      string `json:"customerName" validate:"required"`
	NumberOfGuests    int    `json:"numberOfGuests" validate:"required,gt=0"`
	BookingDate       string `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	BookingTime       string `json:"bookingTime" validate:"required,datetime=15:04"`
	CuisinePreference string `json:"cuisinePreference,omitempty"`
	SpecialRequests   string `json:"specialRequests,omitempty"`
	City              string `json:"city,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=WeatherFetcher
type WeatherFetcher interface {
	Current(ctx context.Context, city string) *weather.Observation
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	SaveBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	Bookings(ctx context.Context) ([]models.Booking, error)
	Booking(ctx context.Context, id string) (models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

type Service struct {
	log      *slog.Logger
	weather  WeatherFetcher
	store    Store
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the source of createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(log *slog.Logger, fetcher WeatherFetcher, store Store, opts ...Option) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	s := &Service{
		log:      log,
		weather:  fetcher,
		store:    store,
		validate: v,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates req, looks up the weather for req.City, and stores the resulting booking.
// Validation failures wrap ErrValidation together with the validator.ValidationErrors.
func (s *Service) Create(ctx context.Context, req Request) (models.Booking, error) {
	const op = "service.booking.Create"

	log := s.log.With(slog.String("op", op))

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.BookingDate = strings.TrimSpace(req.BookingDate)
	req.BookingTime = strings.TrimSpace(req.BookingTime)

	if err := s.validate.Struct(req); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w: %w", op, ErrValidation, err)
	}

	log.Info("creating booking",
		slog.String("customer_name", req.CustomerName),
		slog.String("city", req.City),
	)

	obs := s.weather.Current(ctx, req.City)

	b := models.Booking{
		CustomerName:      req.CustomerName,
		NumberOfGuests:    req.NumberOfGuests,
		BookingDate:       req.BookingDate,
		BookingTime:       req.BookingTime,
		CuisinePreference: req.CuisinePreference,
		SpecialRequests:   req.SpecialRequests,
		SeatingPreference: seating.Decide(obs),
		Status:            models.StatusConfirmed,
		CreatedAt:         s.now().UTC(),
	}

	if obs != nil {
		b.WeatherInfo = &models.WeatherInfo{
			Temp:        seating.RoundTemp(obs.TempC),
			Description: obs.Description,
		}
	}

	saved, err := s.store.SaveBooking(ctx, b)
	if err != nil {
		log.Error("failed to save booking", sl.Err(err))
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("booking saved",
		slog.String("id", saved.ID),
		slog.String("seating_preference", string(saved.SeatingPreference)),
	)

	return saved, nil
}

// List returns all bookings, newest first.
func (s *Service) List(ctx context.Context) ([]models.Booking, error) {
	const op = "service.booking.List"

	bookings, err := s.store.Bookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Booking, error) {
	const op = "service.booking.Get"

	b, err := s.store.Booking(ctx, id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "service.booking.Delete"

	if err := s.store.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
