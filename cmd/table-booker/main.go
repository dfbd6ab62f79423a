package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tableBooker/internal/config"
	"tableBooker/internal/http-server/handlers/booking/createBooking"
	"tableBooker/internal/http-server/handlers/booking/deleteBooking"
	"tableBooker/internal/http-server/handlers/booking/getAllBookings"
	"tableBooker/internal/http-server/handlers/booking/getBooking"
	"tableBooker/internal/http-server/middleware/mwlogger"
	"tableBooker/internal/lib/logger/handlers/slogpretty"
	"tableBooker/internal/lib/logger/sl"
	"tableBooker/internal/service/booking"
	"tableBooker/internal/storage/inmem"
	"tableBooker/internal/storage/mongo"
	"tableBooker/internal/storage/postgres"
	"tableBooker/internal/weather"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	driverPostgres = "postgres"
	driverMongo    = "mongo"
	driverMemory   = "memory"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting table booker", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	store, closeStore, err := setupStorage(cfg)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	log.Info("storage initialized", slog.String("driver", cfg.Storage.Driver))

	if cfg.Weather.APIKey == "" {
		log.Warn("OPENWEATHER_API_KEY is not set, every booking will be seated indoors")
	}

	svc := booking.New(log, weather.New(cfg.Weather, log), store)

	router := newRouter(log, cfg.HTTPServer, svc)

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = closeStore(ctx); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

type bookingService interface {
	createBooking.BookingCreator
	getAllBookings.BookingsLister
	getBooking.BookingGetter
	deleteBooking.BookingDeleter
}

func newRouter(log *slog.Logger, cfg config.HTTPServer, svc bookingService) chi.Router {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/"
	}

	router.Route(basePath, func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", createBooking.New(log, svc))
			r.Get("/", getAllBookings.New(log, svc))
			r.Get("/{id}", getBooking.New(log, svc))
			r.Delete("/{id}", deleteBooking.New(log, svc))
		})
	})

	return router
}

func setupStorage(cfg *config.Config) (booking.Store, func(context.Context) error, error) {
	switch cfg.Storage.Driver {
	case driverPostgres:
		s, err := postgres.InitDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { return s.Close() }, nil
	case driverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s, err := mongo.New(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case driverMemory:
		return inmem.New(), func(context.Context) error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
