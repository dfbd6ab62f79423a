package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"tableBooker/internal/config"
	"tableBooker/internal/models"
	"tableBooker/internal/storage"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id                  UUID PRIMARY KEY,
	seq                 BIGSERIAL NOT NULL,
	customer_name       TEXT NOT NULL,
	number_of_guests    INTEGER NOT NULL CHECK (number_of_guests > 0),
	booking_date        TEXT NOT NULL,
	booking_time        TEXT NOT NULL,
	cuisine_preference  TEXT NOT NULL DEFAULT '',
	special_requests    TEXT NOT NULL DEFAULT '',
	weather_temp        DOUBLE PRECISION,
	weather_description TEXT,
	seating_preference  TEXT NOT NULL DEFAULT 'indoor',
	status              TEXT NOT NULL DEFAULT 'confirmed',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings (created_at DESC, seq DESC);
`

const bookingColumns = `
	id, customer_name, number_of_guests, booking_date, booking_time,
	cuisine_preference, special_requests, weather_temp, weather_description,
	seating_preference, status, created_at`

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) SaveBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	const op = "storage.postgres.SaveBooking"

	var temp sql.NullFloat64
	var desc sql.NullString
	if b.WeatherInfo != nil {
		temp = sql.NullFloat64{Float64: b.WeatherInfo.Temp, Valid: true}
		desc = sql.NullString{String: b.WeatherInfo.Description, Valid: true}
	}

	query := `
		INSERT INTO bookings (
			id, customer_name, number_of_guests, booking_date, booking_time,
			cuisine_preference, special_requests, weather_temp, weather_description,
			seating_preference, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING` + bookingColumns

	row := s.DB.QueryRowContext(ctx, query,
		uuid.NewString(),
		b.CustomerName,
		b.NumberOfGuests,
		b.BookingDate,
		b.BookingTime,
		b.CuisinePreference,
		b.SpecialRequests,
		temp,
		desc,
		string(b.SeatingPreference),
		string(b.Status),
		b.CreatedAt,
	)

	saved, err := scanBooking(row)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (s *Storage) Bookings(ctx context.Context) ([]models.Booking, error) {
	const op = "storage.postgres.Bookings"

	query := `SELECT` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC, seq DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get bookings: %w", op, err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan booking: %w", op, err)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating bookings: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) Booking(ctx context.Context, id string) (models.Booking, error) {
	const op = "storage.postgres.Booking"

	id, err := storage.CanonicalID(id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE id = $1`

	b, err := scanBooking(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

func (s *Storage) DeleteBooking(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteBooking"

	id, err := storage.CanonicalID(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (models.Booking, error) {
	var (
		b       models.Booking
		temp    sql.NullFloat64
		desc    sql.NullString
		seating string
		status  string
	)

	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.NumberOfGuests,
		&b.BookingDate,
		&b.BookingTime,
		&b.CuisinePreference,
		&b.SpecialRequests,
		&temp,
		&desc,
		&seating,
		&status,
		&b.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}

	if temp.Valid {
		b.WeatherInfo = &models.WeatherInfo{Temp: temp.Float64, Description: desc.String}
	}
	b.SeatingPreference = models.SeatingPreference(seating)
	b.Status = models.BookingStatus(status)
	b.CreatedAt = b.CreatedAt.UTC()

	return b, nil
}
