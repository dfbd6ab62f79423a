package models

import "time"

type SeatingPreference string

const (
	SeatingIndoor  SeatingPreference = "indoor"
	SeatingOutdoor SeatingPreference = "outdoor"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
)

// WeatherInfo is the observation recorded at booking time. Temp is already rounded to whole degrees Celsius.
type WeatherInfo struct {
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
}

type Booking struct {
	ID                string            `json:"id"`
	CustomerName      string            `json:"customerName"`
	NumberOfGuests    int               `json:"numberOfGuests"`
	BookingDate       string            `json:"bookingDate"`
	BookingTime       string            `json:"bookingTime"`
	CuisinePreference string            `json:"cuisinePreference,omitempty"`
	SpecialRequests   string            `json:"specialRequests,omitempty"`
	WeatherInfo       *WeatherInfo      `json:"weatherInfo"`
	SeatingPreference SeatingPreference `json:"seatingPreference"`
	Status            BookingStatus     `json:"status"`
	CreatedAt         time.Time         `json:"createdAt"`
}
