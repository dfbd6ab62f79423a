package seating

import (
	"math"
	"strings"
	"tableBooker/internal/models"
	"tableBooker/internal/weather"
)

// OutdoorMinTempC is the lowest rounded temperature that still allows outdoor seating.
const OutdoorMinTempC = 22

// Decide recommends outdoor seating only for a clear sky at OutdoorMinTempC or warmer.
// A nil observation means the lookup failed and always yields indoor seating.
func Decide(obs *weather.Observation) models.SeatingPreference {
	if obs == nil {
		return models.SeatingIndoor
	}

	if strings.Contains(obs.Description, "clear") && RoundTemp(obs.TempC) >= OutdoorMinTempC {
		return models.SeatingOutdoor
	}

	return models.SeatingIndoor
}

// RoundTemp rounds half away from zero.
func RoundTemp(tempC float64) float64 {
	return math.Round(tempC)
}
