package distance

import (
	"math"

	"github.com/jftuga/geodist"

	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

const (
	kmPerMile     = 1.609344
	earthRadiusKm = 6371.0
	// geodistRadiusKm is the fixed radius geodist.HaversineDistance uses
	geodistRadiusKm = 6378.1
)

// AirportLookup resolves airports by IATA code
type AirportLookup interface {
	ByCode(code string) (models.Airport, bool)
}

// HaversineKm returns the great-circle distance in kilometers on a 6371 km sphere
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := geodist.HaversineDistance(
		geodist.Coord{Lat: lat1, Lon: lon1},
		geodist.Coord{Lat: lat2, Lon: lon2},
	)
	return km * earthRadiusKm / geodistRadiusKm
}

// NewResult rounds a kilometer distance into a DistanceResult
func NewResult(km float64) models.DistanceResult {
	if km < 0 || math.IsNaN(km) {
		km = 0
	}
	return models.DistanceResult{
		Kilometers: int(math.Round(km)),
		Miles:      int(math.Round(km / kmPerMile)),
	}
}

// Calculator computes route distances between registry airports
type Calculator struct {
	airports  AirportLookup
	defaultKm float64
}

// NewCalculator creates a calculator that substitutes defaultKm for unknown airports
func NewCalculator(airports AirportLookup, defaultKm float64) *Calculator {
	return &Calculator{airports: airports, defaultKm: defaultKm}
}

// FlightKm returns the unrounded distance, false when either code is unknown
func (c *Calculator) FlightKm(departureCode, arrivalCode string) (float64, bool) {
	departure, ok := c.airports.ByCode(departureCode)
	if !ok {
		return 0, false
	}
	arrival, ok := c.airports.ByCode(arrivalCode)
	if !ok {
		return 0, false
	}
	return HaversineKm(departure.Latitude, departure.Longitude, arrival.Latitude, arrival.Longitude), true
}

// FlightDistance returns the rounded route distance, false when either code is unknown
func (c *Calculator) FlightDistance(departureCode, arrivalCode string) (models.DistanceResult, bool) {
	km, ok := c.FlightKm(departureCode, arrivalCode)
	if !ok {
		return models.DistanceResult{}, false
	}
	return NewResult(km), true
}

// FlightDistanceOrDefault returns the route distance in km, or the default
// distance when an airport is unknown. estimated reports the fallback.
func (c *Calculator) FlightDistanceOrDefault(departureCode, arrivalCode string) (km float64, estimated bool) {
	if km, ok := c.FlightKm(departureCode, arrivalCode); ok {
		return km, false
	}
	return c.defaultKm, true
}
