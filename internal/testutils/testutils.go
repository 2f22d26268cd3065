package testutils

import (
	"context"
	"io"
	"time"

	"github.com/dalfonso89/flight-compensation-service/internal/config"
	"github.com/dalfonso89/flight-compensation-service/internal/logger"
	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

// FixedNow is the reference time used by test clocks
var FixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// MockLogger creates a logger that discards output
func MockLogger() *logger.Logger {
	return logger.NewWithOutput("debug", io.Discard)
}

// MockConfig creates a mock configuration for testing
func MockConfig() *config.Config {
	return &config.Config{
		Port:     "8081",
		LogLevel: "debug",

		FlightStatusProviders: []config.FlightStatusProvider{
			{
				Name:     "aviationstack",
				Mode:     "live",
				BaseURL:  "https://api.test.com/v1",
				APIKey:   "test-api-key",
				Enabled:  true,
				Priority: 1,
				Timeout:  2 * time.Second,
			},
			{
				Name:     "aviationstack-historical",
				Mode:     "historical",
				BaseURL:  "https://api.test.com/v1",
				APIKey:   "test-api-key",
				Enabled:  true,
				Priority: 2,
				Timeout:  2 * time.Second,
			},
		},
		StatusCacheTTL: 5 * time.Minute,
		SyntheticSeed:  7,

		Regulation:               config.RegulationSHYYolcu,
		JurisdictionAirlineCodes: []string{"TK", "PC", "XQ", "VF"},
		DefaultDistanceKm:        2500,

		RateLimitEnabled:  true,
		RateLimitRequests: 100,
		RateLimitWindow:   60 * time.Second,
		RateLimitBurst:    10,
	}
}

// MockConfigWithServer points every HTTP provider at baseURL
func MockConfigWithServer(baseURL string) *config.Config {
	cfg := MockConfig()
	for i := range cfg.FlightStatusProviders {
		cfg.FlightStatusProviders[i].BaseURL = baseURL
	}
	return cfg
}

// FakeClock is a settable clock for deterministic tests
type FakeClock struct {
	now time.Time
}

// NewFakeClock creates a clock frozen at now
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

// Now returns the current fake time
func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// MockRecord creates a live flight status record for testing
func MockRecord(flightNumber string, arrivalDelay int) models.FlightStatusRecord {
	scheduledDeparture := FixedNow.Add(-4 * time.Hour)
	scheduledArrival := scheduledDeparture.Add(3 * time.Hour)
	actualDeparture := scheduledDeparture.Add(time.Duration(arrivalDelay) * time.Minute)
	actualArrival := scheduledArrival.Add(time.Duration(arrivalDelay) * time.Minute)
	return models.FlightStatusRecord{
		FlightNumber:        flightNumber,
		FlightDate:          FixedNow.Format("2006-01-02"),
		AirlineName:         "Turkish Airlines",
		Status:              models.StatusLanded,
		ScheduledDeparture:  &scheduledDeparture,
		ActualDeparture:     &actualDeparture,
		ScheduledArrival:    &scheduledArrival,
		ActualArrival:       &actualArrival,
		ArrivalDelayMinutes: &arrivalDelay,
		Source:              models.SourceLive,
	}
}

// MockContextWithTimeout creates a mock context with timeout for testing
func MockContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
