package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

const flightDateLayout = "2006-01-02"

var airlineNames = map[string]string{
	"TK": "Turkish Airlines",
	"PC": "Pegasus Airlines",
	"XQ": "SunExpress",
	"VF": "AJet",
	"LH": "Lufthansa",
	"BA": "British Airways",
	"AF": "Air France",
	"KL": "KLM Royal Dutch Airlines",
	"FR": "Ryanair",
	"U2": "easyJet",
	"W6": "Wizz Air",
	"LX": "SWISS",
	"OS": "Austrian Airlines",
	"A3": "Aegean Airlines",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"UA": "United Airlines",
}

// AirlineName returns the display name for an IATA carrier code
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return code + " Airlines"
}

// SyntheticProvider fabricates plausible flight status data when no live
// source answered. Outcomes are drawn from an injected random source so a
// fixed seed produces fixed records.
type SyntheticProvider struct {
	mu    sync.Mutex
	rng   *rand.Rand
	clock Clock
}

// NewSyntheticProvider creates a synthetic provider
func NewSyntheticProvider(rng *rand.Rand, clock Clock) *SyntheticProvider {
	if clock == nil {
		clock = time.Now
	}
	return &SyntheticProvider{rng: rng, clock: clock}
}

// GetName returns the provider name
func (provider *SyntheticProvider) GetName() string {
	return "synthetic"
}

// IsEnabled always returns true
func (provider *SyntheticProvider) IsEnabled() bool {
	return true
}

// GetPriority places the synthetic provider after all others
func (provider *SyntheticProvider) GetPriority() int {
	return 1000
}

// Applies always returns true
func (provider *SyntheticProvider) Applies(StatusQuery) bool {
	return true
}

// GetStatus generates a record for query. It never fails.
func (provider *SyntheticProvider) GetStatus(_ context.Context, query StatusQuery) (*models.FlightStatusRecord, error) {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	day, err := time.Parse(flightDateLayout, query.Date)
	if err != nil {
		now := provider.clock().UTC()
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	cancelled, delay := provider.sampleOutcome()

	// Departures between 06:00 and 21:55 on five minute steps
	scheduledDeparture := day.Add(time.Duration(6*60+provider.rng.Intn(192)*5) * time.Minute)
	duration := time.Duration(60+provider.rng.Intn(121)) * time.Minute
	scheduledArrival := scheduledDeparture.Add(duration)

	record := &models.FlightStatusRecord{
		FlightNumber:       query.FlightNumber,
		FlightDate:         day.Format(flightDateLayout),
		AirlineName:        AirlineName(query.AirlineCode),
		ScheduledDeparture: &scheduledDeparture,
		ScheduledArrival:   &scheduledArrival,
		Source:             models.SourceSynthetic,
	}

	if cancelled {
		record.Status = models.StatusCancelled
		record.IsCancelled = true
		return record, nil
	}

	actualDeparture := scheduledDeparture.Add(time.Duration(delay) * time.Minute)
	actualArrival := scheduledArrival.Add(time.Duration(delay) * time.Minute)
	departureDelay, arrivalDelay := delay, delay

	record.ActualDeparture = &actualDeparture
	record.ActualArrival = &actualArrival
	record.DepartureDelayMinutes = &departureDelay
	record.ArrivalDelayMinutes = &arrivalDelay

	now := provider.clock()
	switch {
	case actualArrival.Before(now):
		record.Status = models.StatusLanded
	case actualDeparture.Before(now):
		record.Status = models.StatusActive
	default:
		record.Status = models.StatusScheduled
	}

	return record, nil
}

// sampleOutcome draws 5% cancelled, 20% 180-360 min, 35% 30-180 min, 40% 0-30 min
func (provider *SyntheticProvider) sampleOutcome() (cancelled bool, delayMinutes int) {
	roll := provider.rng.Float64()
	switch {
	case roll < 0.05:
		return true, 0
	case roll < 0.25:
		return false, 180 + provider.rng.Intn(181)
	case roll < 0.60:
		return false, 30 + provider.rng.Intn(150)
	default:
		return false, provider.rng.Intn(30)
	}
}
