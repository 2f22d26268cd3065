package models

import (
	"fmt"
	"strings"
	"time"
)

// Airport is immutable reference data keyed by IATA code
type Airport struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// DataSource tells callers where a FlightStatusRecord came from
type DataSource int

const (
	SourceLive DataSource = iota
	SourceSynthetic
)

func (s DataSource) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceSynthetic:
		return "synthetic"
	default:
		return fmt.Sprintf("DataSource(%d)", int(s))
	}
}

// MarshalText encodes the source as "live" or "synthetic"
func (s DataSource) MarshalText() ([]byte, error) {
	switch s {
	case SourceLive, SourceSynthetic:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown data source %d", int(s))
	}
}

// UnmarshalText decodes "live" or "synthetic"
func (s *DataSource) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "live":
		*s = SourceLive
	case "synthetic":
		*s = SourceSynthetic
	default:
		return fmt.Errorf("unknown data source %q", string(text))
	}
	return nil
}

// FlightStatus is the normalized operational state of a flight
type FlightStatus string

const (
	StatusScheduled FlightStatus = "scheduled"
	StatusActive    FlightStatus = "active"
	StatusLanded    FlightStatus = "landed"
	StatusCancelled FlightStatus = "cancelled"
	StatusIncident  FlightStatus = "incident"
	StatusDiverted  FlightStatus = "diverted"
	StatusUnknown   FlightStatus = "unknown"
)

// ParseFlightStatus maps an upstream status string onto a FlightStatus
func ParseFlightStatus(value string) FlightStatus {
	switch FlightStatus(strings.ToLower(strings.TrimSpace(value))) {
	case StatusScheduled:
		return StatusScheduled
	case StatusActive:
		return StatusActive
	case StatusLanded:
		return StatusLanded
	case StatusCancelled, "canceled":
		return StatusCancelled
	case StatusIncident:
		return StatusIncident
	case StatusDiverted:
		return StatusDiverted
	default:
		return StatusUnknown
	}
}

// Label returns a display label for the status
func (s FlightStatus) Label() string {
	switch s {
	case StatusScheduled:
		return "Scheduled"
	case StatusActive:
		return "In Flight"
	case StatusLanded:
		return "Landed"
	case StatusCancelled:
		return "Cancelled"
	case StatusIncident:
		return "Incident"
	case StatusDiverted:
		return "Diverted"
	default:
		return "Unknown"
	}
}

// FlightStatusRecord is the resolved state of one flight on one date
type FlightStatusRecord struct {
	FlightNumber          string       `json:"flightNumber"`
	FlightDate            string       `json:"flightDate"`
	DepartureAirport      string       `json:"departureAirport"`
	ArrivalAirport        string       `json:"arrivalAirport"`
	AirlineName           string       `json:"airlineName"`
	Status                FlightStatus `json:"status"`
	ScheduledDeparture    *time.Time   `json:"scheduledDeparture,omitempty"`
	ActualDeparture       *time.Time   `json:"actualDeparture,omitempty"`
	ScheduledArrival      *time.Time   `json:"scheduledArrival,omitempty"`
	ActualArrival         *time.Time   `json:"actualArrival,omitempty"`
	DepartureDelayMinutes *int         `json:"departureDelayMinutes,omitempty"`
	ArrivalDelayMinutes   *int         `json:"arrivalDelayMinutes,omitempty"`
	IsCancelled           bool         `json:"isCancelled"`
	IsDiverted            bool         `json:"isDiverted"`
	Source                DataSource   `json:"source"`
}

// DistanceResult is a great-circle distance rounded to whole units
type DistanceResult struct {
	Kilometers int `json:"kilometers"`
	Miles      int `json:"miles"`
}

// CompensationVerdict is the output of the rules engine
type CompensationVerdict struct {
	Eligible       bool     `json:"eligible"`
	AmountEUR      int      `json:"amountEUR"`
	RegulationName string   `json:"regulationName"`
	Reason         string   `json:"reason"`
	Exemptions     []string `json:"exemptions"`
}

// Disruption types a caller may declare
const (
	DisruptionDelay          = "delay"
	DisruptionCancellation   = "cancellation"
	DisruptionDeniedBoarding = "denied_boarding"
)

// EligibilityRequest is the inbound quick-check payload
type EligibilityRequest struct {
	FlightNumber              string `json:"flightNumber" form:"flight"`
	DepartureAirport          string `json:"departureAirport" form:"from"`
	ArrivalAirport            string `json:"arrivalAirport" form:"to"`
	FlightDate                string `json:"flightDate,omitempty" form:"date"`
	Disruption                string `json:"disruption,omitempty" form:"disruption"`
	ExtraordinaryCircumstance bool   `json:"extraordinaryCircumstance,omitempty" form:"extraordinary"`
}

// AirportSummary is the airport part of FlightInfo
type AirportSummary struct {
	Code string `json:"code"`
	City string `json:"city,omitempty"`
	Name string `json:"name,omitempty"`
}

// FlightInfo summarizes the flight for display next to a verdict
type FlightInfo struct {
	FlightNumber       string         `json:"flightNumber"`
	FlightDate         string         `json:"flightDate"`
	Departure          AirportSummary `json:"departure"`
	Arrival            AirportSummary `json:"arrival"`
	Airline            string         `json:"airline"`
	Status             FlightStatus   `json:"status"`
	StatusLabel        string         `json:"statusLabel"`
	ScheduledDeparture *time.Time     `json:"scheduledDeparture,omitempty"`
	ActualDeparture    *time.Time     `json:"actualDeparture,omitempty"`
	ScheduledArrival   *time.Time     `json:"scheduledArrival,omitempty"`
	ActualArrival      *time.Time     `json:"actualArrival,omitempty"`
	IsCancelled        bool           `json:"isCancelled"`
	DelayMinutes       int            `json:"delayMinutes"`
	Distance           DistanceResult `json:"distance"`
	DistanceEstimated  bool           `json:"distanceEstimated"`
}

// EligibilityResponse is what CheckEligibility returns to callers
type EligibilityResponse struct {
	Verdict    CompensationVerdict `json:"verdict"`
	FlightInfo FlightInfo          `json:"flightInfo"`
	Record     FlightStatusRecord  `json:"record"`
	DataSource DataSource          `json:"dataSource"`
}

// CacheEntry is a cached flight status record
type CacheEntry struct {
	Data     FlightStatusRecord
	StoredAt time.Time
}

type HealthCheck struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// APIResponse wraps list and lookup payloads
type APIResponse struct {
	Data   interface{} `json:"data"`
	Count  int         `json:"count,omitempty"`
	Status int         `json:"status"`
}

// DistanceResponse is the great-circle distance between two airports
type DistanceResponse struct {
	From     AirportSummary `json:"from"`
	To       AirportSummary `json:"to"`
	Distance DistanceResult `json:"distance"`
}
