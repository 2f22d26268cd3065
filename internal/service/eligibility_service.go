package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dalfonso89/flight-compensation-service/internal/airports"
	"github.com/dalfonso89/flight-compensation-service/internal/compensation"
	"github.com/dalfonso89/flight-compensation-service/internal/distance"
	"github.com/dalfonso89/flight-compensation-service/internal/logger"
	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

// StatusLookup resolves flight status records
type StatusLookup interface {
	GetStatus(ctx context.Context, flightNumber, date string) (models.FlightStatusRecord, error)
}

// EligibilityConfig holds the collaborators of an EligibilityService
type EligibilityConfig struct {
	Logger                   *logger.Logger
	Airports                 *airports.Registry
	Distances                *distance.Calculator
	FlightStatus             StatusLookup
	Engine                   *compensation.Engine
	JurisdictionAirlineCodes []string
	Clock                    Clock
}

// EligibilityService combines airport data, flight status and the rules
// engine into a compensation verdict.
type EligibilityService struct {
	logger       *logrus.Entry
	airports     *airports.Registry
	distances    *distance.Calculator
	flightStatus StatusLookup
	engine       *compensation.Engine
	airlineCodes map[string]struct{}
	clock        Clock
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(cfg EligibilityConfig) *EligibilityService {
	airlineCodes := make(map[string]struct{}, len(cfg.JurisdictionAirlineCodes))
	for _, code := range cfg.JurisdictionAirlineCodes {
		airlineCodes[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &EligibilityService{
		logger:       cfg.Logger.Component("eligibility"),
		airports:     cfg.Airports,
		distances:    cfg.Distances,
		flightStatus: cfg.FlightStatus,
		engine:       cfg.Engine,
		airlineCodes: airlineCodes,
		clock:        clock,
	}
}

// CheckEligibility resolves the flight and evaluates compensation. Invalid
// input returns a *ValidationError before any outbound call; upstream
// failures degrade to synthetic data and a default distance instead of
// failing. The only other error is caller cancellation.
func (service *EligibilityService) CheckEligibility(ctx context.Context, request models.EligibilityRequest) (models.EligibilityResponse, error) {
	request, err := service.validate(request)
	if err != nil {
		return models.EligibilityResponse{}, err
	}

	distanceKm, distanceEstimated := service.distances.FlightDistanceOrDefault(request.DepartureAirport, request.ArrivalAirport)
	if distanceEstimated {
		service.logger.WithFields(logrus.Fields{
			"departure": request.DepartureAirport,
			"arrival":   request.ArrivalAirport,
		}).Warn("Unknown airport, using default distance")
	}

	record, err := service.flightStatus.GetStatus(ctx, request.FlightNumber, request.FlightDate)
	if err != nil {
		return models.EligibilityResponse{}, err
	}
	if record.DepartureAirport == "" {
		record.DepartureAirport = request.DepartureAirport
	}
	if record.ArrivalAirport == "" {
		record.ArrivalAirport = request.ArrivalAirport
	}

	delayMinutes := EffectiveDelayMinutes(record)
	isCancelled := request.Disruption == models.DisruptionCancellation
	if delayMinutes == CancelledDelaySentinel || record.IsDiverted {
		isCancelled = true
		delayMinutes = 0
	}

	input := compensation.Input{
		DelayMinutes:                delayMinutes,
		DistanceKm:                  distanceKm,
		IsCancelled:                 isCancelled,
		IsDeniedBoarding:            request.Disruption == models.DisruptionDeniedBoarding,
		DepartureInJurisdiction:     service.airportInJurisdiction(request.DepartureAirport),
		ArrivalInJurisdiction:       service.airportInJurisdiction(request.ArrivalAirport),
		AirlineInJurisdiction:       service.airlineInJurisdiction(request.FlightNumber),
		IsDomestic:                  service.airports.IsDomesticPair(request.DepartureAirport, request.ArrivalAirport),
		IsExtraordinaryCircumstance: request.ExtraordinaryCircumstance,
	}
	verdict := service.engine.Evaluate(input)

	service.logger.WithFields(logrus.Fields{
		"flight":      request.FlightNumber,
		"date":        request.FlightDate,
		"route":       request.DepartureAirport + "-" + request.ArrivalAirport,
		"delay":       delayMinutes,
		"cancelled":   isCancelled,
		"distance_km": int(distanceKm),
		"eligible":    verdict.Eligible,
		"amount_eur":  verdict.AmountEUR,
		"source":      record.Source.String(),
	}).Info("Eligibility evaluated")

	return models.EligibilityResponse{
		Verdict:    verdict,
		FlightInfo: service.flightInfo(request, record, delayMinutes, isCancelled, distanceKm, distanceEstimated),
		Record:     record,
		DataSource: record.Source,
	}, nil
}

// validate normalizes the request and rejects malformed input
func (service *EligibilityService) validate(request models.EligibilityRequest) (models.EligibilityRequest, error) {
	request.FlightNumber = NormalizeFlightNumber(request.FlightNumber)
	request.DepartureAirport = strings.ToUpper(strings.TrimSpace(request.DepartureAirport))
	request.ArrivalAirport = strings.ToUpper(strings.TrimSpace(request.ArrivalAirport))
	request.FlightDate = strings.TrimSpace(request.FlightDate)
	request.Disruption = strings.ToLower(strings.TrimSpace(request.Disruption))

	if request.FlightNumber == "" {
		return request, &ValidationError{Field: "flightNumber", Message: "flight number is required"}
	}
	if len(request.FlightNumber) < 3 {
		return request, &ValidationError{Field: "flightNumber", Message: "flight number must start with a 2-character airline code followed by digits"}
	}
	if err := validateAirportCode("departureAirport", request.DepartureAirport); err != nil {
		return request, err
	}
	if err := validateAirportCode("arrivalAirport", request.ArrivalAirport); err != nil {
		return request, err
	}
	if request.DepartureAirport == request.ArrivalAirport {
		return request, &ValidationError{Field: "arrivalAirport", Message: "arrival airport must differ from departure airport"}
	}

	if request.FlightDate == "" {
		request.FlightDate = service.clock().UTC().Format(flightDateLayout)
	} else if _, err := time.Parse(flightDateLayout, request.FlightDate); err != nil {
		return request, &ValidationError{Field: "flightDate", Message: "flight date must be formatted as YYYY-MM-DD"}
	}

	switch request.Disruption {
	case "", models.DisruptionDelay, models.DisruptionCancellation, models.DisruptionDeniedBoarding:
	default:
		return request, &ValidationError{Field: "disruption", Message: "disruption must be one of delay, cancellation, denied_boarding"}
	}

	return request, nil
}

func validateAirportCode(field, code string) error {
	if code == "" {
		return &ValidationError{Field: field, Message: "airport code is required"}
	}
	if len(code) != 3 {
		return &ValidationError{Field: field, Message: "airport code must be a 3-letter IATA code"}
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return &ValidationError{Field: field, Message: "airport code must be a 3-letter IATA code"}
		}
	}
	return nil
}

// airportInJurisdiction uses the domestic airport set, or EU membership of
// the airport's country for country-scoped regulations.
func (service *EligibilityService) airportInJurisdiction(code string) bool {
	if !service.engine.Regulation().CountryScoped {
		return service.airports.IsDomestic(code)
	}
	airport, ok := service.airports.ByCode(code)
	return ok && compensation.IsEUCountry(airport.CountryCode)
}

func (service *EligibilityService) airlineInJurisdiction(flightNumber string) bool {
	airline, _, ok := ParseFlightNumber(flightNumber)
	if !ok {
		return false
	}
	_, covered := service.airlineCodes[airline]
	return covered
}

func (service *EligibilityService) flightInfo(request models.EligibilityRequest, record models.FlightStatusRecord, delayMinutes int, isCancelled bool, distanceKm float64, estimated bool) models.FlightInfo {
	return models.FlightInfo{
		FlightNumber:       record.FlightNumber,
		FlightDate:         record.FlightDate,
		Departure:          service.airportSummary(request.DepartureAirport),
		Arrival:            service.airportSummary(request.ArrivalAirport),
		Airline:            record.AirlineName,
		Status:             record.Status,
		StatusLabel:        record.Status.Label(),
		ScheduledDeparture: record.ScheduledDeparture,
		ActualDeparture:    record.ActualDeparture,
		ScheduledArrival:   record.ScheduledArrival,
		ActualArrival:      record.ActualArrival,
		IsCancelled:        isCancelled,
		DelayMinutes:       delayMinutes,
		Distance:           distance.NewResult(distanceKm),
		DistanceEstimated:  estimated,
	}
}

func (service *EligibilityService) airportSummary(code string) models.AirportSummary {
	airport, ok := service.airports.ByCode(code)
	if !ok {
		return models.AirportSummary{Code: code}
	}
	return models.AirportSummary{Code: airport.Code, City: airport.City, Name: airport.Name}
}

// Evaluate runs the rules engine directly
func (service *EligibilityService) Evaluate(input compensation.Input) models.CompensationVerdict {
	return service.engine.Evaluate(input)
}
