package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalfonso89/flight-compensation-service/internal/config"
	"github.com/dalfonso89/flight-compensation-service/internal/logger"
	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

const (
	modeLive       = "live"
	modeHistorical = "historical"

	defaultProviderTimeout = 8 * time.Second
	maxResponseBytes       = 4 << 20
)

// AviationStackProvider implements FlightStatusProvider for the aviationstack
// /flights endpoint. One type serves both the live and the historical
// lookup; they differ only in query parameters and when they apply.
type AviationStackProvider struct {
	configuration config.FlightStatusProvider
	logger        *logger.Logger
	httpClient    *http.Client
}

// NewAviationStackProvider creates a new aviationstack provider
func NewAviationStackProvider(configuration config.FlightStatusProvider, logger *logger.Logger) *AviationStackProvider {
	if configuration.Timeout <= 0 {
		configuration.Timeout = defaultProviderTimeout
	}
	if configuration.Mode == "" {
		configuration.Mode = modeLive
	}
	return &AviationStackProvider{
		configuration: configuration,
		logger:        logger,
		httpClient: &http.Client{
			Timeout: configuration.Timeout,
		},
	}
}

// GetName returns the provider name
func (provider *AviationStackProvider) GetName() string {
	return provider.configuration.Name
}

// IsEnabled returns whether the provider has a usable access key
func (provider *AviationStackProvider) IsEnabled() bool {
	return provider.configuration.Enabled && config.LiveLookupsEnabled(provider.configuration.APIKey)
}

// GetPriority returns the provider priority
func (provider *AviationStackProvider) GetPriority() int {
	return provider.configuration.Priority
}

// Applies reports whether the query can be sent upstream. Historical
// lookups only run for dates strictly before today.
func (provider *AviationStackProvider) Applies(query StatusQuery) bool {
	if !provider.IsEnabled() || query.AirlineCode == "" || query.Number == "" {
		return false
	}
	if provider.configuration.Mode == modeHistorical {
		return query.IsPast()
	}
	return true
}

// GetStatus fetches the flight status from aviationstack. Every failure is
// returned as a *ServiceError; callers treat them as misses.
func (provider *AviationStackProvider) GetStatus(ctx context.Context, query StatusQuery) (*models.FlightStatusRecord, error) {
	if !provider.IsEnabled() {
		return nil, &ServiceError{Type: ErrorTypeNotConfigured, Message: provider.GetName() + " has no access key"}
	}

	requestContext, cancel := context.WithTimeout(ctx, provider.configuration.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestContext, http.MethodGet, provider.buildURL(query), nil)
	if err != nil {
		return nil, &ServiceError{Type: ErrorTypeUnknown, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := provider.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Type: ErrorTypeNetworkError, Message: "failed to make request", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{Type: ErrorTypeAPIError, Message: fmt.Sprintf("provider returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ServiceError{Type: ErrorTypeNetworkError, Message: "failed to read response body", Cause: err}
	}

	return provider.parseResponse(body, query)
}

// buildURL constructs the /flights request URL for the provider mode
func (provider *AviationStackProvider) buildURL(query StatusQuery) string {
	params := url.Values{}
	params.Set("access_key", provider.configuration.APIKey)

	switch provider.configuration.Mode {
	case modeHistorical:
		params.Set("flight_iata", query.AirlineCode+query.Number)
		params.Set("flight_date", query.Date)
	default:
		params.Set("airline_iata", query.AirlineCode)
		params.Set("flight_number", query.Number)
		if query.Date != "" {
			params.Set("flight_date", query.Date)
		}
	}

	return strings.TrimRight(provider.configuration.BaseURL, "/") + "/flights?" + params.Encode()
}

// parseResponse converts an aviationstack payload into a record
func (provider *AviationStackProvider) parseResponse(body []byte, query StatusQuery) (*models.FlightStatusRecord, error) {
	var payload asResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ServiceError{Type: ErrorTypeInvalidResponse, Message: "failed to parse aviationstack response", Cause: err}
	}

	if payload.Error != nil {
		return nil, &ServiceError{
			Type:    ErrorTypeAPIError,
			Message: fmt.Sprintf("aviationstack error %s: %s", payload.Error.Code, payload.Error.Message),
		}
	}

	if len(payload.Data) == 0 {
		return nil, &ServiceError{Type: ErrorTypeNoData, Message: "aviationstack returned no flights"}
	}

	selected := payload.Data[0]
	for _, flight := range payload.Data {
		if query.Date != "" && flight.FlightDate == query.Date {
			selected = flight
			break
		}
	}

	return selected.toRecord(query), nil
}

// ── aviationstack JSON types ──

type asResponse struct {
	Pagination *asPagination `json:"pagination"`
	Data       []asFlight    `json:"data"`
	Error      *asError      `json:"error"`
}

type asPagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
	Total  int `json:"total"`
}

type asError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type asFlight struct {
	FlightDate   string        `json:"flight_date"`
	FlightStatus string        `json:"flight_status"`
	Departure    *asEndpoint   `json:"departure"`
	Arrival      *asEndpoint   `json:"arrival"`
	Airline      *asAirline    `json:"airline"`
	Flight       *asFlightInfo `json:"flight"`
}

type asEndpoint struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Delay     *int   `json:"delay"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
	Actual    string `json:"actual"`
}

type asAirline struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
}

type asFlightInfo struct {
	Number string `json:"number"`
	IATA   string `json:"iata"`
}

func (f *asFlight) toRecord(query StatusQuery) *models.FlightStatusRecord {
	status := models.ParseFlightStatus(f.FlightStatus)

	record := &models.FlightStatusRecord{
		FlightNumber: query.FlightNumber,
		FlightDate:   f.FlightDate,
		Status:       status,
		IsCancelled:  status == models.StatusCancelled,
		IsDiverted:   status == models.StatusDiverted,
		Source:       models.SourceLive,
	}
	if record.FlightDate == "" {
		record.FlightDate = query.Date
	}
	if f.Flight != nil && f.Flight.IATA != "" {
		record.FlightNumber = strings.ToUpper(f.Flight.IATA)
	}
	if f.Airline != nil {
		record.AirlineName = f.Airline.Name
	}
	if f.Departure != nil {
		record.DepartureAirport = strings.ToUpper(f.Departure.IATA)
		record.ScheduledDeparture = parseTimestamp(f.Departure.Scheduled)
		record.ActualDeparture = parseTimestamp(f.Departure.Actual)
		record.DepartureDelayMinutes = f.Departure.Delay
	}
	if f.Arrival != nil {
		record.ArrivalAirport = strings.ToUpper(f.Arrival.IATA)
		record.ScheduledArrival = parseTimestamp(f.Arrival.Scheduled)
		record.ActualArrival = parseTimestamp(f.Arrival.Actual)
		record.ArrivalDelayMinutes = f.Arrival.Delay
	}
	return record
}

func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}
