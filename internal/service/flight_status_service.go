package service

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/dalfonso89/flight-compensation-service/internal/logger"
	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

// FlightStatusService resolves flight status through the cache and then an
// ordered provider chain, stopping at the first provider that answers.
type FlightStatusService struct {
	logger    *logrus.Entry
	providers []FlightStatusProvider
	cache     *StatusCache
	clock     Clock

	singleFlightGroup singleflight.Group

	cacheHits      atomic.Int64
	providerHits   map[string]*atomic.Int64
	providerMisses map[string]*atomic.Int64
}

// NewFlightStatusService creates a service over providers, tried in priority order
func NewFlightStatusService(providers []FlightStatusProvider, cache *StatusCache, clock Clock, logger *logger.Logger) *FlightStatusService {
	if clock == nil {
		clock = time.Now
	}

	ordered := append([]FlightStatusProvider(nil), providers...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].GetPriority() < ordered[j].GetPriority()
	})

	service := &FlightStatusService{
		logger:         logger.Component("flight-status"),
		providers:      ordered,
		cache:          cache,
		clock:          clock,
		providerHits:   make(map[string]*atomic.Int64, len(ordered)),
		providerMisses: make(map[string]*atomic.Int64, len(ordered)),
	}
	for _, provider := range ordered {
		service.providerHits[provider.GetName()] = new(atomic.Int64)
		service.providerMisses[provider.GetName()] = new(atomic.Int64)
	}
	return service
}

// Today returns the current date in flight date format
func (service *FlightStatusService) Today() string {
	return service.clock().UTC().Format(flightDateLayout)
}

// GetStatus returns the flight status for flightNumber on date (YYYY-MM-DD,
// empty for today). Only caller cancellation produces an error, and it only
// affects that caller: a concurrent lookup sharing the fetch still resolves.
func (service *FlightStatusService) GetStatus(ctx context.Context, flightNumber, date string) (models.FlightStatusRecord, error) {
	query := service.buildQuery(flightNumber, date)

	if record, ok := service.cache.Get(query.FlightNumber, query.Date); ok {
		service.cacheHits.Add(1)
		service.logger.WithFields(logrus.Fields{"flight": query.FlightNumber, "date": query.Date}).Debug("Flight status cache hit")
		return record, nil
	}

	if err := ctx.Err(); err != nil {
		return models.FlightStatusRecord{}, &ServiceError{Type: ErrorTypeContextCancelled, Message: "request context cancelled", Cause: err}
	}

	// The shared fetch outlives any single caller; each provider call is
	// still bounded by its own timeout.
	fetchContext := context.WithoutCancel(ctx)
	cacheKey := CacheKey(query.FlightNumber, query.Date)
	resultChannel := service.singleFlightGroup.DoChan(cacheKey, func() (interface{}, error) {
		// A concurrent flight may have filled the cache while we waited
		if record, ok := service.cache.Get(query.FlightNumber, query.Date); ok {
			return record, nil
		}
		return service.fetchFromProviders(fetchContext, query)
	})

	select {
	case result := <-resultChannel:
		if result.Err != nil {
			return models.FlightStatusRecord{}, result.Err
		}
		return result.Val.(models.FlightStatusRecord), nil
	case <-ctx.Done():
		service.logger.WithFields(logrus.Fields{"flight": query.FlightNumber, "date": query.Date}).Debug("Caller left before flight status resolved")
		return models.FlightStatusRecord{}, &ServiceError{Type: ErrorTypeContextCancelled, Message: "request context cancelled", Cause: ctx.Err()}
	}
}

func (service *FlightStatusService) buildQuery(flightNumber, date string) StatusQuery {
	today := service.Today()
	if date == "" {
		date = today
	}
	query := StatusQuery{
		FlightNumber: NormalizeFlightNumber(flightNumber),
		Date:         date,
		Today:        today,
	}
	if airline, number, ok := ParseFlightNumber(flightNumber); ok {
		query.AirlineCode = airline
		query.Number = number
	}
	return query
}

// fetchFromProviders walks the chain in order and caches the first answer
func (service *FlightStatusService) fetchFromProviders(ctx context.Context, query StatusQuery) (models.FlightStatusRecord, error) {
	fields := logrus.Fields{"flight": query.FlightNumber, "date": query.Date}

	for _, provider := range service.providers {
		if err := ctx.Err(); err != nil {
			return models.FlightStatusRecord{}, &ServiceError{Type: ErrorTypeContextCancelled, Message: "request context cancelled", Cause: err}
		}

		if !provider.Applies(query) {
			service.logger.WithFields(fields).WithField("provider", provider.GetName()).Debug("Provider skipped")
			continue
		}

		record, err := provider.GetStatus(ctx, query)
		if err != nil {
			service.providerMisses[provider.GetName()].Add(1)
			errorType := classifyError(err)
			entry := service.logger.WithFields(fields).WithFields(logrus.Fields{
				"provider":   provider.GetName(),
				"error_type": errorType.String(),
			})
			switch errorType {
			case ErrorTypeNoData:
				entry.Info("Provider has no data for flight")
			default:
				entry.Warnf("Provider lookup failed: %v", err)
			}

			if ctxErr := ctx.Err(); ctxErr != nil {
				return models.FlightStatusRecord{}, &ServiceError{Type: ErrorTypeContextCancelled, Message: "request context cancelled", Cause: ctxErr}
			}
			continue
		}
		if record == nil {
			service.providerMisses[provider.GetName()].Add(1)
			continue
		}

		service.providerHits[provider.GetName()].Add(1)
		service.cache.Set(query.FlightNumber, query.Date, *record)
		service.logger.WithFields(fields).WithFields(logrus.Fields{
			"provider": provider.GetName(),
			"source":   record.Source.String(),
			"status":   string(record.Status),
		}).Info("Resolved flight status")
		return *record, nil
	}

	service.logger.WithFields(fields).Errorf("All %d flight status providers missed", len(service.providers))
	return models.FlightStatusRecord{}, ErrNoProviderResult
}

// GetProviderStatus returns the status of all configured providers
func (service *FlightStatusService) GetProviderStatus() []ProviderStatus {
	statuses := make([]ProviderStatus, len(service.providers))
	for i, provider := range service.providers {
		statuses[i] = ProviderStatus{
			Name:     provider.GetName(),
			Enabled:  provider.IsEnabled(),
			Priority: provider.GetPriority(),
			Hits:     service.providerHits[provider.GetName()].Load(),
			Misses:   service.providerMisses[provider.GetName()].Load(),
		}
	}
	return statuses
}

// CacheHits returns how many lookups were answered from the cache
func (service *FlightStatusService) CacheHits() int64 {
	return service.cacheHits.Load()
}

// ProviderStatus represents the status of a provider
type ProviderStatus struct {
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Priority int    `json:"priority"`
	Hits     int64  `json:"hits"`
	Misses   int64  `json:"misses"`
}
