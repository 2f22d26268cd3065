package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/dalfonso89/flight-compensation-service/internal/config"
	"github.com/dalfonso89/flight-compensation-service/internal/logger"
	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

// StatusQuery identifies the flight a provider should resolve
type StatusQuery struct {
	FlightNumber string // normalized: upper case, no spaces
	AirlineCode  string // 2-character IATA carrier code, empty if unparseable
	Number       string // numeric flight number without leading zeros
	Date         string // YYYY-MM-DD
	Today        string // YYYY-MM-DD at lookup time
}

// IsPast reports whether the requested date is strictly before today
func (q StatusQuery) IsPast() bool {
	return q.Date != "" && q.Date < q.Today
}

// FlightStatusProvider defines the interface for flight status sources
type FlightStatusProvider interface {
	GetName() string
	IsEnabled() bool
	GetPriority() int
	// Applies reports whether the provider should be tried for query
	Applies(query StatusQuery) bool
	GetStatus(ctx context.Context, query StatusQuery) (*models.FlightStatusRecord, error)
}

// Clock returns the current time
type Clock func() time.Time

// ProviderFactory creates provider instances
type ProviderFactory struct {
	config *config.Config
	logger *logger.Logger
	clock  Clock
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(config *config.Config, logger *logger.Logger, clock Clock) *ProviderFactory {
	if clock == nil {
		clock = time.Now
	}
	return &ProviderFactory{
		config: config,
		logger: logger,
		clock:  clock,
	}
}

// CreateProviders creates all enabled HTTP providers followed by the
// synthetic fallback, which is always last.
func (pf *ProviderFactory) CreateProviders() []FlightStatusProvider {
	providers := make([]FlightStatusProvider, 0, len(pf.config.FlightStatusProviders)+1)

	for _, providerConfig := range pf.config.FlightStatusProviders {
		if !providerConfig.Enabled {
			continue
		}

		provider := NewAviationStackProvider(providerConfig, pf.logger)
		providers = append(providers, provider)
	}

	seed := pf.config.SyntheticSeed
	if seed == 0 {
		seed = pf.clock().UnixNano()
	}
	providers = append(providers, NewSyntheticProvider(rand.New(rand.NewSource(seed)), pf.clock))

	return providers
}
