package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dalfonso89/flight-compensation-service/internal/compensation"
)

// Regulation names accepted by REGULATION
const (
	RegulationSHYYolcu = compensation.KeySHYYolcu
	RegulationEU261    = compensation.KeyEU261
)

// DemoAPIKey disables live flight status lookups when used as the access key
const DemoAPIKey = "demo"

var (
	defaultSHYAirlineCodes = []string{"TK", "PC", "XQ", "VF", "2K"}
	defaultEUAirlineCodes  = []string{"LH", "AF", "KL", "FR", "U2", "W6", "IB", "AZ", "SK", "AY", "OS", "LX", "SN", "TP", "A3", "LO", "EI", "VY"}
)

// FlightStatusProvider represents a single flight status API provider
type FlightStatusProvider struct {
	Name     string
	Mode     string // "live" or "historical"
	BaseURL  string
	APIKey   string
	Enabled  bool
	Priority int // Lower number = higher priority
	Timeout  time.Duration
}

// Config holds all configuration for the application
type Config struct {
	Port     string
	LogLevel string

	// Flight status providers, sorted by priority
	FlightStatusProviders []FlightStatusProvider
	StatusCacheTTL        time.Duration
	SyntheticSeed         int64

	// Compensation rules
	Regulation               string
	DomesticAirportCodes     []string
	JurisdictionAirlineCodes []string
	DefaultDistanceKm        float64

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitBurst    int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	regulation := compensation.RegulationByName(getEnv("REGULATION", RegulationSHYYolcu)).Key

	airlineDefaults := defaultSHYAirlineCodes
	if regulation == RegulationEU261 {
		airlineDefaults = defaultEUAirlineCodes
	}

	return &Config{
		Port:     getEnv("PORT", "8081"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		FlightStatusProviders: loadFlightStatusProviders(),
		StatusCacheTTL:        time.Duration(atoiOr(getEnv("FLIGHT_STATUS_CACHE_TTL_SECONDS", "300"), 300)) * time.Second,
		SyntheticSeed:         int64(atoiOr(getEnv("SYNTHETIC_SEED", "0"), 0)),

		Regulation:               regulation,
		DomesticAirportCodes:     splitCodes(getEnv("DOMESTIC_AIRPORT_CODES", "")),
		JurisdictionAirlineCodes: codesOr(splitCodes(getEnv("JURISDICTION_AIRLINE_CODES", "")), airlineDefaults),
		DefaultDistanceKm:        float64(atoiOr(getEnv("DEFAULT_DISTANCE_KM", "2500"), 2500)),

		RateLimitEnabled:  getEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RateLimitRequests: atoiOr(getEnv("RATE_LIMIT_REQUESTS", "100"), 100),
		RateLimitWindow:   time.Duration(atoiOr(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"), 60)) * time.Second,
		RateLimitBurst:    atoiOr(getEnv("RATE_LIMIT_BURST", "10"), 10),
	}, nil
}

// LiveLookupsEnabled reports whether an aviation API key is configured
func LiveLookupsEnabled(apiKey string) bool {
	key := strings.TrimSpace(apiKey)
	return key != "" && !strings.EqualFold(key, DemoAPIKey)
}

// loadFlightStatusProviders builds the live and historical aviationstack providers.
// Both share the same key; a missing or demo key leaves them disabled.
func loadFlightStatusProviders() []FlightStatusProvider {
	apiKey := getEnv("AVIATIONSTACK_API_KEY", DemoAPIKey)
	baseURL := strings.TrimRight(getEnv("AVIATIONSTACK_BASE_URL", "http://api.aviationstack.com/v1"), "/")
	timeout := time.Duration(atoiOr(getEnv("AVIATIONSTACK_TIMEOUT_SECONDS", "8"), 8)) * time.Second
	enabled := LiveLookupsEnabled(apiKey)

	providers := []FlightStatusProvider{
		{
			Name:     "aviationstack",
			Mode:     "live",
			BaseURL:  baseURL,
			APIKey:   apiKey,
			Enabled:  enabled,
			Priority: 1,
			Timeout:  timeout,
		},
		{
			Name:     "aviationstack-historical",
			Mode:     "historical",
			BaseURL:  baseURL,
			APIKey:   apiKey,
			Enabled:  enabled && getEnv("AVIATIONSTACK_HISTORICAL_ENABLED", "true") == "true",
			Priority: 2,
			Timeout:  timeout,
		},
	}

	// Sort by priority (lower number = higher priority)
	for i := 0; i < len(providers); i++ {
		for j := i + 1; j < len(providers); j++ {
			if providers[i].Priority > providers[j].Priority {
				providers[i], providers[j] = providers[j], providers[i]
			}
		}
	}

	return providers
}

// splitCodes parses a comma separated list of IATA codes
func splitCodes(value string) []string {
	var codes []string
	for _, part := range strings.Split(value, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func codesOr(codes, fallback []string) []string {
	if len(codes) > 0 {
		return codes
	}
	return append([]string(nil), fallback...)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func atoiOr(s string, fallback int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return i
}
