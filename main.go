package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dalfonso89/flight-compensation-service/internal/airports"
	"github.com/dalfonso89/flight-compensation-service/internal/api"
	"github.com/dalfonso89/flight-compensation-service/internal/compensation"
	"github.com/dalfonso89/flight-compensation-service/internal/config"
	"github.com/dalfonso89/flight-compensation-service/internal/distance"
	"github.com/dalfonso89/flight-compensation-service/internal/logger"
	"github.com/dalfonso89/flight-compensation-service/internal/platform"
	"github.com/dalfonso89/flight-compensation-service/internal/ratelimit"
	"github.com/dalfonso89/flight-compensation-service/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Reference data
	registry := airports.Default(cfg.DomesticAirportCodes)
	calculator := distance.NewCalculator(registry, cfg.DefaultDistanceKm)

	// Flight status chain
	factory := service.NewProviderFactory(cfg, logger, time.Now)
	providers := factory.CreateProviders()
	cache := service.NewStatusCache(cfg.StatusCacheTTL, time.Now)
	flightStatus := service.NewFlightStatusService(providers, cache, time.Now, logger)

	regulation := compensation.RegulationByName(cfg.Regulation)
	eligibility := service.NewEligibilityService(service.EligibilityConfig{
		Logger:                   logger,
		Airports:                 registry,
		Distances:                calculator,
		FlightStatus:             flightStatus,
		Engine:                   compensation.NewEngine(regulation),
		JurisdictionAirlineCodes: cfg.JurisdictionAirlineCodes,
		Clock:                    time.Now,
	})

	var rateLimiter *ratelimit.Limiter
	if cfg.RateLimitEnabled {
		rateLimiter = ratelimit.NewLimiter(cfg, logger)
	}

	// Initialize HTTP handlers
	handlers := api.NewHandlers(api.HandlerConfig{
		Logger:             logger,
		EligibilityService: eligibility,
		FlightStatus:       flightStatus,
		Airports:           registry,
		Distances:          calculator,
		RateLimiter:        rateLimiter,
	})

	router := handlers.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.WithFields(logrus.Fields{
		"port":         cfg.Port,
		"regulation":   regulation.Name,
		"airports":     registry.Len(),
		"providers":    len(providers),
		"live_lookups": config.LiveLookupsEnabled(firstAPIKey(cfg)),
		"cache_ttl":    cfg.StatusCacheTTL.String(),
	}).Info("Starting flight compensation service")

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	shutdownCtx, stop := platform.NewShutdownContext(context.Background())
	defer stop()
	<-shutdownCtx.Done()

	logger.Info("Shutting down server...")

	if rateLimiter != nil {
		rateLimiter.Stop()
	}

	if err := platform.Drain(server, platform.DefaultDrainTimeout); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func firstAPIKey(cfg *config.Config) string {
	for _, provider := range cfg.FlightStatusProviders {
		if provider.Enabled {
			return provider.APIKey
		}
	}
	return ""
}
