package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dalfonso89/flight-compensation-service/internal/airports"
	"github.com/dalfonso89/flight-compensation-service/internal/compensation"
	"github.com/dalfonso89/flight-compensation-service/internal/distance"
	"github.com/dalfonso89/flight-compensation-service/internal/logger"
	"github.com/dalfonso89/flight-compensation-service/internal/middleware"
	"github.com/dalfonso89/flight-compensation-service/internal/models"
	"github.com/dalfonso89/flight-compensation-service/internal/ratelimit"
	"github.com/dalfonso89/flight-compensation-service/internal/service"
)

const version = "1.0.0"

// statusClientClosedRequest is logged when the caller went away mid-request
const statusClientClosedRequest = 499

// HandlerConfig holds the dependencies of the HTTP handlers
type HandlerConfig struct {
	Logger             *logger.Logger
	EligibilityService *service.EligibilityService
	FlightStatus       *service.FlightStatusService
	Airports           *airports.Registry
	Distances          *distance.Calculator
	RateLimiter        *ratelimit.Limiter
}

// Handlers contains all HTTP handlers
type Handlers struct {
	logger       *logger.Logger
	eligibility  *service.EligibilityService
	flightStatus *service.FlightStatusService
	airports     *airports.Registry
	distances    *distance.Calculator
	rateLimiter  *ratelimit.Limiter
	startTime    time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(handlerConfig HandlerConfig) *Handlers {
	return &Handlers{
		logger:       handlerConfig.Logger,
		eligibility:  handlerConfig.EligibilityService,
		flightStatus: handlerConfig.FlightStatus,
		airports:     handlerConfig.Airports,
		distances:    handlerConfig.Distances,
		rateLimiter:  handlerConfig.RateLimiter,
		startTime:    time.Now(),
	}
}

// SetupRoutes configures all the routes using Gin
func (handlers *Handlers) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(handlers.logger))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(handlers.corsMiddleware())

	if handlers.rateLimiter != nil {
		router.Use(handlers.rateLimitMiddleware())
	}

	router.GET("/health", handlers.HealthCheck)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/eligibility", handlers.CheckEligibility)
		apiV1.GET("/eligibility", handlers.CheckEligibilityQuery)
		apiV1.POST("/compensation/evaluate", handlers.EvaluateCompensation)

		apiV1.GET("/airports", handlers.SearchAirports)
		apiV1.GET("/airports/:code", handlers.GetAirport)
		apiV1.GET("/distance", handlers.GetDistance)

		apiV1.GET("/providers", handlers.GetProviders)
	}

	return router
}

// HealthCheck handles health check requests. The service degrades to
// synthetic data instead of failing, so it is healthy while it serves.
func (handlers *Handlers) HealthCheck(context *gin.Context) {
	healthCheckResponse := models.HealthCheck{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(handlers.startTime).String(),
	}

	context.JSON(http.StatusOK, healthCheckResponse)
}

// CheckEligibility evaluates a JSON eligibility request
func (handlers *Handlers) CheckEligibility(context *gin.Context) {
	var request models.EligibilityRequest
	if bindError := context.ShouldBindJSON(&request); bindError != nil {
		handlers.writeErrorResponse(context, http.StatusBadRequest, "invalid request body", bindError.Error())
		return
	}
	handlers.respondEligibility(context, request)
}

// CheckEligibilityQuery evaluates an eligibility request given as query parameters
func (handlers *Handlers) CheckEligibilityQuery(context *gin.Context) {
	var request models.EligibilityRequest
	if bindError := context.ShouldBindQuery(&request); bindError != nil {
		handlers.writeErrorResponse(context, http.StatusBadRequest, "invalid query parameters", bindError.Error())
		return
	}
	handlers.respondEligibility(context, request)
}

func (handlers *Handlers) respondEligibility(context *gin.Context, request models.EligibilityRequest) {
	response, checkError := handlers.eligibility.CheckEligibility(context.Request.Context(), request)
	switch {
	case checkError == nil:
		context.JSON(http.StatusOK, response)
	case service.IsValidationError(checkError):
		handlers.writeErrorResponse(context, http.StatusBadRequest, "invalid eligibility request", checkError.Error())
	case service.IsContextCancelled(checkError):
		handlers.logger.Component("api").WithField("flight", request.FlightNumber).Info("Client cancelled eligibility check")
		context.AbortWithStatus(statusClientClosedRequest)
	default:
		handlers.logger.Component("api").Errorf("Eligibility check failed: %v", checkError)
		handlers.writeErrorResponse(context, http.StatusInternalServerError, "eligibility check failed", checkError.Error())
	}
}

// EvaluateCompensation runs the rules engine on caller-supplied inputs
func (handlers *Handlers) EvaluateCompensation(context *gin.Context) {
	var input compensation.Input
	if bindError := context.ShouldBindJSON(&input); bindError != nil {
		handlers.writeErrorResponse(context, http.StatusBadRequest, "invalid request body", bindError.Error())
		return
	}
	if input.DistanceKm < 0 {
		handlers.writeErrorResponse(context, http.StatusBadRequest, "invalid request body", "distanceKm must not be negative")
		return
	}

	context.JSON(http.StatusOK, handlers.eligibility.Evaluate(input))
}

// SearchAirports returns airports matching the q parameter, or every
// airport when q is absent
func (handlers *Handlers) SearchAirports(context *gin.Context) {
	query, present := context.GetQuery("q")

	var results []models.Airport
	if present {
		results = handlers.airports.Search(query)
	} else {
		results = handlers.airports.All()
	}

	context.JSON(http.StatusOK, models.APIResponse{
		Data:   results,
		Count:  len(results),
		Status: http.StatusOK,
	})
}

// GetAirport returns one airport by IATA code
func (handlers *Handlers) GetAirport(context *gin.Context) {
	code := strings.ToUpper(context.Param("code"))

	airport, found := handlers.airports.ByCode(code)
	if !found {
		handlers.writeErrorResponse(context, http.StatusNotFound, "airport not found", "unknown airport code "+code)
		return
	}

	context.JSON(http.StatusOK, models.APIResponse{
		Data:   airport,
		Status: http.StatusOK,
	})
}

// GetDistance returns the great-circle distance between from and to
func (handlers *Handlers) GetDistance(context *gin.Context) {
	from := strings.ToUpper(strings.TrimSpace(context.Query("from")))
	to := strings.ToUpper(strings.TrimSpace(context.Query("to")))
	if from == "" || to == "" {
		handlers.writeErrorResponse(context, http.StatusBadRequest, "missing airport codes", "both from and to are required")
		return
	}

	result, found := handlers.distances.FlightDistance(from, to)
	if !found {
		handlers.writeErrorResponse(context, http.StatusNotFound, "airport not found", "unknown airport code in "+from+"-"+to)
		return
	}

	departure, _ := handlers.airports.ByCode(from)
	arrival, _ := handlers.airports.ByCode(to)
	context.JSON(http.StatusOK, models.DistanceResponse{
		From:     models.AirportSummary{Code: departure.Code, City: departure.City, Name: departure.Name},
		To:       models.AirportSummary{Code: arrival.Code, City: arrival.City, Name: arrival.Name},
		Distance: result,
	})
}

// GetProviders reports the flight status provider chain
func (handlers *Handlers) GetProviders(context *gin.Context) {
	statuses := handlers.flightStatus.GetProviderStatus()

	context.JSON(http.StatusOK, gin.H{
		"providers": statuses,
		"cacheHits": handlers.flightStatus.CacheHits(),
	})
}

// writeErrorResponse writes an error response using Gin context
func (handlers *Handlers) writeErrorResponse(context *gin.Context, statusCode int, errorMessage, errorDetails string) {
	errorResponse := models.ErrorResponse{
		Error:   errorMessage,
		Message: errorDetails,
		Code:    statusCode,
	}

	context.AbortWithStatusJSON(statusCode, errorResponse)
}

// corsMiddleware adds CORS headers using Gin middleware
func (handlers *Handlers) corsMiddleware() gin.HandlerFunc {
	return func(context *gin.Context) {
		context.Header("Access-Control-Allow-Origin", "*")
		context.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		context.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if context.Request.Method == http.MethodOptions {
			context.AbortWithStatus(http.StatusOK)
			return
		}

		context.Next()
	}
}

// rateLimitMiddleware provides rate limiting using Gin middleware
func (handlers *Handlers) rateLimitMiddleware() gin.HandlerFunc {
	return func(context *gin.Context) {
		clientIP := handlers.rateLimiter.GetClientIP(context.Request)

		if !handlers.rateLimiter.Allow(clientIP) {
			handlers.logger.Component("api").WithFields(logrus.Fields{
				"client_ip": clientIP,
				"path":      context.Request.URL.Path,
			}).Warn("Rate limit exceeded")
			context.Header("X-RateLimit-Limit", strconv.Itoa(handlers.rateLimiter.Configuration.RateLimitRequests))
			context.Header("X-RateLimit-Remaining", "0")
			context.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(handlers.rateLimiter.Configuration.RateLimitWindow).Unix(), 10))
			handlers.writeErrorResponse(context, http.StatusTooManyRequests, "rate limit exceeded", "retry after the rate limit window")
			return
		}

		context.Next()
	}
}
