package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dalfonso89/flight-compensation-service/internal/config"
	"github.com/dalfonso89/flight-compensation-service/internal/logger"
)

const (
	cleanupInterval = 5 * time.Minute
	idleClientTTL   = 30 * time.Minute
)

// Limiter applies a token bucket per client IP
type Limiter struct {
	Configuration *config.Config
	logger        *logger.Logger

	limit rate.Limit
	burst int

	// Map of IP -> client bucket
	clients      map[string]*client
	clientsMutex sync.Mutex

	// Cleanup goroutine control
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	stopOnce      sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a new rate limiter. RateLimitRequests tokens are
// refilled every RateLimitWindow, up to RateLimitBurst.
func NewLimiter(configuration *config.Config, logger *logger.Logger) *Limiter {
	window := configuration.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	burst := configuration.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}

	rateLimiter := &Limiter{
		Configuration: configuration,
		logger:        logger,
		limit:         rate.Limit(float64(configuration.RateLimitRequests) / window.Seconds()),
		burst:         burst,
		clients:       make(map[string]*client),
		cleanupTicker: time.NewTicker(cleanupInterval),
		stopCleanup:   make(chan struct{}),
	}

	go rateLimiter.cleanup()

	return rateLimiter
}

// Allow checks if a request from the given IP is allowed
func (rateLimiter *Limiter) Allow(clientIP string) bool {
	if !rateLimiter.Configuration.RateLimitEnabled {
		return true
	}

	now := time.Now()

	rateLimiter.clientsMutex.Lock()
	entry, exists := rateLimiter.clients[clientIP]
	if !exists {
		entry = &client{limiter: rate.NewLimiter(rateLimiter.limit, rateLimiter.burst)}
		rateLimiter.clients[clientIP] = entry
	}
	entry.lastSeen = now
	rateLimiter.clientsMutex.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// Clients returns the number of tracked client IPs
func (rateLimiter *Limiter) Clients() int {
	rateLimiter.clientsMutex.Lock()
	defer rateLimiter.clientsMutex.Unlock()
	return len(rateLimiter.clients)
}

// GetClientIP extracts the real client IP from the request
func (rateLimiter *Limiter) GetClientIP(request *http.Request) string {
	// X-Forwarded-For may carry a chain; the first entry is the client
	if xForwardedFor := request.Header.Get("X-Forwarded-For"); xForwardedFor != "" {
		first := strings.TrimSpace(strings.Split(xForwardedFor, ",")[0])
		if clientIP := net.ParseIP(first); clientIP != nil {
			return clientIP.String()
		}
		if host, _, err := net.SplitHostPort(first); err == nil {
			if clientIP := net.ParseIP(host); clientIP != nil {
				return clientIP.String()
			}
		}
	}

	if xRealIP := request.Header.Get("X-Real-IP"); xRealIP != "" {
		if clientIP := net.ParseIP(strings.TrimSpace(xRealIP)); clientIP != nil {
			return clientIP.String()
		}
	}

	clientIP, _, parseError := net.SplitHostPort(request.RemoteAddr)
	if parseError != nil {
		return request.RemoteAddr
	}
	return clientIP
}

// cleanup drops clients that have been idle for a while
func (rateLimiter *Limiter) cleanup() {
	for {
		select {
		case <-rateLimiter.cleanupTicker.C:
			rateLimiter.evictIdle(time.Now())
		case <-rateLimiter.stopCleanup:
			rateLimiter.cleanupTicker.Stop()
			return
		}
	}
}

func (rateLimiter *Limiter) evictIdle(now time.Time) int {
	rateLimiter.clientsMutex.Lock()
	defer rateLimiter.clientsMutex.Unlock()

	evicted := 0
	for clientIP, entry := range rateLimiter.clients {
		if now.Sub(entry.lastSeen) > idleClientTTL {
			delete(rateLimiter.clients, clientIP)
			evicted++
		}
	}
	if evicted > 0 {
		rateLimiter.logger.Component("ratelimit").Debugf("Evicted %d idle clients", evicted)
	}
	return evicted
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (rateLimiter *Limiter) Stop() {
	rateLimiter.stopOnce.Do(func() {
		close(rateLimiter.stopCleanup)
	})
}
