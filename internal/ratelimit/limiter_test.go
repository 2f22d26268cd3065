package ratelimit

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dalfonso89/flight-compensation-service/internal/testutils"
)

func TestNewLimiter(t *testing.T) {
	cfg := testutils.MockConfig()
	logger := testutils.MockLogger()

	limiter := NewLimiter(cfg, logger)
	defer limiter.Stop()

	if limiter.Configuration != cfg {
		t.Errorf("NewLimiter() configuration = %v, want %v", limiter.Configuration, cfg)
	}
	if limiter.burst != cfg.RateLimitBurst {
		t.Errorf("NewLimiter() burst = %d, want %d", limiter.burst, cfg.RateLimitBurst)
	}
	expectedLimit := float64(cfg.RateLimitRequests) / cfg.RateLimitWindow.Seconds()
	if float64(limiter.limit) != expectedLimit {
		t.Errorf("NewLimiter() limit = %v, want %v", limiter.limit, expectedLimit)
	}
}

func TestLimiter_Allow(t *testing.T) {
	tests := []struct {
		name             string
		rateLimitEnabled bool
		requests         int
		expected         []bool
	}{
		{
			name:             "rate limiting disabled",
			rateLimitEnabled: false,
			requests:         5,
			expected:         []bool{true, true, true, true, true},
		},
		{
			name:             "rate limiting enabled - within limit",
			rateLimitEnabled: true,
			requests:         3,
			expected:         []bool{true, true, true},
		},
		{
			name:             "rate limiting enabled - exceed limit",
			rateLimitEnabled: true,
			requests:         12, // More than burst limit (10)
			expected:         []bool{true, true, true, true, true, true, true, true, true, true, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutils.MockConfig()
			cfg.RateLimitEnabled = tt.rateLimitEnabled
			cfg.RateLimitBurst = 10
			cfg.RateLimitRequests = 100
			cfg.RateLimitWindow = 60 * time.Second

			limiter := NewLimiter(cfg, testutils.MockLogger())
			defer limiter.Stop()

			for i := 0; i < tt.requests; i++ {
				if result := limiter.Allow("192.168.1.1"); result != tt.expected[i] {
					t.Errorf("Allow() request %d = %v, want %v", i, result, tt.expected[i])
				}
			}
		})
	}
}

func TestLimiter_Allow_DifferentIPs(t *testing.T) {
	cfg := testutils.MockConfig()
	cfg.RateLimitBurst = 5

	limiter := NewLimiter(cfg, testutils.MockLogger())
	defer limiter.Stop()

	ip1 := "192.168.1.1"
	ip2 := "192.168.1.2"

	for i := 0; i < 5; i++ {
		if !limiter.Allow(ip1) {
			t.Errorf("Allow() IP1 request %d = false, want true", i)
		}
		if !limiter.Allow(ip2) {
			t.Errorf("Allow() IP2 request %d = false, want true", i)
		}
	}

	if limiter.Allow(ip1) {
		t.Errorf("Allow() IP1 after burst = true, want false")
	}
	if limiter.Allow(ip2) {
		t.Errorf("Allow() IP2 after burst = true, want false")
	}
	if limiter.Clients() != 2 {
		t.Errorf("Clients() = %d, want 2", limiter.Clients())
	}
}

func TestLimiter_Refill(t *testing.T) {
	cfg := testutils.MockConfig()
	cfg.RateLimitBurst = 1
	cfg.RateLimitRequests = 20
	cfg.RateLimitWindow = time.Second

	limiter := NewLimiter(cfg, testutils.MockLogger())
	defer limiter.Stop()

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("first request rejected")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("second request allowed before refill")
	}
	time.Sleep(100 * time.Millisecond)
	if !limiter.Allow("10.0.0.1") {
		t.Error("request rejected after refill interval")
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(testutils.MockConfig(), testutils.MockLogger())
	defer limiter.Stop()

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")

	if evicted := limiter.evictIdle(time.Now()); evicted != 0 {
		t.Errorf("evictIdle() now = %d, want 0", evicted)
	}
	if evicted := limiter.evictIdle(time.Now().Add(idleClientTTL + time.Minute)); evicted != 2 {
		t.Errorf("evictIdle() after TTL = %d, want 2", evicted)
	}
	if limiter.Clients() != 0 {
		t.Errorf("Clients() = %d, want 0", limiter.Clients())
	}
}

func TestLimiter_GetClientIP(t *testing.T) {
	limiter := NewLimiter(testutils.MockConfig(), testutils.MockLogger())
	defer limiter.Stop()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "X-Forwarded-For header",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.195"},
			remoteAddr: "192.168.1.1:12345",
			expected:   "203.0.113.195",
		},
		{
			name:       "X-Forwarded-For chain",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18, 150.172.238.178"},
			remoteAddr: "192.168.1.1:12345",
			expected:   "203.0.113.195",
		},
		{
			name:       "X-Real-IP header",
			headers:    map[string]string{"X-Real-IP": "203.0.113.195"},
			remoteAddr: "192.168.1.1:12345",
			expected:   "203.0.113.195",
		},
		{
			name:       "RemoteAddr fallback",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.1:12345",
			expected:   "192.168.1.1",
		},
		{
			name:       "X-Forwarded-For with port",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.195:8080"},
			remoteAddr: "192.168.1.1:12345",
			expected:   "203.0.113.195",
		},
		{
			name:       "Invalid X-Forwarded-For falls back to RemoteAddr",
			headers:    map[string]string{"X-Forwarded-For": "invalid-ip"},
			remoteAddr: "192.168.1.1:12345",
			expected:   "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/health", nil)
			req.RemoteAddr = tt.remoteAddr
			for header, value := range tt.headers {
				req.Header.Set(header, value)
			}

			if result := limiter.GetClientIP(req); result != tt.expected {
				t.Errorf("GetClientIP() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLimiter_ConcurrentAllow(t *testing.T) {
	cfg := testutils.MockConfig()
	cfg.RateLimitBurst = 50
	cfg.RateLimitRequests = 1
	cfg.RateLimitWindow = time.Hour

	limiter := NewLimiter(cfg, testutils.MockLogger())
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("10.0.0.9") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("allowed = %d, want 50", allowed)
	}
}

func TestLimiter_Stop(t *testing.T) {
	limiter := NewLimiter(testutils.MockConfig(), testutils.MockLogger())

	limiter.Stop()
	limiter.Stop()
}
