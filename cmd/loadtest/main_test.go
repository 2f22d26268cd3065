package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRouteForRotates(t *testing.T) {
	seen := make(map[sampleRoute]bool)
	for i := 0; i < len(sampleRoutes); i++ {
		seen[routeFor(0, i)] = true
	}
	if len(seen) != len(sampleRoutes) {
		t.Errorf("routeFor covered %d routes, want %d", len(seen), len(sampleRoutes))
	}
	if routeFor(1, 0) != routeFor(0, 1) {
		t.Error("routeFor should offset by user")
	}
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		p        int
		expected time.Duration
	}{
		{50, 6},
		{95, 10},
		{99, 10},
		{0, 1},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); got != tt.expected {
			t.Errorf("percentile(%d) = %v, want %v", tt.p, got, tt.expected)
		}
	}
	if got := percentile(nil, 95); got != 0 {
		t.Errorf("percentile(nil) = %v, want 0", got)
	}
}

func TestRunLoadTest(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Method != http.MethodPost || r.Header.Get("X-Request-ID") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["flightNumber"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"verdict":{"eligible":true}}`))
	}))
	defer server.Close()

	summary := runLoadTest(LoadTestConfig{
		URL:             server.URL,
		ConcurrentUsers: 3,
		RequestsPerUser: 4,
		Timeout:         time.Second,
	})

	if summary.TotalRequests != 12 || requests.Load() != 12 {
		t.Fatalf("total = %d, served = %d, want 12", summary.TotalRequests, requests.Load())
	}
	if summary.SuccessfulRequests != 12 || summary.EligibleVerdicts != 12 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.MinResponseTime > summary.ResponseTime95th || summary.ResponseTime95th > summary.MaxResponseTime {
		t.Errorf("percentiles out of order: %+v", summary)
	}
}
