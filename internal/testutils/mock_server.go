package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// MockAviationServer is an httptest server standing in for the aviationstack
// /flights endpoint. It records every query it receives.
type MockAviationServer struct {
	server *httptest.Server
	calls  atomic.Int64

	mutex      sync.Mutex
	statusCode int
	body       string
	delay      time.Duration
	queries    []url.Values
}

// NewMockAviationServer creates a server answering with an empty data set
func NewMockAviationServer() *MockAviationServer {
	mock := &MockAviationServer{
		statusCode: http.StatusOK,
		body:       `{"pagination":{"limit":100,"offset":0,"count":0,"total":0},"data":[]}`,
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handler))
	return mock
}

// URL returns the server base URL
func (m *MockAviationServer) URL() string {
	return m.server.URL
}

// Close shuts the server down
func (m *MockAviationServer) Close() {
	m.server.Close()
}

// Calls returns the number of requests served
func (m *MockAviationServer) Calls() int {
	return int(m.calls.Load())
}

// Queries returns the query parameters of every request
func (m *MockAviationServer) Queries() []url.Values {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]url.Values(nil), m.queries...)
}

// Respond sets the status code and raw body of subsequent responses
func (m *MockAviationServer) Respond(statusCode int, body string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.statusCode = statusCode
	m.body = body
}

// RespondFlights answers with the given flights as the data array
func (m *MockAviationServer) RespondFlights(flights ...map[string]interface{}) {
	payload := map[string]interface{}{
		"pagination": map[string]int{"limit": 100, "offset": 0, "count": len(flights), "total": len(flights)},
		"data":       flights,
	}
	body, _ := json.Marshal(payload)
	m.Respond(http.StatusOK, string(body))
}

// SetDelay makes the server wait before answering
func (m *MockAviationServer) SetDelay(delay time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.delay = delay
}

func (m *MockAviationServer) handler(w http.ResponseWriter, r *http.Request) {
	m.calls.Add(1)

	m.mutex.Lock()
	m.queries = append(m.queries, r.URL.Query())
	statusCode, body, delay := m.statusCode, m.body, m.delay
	m.mutex.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if r.URL.Path != "/flights" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	fmt.Fprint(w, body)
}

// FlightRow builds one aviationstack data row
func FlightRow(date, status, depIATA, arrIATA string, arrivalDelay *int) map[string]interface{} {
	departure := map[string]interface{}{
		"airport":   depIATA + " Airport",
		"iata":      depIATA,
		"scheduled": date + "T09:00:00+00:00",
		"actual":    date + "T09:10:00+00:00",
		"delay":     10,
	}
	arrival := map[string]interface{}{
		"airport":   arrIATA + " Airport",
		"iata":      arrIATA,
		"scheduled": date + "T13:00:00+00:00",
	}
	if arrivalDelay != nil {
		arrival["delay"] = *arrivalDelay
	}
	if status == "cancelled" {
		delete(departure, "actual")
		delete(departure, "delay")
	}
	return map[string]interface{}{
		"flight_date":   date,
		"flight_status": status,
		"departure":     departure,
		"arrival":       arrival,
		"airline":       map[string]string{"name": "Turkish Airlines", "iata": "TK"},
		"flight":        map[string]string{"number": "1", "iata": "TK1"},
	}
}
