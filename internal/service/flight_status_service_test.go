package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalfonso89/flight-compensation-service/internal/config"
	"github.com/dalfonso89/flight-compensation-service/internal/models"
	"github.com/dalfonso89/flight-compensation-service/internal/testutils"
)

func newTestFlightStatusService(cfg *config.Config, clock *testutils.FakeClock) *FlightStatusService {
	logger := testutils.MockLogger()
	factory := NewProviderFactory(cfg, logger, clock.Now)
	return NewFlightStatusService(factory.CreateProviders(), NewStatusCache(cfg.StatusCacheTTL, clock.Now), clock.Now, logger)
}

func TestFlightStatusService_LiveHitIsCached(t *testing.T) {
	server := testutils.NewMockAviationServer()
	defer server.Close()
	delay := 240
	server.RespondFlights(testutils.FlightRow("2024-06-15", "landed", "IST", "LHR", &delay))

	service := newTestFlightStatusService(testutils.MockConfigWithServer(server.URL()), testutils.NewFakeClock(testutils.FixedNow))

	first, err := service.GetStatus(context.Background(), "tk 1", "")
	require.NoError(t, err)
	assert.Equal(t, models.SourceLive, first.Source)
	assert.Equal(t, 240, EffectiveDelayMinutes(first))

	second, err := service.GetStatus(context.Background(), "TK1", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, server.Calls())
	assert.Equal(t, int64(1), service.CacheHits())
}

func TestFlightStatusService_DemoKeyUsesSynthetic(t *testing.T) {
	server := testutils.NewMockAviationServer()
	defer server.Close()

	cfg := testutils.MockConfigWithServer(server.URL())
	for i := range cfg.FlightStatusProviders {
		cfg.FlightStatusProviders[i].APIKey = config.DemoAPIKey
	}
	service := newTestFlightStatusService(cfg, testutils.NewFakeClock(testutils.FixedNow))

	first, err := service.GetStatus(context.Background(), "PC2010", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, models.SourceSynthetic, first.Source)
	assert.Equal(t, "Pegasus Airlines", first.AirlineName)

	second, err := service.GetStatus(context.Background(), "PC2010", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, first, second, "synthetic result must be stable within the TTL")
	assert.Zero(t, server.Calls())
}

// historicalServer answers live queries with no data and historical
// queries with a landed flight.
func historicalServer(t *testing.T, liveCalls, historicalCalls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		var data []map[string]interface{}
		if query.Get("flight_iata") != "" {
			historicalCalls.Add(1)
			delay := 200
			data = append(data, testutils.FlightRow(query.Get("flight_date"), "landed", "IST", "AMS", &delay))
		} else {
			liveCalls.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
}

func TestFlightStatusService_PastDateFallsBackToHistorical(t *testing.T) {
	var liveCalls, historicalCalls atomic.Int64
	server := historicalServer(t, &liveCalls, &historicalCalls)
	defer server.Close()

	service := newTestFlightStatusService(testutils.MockConfigWithServer(server.URL), testutils.NewFakeClock(testutils.FixedNow))

	record, err := service.GetStatus(context.Background(), "TK1", "2024-06-01")
	require.NoError(t, err)

	assert.Equal(t, models.SourceLive, record.Source)
	assert.Equal(t, "2024-06-01", record.FlightDate)
	assert.Equal(t, 200, EffectiveDelayMinutes(record))
	assert.Equal(t, int64(1), liveCalls.Load())
	assert.Equal(t, int64(1), historicalCalls.Load())

	statuses := service.GetProviderStatus()
	require.Len(t, statuses, 3)
	assert.Equal(t, "aviationstack", statuses[0].Name)
	assert.Equal(t, int64(1), statuses[0].Misses)
	assert.Equal(t, "aviationstack-historical", statuses[1].Name)
	assert.Equal(t, int64(1), statuses[1].Hits)
	assert.Equal(t, "synthetic", statuses[2].Name)
	assert.Zero(t, statuses[2].Hits)
}

func TestFlightStatusService_TodaySkipsHistorical(t *testing.T) {
	var liveCalls, historicalCalls atomic.Int64
	server := historicalServer(t, &liveCalls, &historicalCalls)
	defer server.Close()

	service := newTestFlightStatusService(testutils.MockConfigWithServer(server.URL), testutils.NewFakeClock(testutils.FixedNow))

	record, err := service.GetStatus(context.Background(), "TK1", "2024-06-15")
	require.NoError(t, err)

	assert.Equal(t, models.SourceSynthetic, record.Source)
	assert.Equal(t, int64(1), liveCalls.Load())
	assert.Zero(t, historicalCalls.Load())
}

func TestFlightStatusService_APIErrorFallsThroughToSynthetic(t *testing.T) {
	server := testutils.NewMockAviationServer()
	defer server.Close()
	server.Respond(http.StatusInternalServerError, `{"error":{"code":"internal"}}`)

	service := newTestFlightStatusService(testutils.MockConfigWithServer(server.URL()), testutils.NewFakeClock(testutils.FixedNow))

	record, err := service.GetStatus(context.Background(), "TK1", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, models.SourceSynthetic, record.Source)
}

func TestFlightStatusService_ExpiredEntryIsRefetched(t *testing.T) {
	server := testutils.NewMockAviationServer()
	defer server.Close()
	server.RespondFlights(testutils.FlightRow("2024-06-15", "landed", "IST", "LHR", nil))

	clock := testutils.NewFakeClock(testutils.FixedNow)
	service := newTestFlightStatusService(testutils.MockConfigWithServer(server.URL()), clock)

	_, err := service.GetStatus(context.Background(), "TK1", "2024-06-15")
	require.NoError(t, err)
	clock.Advance(4 * time.Minute)
	_, err = service.GetStatus(context.Background(), "TK1", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 1, server.Calls())

	clock.Advance(2 * time.Minute)
	_, err = service.GetStatus(context.Background(), "TK1", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2, server.Calls())
}

func TestFlightStatusService_CancelledContext(t *testing.T) {
	server := testutils.NewMockAviationServer()
	defer server.Close()

	service := newTestFlightStatusService(testutils.MockConfigWithServer(server.URL()), testutils.NewFakeClock(testutils.FixedNow))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.GetStatus(ctx, "TK1", "2024-06-15")
	require.Error(t, err)
	var serviceError *ServiceError
	require.True(t, errors.As(err, &serviceError))
	assert.Equal(t, ErrorTypeContextCancelled, serviceError.Type)
	assert.Zero(t, server.Calls())
}

func TestFlightStatusService_ConcurrentLookupsShareOneRequest(t *testing.T) {
	server := testutils.NewMockAviationServer()
	defer server.Close()
	server.RespondFlights(testutils.FlightRow("2024-06-15", "landed", "IST", "LHR", nil))
	server.SetDelay(100 * time.Millisecond)

	service := newTestFlightStatusService(testutils.MockConfigWithServer(server.URL()), testutils.NewFakeClock(testutils.FixedNow))

	const callers = 10
	var wg sync.WaitGroup
	records := make([]models.FlightStatusRecord, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			records[i], errs[i] = service.GetStatus(context.Background(), "TK1", "2024-06-15")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, records[0], records[i])
	}
	assert.Equal(t, 1, server.Calls())
}

func TestFlightStatusService_CallerCancellationDoesNotAffectSharedLookup(t *testing.T) {
	server := testutils.NewMockAviationServer()
	defer server.Close()
	server.RespondFlights(testutils.FlightRow("2024-06-15", "landed", "IST", "LHR", nil))
	server.SetDelay(300 * time.Millisecond)

	service := newTestFlightStatusService(testutils.MockConfigWithServer(server.URL()), testutils.NewFakeClock(testutils.FixedNow))

	leavingContext, cancel := testutils.MockContextWithTimeout(50 * time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	var leavingErr, stayingErr error
	var stayingRecord models.FlightStatusRecord

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, leavingErr = service.GetStatus(leavingContext, "TK1", "2024-06-15")
	}()
	go func() {
		defer wg.Done()
		time.Sleep(20 * time.Millisecond)
		stayingRecord, stayingErr = service.GetStatus(context.Background(), "TK1", "2024-06-15")
	}()
	wg.Wait()

	require.Error(t, leavingErr)
	assert.True(t, IsContextCancelled(leavingErr))

	require.NoError(t, stayingErr)
	assert.Equal(t, models.SourceLive, stayingRecord.Source)
	assert.Equal(t, 1, server.Calls())

	// The abandoned fetch still fills the cache
	record, err := service.GetStatus(context.Background(), "TK1", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, stayingRecord, record)
	assert.Equal(t, 1, server.Calls())
}

func TestStatusQuery_IsPast(t *testing.T) {
	assert.True(t, StatusQuery{Date: "2024-06-14", Today: "2024-06-15"}.IsPast())
	assert.False(t, StatusQuery{Date: "2024-06-15", Today: "2024-06-15"}.IsPast())
	assert.False(t, StatusQuery{Date: "", Today: "2024-06-15"}.IsPast())
}
