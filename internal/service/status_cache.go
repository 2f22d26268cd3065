package service

import (
	"strings"
	"sync"
	"time"

	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

// DefaultStatusCacheTTL is how long a flight status record stays fresh
const DefaultStatusCacheTTL = 5 * time.Minute

// StatusCache holds flight status records keyed by flight number and date.
// Expired entries are dropped when read; there is no background sweep.
type StatusCache struct {
	ttl   time.Duration
	clock Clock

	mutex   sync.RWMutex
	entries map[string]models.CacheEntry
}

// NewStatusCache creates a cache with the given TTL and clock
func NewStatusCache(ttl time.Duration, clock Clock) *StatusCache {
	if ttl <= 0 {
		ttl = DefaultStatusCacheTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &StatusCache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]models.CacheEntry),
	}
}

// CacheKey builds the key for a flight number and date
func CacheKey(flightNumber, date string) string {
	return strings.ToUpper(strings.TrimSpace(flightNumber)) + "|" + date
}

// Get returns the cached record when it is younger than the TTL
func (cache *StatusCache) Get(flightNumber, date string) (models.FlightStatusRecord, bool) {
	key := CacheKey(flightNumber, date)

	cache.mutex.RLock()
	entry, ok := cache.entries[key]
	cache.mutex.RUnlock()
	if !ok {
		return models.FlightStatusRecord{}, false
	}

	if cache.clock().Sub(entry.StoredAt) < cache.ttl {
		return entry.Data, true
	}

	cache.mutex.Lock()
	// Another writer may have refreshed the entry in between
	if current, exists := cache.entries[key]; exists && current.StoredAt.Equal(entry.StoredAt) {
		delete(cache.entries, key)
	}
	cache.mutex.Unlock()
	return models.FlightStatusRecord{}, false
}

// Set stores record, replacing any existing entry
func (cache *StatusCache) Set(flightNumber, date string, record models.FlightStatusRecord) {
	cache.mutex.Lock()
	cache.entries[CacheKey(flightNumber, date)] = models.CacheEntry{
		Data:     record,
		StoredAt: cache.clock(),
	}
	cache.mutex.Unlock()
}

// Len returns the number of stored entries, expired ones included
func (cache *StatusCache) Len() int {
	cache.mutex.RLock()
	defer cache.mutex.RUnlock()
	return len(cache.entries)
}
