// Package airports holds the static airport reference table and the
// jurisdiction airport set used for domestic-flight detection.
package airports

import (
	"strings"

	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

const (
	// MinSearchLength is the shortest query Search answers
	MinSearchLength = 2
	// MaxSearchResults caps the number of airports Search returns
	MaxSearchResults = 10
)

// Registry is a read-only airport table. It is safe for concurrent use
// because nothing mutates it after construction.
type Registry struct {
	airports []models.Airport
	byCode   map[string]int
	domestic map[string]struct{}
}

// NewRegistry builds a registry from airports. Codes are upper-cased and
// the first occurrence of a duplicate code wins. When domesticCodes is
// empty every airport in DefaultDomesticCountry is treated as domestic.
func NewRegistry(airports []models.Airport, domesticCodes []string) *Registry {
	registry := &Registry{
		airports: make([]models.Airport, 0, len(airports)),
		byCode:   make(map[string]int, len(airports)),
		domestic: make(map[string]struct{}),
	}

	for _, airport := range airports {
		airport.Code = normalizeCode(airport.Code)
		if airport.Code == "" {
			continue
		}
		if _, exists := registry.byCode[airport.Code]; exists {
			continue
		}
		registry.byCode[airport.Code] = len(registry.airports)
		registry.airports = append(registry.airports, airport)
	}

	if len(domesticCodes) == 0 {
		for _, airport := range registry.airports {
			if strings.EqualFold(airport.CountryCode, DefaultDomesticCountry) {
				registry.domestic[airport.Code] = struct{}{}
			}
		}
	} else {
		for _, code := range domesticCodes {
			if code = normalizeCode(code); code != "" {
				registry.domestic[code] = struct{}{}
			}
		}
	}

	return registry
}

// Default builds a registry from the built-in airport table
func Default(domesticCodes []string) *Registry {
	return NewRegistry(builtinAirports, domesticCodes)
}

// Search returns airports whose code, name, city or country contains query,
// ignoring case. Queries shorter than MinSearchLength return nothing.
func (r *Registry) Search(query string) []models.Airport {
	needle := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(needle)) < MinSearchLength {
		return []models.Airport{}
	}

	results := make([]models.Airport, 0, MaxSearchResults)
	for _, airport := range r.airports {
		if matches(airport, needle) {
			results = append(results, airport)
			if len(results) == MaxSearchResults {
				break
			}
		}
	}
	return results
}

// ByCode looks up an airport by IATA code, ignoring case
func (r *Registry) ByCode(code string) (models.Airport, bool) {
	index, ok := r.byCode[normalizeCode(code)]
	if !ok {
		return models.Airport{}, false
	}
	return r.airports[index], true
}

// IsDomestic reports whether code belongs to the domestic jurisdiction set
func (r *Registry) IsDomestic(code string) bool {
	_, ok := r.domestic[normalizeCode(code)]
	return ok
}

// IsDomesticPair reports whether both airports are in the domestic set
func (r *Registry) IsDomesticPair(departureCode, arrivalCode string) bool {
	return r.IsDomestic(departureCode) && r.IsDomestic(arrivalCode)
}

// All returns a copy of every airport in registry order
func (r *Registry) All() []models.Airport {
	return append([]models.Airport(nil), r.airports...)
}

// Len returns the number of airports
func (r *Registry) Len() int {
	return len(r.airports)
}

func matches(airport models.Airport, needle string) bool {
	return strings.Contains(strings.ToLower(airport.Code), needle) ||
		strings.Contains(strings.ToLower(airport.Name), needle) ||
		strings.Contains(strings.ToLower(airport.City), needle) ||
		strings.Contains(strings.ToLower(airport.Country), needle)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
