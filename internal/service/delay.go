package service

import (
	"strings"
	"time"
	"unicode"

	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

// CancelledDelaySentinel marks a cancelled flight in EffectiveDelayMinutes
const CancelledDelaySentinel = 999

// NormalizeFlightNumber upper-cases a flight number and drops spaces and dashes
func NormalizeFlightNumber(flightNumber string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return unicode.ToUpper(r)
	}, flightNumber)
}

// ParseFlightNumber splits a flight number such as "TK 0001" into the
// carrier code "TK" and the number "1".
func ParseFlightNumber(flightNumber string) (airline, number string, ok bool) {
	normalized := NormalizeFlightNumber(flightNumber)
	if len(normalized) < 3 {
		return "", "", false
	}

	airline, digits := normalized[:2], normalized[2:]
	for _, r := range airline {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", "", false
		}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}

	number = strings.TrimLeft(digits, "0")
	if number == "" {
		return "", "", false
	}
	return airline, number, true
}

// EffectiveDelayMinutes derives the delay used for eligibility. Cancelled
// flights return CancelledDelaySentinel. Otherwise the first positive value
// of reported arrival delay, reported departure delay, computed arrival
// delay and computed departure delay wins, else 0.
func EffectiveDelayMinutes(record models.FlightStatusRecord) int {
	if record.IsCancelled {
		return CancelledDelaySentinel
	}

	if record.ArrivalDelayMinutes != nil && *record.ArrivalDelayMinutes > 0 {
		return *record.ArrivalDelayMinutes
	}
	if record.DepartureDelayMinutes != nil && *record.DepartureDelayMinutes > 0 {
		return *record.DepartureDelayMinutes
	}
	if minutes := minutesLate(record.ScheduledArrival, record.ActualArrival); minutes > 0 {
		return minutes
	}
	if minutes := minutesLate(record.ScheduledDeparture, record.ActualDeparture); minutes > 0 {
		return minutes
	}
	return 0
}

func minutesLate(scheduled, actual *time.Time) int {
	if scheduled == nil || actual == nil {
		return 0
	}
	return int(actual.Sub(*scheduled) / time.Minute)
}
