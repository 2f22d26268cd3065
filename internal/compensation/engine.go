// Package compensation implements the EU 261/2004 and SHY-YOLCU passenger
// compensation rules as a pure classification function.
package compensation

import (
	"fmt"
	"math"

	"github.com/dalfonso89/flight-compensation-service/internal/models"
)

// DelayThresholdMinutes is the minimum arrival delay that qualifies
const DelayThresholdMinutes = 180

// Compensation amounts in EUR
const (
	AmountDomestic = 100
	AmountShort    = 250
	AmountMedium   = 400
	AmountLong     = 600

	ShortHaulMaxKm  = 1500
	MediumHaulMaxKm = 3500
)

var exemptionCategories = []string{
	"Adverse weather conditions",
	"Air traffic control strikes",
	"Security risks",
	"New safety directives",
	"Airport operational issues",
}

// ExemptionCategories returns the canonical extraordinary-circumstance categories
func ExemptionCategories() []string {
	return append([]string(nil), exemptionCategories...)
}

// Input holds everything the rules need to classify one disruption
type Input struct {
	DelayMinutes                int     `json:"delayMinutes"`
	DistanceKm                  float64 `json:"distanceKm"`
	IsCancelled                 bool    `json:"isCancelled"`
	IsDeniedBoarding            bool    `json:"isDeniedBoarding"`
	DepartureInJurisdiction     bool    `json:"departureInJurisdiction"`
	ArrivalInJurisdiction       bool    `json:"arrivalInJurisdiction"`
	AirlineInJurisdiction       bool    `json:"airlineInJurisdiction"`
	IsDomestic                  bool    `json:"isDomestic"`
	IsExtraordinaryCircumstance bool    `json:"isExtraordinaryCircumstance"`
}

// Engine evaluates inputs against one regulation. It holds no mutable state.
type Engine struct {
	regulation Regulation
}

// NewEngine creates an engine for regulation
func NewEngine(regulation Regulation) *Engine {
	return &Engine{regulation: regulation}
}

// Regulation returns the regulation the engine applies
func (e *Engine) Regulation() Regulation {
	return e.regulation
}

// Evaluate classifies input into a verdict. Identical inputs always produce
// identical verdicts.
func (e *Engine) Evaluate(input Input) models.CompensationVerdict {
	verdict := models.CompensationVerdict{
		RegulationName: e.regulation.Name,
		Exemptions:     []string{},
	}

	if input.IsExtraordinaryCircumstance {
		verdict.Reason = fmt.Sprintf(
			"The disruption was caused by extraordinary circumstances outside the airline's control, which are exempt from compensation under %s.",
			e.regulation.Name)
		verdict.Exemptions = ExemptionCategories()
		return verdict
	}

	if !inJurisdiction(input) {
		verdict.Reason = fmt.Sprintf(
			"This flight is not covered by %s: it must depart from a covered airport, or arrive at one on a covered airline.",
			e.regulation.Name)
		return verdict
	}

	if !input.IsDeniedBoarding && !input.IsCancelled && input.DelayMinutes < DelayThresholdMinutes {
		verdict.Reason = fmt.Sprintf(
			"A delay of %d minutes is below the %d minute (3 hour) threshold required for compensation under %s.",
			max(input.DelayMinutes, 0), DelayThresholdMinutes, e.regulation.Name)
		return verdict
	}

	verdict.Eligible = true
	verdict.AmountEUR = e.amount(input)
	verdict.Reason = eligibleReason(input, verdict.AmountEUR, e.regulation.Name)
	return verdict
}

// amount picks the first matching tier in ascending order. Tiers compare
// whole kilometers, the same value reported to the passenger.
func (e *Engine) amount(input Input) int {
	km := math.Round(input.DistanceKm)
	switch {
	case e.regulation.DomesticTier && input.IsDomestic:
		return AmountDomestic
	case km <= ShortHaulMaxKm:
		return AmountShort
	case km <= MediumHaulMaxKm:
		return AmountMedium
	default:
		return AmountLong
	}
}

func inJurisdiction(input Input) bool {
	return input.DepartureInJurisdiction || (input.ArrivalInJurisdiction && input.AirlineInJurisdiction)
}

func eligibleReason(input Input, amount int, regulation string) string {
	switch {
	case input.IsDeniedBoarding:
		return fmt.Sprintf("You were denied boarding against your will and are entitled to €%d compensation under %s.", amount, regulation)
	case input.IsCancelled:
		return fmt.Sprintf("Your flight was cancelled and you are entitled to €%d compensation under %s.", amount, regulation)
	case input.DelayMinutes >= DelayThresholdMinutes:
		return fmt.Sprintf("Your flight arrived %d hours late and you are entitled to €%d compensation under %s.", input.DelayMinutes/60, amount, regulation)
	default:
		return fmt.Sprintf("You are entitled to €%d compensation under %s.", amount, regulation)
	}
}
