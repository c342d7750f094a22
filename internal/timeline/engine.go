// Package timeline classifies doses and evaluates the effect curve of an
// ingestion over time. All functions are pure and safe for concurrent use.
package timeline

import (
	"fmt"

	"github.com/mrcode/dose-timeline/internal/models"
)

// walkOrder is the order phases are consumed in. Afterglow is modelled but
// does not contribute to the curve.
var walkOrder = []models.PhaseKind{
	models.PhaseOnset,
	models.PhaseComeup,
	models.PhasePeak,
	models.PhaseOffset,
}

// Classify returns the dosage tier of the ingestion for the given route.
// The amount is normalised into the route's dose unit first.
func Classify(route models.RouteProfile, ing models.IngestionEvent) (models.DosageTier, error) {
	normalized, err := ing.NormalizedAs(route.Dose.Unit)
	if err != nil {
		return models.TierBelowThreshold, fmt.Errorf("normalising dose: %w", err)
	}
	amount := normalized.Amount
	dose := route.Dose

	if dose.Heavy != nil && amount >= *dose.Heavy {
		return models.TierHeavy, nil
	}
	// Exact comparison is intentional; a dose a hair off the threshold falls
	// through to the bands.
	if dose.Threshold != nil && amount == *dose.Threshold {
		return models.TierThreshold, nil
	}
	if dose.Light != nil && dose.Light.Contains(amount) {
		return models.TierLight, nil
	}
	if dose.Common != nil && dose.Common.Contains(amount) {
		return models.TierCommon, nil
	}
	if dose.Strong != nil && dose.Strong.Contains(amount) {
		return models.TierStrong, nil
	}

	return models.TierBelowThreshold, nil
}

// position is where on the timeline an elapsed time landed
type position struct {
	phase     models.PhaseKind
	active    bool
	intensity float64
}

// locate walks the phases, spending each phase's midpoint in hours
func locate(route models.RouteProfile, ing models.IngestionEvent, elapsedHours float64) (position, error) {
	tier, err := Classify(route, ing)
	if err != nil {
		return position{}, err
	}
	if tier == models.TierBelowThreshold || elapsedHours < 0 {
		return position{}, nil
	}

	remaining := elapsedHours
	for _, kind := range walkOrder {
		phase := route.Phases.Get(kind)
		if phase == nil {
			continue
		}

		hours, err := phase.Hours()
		if err != nil {
			return position{}, fmt.Errorf("%s phase: %w", kind, err)
		}
		length := hours.Midpoint()

		if remaining <= length {
			return position{
				phase:     kind,
				active:    true,
				intensity: contribution(kind, remaining, length),
			}, nil
		}
		remaining -= length
	}

	return position{}, nil
}

// contribution is the intensity of a phase at remaining hours into it
func contribution(kind models.PhaseKind, remaining, length float64) float64 {
	t := 0.0
	if length > 0 {
		t = remaining / length
	}

	switch kind {
	case models.PhaseComeup:
		return lerp(0, 1, t)
	case models.PhasePeak:
		return 1
	case models.PhaseOffset:
		return lerp(1, 0, t)
	default:
		return 0
	}
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Effect returns the effect intensity in [0,1] elapsedHours after ingestion
func Effect(route models.RouteProfile, ing models.IngestionEvent, elapsedHours float64) (float64, error) {
	pos, err := locate(route, ing, elapsedHours)
	if err != nil {
		return 0, err
	}
	return pos.intensity, nil
}

// CurrentPhase returns the phase the ingestion is in after elapsedHours.
// The boolean is false when the dose is below threshold or the timeline has
// run out.
func CurrentPhase(route models.RouteProfile, ing models.IngestionEvent, elapsedHours float64) (models.PhaseKind, bool, error) {
	pos, err := locate(route, ing, elapsedHours)
	if err != nil {
		return 0, false, err
	}
	return pos.phase, pos.active, nil
}
