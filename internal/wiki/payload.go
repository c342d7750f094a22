package wiki

import (
	"github.com/mrcode/dose-timeline/internal/models"
	"github.com/samber/lo"
)

// The payload types mirror the API schema. Every field is nullable there,
// so everything is a pointer. Catalog files use the same shape.

type namedPayload struct {
	Name *string `json:"name" yaml:"name"`
}

type rangePayload struct {
	Min *float64 `json:"min" yaml:"min"`
	Max *float64 `json:"max" yaml:"max"`
}

type timeRangePayload struct {
	Min   *float64 `json:"min" yaml:"min"`
	Max   *float64 `json:"max" yaml:"max"`
	Units *string  `json:"units" yaml:"units"`
}

type dosePayload struct {
	Units     *string       `json:"units" yaml:"units"`
	Threshold *float64      `json:"threshold" yaml:"threshold"`
	Heavy     *float64      `json:"heavy" yaml:"heavy"`
	Common    *rangePayload `json:"common" yaml:"common"`
	Light     *rangePayload `json:"light" yaml:"light"`
	Strong    *rangePayload `json:"strong" yaml:"strong"`
}

type durationPayload struct {
	Afterglow *timeRangePayload `json:"afterglow" yaml:"afterglow"`
	Comeup    *timeRangePayload `json:"comeup" yaml:"comeup"`
	Duration  *timeRangePayload `json:"duration" yaml:"duration"`
	Offset    *timeRangePayload `json:"offset" yaml:"offset"`
	Onset     *timeRangePayload `json:"onset" yaml:"onset"`
	Peak      *timeRangePayload `json:"peak" yaml:"peak"`
	Total     *timeRangePayload `json:"total" yaml:"total"`
}

type roaPayload struct {
	Name     *string          `json:"name" yaml:"name"`
	Dose     *dosePayload     `json:"dose" yaml:"dose"`
	Duration *durationPayload `json:"duration" yaml:"duration"`
}

type substancePayload struct {
	Name                  *string         `json:"name" yaml:"name"`
	CrossTolerances       []*string       `json:"crossTolerances" yaml:"crossTolerances"`
	Roas                  []*roaPayload   `json:"roas" yaml:"roas"`
	UncertainInteractions []*namedPayload `json:"uncertainInteractions" yaml:"uncertainInteractions"`
	UnsafeInteractions    []*namedPayload `json:"unsafeInteractions" yaml:"unsafeInteractions"`
	DangerousInteractions []*namedPayload `json:"dangerousInteractions" yaml:"dangerousInteractions"`
}

// compact drops null list entries and converts the rest
func compact[T, R any](items []*T, convert func(T) R) []R {
	return lo.FilterMap(items, func(item *T, _ int) (R, bool) {
		if item == nil {
			var zero R
			return zero, false
		}
		return convert(*item), true
	})
}

func convertSubstances(items []*substancePayload) []models.Substance {
	return compact(items, convertSubstance)
}

func convertSubstance(p substancePayload) models.Substance {
	names := func(n namedPayload) string { return lo.FromPtr(n.Name) }

	return models.Substance{
		Name:                  lo.FromPtr(p.Name),
		CrossTolerances:       compact(p.CrossTolerances, func(s string) string { return s }),
		Routes:                compact(p.Roas, convertRoute),
		UncertainInteractions: compact(p.UncertainInteractions, names),
		UnsafeInteractions:    compact(p.UnsafeInteractions, names),
		DangerousInteractions: compact(p.DangerousInteractions, names),
	}
}

func convertRoute(p roaPayload) models.RouteProfile {
	route := models.RouteProfile{
		Route: models.ParseRouteKind(lo.FromPtr(p.Name)),
	}
	if p.Dose != nil {
		route.Dose = convertDose(*p.Dose)
	}
	if p.Duration != nil {
		route.Phases = convertPhases(*p.Duration)
	}
	return route
}

func convertDose(p dosePayload) models.DoseMetadata {
	return models.DoseMetadata{
		Unit:      models.ParseMassUnit(lo.FromPtr(p.Units)),
		Threshold: p.Threshold,
		Heavy:     p.Heavy,
		Common:    convertDoseRange(p.Common),
		Light:     convertDoseRange(p.Light),
		Strong:    convertDoseRange(p.Strong),
	}
}

// convertDoseRange treats a missing bound as zero, as the API does
func convertDoseRange(p *rangePayload) *models.DoseRange {
	if p == nil {
		return nil
	}
	return &models.DoseRange{Start: lo.FromPtr(p.Min), End: lo.FromPtr(p.Max)}
}

func convertPhases(p durationPayload) models.PhaseSet {
	return models.PhaseSet{
		Onset:     convertPhase(p.Onset),
		Comeup:    convertPhase(p.Comeup),
		Peak:      convertPhase(p.Peak),
		Offset:    convertPhase(p.Offset),
		Afterglow: convertPhase(p.Afterglow),
		Duration:  convertPhase(p.Duration),
		Total:     convertPhase(p.Total),
	}
}

func convertPhase(p *timeRangePayload) *models.PhaseRange {
	if p == nil {
		return nil
	}
	phase := models.NewPhaseRange(lo.FromPtr(p.Min), lo.FromPtr(p.Max), models.ParseTimeUnit(lo.FromPtr(p.Units)))
	return &phase
}
