package timeline

import (
	"fmt"

	"github.com/mrcode/dose-timeline/internal/models"
)

// Point is a chart vertex: X is seconds after ingestion (or hours for
// sampled curves), Y is intensity
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// seconds returns the phase of the given kind in seconds, or a zero range
func seconds(route models.RouteProfile, kind models.PhaseKind) (models.PhaseRange, error) {
	p, err := route.Phases.OrZero(kind).Seconds()
	if err != nil {
		return models.PhaseRange{}, fmt.Errorf("%s phase: %w", kind, err)
	}
	return p, nil
}

// cumulative sums a per-phase value over the walk order, returning the
// running totals for onset, comeup, peak and offset
func cumulative(route models.RouteProfile, value func(models.PhaseRange) float64) ([4]float64, error) {
	var (
		totals [4]float64
		sum    float64
	)
	for i, kind := range walkOrder {
		p, err := seconds(route, kind)
		if err != nil {
			return totals, err
		}
		sum += value(p)
		totals[i] = sum
	}
	return totals, nil
}

func midpoint(p models.PhaseRange) float64 { return p.Midpoint() }
func start(p models.PhaseRange) float64    { return p.Start }
func end(p models.PhaseRange) float64      { return p.End }

// CumulativeTotal returns the length of the effect timeline in seconds: the
// sum of the onset, comeup, peak and offset midpoints. Effect is zero past it.
func CumulativeTotal(route models.RouteProfile) (float64, error) {
	mids, err := cumulative(route, midpoint)
	if err != nil {
		return 0, err
	}
	return mids[3], nil
}

// MaxTotal returns the longest documented timeline in seconds, summing
// each phase's End
func MaxTotal(route models.RouteProfile) (float64, error) {
	ends, err := cumulative(route, end)
	if err != nil {
		return 0, err
	}
	return ends[3], nil
}

// EstimatePoints returns the five vertices of the estimated curve:
// ingestion, end of onset, top of comeup, end of peak, end of offset
func EstimatePoints(route models.RouteProfile) ([]Point, error) {
	mids, err := cumulative(route, midpoint)
	if err != nil {
		return nil, err
	}

	return []Point{
		{0, 0},
		{mids[0], 0},
		{mids[1], 1},
		{mids[2], 1},
		{mids[3], 0},
	}, nil
}

// ComeupDistribution returns a closed polygon bounding where the comeup may
// happen, from the earliest to the latest documented timings
func ComeupDistribution(route models.RouteProfile) ([]Point, error) {
	starts, err := cumulative(route, start)
	if err != nil {
		return nil, err
	}
	ends, err := cumulative(route, end)
	if err != nil {
		return nil, err
	}

	onsetStart, onsetEnd := starts[0], ends[0]
	comeupStart, comeupEnd := starts[1], ends[1]

	return []Point{
		{onsetStart, 0},
		{onsetEnd, 0},
		{comeupEnd, 1},
		{comeupStart, 1},
		{onsetStart, 0},
	}, nil
}

// OffsetDistribution returns a closed polygon bounding where the offset may
// happen, from the earliest to the latest documented timings
func OffsetDistribution(route models.RouteProfile) ([]Point, error) {
	starts, err := cumulative(route, start)
	if err != nil {
		return nil, err
	}
	ends, err := cumulative(route, end)
	if err != nil {
		return nil, err
	}

	peakStart, peakEnd := starts[2], ends[2]
	offsetStart, offsetEnd := starts[3], ends[3]

	return []Point{
		{peakStart, 1},
		{peakEnd, 1},
		{offsetEnd, 0},
		{offsetStart, 0},
		{peakStart, 1},
	}, nil
}
