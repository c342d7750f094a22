package timeline

import (
	"fmt"
	"runtime"

	"github.com/mrcode/dose-timeline/internal/models"
	"golang.org/x/sync/errgroup"
)

// SampleCurve evaluates Effect at n evenly spaced times between fromHours
// and toHours inclusive. Points are X=hours, Y=intensity, in time order.
// Samples are independent and computed concurrently.
func SampleCurve(route models.RouteProfile, ing models.IngestionEvent, fromHours, toHours float64, n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d", n)
	}
	if toHours < fromHours {
		return nil, fmt.Errorf("invalid sample window %g-%g hours", fromHours, toHours)
	}

	step := (toHours - fromHours) / float64(n-1)
	points := make([]Point, n)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range points {
		i := i
		g.Go(func() error {
			x := fromHours + float64(i)*step
			y, err := Effect(route, ing, x)
			if err != nil {
				return err
			}
			points[i] = Point{X: x, Y: y}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Timeline samples the full documented timeline of the route, from
// ingestion to MaxTotal
func Timeline(route models.RouteProfile, ing models.IngestionEvent, n int) ([]Point, error) {
	total, err := MaxTotal(route)
	if err != nil {
		return nil, err
	}
	hours, err := models.ConvertTime(total, models.TimeSeconds, models.TimeHours)
	if err != nil {
		return nil, err
	}
	return SampleCurve(route, ing, 0, hours, n)
}
