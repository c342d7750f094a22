// Package chart draws effect timelines as PNG images and terminal sparklines
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/mrcode/dose-timeline/internal/models"
	"github.com/mrcode/dose-timeline/internal/timeline"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	marginLeft   = 48
	marginRight  = 16
	marginTop    = 32
	marginBottom = 36
)

// Options controls how a chart is rendered
type Options struct {
	Width       int
	Height      int
	Samples     int
	CurveColor  string  // Hex color
	ComeupColor string  // Hex color
	OffsetColor string  // Hex color
	NowHours    float64 // Elapsed time to mark; negative hides the marker
	Title       string
}

// OptionsFromSettings builds render options from the chart settings
func OptionsFromSettings(s *models.Settings) Options {
	s = s.Clone()
	return Options{
		Width:       s.ChartWidth,
		Height:      s.ChartHeight,
		Samples:     s.ChartSamples,
		CurveColor:  s.ChartColorCurve,
		ComeupColor: s.ChartColorComeup,
		OffsetColor: s.ChartColorOffset,
		NowHours:    -1,
	}
}

// plot maps timeline coordinates into pixels
type plot struct {
	dc       *gg.Context
	maxHours float64
	left     float64
	top      float64
	width    float64
	height   float64
}

func (p plot) x(hours float64) float64 {
	return p.left + hours/p.maxHours*p.width
}

func (p plot) y(intensity float64) float64 {
	return p.top + (1-intensity)*p.height
}

// Render draws the effect timeline of ing and returns PNG bytes
func Render(route models.RouteProfile, ing models.IngestionEvent, opts Options) ([]byte, error) {
	maxSeconds, err := timeline.MaxTotal(route)
	if err != nil {
		return nil, err
	}
	maxHours, err := models.ConvertTime(maxSeconds, models.TimeSeconds, models.TimeHours)
	if err != nil {
		return nil, err
	}
	if opts.NowHours > maxHours {
		maxHours = opts.NowHours
	}
	if maxHours <= 0 {
		return nil, fmt.Errorf("route %s has no documented timeline", route.Route)
	}

	curve, err := timeline.SampleCurve(route, ing, 0, maxHours, opts.Samples)
	if err != nil {
		return nil, err
	}
	estimate, err := timeline.EstimatePoints(route)
	if err != nil {
		return nil, err
	}
	comeup, err := timeline.ComeupDistribution(route)
	if err != nil {
		return nil, err
	}
	offset, err := timeline.OffsetDistribution(route)
	if err != nil {
		return nil, err
	}

	// distributions and estimate are in seconds
	for _, points := range [][]timeline.Point{estimate, comeup, offset} {
		if err := toHours(points); err != nil {
			return nil, err
		}
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	p := plot{
		dc:       dc,
		maxHours: maxHours,
		left:     marginLeft,
		top:      marginTop,
		width:    float64(opts.Width - marginLeft - marginRight),
		height:   float64(opts.Height - marginTop - marginBottom),
	}

	labels := loadFont(dc, 12) == nil
	p.drawAxes(labels)

	p.fillPolygon(comeup, opts.ComeupColor, 0.35)
	p.fillPolygon(offset, opts.OffsetColor, 0.35)
	p.strokeLine(estimate, color.RGBA{R: 120, G: 120, B: 120, A: 255}, 1, true)
	p.strokeLine(curve, hexColor(opts.CurveColor), 2.5, false)

	if opts.NowHours >= 0 {
		dc.SetRGB(0.94, 0.27, 0.27)
		dc.SetLineWidth(1.5)
		dc.DrawLine(p.x(opts.NowHours), p.top, p.x(opts.NowHours), p.top+p.height)
		dc.Stroke()
	}

	if labels && opts.Title != "" {
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(opts.Title, float64(opts.Width)/2, marginTop/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}
	return buf.Bytes(), nil
}

// loadFont helper to load font safely
func loadFont(dc *gg.Context, size float64) error {
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
	return nil
}

func (p plot) drawAxes(labels bool) {
	dc := p.dc

	dc.SetRGB(0.8, 0.8, 0.8)
	dc.SetLineWidth(1)
	for _, level := range []float64{0, 0.5, 1} {
		dc.DrawLine(p.left, p.y(level), p.left+p.width, p.y(level))
		dc.Stroke()
		if labels {
			dc.SetRGB(0.3, 0.3, 0.3)
			dc.DrawStringAnchored(fmt.Sprintf("%.0f%%", level*100), p.left-6, p.y(level), 1, 0.5)
			dc.SetRGB(0.8, 0.8, 0.8)
		}
	}

	tick := hourTick(p.maxHours)
	for h := 0.0; h <= p.maxHours+1e-9; h += tick {
		dc.DrawLine(p.x(h), p.top+p.height, p.x(h), p.top+p.height+4)
		dc.Stroke()
		if labels {
			dc.SetRGB(0.3, 0.3, 0.3)
			dc.DrawStringAnchored(fmt.Sprintf("%gh", h), p.x(h), p.top+p.height+16, 0.5, 0.5)
			dc.SetRGB(0.8, 0.8, 0.8)
		}
	}
}

// hourTick picks a tick spacing giving at most about a dozen ticks
func hourTick(maxHours float64) float64 {
	for _, tick := range []float64{0.25, 0.5, 1, 2, 3, 6, 12, 24} {
		if maxHours/tick <= 12 {
			return tick
		}
	}
	return math.Ceil(maxHours / 12)
}

func (p plot) fillPolygon(points []timeline.Point, hex string, alpha float64) {
	if len(points) < 3 {
		return
	}
	r, g, b := parseHexColor(hex)

	dc := p.dc
	dc.NewSubPath()
	for i, pt := range points {
		if i == 0 {
			dc.MoveTo(p.x(pt.X), p.y(pt.Y))
			continue
		}
		dc.LineTo(p.x(pt.X), p.y(pt.Y))
	}
	dc.ClosePath()
	dc.SetRGBA255(int(r), int(g), int(b), int(alpha*255))
	dc.Fill()
}

func (p plot) strokeLine(points []timeline.Point, c color.Color, width float64, dashed bool) {
	if len(points) < 2 {
		return
	}

	dc := p.dc
	dc.Push()
	defer dc.Pop()

	if dashed {
		dc.SetDash(6, 4)
	}
	dc.SetColor(c)
	dc.SetLineWidth(width)
	for i, pt := range points {
		if i == 0 {
			dc.MoveTo(p.x(pt.X), p.y(pt.Y))
			continue
		}
		dc.LineTo(p.x(pt.X), p.y(pt.Y))
	}
	dc.Stroke()
}

// toHours converts point X values from seconds to hours in place
func toHours(points []timeline.Point) error {
	for i := range points {
		x, err := models.ConvertTime(points[i].X, models.TimeSeconds, models.TimeHours)
		if err != nil {
			return err
		}
		points[i].X = x
	}
	return nil
}

func hexColor(hex string) color.Color {
	r, g, b := parseHexColor(hex)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// parseHexColor parses a hex color string to RGB values
func parseHexColor(hex string) (r, g, b byte) {
	if len(hex) == 7 && hex[0] == '#' {
		_, _ = fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	}
	return
}
