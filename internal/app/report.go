package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mrcode/dose-timeline/internal/models"
)

// StatusReport is the evaluated state of one ingestion. Enum fields marshal
// as their names.
type StatusReport struct {
	ID         string            `json:"id"`
	Substance  string            `json:"substance"`
	Route      models.RouteKind  `json:"route"`
	Amount     float64           `json:"amount"`
	Unit       models.MassUnit   `json:"unit"`
	TakenAt    time.Time         `json:"takenAt"`
	Tier       models.DosageTier `json:"tier"`
	Phase      models.PhaseKind  `json:"phase"`
	Active     bool              `json:"active"`
	Intensity  float64           `json:"intensity"`
	Elapsed    float64           `json:"elapsedHours"`
	Remaining  float64           `json:"remainingHours"`
	TotalHours float64           `json:"totalHours"`
	Sparkline  string            `json:"-"`
}

// formatHours formats fractional hours as e.g. "2h 15m"
func formatHours(hours float64) string {
	if hours < 0 {
		return "-" + formatHours(-hours)
	}
	d := time.Duration(hours * float64(time.Hour)).Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// phaseLabel describes where the ingestion is on its timeline
func (r *StatusReport) phaseLabel() string {
	switch {
	case r.Tier == models.TierBelowThreshold:
		return "no effect expected"
	case r.Elapsed < 0:
		return "not yet taken"
	case !r.Active:
		return "effects over"
	}
	return r.Phase.String()
}

// WriteStatus prints a status report
func WriteStatus(w io.Writer, r *StatusReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Substance:\t%s (%s)\n", r.Substance, r.Route)
	fmt.Fprintf(tw, "Dose:\t%g %s, %s\n", r.Amount, r.Unit, r.Tier)
	if r.Elapsed < 0 {
		fmt.Fprintf(tw, "Taken:\t%s (in %s)\n", r.TakenAt.Format("2006-01-02 15:04"), formatHours(-r.Elapsed))
	} else {
		fmt.Fprintf(tw, "Taken:\t%s (%s ago)\n", r.TakenAt.Format("2006-01-02 15:04"), formatHours(r.Elapsed))
	}
	fmt.Fprintf(tw, "Phase:\t%s\n", r.phaseLabel())
	fmt.Fprintf(tw, "Intensity:\t%.0f%%\n", r.Intensity*100)
	if r.Active {
		fmt.Fprintf(tw, "Remaining:\t%s of %s\n", formatHours(r.Remaining), formatHours(r.TotalHours))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.Sparkline != "" {
		_, err := fmt.Fprintf(w, "\n%s\n", r.Sparkline)
		return err
	}
	return nil
}

func formatDoseRange(r *models.DoseRange) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%g-%g", r.Start, r.End)
}

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

// WriteInfo prints the dose bands, phases and interactions of a substance
func WriteInfo(w io.Writer, s *models.Substance) error {
	fmt.Fprintf(w, "%s\n", s.Name)
	if len(s.CrossTolerances) > 0 {
		fmt.Fprintf(w, "Cross tolerances: %s\n", strings.Join(s.CrossTolerances, ", "))
	}

	for _, route := range s.Routes {
		fmt.Fprintf(w, "\n[%s]\n", route.Route)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		d := route.Dose
		fmt.Fprintf(tw, "  Dose (%s)\tthreshold %s\tlight %s\tcommon %s\tstrong %s\theavy %s\n",
			d.Unit, formatBound(d.Threshold), formatDoseRange(d.Light), formatDoseRange(d.Common),
			formatDoseRange(d.Strong), formatBound(d.Heavy))
		for _, kind := range models.PhaseKinds {
			if p := route.Phases.Get(kind); p != nil {
				fmt.Fprintf(tw, "  %s\t%s\n", kind, p)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	interactions := []struct {
		label string
		names []string
	}{
		{"Dangerous", s.DangerousInteractions},
		{"Unsafe", s.UnsafeInteractions},
		{"Uncertain", s.UncertainInteractions},
	}
	for _, i := range interactions {
		if len(i.names) > 0 {
			fmt.Fprintf(w, "\n%s with: %s\n", i.label, strings.Join(i.names, ", "))
		}
	}
	return nil
}

// WriteStatusJSON writes the report as indented JSON
func WriteStatusJSON(w io.Writer, r *StatusReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
