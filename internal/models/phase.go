package models

import (
	"fmt"
	"time"
)

// PhaseRange is the documented duration range of a single effect phase
type PhaseRange struct {
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Unit  TimeUnit `json:"unit"`

	// Duration is End as wall-clock time, fixed at construction. Zero when
	// the unit could not be converted.
	Duration time.Duration `json:"-"`
}

// ZeroPhase stands in for an absent phase
var ZeroPhase = PhaseRange{Unit: TimeHours}

// NewPhaseRange creates a phase range. An invalid unit is accepted here and
// only fails once the range is converted.
func NewPhaseRange(start, end float64, unit TimeUnit) PhaseRange {
	p := PhaseRange{Start: start, End: end, Unit: unit}
	if secs, err := ConvertTime(end, unit, TimeSeconds); err == nil {
		p.Duration = time.Duration(secs * float64(time.Second))
	}
	return p
}

// Midpoint returns the average of Start and End in the current unit
func (p PhaseRange) Midpoint() float64 {
	return (p.Start + p.End) / 2
}

// To returns a copy of the range rescaled to unit
func (p PhaseRange) To(unit TimeUnit) (PhaseRange, error) {
	start, err := ConvertTime(p.Start, p.Unit, unit)
	if err != nil {
		return PhaseRange{}, err
	}
	end, err := ConvertTime(p.End, p.Unit, unit)
	if err != nil {
		return PhaseRange{}, err
	}

	p.Start = start
	p.End = end
	p.Unit = unit
	return p, nil
}

// ConvertTo rescales the range in place. On error the range is unchanged.
func (p *PhaseRange) ConvertTo(unit TimeUnit) error {
	converted, err := p.To(unit)
	if err != nil {
		return err
	}
	*p = converted
	return nil
}

// Hours is shorthand for To(TimeHours)
func (p PhaseRange) Hours() (PhaseRange, error) {
	return p.To(TimeHours)
}

// Seconds is shorthand for To(TimeSeconds)
func (p PhaseRange) Seconds() (PhaseRange, error) {
	return p.To(TimeSeconds)
}

func (p PhaseRange) String() string {
	return fmt.Sprintf("%g-%g %s", p.Start, p.End, p.Unit)
}

// PhaseKind names a timing phase
type PhaseKind int

// Phase kinds
const (
	PhaseOnset PhaseKind = iota
	PhaseComeup
	PhasePeak
	PhaseOffset
	PhaseAfterglow
	PhaseDuration
	PhaseTotal
)

// PhaseKinds lists every phase in display order
var PhaseKinds = []PhaseKind{
	PhaseOnset, PhaseComeup, PhasePeak, PhaseOffset, PhaseAfterglow, PhaseDuration, PhaseTotal,
}

func (k PhaseKind) String() string {
	switch k {
	case PhaseOnset:
		return "onset"
	case PhaseComeup:
		return "comeup"
	case PhasePeak:
		return "peak"
	case PhaseOffset:
		return "offset"
	case PhaseAfterglow:
		return "afterglow"
	case PhaseDuration:
		return "duration"
	case PhaseTotal:
		return "total"
	default:
		return fmt.Sprintf("phase(%d)", int(k))
	}
}

// PhaseSet holds a route's phases; nil means the phase is not documented
type PhaseSet struct {
	Onset     *PhaseRange `json:"onset,omitempty"`
	Comeup    *PhaseRange `json:"comeup,omitempty"`
	Peak      *PhaseRange `json:"peak,omitempty"`
	Offset    *PhaseRange `json:"offset,omitempty"`
	Afterglow *PhaseRange `json:"afterglow,omitempty"`
	Duration  *PhaseRange `json:"duration,omitempty"`
	Total     *PhaseRange `json:"total,omitempty"`
}

// Get returns the phase of the given kind, or nil if absent
func (s PhaseSet) Get(kind PhaseKind) *PhaseRange {
	switch kind {
	case PhaseOnset:
		return s.Onset
	case PhaseComeup:
		return s.Comeup
	case PhasePeak:
		return s.Peak
	case PhaseOffset:
		return s.Offset
	case PhaseAfterglow:
		return s.Afterglow
	case PhaseDuration:
		return s.Duration
	case PhaseTotal:
		return s.Total
	default:
		return nil
	}
}

// OrZero returns the phase of the given kind, or ZeroPhase if absent
func (s PhaseSet) OrZero(kind PhaseKind) PhaseRange {
	if p := s.Get(kind); p != nil {
		return *p
	}
	return ZeroPhase
}
