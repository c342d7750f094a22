// Package models contains data structures used throughout the application
package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

var (
	// ErrUnsupportedUnitConversion is returned when no conversion factor exists between two units
	ErrUnsupportedUnitConversion = errors.New("unsupported unit conversion")
	// ErrUnrecognizedUnit marks a unit that was parsed from unknown text
	ErrUnrecognizedUnit = errors.New("unrecognized unit")
)

// MassUnit is the unit a dose amount is expressed in
type MassUnit int

// Mass units. The zero value is MassInvalid.
const (
	MassInvalid MassUnit = iota
	MassMg
	MassUg
	MassG
	MassMl
)

// TimeUnit is the unit a phase range is expressed in
type TimeUnit int

// Time units. The zero value is TimeInvalid.
const (
	TimeInvalid TimeUnit = iota
	TimeSeconds
	TimeMinutes
	TimeHours
)

// folder normalises unit text. Case folding also maps the micro sign (U+00B5)
// onto the Greek small mu (U+03BC), so both spellings of µg land on one key.
var folder = cases.Fold()

var massUnitNames = map[string]MassUnit{
	"mg":  MassMg,
	"μg":  MassUg,
	"ug":  MassUg,
	"mcg": MassUg,
	"g":   MassG,
	"ml":  MassMl,
}

var timeUnitNames = map[string]TimeUnit{
	"seconds": TimeSeconds,
	"minutes": TimeMinutes,
	"hours":   TimeHours,
}

func foldUnit(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// ParseMassUnit maps a unit symbol to a MassUnit; unknown text yields MassInvalid
func ParseMassUnit(s string) MassUnit {
	return massUnitNames[foldUnit(s)]
}

// ParseTimeUnit maps a unit name to a TimeUnit; unknown text yields TimeInvalid
func ParseTimeUnit(s string) TimeUnit {
	return timeUnitNames[foldUnit(s)]
}

func (u MassUnit) String() string {
	switch u {
	case MassMg:
		return "mg"
	case MassUg:
		return "µg"
	case MassG:
		return "g"
	case MassMl:
		return "ml"
	default:
		return "invalid"
	}
}

// Validate returns ErrUnrecognizedUnit for MassInvalid
func (u MassUnit) Validate() error {
	if u == MassInvalid {
		return fmt.Errorf("mass unit: %w", ErrUnrecognizedUnit)
	}
	return nil
}

func (u TimeUnit) String() string {
	switch u {
	case TimeSeconds:
		return "seconds"
	case TimeMinutes:
		return "minutes"
	case TimeHours:
		return "hours"
	default:
		return "invalid"
	}
}

// Validate returns ErrUnrecognizedUnit for TimeInvalid
func (u TimeUnit) Validate() error {
	if u == TimeInvalid {
		return fmt.Errorf("time unit: %w", ErrUnrecognizedUnit)
	}
	return nil
}

// massInMicrograms is the size of one unit in µg. Ml has no mass equivalent.
var massInMicrograms = map[MassUnit]float64{
	MassUg: 1,
	MassMg: 1e3,
	MassG:  1e6,
}

// timeInSeconds is the size of one unit in seconds
var timeInSeconds = map[TimeUnit]float64{
	TimeSeconds: 1,
	TimeMinutes: 60,
	TimeHours:   3600,
}

// ConvertMass converts amount from one mass unit to another
func ConvertMass(amount float64, from, to MassUnit) (float64, error) {
	if from == MassInvalid || to == MassInvalid {
		return 0, fmt.Errorf("%w: %s to %s", ErrUnsupportedUnitConversion, from, to)
	}
	if from == to {
		return amount, nil
	}

	f, okFrom := massInMicrograms[from]
	t, okTo := massInMicrograms[to]
	if !okFrom || !okTo {
		return 0, fmt.Errorf("%w: %s to %s", ErrUnsupportedUnitConversion, from, to)
	}

	return scale(amount, f, t), nil
}

// ConvertTime converts value from one time unit to another
func ConvertTime(value float64, from, to TimeUnit) (float64, error) {
	f, okFrom := timeInSeconds[from]
	t, okTo := timeInSeconds[to]
	if !okFrom || !okTo {
		return 0, fmt.Errorf("%w: %s to %s", ErrUnsupportedUnitConversion, from, to)
	}
	if from == to {
		return value, nil
	}

	return scale(value, f, t), nil
}

// scale applies a single multiply or divide by the exact integer ratio
// between the two unit sizes so that A->B->A reproduces the input.
func scale(v, fromSize, toSize float64) float64 {
	if fromSize > toSize {
		return v * (fromSize / toSize)
	}
	return v / (toSize / fromSize)
}
