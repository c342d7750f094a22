package models

import (
	"errors"
	"math"
	"testing"
)

func TestParseMassUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected MassUnit
	}{
		{"mg", MassMg},
		{"MG", MassMg},
		{" mg ", MassMg},
		{"µg", MassUg}, // micro sign
		{"μg", MassUg}, // greek mu
		{"µG", MassUg},
		{"ug", MassUg},
		{"mcg", MassUg},
		{"g", MassG},
		{"G", MassG},
		{"ml", MassMl},
		{"mL", MassMl},
		{"kg", MassInvalid},
		{"", MassInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ParseMassUnit(tt.input); result != tt.expected {
				t.Errorf("ParseMassUnit(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseTimeUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected TimeUnit
	}{
		{"hours", TimeHours},
		{"Hours", TimeHours},
		{"MINUTES", TimeMinutes},
		{"seconds", TimeSeconds},
		{"days", TimeInvalid},
		{"h", TimeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ParseTimeUnit(tt.input); result != tt.expected {
				t.Errorf("ParseTimeUnit(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConvertMass(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		from, to MassUnit
		expected float64
	}{
		{"mg to g", 1500, MassMg, MassG, 1.5},
		{"g to mg", 1.5, MassG, MassMg, 1500},
		{"ug to mg", 250, MassUg, MassMg, 0.25},
		{"mg to ug", 0.25, MassMg, MassUg, 250},
		{"ug to g", 2e6, MassUg, MassG, 2},
		{"g to ug", 2, MassG, MassUg, 2e6},
		{"identity", 42, MassMg, MassMg, 42},
		{"ml identity", 5, MassMl, MassMl, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ConvertMass(tt.amount, tt.from, tt.to)
			if err != nil {
				t.Fatalf("ConvertMass() error = %v", err)
			}
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ConvertMass(%v, %v, %v) = %v, want %v", tt.amount, tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestConvertMass_Unsupported(t *testing.T) {
	tests := []struct {
		name     string
		from, to MassUnit
	}{
		{"ml to mg", MassMl, MassMg},
		{"g to ml", MassG, MassMl},
		{"invalid source", MassInvalid, MassMg},
		{"invalid target", MassMg, MassInvalid},
		{"invalid identity", MassInvalid, MassInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertMass(1, tt.from, tt.to)
			if !errors.Is(err, ErrUnsupportedUnitConversion) {
				t.Errorf("ConvertMass() error = %v, want ErrUnsupportedUnitConversion", err)
			}
		})
	}
}

func TestConvertMass_RoundTrip(t *testing.T) {
	units := []MassUnit{MassMg, MassUg, MassG}
	values := []float64{0, 0.001, 0.3, 1, 7.77, 150, 123456.789}

	for _, a := range units {
		for _, b := range units {
			for _, v := range values {
				there, err := ConvertMass(v, a, b)
				if err != nil {
					t.Fatalf("ConvertMass(%v, %v, %v) error = %v", v, a, b, err)
				}
				back, err := ConvertMass(there, b, a)
				if err != nil {
					t.Fatalf("ConvertMass(%v, %v, %v) error = %v", there, b, a, err)
				}
				if math.Abs(back-v) > 1e-9*math.Max(1, math.Abs(v)) {
					t.Errorf("%v %v -> %v -> %v = %v", v, a, b, a, back)
				}
			}
		}
	}
}

func TestConvertTime(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to TimeUnit
		expected float64
	}{
		{"seconds to minutes", 90, TimeSeconds, TimeMinutes, 1.5},
		{"minutes to seconds", 1.5, TimeMinutes, TimeSeconds, 90},
		{"minutes to hours", 30, TimeMinutes, TimeHours, 0.5},
		{"hours to minutes", 0.5, TimeHours, TimeMinutes, 30},
		{"seconds to hours", 5400, TimeSeconds, TimeHours, 1.5},
		{"hours to seconds", 1.5, TimeHours, TimeSeconds, 5400},
		{"identity", 3, TimeHours, TimeHours, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ConvertTime(tt.value, tt.from, tt.to)
			if err != nil {
				t.Fatalf("ConvertTime() error = %v", err)
			}
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ConvertTime(%v, %v, %v) = %v, want %v", tt.value, tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestConvertTime_Invalid(t *testing.T) {
	if _, err := ConvertTime(1, TimeInvalid, TimeHours); !errors.Is(err, ErrUnsupportedUnitConversion) {
		t.Errorf("ConvertTime(invalid, hours) error = %v, want ErrUnsupportedUnitConversion", err)
	}
	if _, err := ConvertTime(1, TimeHours, TimeInvalid); !errors.Is(err, ErrUnsupportedUnitConversion) {
		t.Errorf("ConvertTime(hours, invalid) error = %v, want ErrUnsupportedUnitConversion", err)
	}
}

func TestConvertTime_RoundTrip(t *testing.T) {
	units := []TimeUnit{TimeSeconds, TimeMinutes, TimeHours}
	values := []float64{0, 0.1, 1, 2.5, 45, 10000}

	for _, a := range units {
		for _, b := range units {
			for _, v := range values {
				there, _ := ConvertTime(v, a, b)
				back, _ := ConvertTime(there, b, a)
				if math.Abs(back-v) > 1e-9*math.Max(1, v) {
					t.Errorf("%v %v -> %v -> %v = %v", v, a, b, a, back)
				}
			}
		}
	}
}

func TestUnitValidate(t *testing.T) {
	if err := MassInvalid.Validate(); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Errorf("MassInvalid.Validate() = %v, want ErrUnrecognizedUnit", err)
	}
	if err := MassMg.Validate(); err != nil {
		t.Errorf("MassMg.Validate() = %v, want nil", err)
	}
	if err := TimeInvalid.Validate(); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Errorf("TimeInvalid.Validate() = %v, want ErrUnrecognizedUnit", err)
	}
}

func TestUnitString(t *testing.T) {
	if MassUg.String() != "µg" {
		t.Errorf("MassUg.String() = %s, want µg", MassUg.String())
	}
	if MassInvalid.String() != "invalid" {
		t.Errorf("MassInvalid.String() = %s, want invalid", MassInvalid.String())
	}
	if ParseMassUnit(MassUg.String()) != MassUg {
		t.Error("String() of MassUg should parse back")
	}
	if TimeMinutes.String() != "minutes" {
		t.Errorf("TimeMinutes.String() = %s, want minutes", TimeMinutes.String())
	}
}
