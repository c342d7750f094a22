package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIngestionEvent_JSONNames(t *testing.T) {
	s := &Substance{Name: "Caffeine"}
	ing := s.NewIngestion(100, MassMg, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), RouteOral)

	data, err := json.Marshal(ing)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{`"unit":"mg"`, `"route":"oral"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON %s missing %s", data, want)
		}
	}

	var decoded IngestionEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Unit != MassMg || decoded.Route != RouteOral || decoded.ID != ing.ID {
		t.Errorf("decoded = %+v, want mg oral %s", decoded, ing.ID)
	}
}

func TestEnums_MarshalText(t *testing.T) {
	tests := []struct {
		value    interface{ MarshalText() ([]byte, error) }
		expected string
	}{
		{MassUg, "µg"},
		{TimeMinutes, "minutes"},
		{RouteInsufflation, "insufflation"},
		{TierCommon, "common"},
		{TierBelowThreshold, "below threshold"},
		{PhasePeak, "peak"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			text, err := tt.value.MarshalText()
			if err != nil || string(text) != tt.expected {
				t.Errorf("MarshalText() = %q, %v, want %q", text, err, tt.expected)
			}
		})
	}
}

func TestEnums_UnmarshalText(t *testing.T) {
	var unit MassUnit
	if err := unit.UnmarshalText([]byte("mcg")); err != nil || unit != MassUg {
		t.Errorf("MassUnit.UnmarshalText(mcg) = %v, %v", unit, err)
	}
	if err := unit.UnmarshalText([]byte("kg")); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Errorf("MassUnit.UnmarshalText(kg) error = %v, want ErrUnrecognizedUnit", err)
	}

	var tu TimeUnit
	if err := tu.UnmarshalText([]byte("Hours")); err != nil || tu != TimeHours {
		t.Errorf("TimeUnit.UnmarshalText(Hours) = %v, %v", tu, err)
	}
	if err := tu.UnmarshalText([]byte("days")); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Errorf("TimeUnit.UnmarshalText(days) error = %v, want ErrUnrecognizedUnit", err)
	}

	var route RouteKind
	if err := route.UnmarshalText([]byte("insuffilation")); err != nil || route != RouteInsufflation {
		t.Errorf("RouteKind.UnmarshalText(insuffilation) = %v, %v", route, err)
	}
	if err := route.UnmarshalText([]byte("teleport")); err == nil {
		t.Error("RouteKind.UnmarshalText(teleport) should fail")
	}
}
