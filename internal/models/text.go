package models

import "fmt"

// Enums marshal as their names so JSON output reads "mg" or "peak" rather
// than ordinals.

func (u MassUnit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *MassUnit) UnmarshalText(text []byte) error {
	parsed := ParseMassUnit(string(text))
	if parsed == MassInvalid {
		return fmt.Errorf("mass unit %q: %w", text, ErrUnrecognizedUnit)
	}
	*u = parsed
	return nil
}

func (u TimeUnit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *TimeUnit) UnmarshalText(text []byte) error {
	parsed := ParseTimeUnit(string(text))
	if parsed == TimeInvalid {
		return fmt.Errorf("time unit %q: %w", text, ErrUnrecognizedUnit)
	}
	*u = parsed
	return nil
}

func (r RouteKind) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *RouteKind) UnmarshalText(text []byte) error {
	parsed := ParseRouteKind(string(text))
	if parsed == RouteInvalid {
		return fmt.Errorf("unknown route %q", text)
	}
	*r = parsed
	return nil
}

func (t DosageTier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (k PhaseKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
