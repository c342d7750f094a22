package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Substance is a named entity with per-route dosing data and interaction lists.
// It is read-only once built and shared by every ingestion derived from it.
type Substance struct {
	Name                  string         `json:"name"`
	CrossTolerances       []string       `json:"crossTolerances"`
	Routes                []RouteProfile `json:"routes"`
	UncertainInteractions []string       `json:"uncertainInteractions"`
	UnsafeInteractions    []string       `json:"unsafeInteractions"`
	DangerousInteractions []string       `json:"dangerousInteractions"`
}

// Route returns the profile for kind. When several profiles share a kind the
// last one wins.
func (s *Substance) Route(kind RouteKind) (RouteProfile, bool) {
	var (
		found RouteProfile
		ok    bool
	)
	for _, r := range s.Routes {
		if r.Route == kind {
			found, ok = r, true
		}
	}
	return found, ok
}

// RouteKinds returns the documented routes in data order
func (s *Substance) RouteKinds() []RouteKind {
	kinds := make([]RouteKind, 0, len(s.Routes))
	for _, r := range s.Routes {
		kinds = append(kinds, r.Route)
	}
	return kinds
}

// NewIngestion creates an ingestion event bound to this substance
func (s *Substance) NewIngestion(amount float64, unit MassUnit, timestamp time.Time, route RouteKind) *IngestionEvent {
	return &IngestionEvent{
		ID:        uuid.New(),
		Amount:    amount,
		Unit:      unit,
		Timestamp: timestamp,
		Route:     route,
		Substance: s,
	}
}

// InteractionLevel is how risky a combination with another substance is
type InteractionLevel int

// Interaction levels, least severe first
const (
	InteractionNone InteractionLevel = iota
	InteractionUncertain
	InteractionUnsafe
	InteractionDangerous
)

func (l InteractionLevel) String() string {
	switch l {
	case InteractionUncertain:
		return "uncertain"
	case InteractionUnsafe:
		return "unsafe"
	case InteractionDangerous:
		return "dangerous"
	default:
		return "none"
	}
}

// InteractionWith returns the most severe listed interaction with name
func (s *Substance) InteractionWith(name string) InteractionLevel {
	switch {
	case containsFold(s.DangerousInteractions, name):
		return InteractionDangerous
	case containsFold(s.UnsafeInteractions, name):
		return InteractionUnsafe
	case containsFold(s.UncertainInteractions, name):
		return InteractionUncertain
	default:
		return InteractionNone
	}
}

func containsFold(list []string, name string) bool {
	for _, v := range list {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}
