package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IngestionEvent is a single dose of a substance taken by one route
type IngestionEvent struct {
	ID        uuid.UUID  `json:"id"`
	Amount    float64    `json:"amount"`
	Unit      MassUnit   `json:"unit"`
	Timestamp time.Time  `json:"timestamp"`
	Route     RouteKind  `json:"route"`
	Substance *Substance `json:"-"`
}

// RouteProfile returns the substance's profile for the ingestion's route
func (e *IngestionEvent) RouteProfile() (RouteProfile, bool) {
	if e.Substance == nil {
		return RouteProfile{}, false
	}
	return e.Substance.Route(e.Route)
}

// NormalizeTo converts the amount into unit in place
func (e *IngestionEvent) NormalizeTo(unit MassUnit) error {
	amount, err := ConvertMass(e.Amount, e.Unit, unit)
	if err != nil {
		return err
	}
	e.Amount = amount
	e.Unit = unit
	return nil
}

// NormalizedAs returns a copy of the event with the amount expressed in unit
func (e *IngestionEvent) NormalizedAs(unit MassUnit) (IngestionEvent, error) {
	c := *e
	if err := c.NormalizeTo(unit); err != nil {
		return IngestionEvent{}, err
	}
	return c, nil
}

// Elapsed returns the hours between the ingestion and now
func (e *IngestionEvent) Elapsed(now time.Time) float64 {
	return now.Sub(e.Timestamp).Hours()
}

// IngestionID derives a stable ID from what identifies a dose, so the same
// dose described twice maps to the same alert history
func IngestionID(substance string, route RouteKind, amount float64, unit MassUnit, at time.Time) uuid.UUID {
	name := fmt.Sprintf("dose-timeline:%s/%s/%g%s/%d", substance, route, amount, unit, at.Unix())
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name))
}
