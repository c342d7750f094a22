package models

import "strings"

// RouteKind is a route of administration
type RouteKind int

// Routes of administration. The zero value is RouteInvalid.
const (
	RouteInvalid RouteKind = iota
	RouteOral
	RouteSublingual
	RouteBuccal
	RouteInsufflation
	RouteInhalation
	RouteSmoked
	RouteVaporised
	RouteIntravenous
	RouteIntramuscular
	RouteSubcutaneous
	RouteRectal
	RouteTransdermal
)

var routeNames = map[string]RouteKind{
	"oral":          RouteOral,
	"sublingual":    RouteSublingual,
	"buccal":        RouteBuccal,
	"insufflation":  RouteInsufflation,
	"insuffilation": RouteInsufflation, // spelling used by the wiki data
	"inhalation":    RouteInhalation,
	"smoked":        RouteSmoked,
	"vaporised":     RouteVaporised,
	"vaporized":     RouteVaporised,
	"intravenous":   RouteIntravenous,
	"intramuscular": RouteIntramuscular,
	"subcutaneous":  RouteSubcutaneous,
	"rectal":        RouteRectal,
	"transdermal":   RouteTransdermal,
}

// ParseRouteKind maps a route name to a RouteKind; unknown text yields RouteInvalid
func ParseRouteKind(s string) RouteKind {
	return routeNames[strings.ToLower(strings.TrimSpace(s))]
}

func (r RouteKind) String() string {
	switch r {
	case RouteOral:
		return "oral"
	case RouteSublingual:
		return "sublingual"
	case RouteBuccal:
		return "buccal"
	case RouteInsufflation:
		return "insufflation"
	case RouteInhalation:
		return "inhalation"
	case RouteSmoked:
		return "smoked"
	case RouteVaporised:
		return "vaporised"
	case RouteIntravenous:
		return "intravenous"
	case RouteIntramuscular:
		return "intramuscular"
	case RouteSubcutaneous:
		return "subcutaneous"
	case RouteRectal:
		return "rectal"
	case RouteTransdermal:
		return "transdermal"
	default:
		return "invalid"
	}
}

// RouteProfile is the dose and timing data for one route of administration
type RouteProfile struct {
	Route  RouteKind    `json:"route"`
	Dose   DoseMetadata `json:"dose"`
	Phases PhaseSet     `json:"phases"`
}
