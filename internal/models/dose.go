package models

// DoseRange is a half-open dosage band [Start, End)
type DoseRange struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Contains reports whether v falls inside the band
func (r DoseRange) Contains(v float64) bool {
	return r.Start <= v && v < r.End
}

// DoseMetadata holds a route's dose thresholds. Every numeric field is in Unit.
type DoseMetadata struct {
	Unit      MassUnit   `json:"unit"`
	Threshold *float64   `json:"threshold,omitempty"`
	Heavy     *float64   `json:"heavy,omitempty"`
	Light     *DoseRange `json:"light,omitempty"`
	Common    *DoseRange `json:"common,omitempty"`
	Strong    *DoseRange `json:"strong,omitempty"`
}

// DosageTier is the classification bucket for an ingested amount.
// The declaration order is the order tiers are evaluated in, not severity.
type DosageTier int

// Dosage tiers
const (
	TierThreshold DosageTier = iota
	TierHeavy
	TierCommon
	TierLight
	TierStrong
	TierBelowThreshold
)

func (t DosageTier) String() string {
	switch t {
	case TierThreshold:
		return "threshold"
	case TierHeavy:
		return "heavy"
	case TierCommon:
		return "common"
	case TierLight:
		return "light"
	case TierStrong:
		return "strong"
	default:
		return "below threshold"
	}
}
