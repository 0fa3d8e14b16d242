package valueobject

import "fmt"

// MaxRiskScore is the upper cap of a live risk score. There is no lower
// bound: a heavily subsidised region can score below zero, which reads as
// "very stable" rather than an error.
const MaxRiskScore = 100.0

// ThreatLevel is the categorical severity bucket of a risk score.
type ThreatLevel string

const (
	ThreatStable   ThreatLevel = "stable"
	ThreatWarning  ThreatLevel = "warning"
	ThreatCritical ThreatLevel = "critical"
)

// Bucket boundaries, inclusive on the lower edge of each bucket.
const (
	criticalFloor = 75.0
	warningFloor  = 50.0
)

// Color returns the fixed display color for the level.
func (l ThreatLevel) Color() string {
	switch l {
	case ThreatCritical:
		return "#FF0000"
	case ThreatWarning:
		return "#FFA500"
	default:
		return "#00FF00"
	}
}

// String returns the level name.
func (l ThreatLevel) String() string {
	return string(l)
}

// RiskScore is an immutable value object holding a live risk score capped
// at MaxRiskScore.
type RiskScore struct {
	value float64
}

// NewRiskScore creates a RiskScore, capping the value at MaxRiskScore.
// Values below zero are preserved as-is.
func NewRiskScore(value float64) RiskScore {
	if value > MaxRiskScore {
		value = MaxRiskScore
	}
	return RiskScore{value: value}
}

// Value returns the numeric score.
func (r RiskScore) Value() float64 {
	return r.value
}

// Level returns the threat level bucket for this score: a score of at
// least 75 is critical, at least 50 is warning, anything lower is stable.
func (r RiskScore) Level() ThreatLevel {
	switch {
	case r.value >= criticalFloor:
		return ThreatCritical
	case r.value >= warningFloor:
		return ThreatWarning
	default:
		return ThreatStable
	}
}

// String returns the score formatted to one decimal place with its level.
func (r RiskScore) String() string {
	return fmt.Sprintf("%.1f (%s)", r.value, r.Level())
}
