package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
)

func TestNewRiskScore_CapsAtMax(t *testing.T) {
	score := valueobject.NewRiskScore(130)

	assert.Equal(t, 100.0, score.Value())
}

func TestNewRiskScore_NoFloor(t *testing.T) {
	score := valueobject.NewRiskScore(-15)

	// Negative scores are preserved: a heavily subsidised region is
	// "very stable", not invalid.
	assert.Equal(t, -15.0, score.Value())
	assert.Equal(t, valueobject.ThreatStable, score.Level())
}

func TestRiskScore_LevelBuckets(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected valueobject.ThreatLevel
	}{
		{name: "well below warning", value: 10, expected: valueobject.ThreatStable},
		{name: "just under warning floor", value: 49.999, expected: valueobject.ThreatStable},
		{name: "exactly warning floor", value: 50, expected: valueobject.ThreatWarning},
		{name: "mid warning", value: 60, expected: valueobject.ThreatWarning},
		{name: "just under critical floor", value: 74.999, expected: valueobject.ThreatWarning},
		{name: "exactly critical floor", value: 75, expected: valueobject.ThreatCritical},
		{name: "capped maximum", value: 100, expected: valueobject.ThreatCritical},
		{name: "negative", value: -5, expected: valueobject.ThreatStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := valueobject.NewRiskScore(tt.value)
			assert.Equal(t, tt.expected, score.Level())
		})
	}
}

func TestThreatLevel_Color(t *testing.T) {
	assert.Equal(t, "#FF0000", valueobject.ThreatCritical.Color())
	assert.Equal(t, "#FFA500", valueobject.ThreatWarning.Color())
	assert.Equal(t, "#00FF00", valueobject.ThreatStable.Color())
}

func TestRiskScore_String(t *testing.T) {
	score := valueobject.NewRiskScore(82.35)

	assert.Equal(t, "82.3 (critical)", score.String())
}
