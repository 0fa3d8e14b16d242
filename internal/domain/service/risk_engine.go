package service

import (
	"fmt"

	"github.com/Valentinus295/econsentinel/internal/domain/model"
	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
)

// RiskEngine applies a shock scenario to base risk scores. It is a pure
// domain service: no I/O, no clock, fully determined by the policy and
// its inputs.
type RiskEngine struct {
	policy valueobject.RiskPolicy
}

// NewRiskEngine creates a RiskEngine after validating the policy.
func NewRiskEngine(policy valueobject.RiskPolicy) (*RiskEngine, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid risk policy: %w", err)
	}
	return &RiskEngine{policy: policy}, nil
}

// Policy returns the engine's policy constants.
func (e *RiskEngine) Policy() valueobject.RiskPolicy {
	return e.policy
}

// Score computes the live risk for one base score under a scenario.
//
// Thresholds are strictly-greater-than: a shock exactly at a tier does not
// trigger it. The two fuel tiers are independent and cumulative. The
// result is capped at 100 with no lower bound.
func (e *RiskEngine) Score(base float64, sc valueobject.ShockScenario) valueobject.RiskScore {
	risk := base

	if sc.FuelShock() > e.policy.FuelTier1 {
		risk += e.policy.FuelBonus1
	}
	if sc.FuelShock() > e.policy.FuelTier2 {
		risk += e.policy.FuelBonus2
	}
	if sc.TaxHike() > e.policy.TaxThreshold {
		risk += float64(sc.TaxHike()) * e.policy.TaxMultiplier
	}
	if sc.SubsidyActive() {
		risk -= e.policy.SubsidyRelief
	}

	return valueobject.NewRiskScore(risk)
}

// Assess produces the full derived picture of one region under a
// scenario: live risk plus the display marker size.
func (e *RiskEngine) Assess(region model.Region, sc valueobject.ShockScenario) model.RegionAssessment {
	score := e.Score(region.BaseRisk(), sc)
	mapSize := float64(region.Population()) / e.policy.MapSizeDivisor
	return model.NewRegionAssessment(region, score, mapSize)
}

// AssessAll assesses every region of a snapshot under one scenario.
func (e *RiskEngine) AssessAll(regions []model.Region, sc valueobject.ShockScenario) []model.RegionAssessment {
	assessments := make([]model.RegionAssessment, 0, len(regions))
	for _, r := range regions {
		assessments = append(assessments, e.Assess(r, sc))
	}
	return assessments
}
