package valueobject

import "fmt"

// RiskPolicy holds the tunable constants of the risk transform. These are
// the only values that have changed release-to-release, so they are kept
// together and injected rather than scattered as literals.
type RiskPolicy struct {
	// FuelTier1 / FuelBonus1: a fuel shock strictly greater than FuelTier1
	// adds FuelBonus1 risk points. FuelTier2 / FuelBonus2 form a second,
	// cumulative tier (FuelTier2 > FuelTier1).
	FuelTier1  int
	FuelBonus1 float64
	FuelTier2  int
	FuelBonus2 float64

	// TaxThreshold / TaxMultiplier: a tax hike strictly greater than
	// TaxThreshold adds taxHike * TaxMultiplier risk points.
	TaxThreshold  int
	TaxMultiplier float64

	// SubsidyRelief is subtracted when the emergency subsidy is active.
	SubsidyRelief float64

	// MapSizeDivisor scales raw population into a display marker size.
	// It has no effect on risk.
	MapSizeDivisor float64
}

// DefaultRiskPolicy returns the canonical policy constants of the first
// production release.
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		FuelTier1:      10,
		FuelBonus1:     15,
		FuelTier2:      25,
		FuelBonus2:     20,
		TaxThreshold:   2,
		TaxMultiplier:  1.5,
		SubsidyRelief:  25,
		MapSizeDivisor: 1000,
	}
}

// Validate checks the structural invariants of the policy.
func (p RiskPolicy) Validate() error {
	if p.FuelTier2 <= p.FuelTier1 {
		return fmt.Errorf("fuel tier 2 threshold (%d) must be greater than tier 1 (%d)", p.FuelTier2, p.FuelTier1)
	}
	if p.FuelBonus1 < 0 || p.FuelBonus2 < 0 {
		return fmt.Errorf("fuel bonuses must be non-negative")
	}
	if p.TaxMultiplier < 0 {
		return fmt.Errorf("tax multiplier must be non-negative")
	}
	if p.SubsidyRelief < 0 {
		return fmt.Errorf("subsidy relief must be non-negative")
	}
	if p.MapSizeDivisor <= 0 {
		return fmt.Errorf("map size divisor must be positive, got %v", p.MapSizeDivisor)
	}
	return nil
}
