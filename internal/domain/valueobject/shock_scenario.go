package valueobject

import (
	"errors"
	"fmt"
)

// ErrScenarioOutOfRange reports a simulation control outside its bounds.
var ErrScenarioOutOfRange = errors.New("scenario parameter out of range")

// Bounds for the simulation controls. A fuel shock is a KES-per-litre
// adjustment on top of the pump price; a tax hike is a VAT percentage
// point increase.
const (
	MinFuelShock = -10
	MaxFuelShock = 50
	MinTaxHike   = 0
	MaxTaxHike   = 10
)

// ShockScenario is an immutable value object holding the simulation
// parameters of a single what-if pass.
type ShockScenario struct {
	fuelShock     int
	taxHike       int
	subsidyActive bool
}

// NewShockScenario creates a ShockScenario, rejecting out-of-range parameters.
func NewShockScenario(fuelShock, taxHike int, subsidyActive bool) (ShockScenario, error) {
	if fuelShock < MinFuelShock || fuelShock > MaxFuelShock {
		return ShockScenario{}, fmt.Errorf("%w: fuel shock %d not in [%d, %d]", ErrScenarioOutOfRange, fuelShock, MinFuelShock, MaxFuelShock)
	}
	if taxHike < MinTaxHike || taxHike > MaxTaxHike {
		return ShockScenario{}, fmt.Errorf("%w: tax hike %d not in [%d, %d]", ErrScenarioOutOfRange, taxHike, MinTaxHike, MaxTaxHike)
	}
	return ShockScenario{
		fuelShock:     fuelShock,
		taxHike:       taxHike,
		subsidyActive: subsidyActive,
	}, nil
}

// ClampShockScenario creates a ShockScenario, clamping out-of-range
// parameters to their nearest bound. Used at transport boundaries where
// sliders may overshoot.
func ClampShockScenario(fuelShock, taxHike int, subsidyActive bool) ShockScenario {
	if fuelShock < MinFuelShock {
		fuelShock = MinFuelShock
	}
	if fuelShock > MaxFuelShock {
		fuelShock = MaxFuelShock
	}
	if taxHike < MinTaxHike {
		taxHike = MinTaxHike
	}
	if taxHike > MaxTaxHike {
		taxHike = MaxTaxHike
	}
	sc, _ := NewShockScenario(fuelShock, taxHike, subsidyActive)
	return sc
}

// Baseline returns the no-shock scenario (all controls at rest).
func Baseline() ShockScenario {
	return ShockScenario{}
}

// FuelShock returns the KES fuel price adjustment.
func (s ShockScenario) FuelShock() int {
	return s.fuelShock
}

// TaxHike returns the VAT increase in percentage points.
func (s ShockScenario) TaxHike() int {
	return s.taxHike
}

// SubsidyActive reports whether the emergency subsidy is simulated.
func (s ShockScenario) SubsidyActive() bool {
	return s.subsidyActive
}

// IsBaseline reports whether all controls are at their neutral position.
func (s ShockScenario) IsBaseline() bool {
	return s.fuelShock == 0 && s.taxHike == 0 && !s.subsidyActive
}

// String returns a compact human-readable rendering of the scenario.
func (s ShockScenario) String() string {
	return fmt.Sprintf("fuel=%+d tax=%+d subsidy=%t", s.fuelShock, s.taxHike, s.subsidyActive)
}
