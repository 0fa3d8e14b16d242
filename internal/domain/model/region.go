package model

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
)

// Region is one geographic unit of the monitored snapshot. The base risk
// is the precomputed historical score the live transform starts from; it
// is immutable for the lifetime of the session.
type Region struct {
	name         string
	coord        valueobject.Coordinate
	population   int64
	baseRisk     float64
	fuelPrice    decimal.Decimal
	hasFuelPrice bool
}

// NewRegion creates a Region with full validation.
func NewRegion(name string, coord valueobject.Coordinate, population int64, baseRisk float64) (Region, error) {
	if name == "" {
		return Region{}, fmt.Errorf("region name is required")
	}
	if population < 0 {
		return Region{}, fmt.Errorf("region %s: population must be non-negative, got %d", name, population)
	}
	if math.IsNaN(baseRisk) || math.IsInf(baseRisk, 0) {
		return Region{}, fmt.Errorf("region %s: base risk must be a finite number", name)
	}
	return Region{
		name:       name,
		coord:      coord,
		population: population,
		baseRisk:   baseRisk,
	}, nil
}

// WithFuelPrice returns a copy of the region carrying a baseline pump
// price. The price is a display metric only; it never feeds back into risk.
func (r Region) WithFuelPrice(price decimal.Decimal) Region {
	r.fuelPrice = price
	r.hasFuelPrice = true
	return r
}

// Name returns the region name.
func (r Region) Name() string {
	return r.name
}

// Coordinate returns the region's map placement.
func (r Region) Coordinate() valueobject.Coordinate {
	return r.coord
}

// Population returns the region's population count.
func (r Region) Population() int64 {
	return r.population
}

// BaseRisk returns the precomputed historical risk score.
func (r Region) BaseRisk() float64 {
	return r.baseRisk
}

// FuelPrice returns the baseline pump price and whether one was recorded.
func (r Region) FuelPrice() (decimal.Decimal, bool) {
	return r.fuelPrice, r.hasFuelPrice
}
