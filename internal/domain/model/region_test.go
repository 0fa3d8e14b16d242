package model_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Valentinus295/econsentinel/internal/domain/model"
	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
)

func TestNewRegion_Valid(t *testing.T) {
	coord, err := valueobject.NewCoordinate(-1.2921, 36.8219)
	require.NoError(t, err)

	region, err := model.NewRegion("Nairobi", coord, 4_397_073, 65)

	require.NoError(t, err)
	assert.Equal(t, "Nairobi", region.Name())
	assert.Equal(t, int64(4_397_073), region.Population())
	assert.Equal(t, 65.0, region.BaseRisk())

	_, ok := region.FuelPrice()
	assert.False(t, ok, "no fuel price recorded yet")
}

func TestNewRegion_RequiresName(t *testing.T) {
	coord, _ := valueobject.NewCoordinate(0, 0)

	_, err := model.NewRegion("", coord, 100, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestNewRegion_RejectsNegativePopulation(t *testing.T) {
	coord, _ := valueobject.NewCoordinate(0, 0)

	_, err := model.NewRegion("Lamu", coord, -1, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "population")
}

func TestNewRegion_RejectsNonFiniteBaseRisk(t *testing.T) {
	coord, _ := valueobject.NewCoordinate(0, 0)

	_, err := model.NewRegion("Lamu", coord, 100, math.NaN())
	require.Error(t, err)

	_, err = model.NewRegion("Lamu", coord, 100, math.Inf(1))
	require.Error(t, err)
}

func TestRegion_WithFuelPrice(t *testing.T) {
	coord, _ := valueobject.NewCoordinate(-4.0435, 39.6682)
	region, err := model.NewRegion("Mombasa", coord, 1_208_333, 70)
	require.NoError(t, err)

	priced := region.WithFuelPrice(decimal.NewFromFloat(217.36))

	price, ok := priced.FuelPrice()
	require.True(t, ok)
	assert.True(t, decimal.NewFromFloat(217.36).Equal(price))

	// Original is unchanged.
	_, ok = region.FuelPrice()
	assert.False(t, ok)
}
