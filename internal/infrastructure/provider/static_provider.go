// Package provider implements the market lookup ports: static readings
// for development and CI, HTTP clients for live deployments, and a
// caching decorator that degrades to documented fallback constants.
package provider

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Valentinus295/econsentinel/internal/domain/port"
)

// Documented fallback readings, also served by the static providers.
var (
	// FallbackFuelPrice is the EPRA pump price assumed when no live
	// reading is available, in KES per litre.
	FallbackFuelPrice = decimal.RequireFromString("215.00")

	// FallbackUsdKes is the KES-per-USD rate assumed when no live
	// reading is available.
	FallbackUsdKes = decimal.RequireFromString("129.50")
)

// StaticRateProvider serves the fallback KES/USD rate. It is intended
// for development, testing, and CI environments.
type StaticRateProvider struct{}

// NewStaticRateProvider creates a new StaticRateProvider.
func NewStaticRateProvider() *StaticRateProvider {
	return &StaticRateProvider{}
}

// FetchRate returns the static KES/USD reading.
func (p *StaticRateProvider) FetchRate(_ context.Context) (port.Quote, error) {
	return port.Quote{
		Value:     FallbackUsdKes,
		Source:    "static",
		FetchedAt: time.Now().UTC(),
	}, nil
}

// StaticFuelPriceProvider serves the fallback EPRA pump price. It is
// intended for development, testing, and CI environments.
type StaticFuelPriceProvider struct{}

// NewStaticFuelPriceProvider creates a new StaticFuelPriceProvider.
func NewStaticFuelPriceProvider() *StaticFuelPriceProvider {
	return &StaticFuelPriceProvider{}
}

// FetchPrice returns the static pump price reading.
func (p *StaticFuelPriceProvider) FetchPrice(_ context.Context) (port.Quote, error) {
	return port.Quote{
		Value:     FallbackFuelPrice,
		Source:    "static",
		FetchedAt: time.Now().UTC(),
	}, nil
}
