package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Valentinus295/econsentinel/internal/domain/port"
)

// HTTPRateProvider fetches the KES-per-USD rate from an
// exchangerate-api.com compatible endpoint.
type HTTPRateProvider struct {
	url    string
	client *http.Client
}

// NewHTTPRateProvider creates a rate provider for the given endpoint.
// Every call is bounded by timeout.
func NewHTTPRateProvider(url string, timeout time.Duration) *HTTPRateProvider {
	return &HTTPRateProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type exchangeRateResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// FetchRate fetches the current KES rate for one USD.
func (p *HTTPRateProvider) FetchRate(ctx context.Context) (port.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return port.Quote{}, fmt.Errorf("build forex request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return port.Quote{}, fmt.Errorf("fetch forex rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return port.Quote{}, fmt.Errorf("forex endpoint returned status %d", resp.StatusCode)
	}

	var body exchangeRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return port.Quote{}, fmt.Errorf("decode forex response: %w", err)
	}

	rate, ok := body.Rates["KES"]
	if !ok {
		return port.Quote{}, fmt.Errorf("forex response has no KES rate")
	}
	if rate <= 0 {
		return port.Quote{}, fmt.Errorf("forex response has non-positive KES rate %v", rate)
	}

	return port.Quote{
		Value:     decimal.NewFromFloat(rate),
		Source:    "exchangerate-api",
		FetchedAt: time.Now().UTC(),
	}, nil
}

// HTTPFuelPriceProvider fetches the pump price from an EPRA-style JSON
// endpoint of the form {"petrol_kes_per_litre": 217.36}.
type HTTPFuelPriceProvider struct {
	url    string
	client *http.Client
}

// NewHTTPFuelPriceProvider creates a fuel price provider for the given
// endpoint. Every call is bounded by timeout.
func NewHTTPFuelPriceProvider(url string, timeout time.Duration) *HTTPFuelPriceProvider {
	return &HTTPFuelPriceProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type fuelPriceResponse struct {
	PetrolKESPerLitre decimal.Decimal `json:"petrol_kes_per_litre"`
}

// FetchPrice fetches the current pump price in KES per litre.
func (p *HTTPFuelPriceProvider) FetchPrice(ctx context.Context) (port.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return port.Quote{}, fmt.Errorf("build fuel price request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return port.Quote{}, fmt.Errorf("fetch fuel price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return port.Quote{}, fmt.Errorf("fuel endpoint returned status %d", resp.StatusCode)
	}

	var body fuelPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return port.Quote{}, fmt.Errorf("decode fuel price response: %w", err)
	}
	if body.PetrolKESPerLitre.IsZero() || body.PetrolKESPerLitre.IsNegative() {
		return port.Quote{}, fmt.Errorf("fuel response has non-positive price %s", body.PetrolKESPerLitre)
	}

	return port.Quote{
		Value:     body.PetrolKESPerLitre,
		Source:    "epra",
		FetchedAt: time.Now().UTC(),
	}, nil
}
