package usecase

import (
	"context"
	"log/slog"

	"github.com/Valentinus295/econsentinel/internal/application/dto"
	"github.com/Valentinus295/econsentinel/internal/domain/port"
)

// GetMarketSnapshot assembles the ticker: the KES/USD rate and the EPRA
// pump price from their providers, plus the static reference metrics.
// Provider failures degrade to fallback readings; the snapshot itself
// never fails.
type GetMarketSnapshot struct {
	rate   port.RateProvider
	fuel   port.FuelPriceProvider
	logger *slog.Logger
}

// NewGetMarketSnapshot creates a new GetMarketSnapshot use case.
func NewGetMarketSnapshot(rate port.RateProvider, fuel port.FuelPriceProvider, logger *slog.Logger) *GetMarketSnapshot {
	return &GetMarketSnapshot{rate: rate, fuel: fuel, logger: logger}
}

// Execute fetches the current market snapshot.
func (uc *GetMarketSnapshot) Execute(ctx context.Context) dto.MarketSnapshotResponse {
	rateQuote, err := uc.rate.FetchRate(ctx)
	if err != nil {
		uc.logger.WarnContext(ctx, "forex lookup failed, ticker degraded",
			slog.String("error", err.Error()),
		)
		rateQuote = port.Quote{Source: "unavailable", Fallback: true}
	}

	fuelQuote, err := uc.fuel.FetchPrice(ctx)
	if err != nil {
		uc.logger.WarnContext(ctx, "fuel price lookup failed, ticker degraded",
			slog.String("error", err.Error()),
		)
		fuelQuote = port.Quote{Source: "unavailable", Fallback: true}
	}

	return dto.MarketSnapshotResponse{
		UsdKes:       toQuoteDTO(rateQuote),
		FuelPrice:    toQuoteDTO(fuelQuote),
		MaizePrice:   maizeRetailPrice,
		DroughtIndex: droughtIndexNDVI,
	}
}

func toQuoteDTO(q port.Quote) dto.QuoteDTO {
	return dto.QuoteDTO{
		Value:     q.Value,
		Source:    q.Source,
		Fallback:  q.Fallback,
		FetchedAt: q.FetchedAt,
	}
}
