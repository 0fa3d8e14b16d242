package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Valentinus295/econsentinel/internal/application/dto"
	"github.com/Valentinus295/econsentinel/internal/domain/model"
	"github.com/Valentinus295/econsentinel/internal/domain/port"
	"github.com/Valentinus295/econsentinel/internal/domain/service"
	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
)

const TopicAlerts = "sentinel.alerts.v1"

// Static reference metrics of the current release. Live collectors for
// these sources are not wired yet; the ticker carries the latest
// published figures.
var (
	maizeRetailPrice = decimal.NewFromInt(230) // KES per 2kg, KNBS retail survey
	droughtIndexNDVI = 0.45                    // Sentinel-2 composite
)

// SimulateScenario runs one full what-if pass: load the region snapshot,
// score every region under the scenario, compose the headline metrics and
// the intelligence feed, then archive the run and publish its events on a
// best-effort basis.
type SimulateScenario struct {
	regions   port.RegionRepository
	runs      port.SimulationRunRepository
	fuel      port.FuelPriceProvider
	publisher port.EventPublisher
	engine    *service.RiskEngine
	feed      *service.FeedComposer
	logger    *slog.Logger
}

// NewSimulateScenario creates a new SimulateScenario use case. The run
// repository and publisher may be nil; the pass then skips archiving and
// event publication.
func NewSimulateScenario(
	regions port.RegionRepository,
	runs port.SimulationRunRepository,
	fuel port.FuelPriceProvider,
	publisher port.EventPublisher,
	engine *service.RiskEngine,
	feed *service.FeedComposer,
	logger *slog.Logger,
) *SimulateScenario {
	return &SimulateScenario{
		regions:   regions,
		runs:      runs,
		fuel:      fuel,
		publisher: publisher,
		engine:    engine,
		feed:      feed,
		logger:    logger,
	}
}

// Execute runs the simulation pass for the requested scenario.
func (uc *SimulateScenario) Execute(ctx context.Context, req dto.SimulateScenarioRequest) (dto.SimulationReportResponse, error) {
	scenario, err := valueobject.NewShockScenario(req.FuelShock, req.TaxHike, req.SubsidyActive)
	if err != nil {
		return dto.SimulationReportResponse{}, fmt.Errorf("invalid scenario: %w", err)
	}

	// A load failure is fatal to the pass: no partial table, no defaults.
	regions, err := uc.regions.LoadAll(ctx)
	if err != nil {
		return dto.SimulationReportResponse{}, fmt.Errorf("load region snapshot: %w", err)
	}

	assessments := uc.engine.AssessAll(regions, scenario)
	run, err := model.NewSimulationRun(scenario, assessments)
	if err != nil {
		return dto.SimulationReportResponse{}, fmt.Errorf("build simulation run: %w", err)
	}

	// The fuel quote is a display metric: a provider failure degrades to
	// the fallback reading and never interrupts the pass.
	fuelQuote := uc.fetchFuelQuote(ctx)
	effectiveFuel := fuelQuote.Value.Add(decimal.NewFromInt(int64(scenario.FuelShock())))

	feed := uc.feed.Compose(scenario, run.CriticalCount())

	// Archiving and event publication are best effort: the report is
	// already computed and the operator should see it regardless.
	if uc.runs != nil {
		if err := uc.runs.Save(ctx, run); err != nil {
			uc.logger.WarnContext(ctx, "failed to archive simulation run",
				slog.String("run_id", run.ID().String()),
				slog.String("error", err.Error()),
			)
		}
	}
	if uc.publisher != nil {
		if evts := run.ClearEvents(); len(evts) > 0 {
			if err := uc.publisher.Publish(ctx, TopicAlerts, evts...); err != nil {
				uc.logger.WarnContext(ctx, "failed to publish simulation events",
					slog.String("run_id", run.ID().String()),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return toSimulationReport(run, fuelQuote, effectiveFuel, feed), nil
}

func (uc *SimulateScenario) fetchFuelQuote(ctx context.Context) port.Quote {
	quote, err := uc.fuel.FetchPrice(ctx)
	if err != nil {
		uc.logger.WarnContext(ctx, "fuel price lookup failed, ticker degraded",
			slog.String("error", err.Error()),
		)
		return port.Quote{Source: "unavailable", Fallback: true}
	}
	return quote
}

func toSimulationReport(run *model.SimulationRun, fuelQuote port.Quote, effectiveFuel decimal.Decimal, feed []service.FeedEntry) dto.SimulationReportResponse {
	regions := make([]dto.RegionAssessmentDTO, 0, len(run.Assessments()))
	for _, a := range run.Assessments() {
		region := a.Region()
		regions = append(regions, dto.RegionAssessmentDTO{
			Name:        region.Name(),
			Lat:         region.Coordinate().Lat(),
			Lon:         region.Coordinate().Lon(),
			Population:  region.Population(),
			BaseRisk:    region.BaseRisk(),
			LiveRisk:    a.LiveRisk().Value(),
			ThreatLevel: a.Level().String(),
			Color:       a.Level().Color(),
			MapSize:     a.MapSize(),
		})
	}

	entries := make([]dto.FeedEntryDTO, 0, len(feed))
	for _, e := range feed {
		entries = append(entries, dto.FeedEntryDTO{
			Severity: string(e.Severity),
			Headline: e.Headline,
			Body:     e.Body,
		})
	}

	return dto.SimulationReportResponse{
		RunID:              run.ID(),
		FuelShock:          run.Scenario().FuelShock(),
		TaxHike:            run.Scenario().TaxHike(),
		SubsidyActive:      run.Scenario().SubsidyActive(),
		NationalStability:  run.NationalStability(),
		CriticalCount:      run.CriticalCount(),
		EffectiveFuelPrice: effectiveFuel,
		FuelPriceSource:    fuelQuote.Source,
		FuelPriceFallback:  fuelQuote.Fallback,
		MaizePrice:         maizeRetailPrice,
		DroughtIndex:       droughtIndexNDVI,
		Regions:            regions,
		Feed:               entries,
		CreatedAt:          run.CreatedAt(),
	}
}
