package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Valentinus295/econsentinel/internal/application/dto"
	"github.com/Valentinus295/econsentinel/internal/application/usecase"
	"github.com/Valentinus295/econsentinel/internal/domain/model"
	"github.com/Valentinus295/econsentinel/internal/domain/port"
	"github.com/Valentinus295/econsentinel/internal/domain/service"
	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
	"github.com/Valentinus295/econsentinel/pkg/events"
)

type mockRegionRepository struct {
	loadAllFunc func(ctx context.Context) ([]model.Region, error)
}

func (m *mockRegionRepository) LoadAll(ctx context.Context) ([]model.Region, error) {
	return m.loadAllFunc(ctx)
}

type mockRunRepository struct {
	saveFunc func(ctx context.Context, run *model.SimulationRun) error
	saved    []*model.SimulationRun
}

func (m *mockRunRepository) Save(ctx context.Context, run *model.SimulationRun) error {
	m.saved = append(m.saved, run)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, run)
	}
	return nil
}

type mockFuelProvider struct {
	fetchPriceFunc func(ctx context.Context) (port.Quote, error)
}

func (m *mockFuelProvider) FetchPrice(ctx context.Context) (port.Quote, error) {
	return m.fetchPriceFunc(ctx)
}

type mockEventPublisher struct {
	publishFunc func(ctx context.Context, topic string, evts ...events.DomainEvent) error
	topics      []string
	published   []events.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	m.topics = append(m.topics, topic)
	m.published = append(m.published, evts...)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, evts...)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine(t *testing.T) *service.RiskEngine {
	t.Helper()
	engine, err := service.NewRiskEngine(valueobject.DefaultRiskPolicy())
	require.NoError(t, err)
	return engine
}

func mustRegion(t *testing.T, name string, lat, lon float64, population int64, baseRisk float64) model.Region {
	t.Helper()
	coord, err := valueobject.NewCoordinate(lat, lon)
	require.NoError(t, err)
	region, err := model.NewRegion(name, coord, population, baseRisk)
	require.NoError(t, err)
	return region
}

func testRegions(t *testing.T) []model.Region {
	t.Helper()
	return []model.Region{
		mustRegion(t, "Nairobi", -1.2921, 36.8219, 4_397_073, 65),
		mustRegion(t, "Mombasa", -4.0435, 39.6682, 1_208_333, 70),
		mustRegion(t, "Kisumu", -0.0917, 34.7680, 610_082, 60),
	}
}

func staticFuel(price string) *mockFuelProvider {
	return &mockFuelProvider{
		fetchPriceFunc: func(ctx context.Context) (port.Quote, error) {
			return port.Quote{Value: decimal.RequireFromString(price), Source: "static"}, nil
		},
	}
}

func TestSimulateScenario_Baseline(t *testing.T) {
	regionRepo := &mockRegionRepository{
		loadAllFunc: func(ctx context.Context) ([]model.Region, error) {
			return testRegions(t), nil
		},
	}
	uc := usecase.NewSimulateScenario(
		regionRepo, nil, staticFuel("215.00"), nil,
		testEngine(t), service.NewFeedComposer(), testLogger(),
	)

	report, err := uc.Execute(context.Background(), dto.SimulateScenarioRequest{})

	require.NoError(t, err)
	require.Len(t, report.Regions, 3)

	// Baseline scenario leaves base risks untouched.
	assert.Equal(t, 65.0, report.Regions[0].LiveRisk)
	assert.Equal(t, 70.0, report.Regions[1].LiveRisk)
	assert.Equal(t, 60.0, report.Regions[2].LiveRisk)

	// Stability = 100 - mean(65, 70, 60).
	assert.InDelta(t, 35.0, report.NationalStability, 1e-9)
	assert.Equal(t, 0, report.CriticalCount)

	// Normal monitoring feed.
	require.Len(t, report.Feed, 3)
	assert.Equal(t, "info", report.Feed[0].Severity)

	assert.True(t, decimal.RequireFromString("215.00").Equal(report.EffectiveFuelPrice))
	assert.False(t, report.FuelPriceFallback)
	assert.NotEqual(t, report.RunID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestSimulateScenario_FuelCrisis(t *testing.T) {
	regionRepo := &mockRegionRepository{
		loadAllFunc: func(ctx context.Context) ([]model.Region, error) {
			return testRegions(t), nil
		},
	}
	uc := usecase.NewSimulateScenario(
		regionRepo, nil, staticFuel("215.00"), nil,
		testEngine(t), service.NewFeedComposer(), testLogger(),
	)

	report, err := uc.Execute(context.Background(), dto.SimulateScenarioRequest{FuelShock: 30})

	require.NoError(t, err)

	// +15 (tier 1) and +20 (tier 2) apply cumulatively, capped at 100.
	assert.Equal(t, 100.0, report.Regions[0].LiveRisk) // 65+35
	assert.Equal(t, 100.0, report.Regions[1].LiveRisk) // 70+35 capped
	assert.Equal(t, 95.0, report.Regions[2].LiveRisk)  // 60+35
	assert.Equal(t, 3, report.CriticalCount)
	for _, r := range report.Regions {
		assert.Equal(t, "critical", r.ThreatLevel)
		assert.Equal(t, "#FF0000", r.Color)
	}

	// Effective fuel price reflects the shock.
	assert.True(t, decimal.RequireFromString("245.00").Equal(report.EffectiveFuelPrice))

	// Alert narrative with the critical-region tail entry.
	require.GreaterOrEqual(t, len(report.Feed), 3)
	assert.Equal(t, "critical", report.Feed[0].Severity)
	assert.Contains(t, report.Feed[0].Headline, "Fuel shock of 30 KES")
	assert.Contains(t, report.Feed[2].Headline, "3 region(s)")
}

func TestSimulateScenario_SubsidyRelief(t *testing.T) {
	regionRepo := &mockRegionRepository{
		loadAllFunc: func(ctx context.Context) ([]model.Region, error) {
			return testRegions(t), nil
		},
	}
	uc := usecase.NewSimulateScenario(
		regionRepo, nil, staticFuel("215.00"), nil,
		testEngine(t), service.NewFeedComposer(), testLogger(),
	)

	report, err := uc.Execute(context.Background(), dto.SimulateScenarioRequest{SubsidyActive: true})

	require.NoError(t, err)
	assert.Equal(t, 40.0, report.Regions[0].LiveRisk)
	assert.Equal(t, 45.0, report.Regions[1].LiveRisk)
	assert.Equal(t, 35.0, report.Regions[2].LiveRisk)

	require.Len(t, report.Feed, 1)
	assert.Equal(t, "notice", report.Feed[0].Severity)
	assert.Contains(t, report.Feed[0].Headline, "STABILIZATION EFFECT")
}

func TestSimulateScenario_RejectsOutOfRangeScenario(t *testing.T) {
	uc := usecase.NewSimulateScenario(
		&mockRegionRepository{loadAllFunc: func(ctx context.Context) ([]model.Region, error) {
			t.Fatal("repository must not be consulted for an invalid scenario")
			return nil, nil
		}},
		nil, staticFuel("215.00"), nil,
		testEngine(t), service.NewFeedComposer(), testLogger(),
	)

	_, err := uc.Execute(context.Background(), dto.SimulateScenarioRequest{FuelShock: 51})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")
}

func TestSimulateScenario_LoadFailureIsFatal(t *testing.T) {
	regionRepo := &mockRegionRepository{
		loadAllFunc: func(ctx context.Context) ([]model.Region, error) {
			return nil, fmt.Errorf("dataset missing")
		},
	}
	uc := usecase.NewSimulateScenario(
		regionRepo, nil, staticFuel("215.00"), nil,
		testEngine(t), service.NewFeedComposer(), testLogger(),
	)

	_, err := uc.Execute(context.Background(), dto.SimulateScenarioRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load region snapshot")
}

func TestSimulateScenario_FuelProviderFailureDegrades(t *testing.T) {
	regionRepo := &mockRegionRepository{
		loadAllFunc: func(ctx context.Context) ([]model.Region, error) {
			return testRegions(t), nil
		},
	}
	fuel := &mockFuelProvider{
		fetchPriceFunc: func(ctx context.Context) (port.Quote, error) {
			return port.Quote{}, fmt.Errorf("upstream timeout")
		},
	}
	uc := usecase.NewSimulateScenario(
		regionRepo, nil, fuel, nil,
		testEngine(t), service.NewFeedComposer(), testLogger(),
	)

	report, err := uc.Execute(context.Background(), dto.SimulateScenarioRequest{})

	require.NoError(t, err, "the pass must survive a ticker failure")
	assert.True(t, report.FuelPriceFallback)
	assert.Equal(t, "unavailable", report.FuelPriceSource)
}

func TestSimulateScenario_ArchivesAndPublishes(t *testing.T) {
	regionRepo := &mockRegionRepository{
		loadAllFunc: func(ctx context.Context) ([]model.Region, error) {
			return testRegions(t), nil
		},
	}
	runRepo := &mockRunRepository{}
	publisher := &mockEventPublisher{}
	uc := usecase.NewSimulateScenario(
		regionRepo, runRepo, staticFuel("215.00"), publisher,
		testEngine(t), service.NewFeedComposer(), testLogger(),
	)

	report, err := uc.Execute(context.Background(), dto.SimulateScenarioRequest{FuelShock: 30})

	require.NoError(t, err)
	require.Len(t, runRepo.saved, 1)
	assert.Equal(t, report.RunID, runRepo.saved[0].ID())

	// One ScenarioSimulated plus one RegionAlertRaised per critical region.
	require.Len(t, publisher.published, 4)
	assert.Equal(t, []string{"sentinel.alerts.v1"}, publisher.topics)
	assert.Equal(t, "sentinel.scenario.simulated", publisher.published[0].EventType())
	assert.Equal(t, "sentinel.region.alert", publisher.published[1].EventType())
}

func TestSimulateScenario_ArchiveFailureDoesNotFailPass(t *testing.T) {
	regionRepo := &mockRegionRepository{
		loadAllFunc: func(ctx context.Context) ([]model.Region, error) {
			return testRegions(t), nil
		},
	}
	runRepo := &mockRunRepository{
		saveFunc: func(ctx context.Context, run *model.SimulationRun) error {
			return fmt.Errorf("connection refused")
		},
	}
	publisher := &mockEventPublisher{
		publishFunc: func(ctx context.Context, topic string, evts ...events.DomainEvent) error {
			return fmt.Errorf("broker unavailable")
		},
	}
	uc := usecase.NewSimulateScenario(
		regionRepo, runRepo, staticFuel("215.00"), publisher,
		testEngine(t), service.NewFeedComposer(), testLogger(),
	)

	report, err := uc.Execute(context.Background(), dto.SimulateScenarioRequest{})

	require.NoError(t, err)
	assert.Len(t, report.Regions, 3)
}

func TestSimulateScenario_EmptySnapshotIsAnError(t *testing.T) {
	regionRepo := &mockRegionRepository{
		loadAllFunc: func(ctx context.Context) ([]model.Region, error) {
			return []model.Region{}, nil
		},
	}
	uc := usecase.NewSimulateScenario(
		regionRepo, nil, staticFuel("215.00"), nil,
		testEngine(t), service.NewFeedComposer(), testLogger(),
	)

	_, err := uc.Execute(context.Background(), dto.SimulateScenarioRequest{})

	require.Error(t, err)
}
