package event

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Valentinus295/econsentinel/pkg/events"
)

const AggregateTypeSimulationRun = "SimulationRun"

// ScenarioSimulated is emitted when a full simulation pass completes.
type ScenarioSimulated struct {
	events.BaseEvent
	RunID             uuid.UUID `json:"run_id"`
	FuelShock         int       `json:"fuel_shock"`
	TaxHike           int       `json:"tax_hike"`
	SubsidyActive     bool      `json:"subsidy_active"`
	NationalStability float64   `json:"national_stability"`
	RegionCount       int       `json:"region_count"`
	CriticalCount     int       `json:"critical_count"`
}

// NewScenarioSimulated creates a ScenarioSimulated domain event.
func NewScenarioSimulated(runID uuid.UUID, fuelShock, taxHike int, subsidyActive bool, nationalStability float64, regionCount, criticalCount int) ScenarioSimulated {
	payload, _ := json.Marshal(struct {
		RunID             uuid.UUID `json:"run_id"`
		FuelShock         int       `json:"fuel_shock"`
		TaxHike           int       `json:"tax_hike"`
		SubsidyActive     bool      `json:"subsidy_active"`
		NationalStability float64   `json:"national_stability"`
		RegionCount       int       `json:"region_count"`
		CriticalCount     int       `json:"critical_count"`
	}{runID, fuelShock, taxHike, subsidyActive, nationalStability, regionCount, criticalCount})

	return ScenarioSimulated{
		BaseEvent:         events.NewBaseEvent("sentinel.scenario.simulated", runID, AggregateTypeSimulationRun, payload),
		RunID:             runID,
		FuelShock:         fuelShock,
		TaxHike:           taxHike,
		SubsidyActive:     subsidyActive,
		NationalStability: nationalStability,
		RegionCount:       regionCount,
		CriticalCount:     criticalCount,
	}
}

// RegionAlertRaised is emitted for every region a simulation drives to critical.
type RegionAlertRaised struct {
	events.BaseEvent
	RunID    uuid.UUID `json:"run_id"`
	Region   string    `json:"region"`
	LiveRisk float64   `json:"live_risk"`
}

// NewRegionAlertRaised creates a RegionAlertRaised domain event.
func NewRegionAlertRaised(runID uuid.UUID, region string, liveRisk float64) RegionAlertRaised {
	payload, _ := json.Marshal(struct {
		RunID    uuid.UUID `json:"run_id"`
		Region   string    `json:"region"`
		LiveRisk float64   `json:"live_risk"`
	}{runID, region, liveRisk})

	return RegionAlertRaised{
		BaseEvent: events.NewBaseEvent("sentinel.region.alert", runID, AggregateTypeSimulationRun, payload),
		RunID:     runID,
		Region:    region,
		LiveRisk:  liveRisk,
	}
}
