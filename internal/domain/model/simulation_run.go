package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Valentinus295/econsentinel/internal/domain/event"
	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
	"github.com/Valentinus295/econsentinel/pkg/events"
)

// RegionAssessment is the derived picture of one region under a scenario:
// the live risk score plus the display-only map marker size. Assessments
// are recomputed every pass and never mutate the underlying region.
type RegionAssessment struct {
	region   Region
	liveRisk valueobject.RiskScore
	mapSize  float64
}

// NewRegionAssessment creates a RegionAssessment.
func NewRegionAssessment(region Region, liveRisk valueobject.RiskScore, mapSize float64) RegionAssessment {
	return RegionAssessment{
		region:   region,
		liveRisk: liveRisk,
		mapSize:  mapSize,
	}
}

// Region returns the assessed region.
func (a RegionAssessment) Region() Region {
	return a.region
}

// LiveRisk returns the scenario-adjusted risk score.
func (a RegionAssessment) LiveRisk() valueobject.RiskScore {
	return a.liveRisk
}

// Level returns the threat level of the live risk score.
func (a RegionAssessment) Level() valueobject.ThreatLevel {
	return a.liveRisk.Level()
}

// MapSize returns the scaled display marker size.
func (a RegionAssessment) MapSize() float64 {
	return a.mapSize
}

// SimulationRun is the root aggregate of one complete what-if pass: the
// scenario, every region's assessment, and the headline stability figure.
type SimulationRun struct {
	events.EventCollector

	id                uuid.UUID
	scenario          valueobject.ShockScenario
	assessments       []RegionAssessment
	nationalStability float64
	createdAt         time.Time
}

// NewSimulationRun creates a SimulationRun from the per-region assessments
// of a pass. It computes the national stability headline (100 minus the
// mean live risk) and records domain events: one ScenarioSimulated for the
// run and one RegionAlertRaised per critical region.
func NewSimulationRun(scenario valueobject.ShockScenario, assessments []RegionAssessment) (*SimulationRun, error) {
	if len(assessments) == 0 {
		return nil, fmt.Errorf("a simulation run requires at least one region assessment")
	}

	var total float64
	critical := 0
	for _, a := range assessments {
		total += a.LiveRisk().Value()
		if a.Level() == valueobject.ThreatCritical {
			critical++
		}
	}
	meanRisk := total / float64(len(assessments))

	run := &SimulationRun{
		id:                uuid.New(),
		scenario:          scenario,
		assessments:       assessments,
		nationalStability: 100 - meanRisk,
		createdAt:         time.Now().UTC(),
	}

	run.Record(event.NewScenarioSimulated(
		run.id,
		scenario.FuelShock(),
		scenario.TaxHike(),
		scenario.SubsidyActive(),
		run.nationalStability,
		len(assessments),
		critical,
	))
	for _, a := range assessments {
		if a.Level() == valueobject.ThreatCritical {
			run.Record(event.NewRegionAlertRaised(run.id, a.Region().Name(), a.LiveRisk().Value()))
		}
	}

	return run, nil
}

// ID returns the run identifier.
func (r *SimulationRun) ID() uuid.UUID {
	return r.id
}

// Scenario returns the simulated shock scenario.
func (r *SimulationRun) Scenario() valueobject.ShockScenario {
	return r.scenario
}

// Assessments returns the per-region assessments of the pass.
func (r *SimulationRun) Assessments() []RegionAssessment {
	return r.assessments
}

// NationalStability returns the headline stability percentage.
func (r *SimulationRun) NationalStability() float64 {
	return r.nationalStability
}

// CriticalCount returns the number of regions assessed as critical.
func (r *SimulationRun) CriticalCount() int {
	n := 0
	for _, a := range r.assessments {
		if a.Level() == valueobject.ThreatCritical {
			n++
		}
	}
	return n
}

// CreatedAt returns the time the run was computed.
func (r *SimulationRun) CreatedAt() time.Time {
	return r.createdAt
}
