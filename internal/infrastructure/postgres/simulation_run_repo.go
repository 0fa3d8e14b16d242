// Package postgres archives simulation runs.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Valentinus295/econsentinel/internal/domain/model"
	"github.com/Valentinus295/econsentinel/internal/domain/port"
)

// Compile-time interface check.
var _ port.SimulationRunRepository = (*SimulationRunRepo)(nil)

// SimulationRunRepo implements SimulationRunRepository using PostgreSQL.
type SimulationRunRepo struct {
	pool *pgxpool.Pool
}

// NewSimulationRunRepo creates a new SimulationRunRepo.
func NewSimulationRunRepo(pool *pgxpool.Pool) *SimulationRunRepo {
	return &SimulationRunRepo{pool: pool}
}

// Save persists a run with its per-region assessments, writing domain
// events to the outbox in the same transaction.
func (r *SimulationRunRepo) Save(ctx context.Context, run *model.SimulationRun) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	scenario := run.Scenario()
	_, err = tx.Exec(ctx, `
		INSERT INTO simulation_runs (id, fuel_shock, tax_hike, subsidy_active, national_stability, critical_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID(), scenario.FuelShock(), scenario.TaxHike(), scenario.SubsidyActive(),
		run.NationalStability(), run.CriticalCount(), run.CreatedAt())
	if err != nil {
		return fmt.Errorf("insert simulation run: %w", err)
	}

	for _, a := range run.Assessments() {
		region := a.Region()
		_, err = tx.Exec(ctx, `
			INSERT INTO region_assessments (run_id, region_name, lat, lon, population, base_risk, live_risk, threat_level, map_size)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, run.ID(), region.Name(), region.Coordinate().Lat(), region.Coordinate().Lon(),
			region.Population(), region.BaseRisk(), a.LiveRisk().Value(), string(a.Level()), a.MapSize())
		if err != nil {
			return fmt.Errorf("insert region assessment: %w", err)
		}
	}

	// Write domain events to outbox.
	for _, evt := range run.Events() {
		_, err = tx.Exec(ctx, `
			INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, evt.EventID(), evt.AggregateID(), evt.AggregateType(), evt.EventType(), evt.Payload(), evt.OccurredAt())
		if err != nil {
			return fmt.Errorf("insert outbox event: %w", err)
		}
	}

	return tx.Commit(ctx)
}
