package port

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Valentinus295/econsentinel/internal/domain/model"
	"github.com/Valentinus295/econsentinel/pkg/events"
)

// ErrDataUnavailable reports that the region snapshot cannot be served:
// missing, unreadable, or failed validation. There is never a partial
// snapshot behind this error.
var ErrDataUnavailable = errors.New("region dataset unavailable")

// RegionRepository loads the base region snapshot. The snapshot is
// immutable for the session; implementations may cache the parsed result.
type RegionRepository interface {
	// LoadAll returns every region of the snapshot, or a data-unavailable
	// error. There is no partial result: either the full table parses or
	// the load fails.
	LoadAll(ctx context.Context) ([]model.Region, error)
}

// SimulationRunRepository archives completed simulation runs.
type SimulationRunRepository interface {
	// Save persists a run together with its per-region assessments,
	// writing domain events to the outbox in the same transaction.
	Save(ctx context.Context, run *model.SimulationRun) error
}

// Quote is a scalar market reading with provenance. Fallback is true when
// the documented fallback constant was substituted for a live value.
type Quote struct {
	Value     decimal.Decimal
	Source    string
	Fallback  bool
	FetchedAt time.Time
}

// RateProvider is a port for the KES-per-USD spot rate lookup.
type RateProvider interface {
	FetchRate(ctx context.Context) (Quote, error)
}

// FuelPriceProvider is a port for the EPRA pump price lookup (KES/litre).
type FuelPriceProvider interface {
	FetchPrice(ctx context.Context) (Quote, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}
