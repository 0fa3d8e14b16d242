package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Simulation DTOs ---

// SimulateScenarioRequest is the input DTO for a what-if simulation pass.
type SimulateScenarioRequest struct {
	FuelShock     int
	TaxHike       int
	SubsidyActive bool
}

// RegionAssessmentDTO transfers one region's scenario-adjusted picture.
type RegionAssessmentDTO struct {
	Name        string
	Lat         float64
	Lon         float64
	Population  int64
	BaseRisk    float64
	LiveRisk    float64
	ThreatLevel string
	Color       string
	MapSize     float64
}

// FeedEntryDTO transfers one intelligence feed line.
type FeedEntryDTO struct {
	Severity string
	Headline string
	Body     string
}

// SimulationReportResponse is the output DTO of a full simulation pass.
type SimulationReportResponse struct {
	RunID             uuid.UUID
	FuelShock         int
	TaxHike           int
	SubsidyActive     bool
	NationalStability float64
	CriticalCount     int

	// Ticker metrics.
	EffectiveFuelPrice decimal.Decimal
	FuelPriceSource    string
	FuelPriceFallback  bool
	MaizePrice         decimal.Decimal
	DroughtIndex       float64

	Regions []RegionAssessmentDTO
	Feed    []FeedEntryDTO

	CreatedAt time.Time
}

// --- Market snapshot DTOs ---

// QuoteDTO transfers one scalar market reading with provenance.
type QuoteDTO struct {
	Value     decimal.Decimal
	Source    string
	Fallback  bool
	FetchedAt time.Time
}

// MarketSnapshotResponse is the output DTO of the ticker lookup.
type MarketSnapshotResponse struct {
	UsdKes       QuoteDTO
	FuelPrice    QuoteDTO
	MaizePrice   decimal.Decimal
	DroughtIndex float64
}

// --- Lag trend DTOs ---

// LagTrendResponse is the output DTO of the historical lag-effect series.
type LagTrendResponse struct {
	Weeks             []string
	EconomicStress    []float64
	SecurityIncidents []float64
	LeadTimeDays      int
}
