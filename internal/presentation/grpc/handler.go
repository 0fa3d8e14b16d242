package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Valentinus295/econsentinel/internal/application/dto"
	"github.com/Valentinus295/econsentinel/internal/application/usecase"
	"github.com/Valentinus295/econsentinel/internal/domain/port"
	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
	"github.com/Valentinus295/econsentinel/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that Handler implements SentinelServiceServer.
var _ SentinelServiceServer = (*Handler)(nil)

// Handler implements the SentinelServiceServer gRPC interface.
type Handler struct {
	UnimplementedSentinelServiceServer
	simulate *usecase.SimulateScenario
	snapshot *usecase.GetMarketSnapshot
	lagTrend *usecase.GetLagTrend
	logger   *slog.Logger
}

// NewHandler creates a new gRPC Handler.
func NewHandler(
	simulate *usecase.SimulateScenario,
	snapshot *usecase.GetMarketSnapshot,
	lagTrend *usecase.GetLagTrend,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		simulate: simulate,
		snapshot: snapshot,
		lagTrend: lagTrend,
		logger:   logger,
	}
}

// Proto-aligned request/response message types.

// SimulateScenarioRequest represents the proto SimulateScenarioRequest message.
type SimulateScenarioRequest struct {
	FuelShock     int32 `json:"fuel_shock"`
	TaxHike       int32 `json:"tax_hike"`
	SubsidyActive bool  `json:"subsidy_active"`
}

// RegionAssessmentMsg represents the proto RegionAssessment message.
type RegionAssessmentMsg struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Population  int64   `json:"population"`
	BaseRisk    float64 `json:"base_risk"`
	LiveRisk    float64 `json:"live_risk"`
	ThreatLevel string  `json:"threat_level"`
	Color       string  `json:"color"`
	MapSize     float64 `json:"map_size"`
}

// FeedEntryMsg represents the proto FeedEntry message.
type FeedEntryMsg struct {
	Severity string `json:"severity"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// SimulateScenarioResponse represents the proto SimulateScenarioResponse message.
type SimulateScenarioResponse struct {
	RunID              string                 `json:"run_id"`
	NationalStability  float64                `json:"national_stability"`
	CriticalCount      int32                  `json:"critical_count"`
	EffectiveFuelPrice string                 `json:"effective_fuel_price"`
	FuelPriceSource    string                 `json:"fuel_price_source"`
	FuelPriceFallback  bool                   `json:"fuel_price_fallback"`
	MaizePrice         string                 `json:"maize_price"`
	DroughtIndex       float64                `json:"drought_index"`
	Regions            []*RegionAssessmentMsg `json:"regions"`
	Feed               []*FeedEntryMsg        `json:"feed"`
	CreatedAt          string                 `json:"created_at"`
}

// GetMarketSnapshotRequest represents the proto GetMarketSnapshotRequest message.
type GetMarketSnapshotRequest struct{}

// QuoteMsg represents the proto Quote message.
type QuoteMsg struct {
	Value     string `json:"value"`
	Source    string `json:"source"`
	Fallback  bool   `json:"fallback"`
	FetchedAt string `json:"fetched_at"`
}

// GetMarketSnapshotResponse represents the proto GetMarketSnapshotResponse message.
type GetMarketSnapshotResponse struct {
	UsdKes       *QuoteMsg `json:"usd_kes"`
	FuelPrice    *QuoteMsg `json:"fuel_price"`
	MaizePrice   string    `json:"maize_price"`
	DroughtIndex float64   `json:"drought_index"`
}

// GetLagTrendRequest represents the proto GetLagTrendRequest message.
type GetLagTrendRequest struct{}

// GetLagTrendResponse represents the proto GetLagTrendResponse message.
type GetLagTrendResponse struct {
	Weeks             []string  `json:"weeks"`
	EconomicStress    []float64 `json:"economic_stress"`
	SecurityIncidents []float64 `json:"security_incidents"`
	LeadTimeDays      int32     `json:"lead_time_days"`
}

// SimulateScenario runs a what-if pass and returns the full situation report.
func (h *Handler) SimulateScenario(ctx context.Context, req *SimulateScenarioRequest) (*SimulateScenarioResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAnalyst); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	dtoReq := dto.SimulateScenarioRequest{
		FuelShock:     int(req.FuelShock),
		TaxHike:       int(req.TaxHike),
		SubsidyActive: req.SubsidyActive,
	}

	resp, err := h.simulate.Execute(ctx, dtoReq)
	if err != nil {
		switch {
		case errors.Is(err, valueobject.ErrScenarioOutOfRange):
			return nil, status.Errorf(codes.InvalidArgument, "%v", err)
		case errors.Is(err, port.ErrDataUnavailable):
			h.logger.Error("SimulateScenario failed: dataset unavailable", "error", err)
			return nil, status.Error(codes.FailedPrecondition, "region dataset unavailable")
		default:
			h.logger.Error("SimulateScenario failed", "error", err)
			return nil, status.Error(codes.Internal, "internal error")
		}
	}

	h.logger.Info("SimulateScenario succeeded",
		"run_id", resp.RunID.String(),
		"fuel_shock", req.FuelShock,
		"tax_hike", req.TaxHike,
		"subsidy_active", req.SubsidyActive,
		"critical_count", resp.CriticalCount,
	)

	regions := make([]*RegionAssessmentMsg, 0, len(resp.Regions))
	for _, r := range resp.Regions {
		regions = append(regions, &RegionAssessmentMsg{
			Name:        r.Name,
			Lat:         r.Lat,
			Lon:         r.Lon,
			Population:  r.Population,
			BaseRisk:    r.BaseRisk,
			LiveRisk:    r.LiveRisk,
			ThreatLevel: r.ThreatLevel,
			Color:       r.Color,
			MapSize:     r.MapSize,
		})
	}
	feed := make([]*FeedEntryMsg, 0, len(resp.Feed))
	for _, e := range resp.Feed {
		feed = append(feed, &FeedEntryMsg{
			Severity: e.Severity,
			Headline: e.Headline,
			Body:     e.Body,
		})
	}

	return &SimulateScenarioResponse{
		RunID:              resp.RunID.String(),
		NationalStability:  resp.NationalStability,
		CriticalCount:      int32(resp.CriticalCount),
		EffectiveFuelPrice: resp.EffectiveFuelPrice.String(),
		FuelPriceSource:    resp.FuelPriceSource,
		FuelPriceFallback:  resp.FuelPriceFallback,
		MaizePrice:         resp.MaizePrice.String(),
		DroughtIndex:       resp.DroughtIndex,
		Regions:            regions,
		Feed:               feed,
		CreatedAt:          resp.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// GetMarketSnapshot returns the current ticker readings.
func (h *Handler) GetMarketSnapshot(ctx context.Context, req *GetMarketSnapshotRequest) (*GetMarketSnapshotResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAnalyst, auth.RoleViewer); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	snap := h.snapshot.Execute(ctx)

	return &GetMarketSnapshotResponse{
		UsdKes:       toQuoteMsg(snap.UsdKes),
		FuelPrice:    toQuoteMsg(snap.FuelPrice),
		MaizePrice:   snap.MaizePrice.String(),
		DroughtIndex: snap.DroughtIndex,
	}, nil
}

// GetLagTrend returns the historical lag-effect series.
func (h *Handler) GetLagTrend(ctx context.Context, req *GetLagTrendRequest) (*GetLagTrendResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAnalyst, auth.RoleViewer); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	trend := h.lagTrend.Execute(ctx)

	return &GetLagTrendResponse{
		Weeks:             trend.Weeks,
		EconomicStress:    trend.EconomicStress,
		SecurityIncidents: trend.SecurityIncidents,
		LeadTimeDays:      int32(trend.LeadTimeDays),
	}, nil
}

func toQuoteMsg(q dto.QuoteDTO) *QuoteMsg {
	msg := &QuoteMsg{
		Value:    q.Value.String(),
		Source:   q.Source,
		Fallback: q.Fallback,
	}
	if !q.FetchedAt.IsZero() {
		msg.FetchedAt = q.FetchedAt.UTC().Format(time.RFC3339)
	}
	return msg
}
