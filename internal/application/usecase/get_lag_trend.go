package usecase

import (
	"context"

	"github.com/Valentinus295/econsentinel/internal/application/dto"
)

// The historical correlation series shown under the heatmap: economic
// stress peaks at week 3, security incidents at week 5, giving the
// 14-day lead time the whole product is built around.
var (
	lagWeeks             = []string{"W1", "W2", "W3", "W4", "W5", "W6"}
	lagEconomicStress    = []float64{20, 25, 80, 85, 90, 88}
	lagSecurityIncidents = []float64{10, 12, 15, 25, 75, 95}
)

const lagLeadTimeDays = 14

// GetLagTrend returns the fixed lag-effect analysis series.
type GetLagTrend struct{}

// NewGetLagTrend creates a new GetLagTrend use case.
func NewGetLagTrend() *GetLagTrend {
	return &GetLagTrend{}
}

// Execute returns the lag-effect series.
func (uc *GetLagTrend) Execute(_ context.Context) dto.LagTrendResponse {
	return dto.LagTrendResponse{
		Weeks:             append([]string(nil), lagWeeks...),
		EconomicStress:    append([]float64(nil), lagEconomicStress...),
		SecurityIncidents: append([]float64(nil), lagSecurityIncidents...),
		LeadTimeDays:      lagLeadTimeDays,
	}
}
