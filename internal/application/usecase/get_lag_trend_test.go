package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Valentinus295/econsentinel/internal/application/usecase"
)

func TestGetLagTrend_Series(t *testing.T) {
	uc := usecase.NewGetLagTrend()

	trend := uc.Execute(context.Background())

	require.Len(t, trend.Weeks, 6)
	require.Len(t, trend.EconomicStress, 6)
	require.Len(t, trend.SecurityIncidents, 6)
	assert.Equal(t, 14, trend.LeadTimeDays)

	// Economic stress peaks two weeks before security incidents do.
	stressPeak, incidentPeak := 0, 0
	for i := range trend.Weeks {
		if trend.EconomicStress[i] > trend.EconomicStress[stressPeak] {
			stressPeak = i
		}
		if trend.SecurityIncidents[i] > trend.SecurityIncidents[incidentPeak] {
			incidentPeak = i
		}
	}
	assert.Equal(t, 2, incidentPeak-stressPeak)
}

func TestGetLagTrend_ReturnsCopies(t *testing.T) {
	uc := usecase.NewGetLagTrend()

	first := uc.Execute(context.Background())
	first.EconomicStress[0] = -1

	second := uc.Execute(context.Background())
	assert.Equal(t, 20.0, second.EconomicStress[0])
}
