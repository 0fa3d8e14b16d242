package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Valentinus295/econsentinel/internal/domain/service"
	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
)

func TestCompose_FuelAlertWinsOverSubsidy(t *testing.T) {
	composer := service.NewFeedComposer()
	// Both a large fuel shock and an active subsidy: the alert rule fires.
	sc, err := valueobject.NewShockScenario(20, 0, true)
	require.NoError(t, err)

	feed := composer.Compose(sc, 0)

	require.NotEmpty(t, feed)
	assert.Equal(t, service.FeedCritical, feed[0].Severity)
	assert.Contains(t, feed[0].Headline, "20 KES")
}

func TestCompose_FuelAlertThresholdIsStrict(t *testing.T) {
	composer := service.NewFeedComposer()

	// Exactly 15: no alert narrative.
	at, err := valueobject.NewShockScenario(15, 0, false)
	require.NoError(t, err)
	feed := composer.Compose(at, 0)
	assert.Equal(t, service.FeedInfo, feed[0].Severity)

	// 16: alert narrative.
	above, err := valueobject.NewShockScenario(16, 0, false)
	require.NoError(t, err)
	feed = composer.Compose(above, 0)
	assert.Equal(t, service.FeedCritical, feed[0].Severity)
}

func TestCompose_CriticalCountSharpensAlert(t *testing.T) {
	composer := service.NewFeedComposer()
	sc, err := valueobject.NewShockScenario(30, 0, false)
	require.NoError(t, err)

	withoutRegions := composer.Compose(sc, 0)
	withRegions := composer.Compose(sc, 3)

	assert.Len(t, withRegions, len(withoutRegions)+1)
	assert.Contains(t, withRegions[len(withRegions)-1].Headline, "3 region(s)")
}

func TestCompose_SubsidyFeed(t *testing.T) {
	composer := service.NewFeedComposer()
	sc, err := valueobject.NewShockScenario(0, 0, true)
	require.NoError(t, err)

	feed := composer.Compose(sc, 0)

	require.Len(t, feed, 1)
	assert.Equal(t, service.FeedNotice, feed[0].Severity)
	assert.Contains(t, feed[0].Headline, "STABILIZATION")
}

func TestCompose_NormalMonitoring(t *testing.T) {
	composer := service.NewFeedComposer()

	feed := composer.Compose(valueobject.Baseline(), 0)

	require.Len(t, feed, 3)
	for _, entry := range feed {
		assert.Equal(t, service.FeedInfo, entry.Severity)
	}
	assert.Contains(t, feed[0].Headline, "Normal monitoring")
}
