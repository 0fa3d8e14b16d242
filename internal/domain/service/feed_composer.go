package service

import (
	"fmt"

	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
)

// FeedSeverity orders intelligence feed entries for display.
type FeedSeverity string

const (
	FeedInfo     FeedSeverity = "info"
	FeedNotice   FeedSeverity = "notice"
	FeedWarning  FeedSeverity = "warning"
	FeedCritical FeedSeverity = "critical"
)

// FeedEntry is one line of the live intelligence feed.
type FeedEntry struct {
	Severity FeedSeverity
	Headline string
	Body     string
}

// A fuel shock above this many KES triggers the transport-paralysis alert
// narrative regardless of per-region scores.
const fuelAlertThreshold = 15

// FeedComposer derives the rule-based intelligence feed from a scenario.
// Like the risk engine it is pure: same scenario, same feed.
type FeedComposer struct{}

// NewFeedComposer creates a FeedComposer.
func NewFeedComposer() *FeedComposer {
	return &FeedComposer{}
}

// Compose builds the feed for a scenario. criticalCount is the number of
// regions the pass assessed as critical; it sharpens the alert copy but
// does not change which rule fires.
func (c *FeedComposer) Compose(sc valueobject.ShockScenario, criticalCount int) []FeedEntry {
	switch {
	case sc.FuelShock() > fuelAlertThreshold:
		return c.fuelAlertFeed(sc, criticalCount)
	case sc.SubsidyActive():
		return c.subsidyFeed()
	default:
		return c.normalFeed()
	}
}

func (c *FeedComposer) fuelAlertFeed(sc valueobject.ShockScenario, criticalCount int) []FeedEntry {
	entries := []FeedEntry{
		{
			Severity: FeedCritical,
			Headline: fmt.Sprintf("CRITICAL ALERT: Fuel shock of %d KES detected", sc.FuelShock()),
			Body:     "Predicted consequence: transport paralysis in Nairobi within 48 hours. Sentiment analysis: keywords 'Maandamano' and 'Matatu' trending +400%.",
		},
		{
			Severity: FeedWarning,
			Headline: "RECOMMENDED ACTION: Deploy riot control units to CBD and Kondele",
			Body:     "Escalation path follows the 14-day lag between price shocks and security incidents.",
		},
	}
	if criticalCount > 0 {
		entries = append(entries, FeedEntry{
			Severity: FeedWarning,
			Headline: fmt.Sprintf("%d region(s) currently assessed critical", criticalCount),
			Body:     "Review the threat heatmap for deployment priorities.",
		})
	}
	return entries
}

func (c *FeedComposer) subsidyFeed() []FeedEntry {
	return []FeedEntry{
		{
			Severity: FeedNotice,
			Headline: "STABILIZATION EFFECT: Emergency subsidy active",
			Body:     "Risk levels dropping across urban centres. Market sentiment improving; Jua Kali liquidity stabilizing.",
		},
	}
}

func (c *FeedComposer) normalFeed() []FeedEntry {
	return []FeedEntry{
		{
			Severity: FeedInfo,
			Headline: "SYSTEM STATUS: Normal monitoring",
			Body:     "No immediate anomalies in informal sector liquidity.",
		},
		{
			Severity: FeedInfo,
			Headline: "Sentinel-2 scan: drought persistence in Turkana",
			Body:     "Region remains on the watch list.",
		},
		{
			Severity: FeedInfo,
			Headline: "KNBS feed: inflation stable at 6.8%",
			Body:     "Macro-economic baseline unchanged.",
		},
	}
}
