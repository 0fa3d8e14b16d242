package provider

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Valentinus295/econsentinel/internal/domain/port"
)

// quoteCache holds one quote with its expiry. Concurrency-safe.
type quoteCache struct {
	mu      sync.Mutex
	quote   port.Quote
	expires time.Time
	filled  bool
}

func (c *quoteCache) get(now time.Time) (port.Quote, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.filled || now.After(c.expires) {
		return port.Quote{}, false
	}
	return c.quote, true
}

func (c *quoteCache) put(q port.Quote, expires time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quote = q
	c.expires = expires
	c.filled = true
}

// CachedRateProvider decorates a RateProvider with a TTL cache and the
// documented fallback reading. It never returns an error: a failed
// upstream fetch with a cold cache yields the fallback quote marked
// Fallback.
type CachedRateProvider struct {
	upstream port.RateProvider
	ttl      time.Duration
	fallback decimal.Decimal
	logger   *slog.Logger
	cache    quoteCache
}

// NewCachedRateProvider decorates upstream with a TTL cache falling back
// to FallbackUsdKes.
func NewCachedRateProvider(upstream port.RateProvider, ttl time.Duration, logger *slog.Logger) *CachedRateProvider {
	return &CachedRateProvider{
		upstream: upstream,
		ttl:      ttl,
		fallback: FallbackUsdKes,
		logger:   logger,
	}
}

// FetchRate returns the cached rate if fresh, otherwise consults the
// upstream, degrading to the fallback constant on failure.
func (p *CachedRateProvider) FetchRate(ctx context.Context) (port.Quote, error) {
	now := time.Now().UTC()
	if q, ok := p.cache.get(now); ok {
		return q, nil
	}

	q, err := p.upstream.FetchRate(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "forex fetch failed, serving fallback rate",
			slog.String("error", err.Error()),
		)
		return port.Quote{
			Value:     p.fallback,
			Source:    "fallback",
			Fallback:  true,
			FetchedAt: now,
		}, nil
	}

	p.cache.put(q, now.Add(p.ttl))
	return q, nil
}

// CachedFuelPriceProvider decorates a FuelPriceProvider the same way,
// falling back to FallbackFuelPrice.
type CachedFuelPriceProvider struct {
	upstream port.FuelPriceProvider
	ttl      time.Duration
	fallback decimal.Decimal
	logger   *slog.Logger
	cache    quoteCache
}

// NewCachedFuelPriceProvider decorates upstream with a TTL cache falling
// back to FallbackFuelPrice.
func NewCachedFuelPriceProvider(upstream port.FuelPriceProvider, ttl time.Duration, logger *slog.Logger) *CachedFuelPriceProvider {
	return &CachedFuelPriceProvider{
		upstream: upstream,
		ttl:      ttl,
		fallback: FallbackFuelPrice,
		logger:   logger,
	}
}

// FetchPrice returns the cached price if fresh, otherwise consults the
// upstream, degrading to the fallback constant on failure.
func (p *CachedFuelPriceProvider) FetchPrice(ctx context.Context) (port.Quote, error) {
	now := time.Now().UTC()
	if q, ok := p.cache.get(now); ok {
		return q, nil
	}

	q, err := p.upstream.FetchPrice(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "fuel price fetch failed, serving fallback price",
			slog.String("error", err.Error()),
		)
		return port.Quote{
			Value:     p.fallback,
			Source:    "fallback",
			Fallback:  true,
			FetchedAt: now,
		}, nil
	}

	p.cache.put(q, now.Add(p.ttl))
	return q, nil
}
