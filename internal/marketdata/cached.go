package marketdata

import (
	"context"
	"time"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/pkg/logger"
	"github.com/wonny/twdiff/pkg/redis"
)

// Cache is the subset of pkg/redis.Cache used here
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CachedProvider caches daily series of the wrapped provider.
// Live quotes always go to the provider. Empty series and errors are not cached.
type CachedProvider struct {
	next   Provider
	cache  Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedProvider wraps next with cache
func NewCachedProvider(next Provider, cache Cache, ttl time.Duration, log *logger.Logger) *CachedProvider {
	return &CachedProvider{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// Name returns the wrapped provider name
func (p *CachedProvider) Name() string {
	return Name(p.next) + "+cache"
}

// DailyBars serves from cache when possible, otherwise fetches and stores
func (p *CachedProvider) DailyBars(ctx context.Context, symbol string) ([]contracts.DailyBar, error) {
	key := redis.BarsKey(symbol)
	log := logger.FromContext(ctx, p.logger).WithField("symbol", symbol)

	var bars []contracts.DailyBar
	found, err := p.cache.Get(ctx, key, &bars)
	if err != nil {
		log.WithError(err).Warn("Bars cache read failed")
	} else if found && len(bars) > 0 {
		log.WithField("count", len(bars)).Debug("Bars cache hit")
		return bars, nil
	}

	bars, err = p.next.DailyBars(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if len(bars) > 0 {
		if err := p.cache.Set(ctx, key, bars, p.ttl); err != nil {
			log.WithError(err).Warn("Bars cache write failed")
		}
	}

	return bars, nil
}

// LastPrice is never cached
func (p *CachedProvider) LastPrice(ctx context.Context, symbol string) (contracts.Quote, error) {
	return p.next.LastPrice(ctx, symbol)
}
