package di

import (
	"github.com/redis/go-redis/v9"

	"watchlist_backend/internal/config"
	"watchlist_backend/internal/feature/quotes/usecase"
	"watchlist_backend/internal/platform/cache"
)

// NewSeriesStore creates the cache store behind the SeriesCache.
// If Redis is available, it returns a Redis-backed store shared between processes.
// Otherwise, it falls back to an in-process memory store.
func NewSeriesStore(rdb *redis.Client, namespace string) cache.Store {
	if rdb != nil {
		return cache.NewRedisStore(rdb, namespace)
	}
	return cache.NewMemoryStore()
}

// NewSeriesCache wraps market with the configured TTL-bounded cache.
func NewSeriesCache(cfg *config.Config, market usecase.MarketRepository, store cache.Store) *cache.SeriesCache {
	return cache.NewSeriesCache(market, store,
		cache.WithTTL(cfg.Quotes.CacheTTL),
		cache.WithFailureTTL(cfg.Quotes.FailureTTL),
	)
}
