package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"watchlist_backend/internal/feature/quotes/domain/entity"
	"watchlist_backend/internal/feature/quotes/usecase"
)

// DefaultTTL は系列キャッシュの鮮度期間のデフォルト値です。
const DefaultTTL = 60 * time.Second

// SeriesCache decorates a MarketRepository with TTL-bounded memoization keyed
// by (symbol, range, interval). Failed fetches are cached too, so a known-bad
// symbol is not retried until its entry expires.
//
// 同じキーへの同時ミスはそれぞれ上流を呼び出します（single-flightはしません）。
// 結果は同じキーなら同等なので、後勝ちで上書きされても問題ありません。
type SeriesCache struct {
	inner      usecase.MarketRepository
	store      Store
	ttl        time.Duration
	failureTTL time.Duration
	now        func() time.Time
}

var _ usecase.SeriesRepository = (*SeriesCache)(nil)

// Option はSeriesCacheの構成オプションです。
type Option func(*SeriesCache)

// WithTTL sets the freshness window for successful fetches.
func WithTTL(d time.Duration) Option {
	return func(c *SeriesCache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithFailureTTL sets how long an unavailable result is remembered.
// Zero keeps it equal to the success TTL; a negative value disables negative caching.
func WithFailureTTL(d time.Duration) Option {
	return func(c *SeriesCache) {
		c.failureTTL = d
	}
}

// WithClock replaces the clock used for FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(c *SeriesCache) {
		c.now = now
	}
}

// NewSeriesCache はMarketRepositoryをキャッシュで包みます。storeがnilの場合はMemoryStoreを使います。
func NewSeriesCache(inner usecase.MarketRepository, store Store, opts ...Option) *SeriesCache {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &SeriesCache{
		inner: inner,
		store: store,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.failureTTL == 0 {
		c.failureTTL = c.ttl
	}
	return c
}

// GetOrFetch は鮮度期間内のキャッシュがあればそれを返し、なければ上流から取得して保存します。
// 失敗理由はログに残し、呼び出し元にはok=falseのみを返します。
func (c *SeriesCache) GetOrFetch(ctx context.Context, symbol, rng, interval string) (entity.Series, bool) {
	key := cacheKey(symbol, rng, interval)

	// 1) Check cache
	if e, ok := c.store.Get(ctx, key); ok {
		if !e.Available {
			return entity.Series{}, false
		}
		return e.Series, true
	}

	// 2) Fallback to upstream
	s, err := c.inner.GetChart(ctx, symbol, rng, interval)
	if err == nil && s.Len() == 0 {
		err = fmt.Errorf("empty series for %s", symbol)
	}

	entry := entity.CacheEntry{Key: key, FetchedAt: c.now()}
	ttl := c.ttl
	if err != nil {
		slog.Warn("quote fetch failed", "symbol", symbol, "range", rng, "interval", interval, "error", err)
		// 呼び出し元のキャンセルや枠待ちの打ち切りは銘柄の失敗ではないので記録しない
		if ctx.Err() != nil || errors.Is(err, usecase.ErrRateLimited) {
			return entity.Series{}, false
		}
		ttl = c.failureTTL
	} else {
		entry.Series = s
		entry.Available = true
	}

	// 3) Store in cache (best effort)
	c.store.Set(ctx, key, entry, ttl)

	return entry.Series, entry.Available
}

// cacheKey generates a cache key for a specific query.
func cacheKey(symbol, rng, interval string) string {
	return fmt.Sprintf("%s:%s:%s", safe(symbol), safe(rng), safe(interval))
}
