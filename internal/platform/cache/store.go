// Package cache provides the TTL-bounded series cache and its storage backends.
package cache

import (
	"context"
	"strings"
	"time"

	"watchlist_backend/internal/feature/quotes/domain/entity"
)

// Store は期限付きのCacheEntry保存先を抽象化します。
// 期限切れのエントリはGetで見つからないものとして扱います。
type Store interface {
	Get(ctx context.Context, key string) (entity.CacheEntry, bool)
	Set(ctx context.Context, key string, e entity.CacheEntry, ttl time.Duration)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
