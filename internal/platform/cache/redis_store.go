package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"watchlist_backend/internal/feature/quotes/domain/entity"
)

// DefaultNamespace はRedisキーの接頭辞のデフォルト値です。
const DefaultNamespace = "quotes"

// RedisStore はRedisによるStore実装です。複数プロセスで同じキャッシュを共有できます。
// 有効期限はRedisのTTLに任せます。
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore はRedisStoreを生成します。namespaceが空の場合は"quotes"を使います。
func NewRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStore{rdb: rdb, namespace: namespace}
}

// Get reads and decodes the entry. Redis errors are treated as a miss and a
// corrupted value is deleted.
func (r *RedisStore) Get(ctx context.Context, key string) (entity.CacheEntry, bool) {
	k := r.redisKey(key)
	b, err := r.rdb.Get(ctx, k).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis get failed", "key", k, "error", err)
		}
		return entity.CacheEntry{}, false
	}

	var e entity.CacheEntry
	if err := json.Unmarshal(b, &e); err != nil {
		// 破損したエントリは削除
		_ = r.rdb.Del(ctx, k).Err()
		return entity.CacheEntry{}, false
	}
	return e, true
}

// Set writes the entry with ttl (best effort).
func (r *RedisStore) Set(ctx context.Context, key string, e entity.CacheEntry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	b, err := json.Marshal(e)
	if err != nil {
		return
	}
	k := r.redisKey(key)
	if err := r.rdb.Set(ctx, k, b, ttl).Err(); err != nil {
		slog.Warn("redis set failed", "key", k, "error", err)
	}
}

func (r *RedisStore) redisKey(key string) string {
	return r.namespace + ":" + key
}
