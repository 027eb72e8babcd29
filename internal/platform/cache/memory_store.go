package cache

import (
	"context"
	"sync"
	"time"

	"watchlist_backend/internal/feature/quotes/domain/entity"
)

type memoryItem struct {
	entry     entity.CacheEntry
	expiresAt time.Time
}

// MemoryStore はプロセス内のmapによるStore実装です。
// 同じキーへの同時書き込みは後勝ちです。
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore は空のMemoryStoreを生成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

// Get returns the entry for key if it has not expired.
func (m *MemoryStore) Get(_ context.Context, key string) (entity.CacheEntry, bool) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return entity.CacheEntry{}, false
	}
	if !m.now().Before(it.expiresAt) {
		m.mu.Lock()
		// 待っている間に別のgoroutineが新しい値を入れていれば消さない
		if cur, ok := m.items[key]; ok && cur.expiresAt.Equal(it.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return entity.CacheEntry{}, false
	}
	return it.entry, true
}

// Set stores e under key, replacing any previous entry wholesale.
func (m *MemoryStore) Set(_ context.Context, key string, e entity.CacheEntry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	m.items[key] = memoryItem{entry: e, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

// Len は保持しているエントリ数（期限切れを含む）を返します。
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Purge removes every expired entry and returns how many were removed.
func (m *MemoryStore) Purge() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, it := range m.items {
		if !now.Before(it.expiresAt) {
			delete(m.items, k)
			n++
		}
	}
	return n
}
