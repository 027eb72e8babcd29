package entity

import "time"

// CacheEntry is one memoized fetch result. Available=false records a
// failed fetch so the same key is not retried until the entry expires.
type CacheEntry struct {
	Key       string    `json:"key"`
	Series    Series    `json:"series"`
	Available bool      `json:"available"`
	FetchedAt time.Time `json:"fetched_at"`
}
