package domain

import "time"

type CacheEntry struct {
	Key      string
	Payload  []byte
	StoredAt time.Time
}

// CacheStore is the backing key-value store for the read-through cache.
// Freshness is judged by the caller against StoredAt; the store only has to
// keep entries around and eventually evict stale ones.
type CacheStore interface {
	Get(key string) (CacheEntry, bool, error)
	Put(entry CacheEntry) error
}
