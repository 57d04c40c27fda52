package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"hrfx-gateway/internal/domain"
	"hrfx-gateway/pkg/workerpool"
)

// Producer computes a fresh payload on a cache miss. cacheable=false keeps
// the result out of the cache (fallback quotes, 404 diagnostics).
type Producer func() (payload []byte, cacheable bool, err error)

// Dispatcher runs a task without the caller waiting for it.
type Dispatcher interface {
	Submit(task workerpool.Task)
}

// CacheService is the cache-aside controller. The freshness window is
// enforced here, against the entry's stored-at timestamp; the store only has
// to hold entries and eventually evict old ones.
type CacheService struct {
	Store domain.CacheStore
	Pool  Dispatcher
	Now   func() time.Time
	Log   logrus.FieldLogger
}

// Obtain returns the cached payload for key while it is younger than window,
// otherwise invokes produce and schedules the write without blocking the
// caller. A failed write is logged and dropped; it never fails the request
// that triggered it. Concurrent misses on one key may race to produce; last
// write wins, which is fine since both computed from the same upstream state.
func (s *CacheService) Obtain(key string, window time.Duration, produce Producer) ([]byte, bool, error) {
	entry, ok, err := s.Store.Get(key)
	if err != nil {
		s.log().WithError(err).WithField("key", key).Warn("cache read failed")
	} else if ok && s.Now().Sub(entry.StoredAt) < window {
		return entry.Payload, true, nil
	}

	payload, cacheable, err := produce()
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		fresh := domain.CacheEntry{Key: key, Payload: payload, StoredAt: s.Now()}
		s.Pool.Submit(func() {
			if err := s.Store.Put(fresh); err != nil {
				s.log().WithError(err).WithField("key", key).Warn("cache write failed")
			}
		})
	}
	return payload, false, nil
}

func (s *CacheService) log() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}
