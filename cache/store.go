package cache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinkerstore_cache_hits_total",
		Help: "Number of listing cache hits.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinkerstore_cache_misses_total",
		Help: "Number of listing cache misses, including degraded reads.",
	})
	cacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinkerstore_cache_invalidated_keys_total",
		Help: "Number of cache keys removed by prefix invalidation.",
	})
)

const (
	opTimeout         = 500 * time.Millisecond
	invalidateTimeout = 5 * time.Second
	scanBatch         = 100
)

// Store is a soft-failing key-value cache over Redis. Every operation
// degrades instead of erroring: a failed Get is a miss, a failed Set or
// InvalidatePrefix is logged and otherwise invisible to the caller. The
// cache is never authoritative, so no caller has anything useful to do with
// a cache error.
type Store struct {
	rdb redis.UniversalClient
	log *logrus.Logger
}

func New(client redis.UniversalClient, log *logrus.Logger) *Store {
	return &Store{rdb: client, log: log}
}

// Get returns the payload for key, or ok=false on a miss. Unavailability of
// the underlying cache is reported as a miss, never as an error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return nil, false
	}
	if err != nil {
		cacheMisses.Inc()
		s.log.WithError(err).WithField("key", key).Warn("cache get failed, treating as miss")
		return nil, false
	}
	cacheHits.Inc()
	return b, true
}

// Set stores payload under key with the given TTL. Best-effort: failures are
// logged and swallowed so a cache hiccup cannot fail completed database work.
func (s *Store) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache set failed")
	}
}

// InvalidatePrefix removes every key starting with prefix and returns how
// many were deleted. Uses an incremental SCAN cursor with batched DELs so
// invalidation cost stays decoupled from total keyspace size. Entries
// written concurrently after invalidation begins may survive; entries
// present before it completes will not.
func (s *Store) InvalidatePrefix(ctx context.Context, prefix string) int {
	ctx, cancel := context.WithTimeout(ctx, invalidateTimeout)
	defer cancel()

	var removed int
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			s.log.WithError(err).WithField("prefix", prefix).Warn("cache invalidation scan failed")
			return removed
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				s.log.WithError(err).WithField("prefix", prefix).Warn("cache invalidation delete failed")
			} else {
				removed += len(keys)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if removed > 0 {
		cacheInvalidations.Add(float64(removed))
		s.log.WithFields(logrus.Fields{"prefix": prefix, "keys": removed}).Info("invalidated cache keys")
	}
	return removed
}
