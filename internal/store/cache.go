// Package store holds the cache-backed data stores: one per entity, each
// binding filtered reads to keyed cache entries and invalidating the whole
// entity prefix on successful writes. The remote service stays the single
// source of truth; cache copies are ephemeral and discarded, never patched.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	appErrors "github.com/unirecords/client-go/pkg/errors"
	"github.com/unirecords/client-go/pkg/metrics"
)

// Entity names partition the cache; invalidation always discards a whole
// entity, since the set of filters a write affects is unknown client-side.
const (
	EntityStudents    = "students"
	EntitySchedules   = "schedules"
	EntityAttendance  = "attendance"
	EntityAssignments = "assignments"
	EntityRankings    = "rankings"
	EntitySubjects    = "subjects"
)

const keySep = "|"

type entry struct {
	data      any
	fetchedAt time.Time
}

// Cache is the keyed read-through store shared by every entity store. A key
// is (entity, filter fragment); concurrent readers of one key share a single
// in-flight fetch.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	retries int
	logger  *zap.Logger
	metrics *metrics.Collector

	subMu sync.Mutex
	subs  []func(entity string)
}

// NewCache builds the shared cache. retries is the number of extra fetch
// attempts applied uniformly to reads (never writes), and only when the
// failure is network-kind.
func NewCache(retries int, logger *zap.Logger, collector *metrics.Collector) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retries < 0 {
		retries = 0
	}
	return &Cache{
		entries: make(map[string]entry),
		retries: retries,
		logger:  logger,
		metrics: collector,
	}
}

// GetOrFetch returns the cached value for (entity, key) when fresh,
// otherwise runs fetch once — shared across concurrent callers of the same
// key — and memoises the result until the TTL lapses or the entity is
// invalidated.
func (c *Cache) GetOrFetch(ctx context.Context, entity, key string, ttl time.Duration, fetch func(context.Context) (any, error)) (any, error) {
	full := entity + keySep + key

	if data, ok := c.lookup(full, ttl); ok {
		c.metrics.CacheHit(entity)
		return data, nil
	}
	c.metrics.CacheMiss(entity)

	data, err, _ := c.group.Do(full, func() (any, error) {
		// A concurrent caller may have filled the entry while this one
		// waited on the flight group.
		if data, ok := c.lookup(full, ttl); ok {
			return data, nil
		}
		data, err := c.fetchWithRetry(ctx, entity, fetch)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[full] = entry{data: data, fetchedAt: time.Now()}
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Cache) lookup(full string, ttl time.Duration) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[full]
	if !ok {
		return nil, false
	}
	if ttl > 0 && time.Since(e.fetchedAt) > ttl {
		return nil, false
	}
	return e.data, true
}

func (c *Cache) fetchWithRetry(ctx context.Context, entity string, fetch func(context.Context) (any, error)) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		data, err := fetch(ctx)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !appErrors.IsKind(err, appErrors.KindNetwork) {
			break
		}
		if attempt < c.retries {
			c.logger.Warn("fetch_retry",
				zap.String("entity", entity),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
		}
	}
	return nil, lastErr
}

// InvalidateEntity discards every cached key under the entity and notifies
// subscribers. The next observation of any discarded key refetches lazily.
func (c *Cache) InvalidateEntity(entity string) {
	prefix := entity + keySep
	c.mu.Lock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()

	c.metrics.CacheInvalidation(entity)
	c.logger.Debug("cache_invalidated", zap.String("entity", entity))

	c.subMu.Lock()
	subs := make([]func(string), len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()
	for _, fn := range subs {
		fn(entity)
	}
}

// Subscribe registers an observer called with the entity name after each
// invalidation. This is the explicit boundary contract toward the view
// layer; callbacks run synchronously on the invalidating goroutine.
func (c *Cache) Subscribe(fn func(entity string)) {
	if fn == nil {
		return
	}
	c.subMu.Lock()
	c.subs = append(c.subs, fn)
	c.subMu.Unlock()
}

// cached adapts GetOrFetch to a typed fetch function.
func cached[T any](ctx context.Context, c *Cache, entity, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	data, err := c.GetOrFetch(ctx, entity, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := data.(T)
	if !ok {
		var zero T
		return zero, appErrors.Wrap(nil, appErrors.KindHTTP, "CACHE_TYPE", "cached value has unexpected type")
	}
	return typed, nil
}
