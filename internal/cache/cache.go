// Package cache memoizes upstream API responses in a domain.KVStore.
//
// Entries are stored as {"data": <payload>, "timestamp": <epoch ms>} and are
// valid while the rule for their key's category says so. Storage faults never
// reach callers: a corrupted or unreadable entry is a miss, and a failed write
// is logged and dropped.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mmcdole/noor/internal/domain"
	"golang.org/x/sync/singleflight"
)

// fetchTimeout bounds a shared fetch, which outlives the caller that started it
const fetchTimeout = 30 * time.Second

// entry is the persisted envelope
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // epoch milliseconds at write time
}

// Cache is the TTL-bounded response cache. Safe for concurrent use.
type Cache struct {
	kv     domain.KVStore
	policy Policy
	now    domain.Clock
	logger *slog.Logger

	group singleflight.Group
}

// Option configures a Cache
type Option func(*Cache)

// WithClock replaces time.Now
func WithClock(clock domain.Clock) Option {
	return func(c *Cache) {
		if clock != nil {
			c.now = clock
		}
	}
}

// WithPolicy replaces DefaultPolicy
func WithPolicy(p Policy) Option {
	return func(c *Cache) {
		if p != nil {
			c.policy = p
		}
	}
}

// New creates a cache over kv
func New(kv domain.KVStore, logger *slog.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{
		kv:     kv,
		policy: DefaultPolicy(),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get decodes the payload stored at key into dest. It returns false when the
// key is empty, absent, stale, unreadable or corrupted. dest must be a pointer.
// Each call decodes a fresh copy, so callers may mutate what they receive.
func (c *Cache) Get(key string, dest any) bool {
	if key == "" {
		return false
	}

	e, ok := c.read(key)
	if !ok {
		return false
	}

	storedAt := time.UnixMilli(e.Timestamp)
	if !c.policy.Rule(key).Fresh(storedAt, c.now()) {
		c.logger.Debug("cache stale", "key", key, "storedAt", storedAt)
		return false
	}

	if err := json.Unmarshal(e.Data, dest); err != nil {
		c.logger.Warn("cache payload corrupted", "key", key, "error", err)
		return false
	}

	c.logger.Debug("cache hit", "key", key)
	return true
}

// Set stores payload at key with the current time, replacing any prior entry.
// Failures are logged and swallowed; callers must not assume the write happened.
func (c *Cache) Set(key string, payload any) {
	if key == "" {
		c.logger.Warn("cache write skipped: empty key")
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("cache payload not serializable", "key", key, "error", err)
		return
	}

	raw, err := json.Marshal(entry{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		c.logger.Error("cache envelope not serializable", "key", key, "error", err)
		return
	}

	if err := c.kv.Set(key, raw); err != nil {
		c.logger.Error("cache write failed", "key", key, "error", err)
		return
	}
	c.logger.Debug("cache write", "key", key, "bytes", len(raw))
}

// Remove deletes key. Failures are logged.
func (c *Cache) Remove(key string) {
	if err := c.kv.Remove(key); err != nil {
		c.logger.Error("cache remove failed", "key", key, "error", err)
	}
}

// Clear removes every entry and returns how many were removed
func (c *Cache) Clear() (int, error) {
	keys, err := c.kv.Keys("")
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, k := range keys {
		if err := c.kv.Remove(k); err != nil {
			c.logger.Error("cache remove failed", "key", k, "error", err)
			continue
		}
		removed++
	}
	c.logger.Info("cleared cache", "removed", removed)
	return removed, nil
}

// Stats summarizes the cache contents
type Stats struct {
	Entries    int              `json:"entries"`
	Fresh      int              `json:"fresh"`
	Stale      int              `json:"stale"`
	Corrupt    int              `json:"corrupt"`
	Bytes      int64            `json:"bytes"`
	ByCategory map[Category]int `json:"byCategory"`
}

// Stats walks every entry and classifies it
func (c *Cache) Stats() (Stats, error) {
	stats := Stats{ByCategory: make(map[Category]int)}

	keys, err := c.kv.Keys("")
	if err != nil {
		return stats, err
	}

	now := c.now()
	for _, k := range keys {
		raw, ok, err := c.kv.Get(k)
		if err != nil || !ok {
			continue
		}
		stats.Entries++
		stats.Bytes += int64(len(raw))
		stats.ByCategory[CategoryOf(k)]++

		var e entry
		if err := json.Unmarshal(raw, &e); err != nil || e.Timestamp == 0 {
			stats.Corrupt++
			continue
		}
		if c.policy.Rule(k).Fresh(time.UnixMilli(e.Timestamp), now) {
			stats.Fresh++
		} else {
			stats.Stale++
		}
	}
	return stats, nil
}

// read loads and parses the envelope at key
func (c *Cache) read(key string) (entry, bool) {
	raw, ok, err := c.kv.Get(key)
	if err != nil {
		c.logger.Error("cache read failed", "key", key, "error", err)
		return entry{}, false
	}
	if !ok {
		c.logger.Debug("cache miss", "key", key)
		return entry{}, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Warn("cache entry corrupted", "key", key, "error", err)
		return entry{}, false
	}
	if e.Timestamp == 0 || len(e.Data) == 0 {
		c.logger.Warn("cache entry incomplete", "key", key)
		return entry{}, false
	}
	return e, true
}

// ReadThrough returns the cached value at key, or calls fetch on a miss and
// caches its result. Concurrent misses for the same key share one fetch.
// The shared fetch is detached from any single caller's cancellation, and
// each caller stops waiting when its own ctx is done.
// fetch is expected to validate what it returns; an error is passed through
// and nothing is cached.
func ReadThrough[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(key, &cached) {
		return cached, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		var again T
		if c.Get(key, &again) {
			return again, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		fresh, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.Set(key, fresh)
		return fresh, nil
	})

	var zero T
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return zero, res.Err
	}

	// Waiters decode their own copy so no two callers share backing arrays
	if res.Shared {
		var own T
		if c.Get(key, &own) {
			return own, nil
		}
	}
	return res.Val.(T), nil
}
