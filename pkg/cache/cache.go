// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/chainkit-labs/ttlcache/pkg/errors"
	"github.com/chainkit-labs/ttlcache/pkg/observability"
)

const (
	reasonExpired  = "expired"
	reasonCapacity = "capacity"
)

// ErrStopped is returned by writes on a cache after Stop.
var ErrStopped = errors.StoppedError("cache is stopped")

// Store is the cache interface consumed by callers such as the fetch client.
type Store[T any] interface {
	Get(key string) (T, bool)
	Has(key string) bool
	Set(key string, value T) error
	Delete(key string) error
	Clear() error
	Stats() Stats
	GetOrLoad(ctx context.Context, key string, load LoadFunc[T]) (T, error)
	Stop() error
}

// TTLCache is a concurrency-safe map of string keys to values that expire
// a fixed TTL after they were set.
//
// Stopped policy: after Stop, Set, SetWithTTL, Delete, Clear and GetOrLoad
// return ErrStopped, while Get and Has behave as on an empty cache without
// touching the hit/miss counters.
type TTLCache[T any] struct {
	mu sync.Mutex

	name    string
	ttl     time.Duration
	maxSize int

	entries map[string]*list.Element
	order   *list.List // Front = newest insert, Back = oldest insert

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
	lastCleared time.Time

	clock    clock.Clock
	log      observability.Logger
	recorder Recorder
	group    singleflight.Group

	// Goroutine ownership.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	cleanupEvery time.Duration
	stopped      bool
}

// New validates opts, constructs a cache and starts the background sweep
// when opts.CleanupInterval is positive.
func New[T any](opts Options, extra ...Option) (*TTLCache[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s := defaultSettings()
	for _, o := range extra {
		o(&s)
	}

	name := opts.Name
	if name == "" {
		name = "default"
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &TTLCache[T]{
		name:         name,
		ttl:          opts.TTL,
		maxSize:      opts.MaxSize,
		entries:      make(map[string]*list.Element),
		order:        list.New(),
		clock:        s.clock,
		recorder:     s.recorder,
		ctx:          ctx,
		cancel:       cancel,
		cleanupEvery: opts.CleanupInterval,
	}
	c.log = s.logger.With(
		observability.String("cache", name),
		observability.String("instance", uuid.NewString()),
	)

	if c.cleanupEvery > 0 {
		ticker := c.clock.Ticker(c.cleanupEvery)
		c.wg.Add(1)
		go c.sweepLoop(ticker)
	}

	c.log.Info("cache created",
		observability.Duration("ttl", c.ttl),
		observability.Duration("cleanup_interval", c.cleanupEvery),
		observability.Int("max_size", c.maxSize))

	return c, nil
}

// Name returns the cache name used in logs and metrics.
func (c *TTLCache[T]) Name() string {
	return c.name
}

// TTL returns the instance TTL.
func (c *TTLCache[T]) TTL() time.Duration {
	return c.ttl
}

// Set stores value under key with the instance TTL, replacing any existing entry.
func (c *TTLCache[T]) Set(key string, value T) error {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL is Set with a per-entry TTL. ttl <= 0 uses the instance TTL.
func (c *TTLCache[T]) SetWithTTL(key string, value T, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrStopped
	}

	now := c.clock.Now()

	// Overwrite resets both timestamps and counts as the newest insert.
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*Entry[T])
		e.Value = value
		e.InsertedAt = now
		e.ExpiresAt = now.Add(ttl)
		c.order.MoveToFront(el)
		return nil
	}

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.makeRoomLocked(now)
	}

	c.entries[key] = c.order.PushFront(&Entry[T]{
		Key:        key,
		Value:      value,
		InsertedAt: now,
		ExpiresAt:  now.Add(ttl),
	})
	c.recorder.SetEntries(c.name, len(c.entries))
	return nil
}

// Get returns the live value for key. A missing or expired key counts as a miss;
// an expired entry is deleted.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.stopped {
		return zero, false
	}

	e, ok := c.lookupLocked(key, c.clock.Now())
	if !ok {
		c.misses++
		c.recorder.RecordCacheHit(c.name, false)
		return zero, false
	}

	c.hits++
	c.recorder.RecordCacheHit(c.name, true)
	return e.Value, true
}

// Has reports whether key holds a live entry. It deletes an expired entry
// like Get does but never changes the hit/miss counters.
func (c *TTLCache[T]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return false
	}

	_, ok := c.lookupLocked(key, c.clock.Now())
	return ok
}

// Delete removes key. Deleting a missing key is not an error.
func (c *TTLCache[T]) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrStopped
	}

	if el, ok := c.entries[key]; ok {
		c.removeLocked(el)
		c.recorder.SetEntries(c.name, len(c.entries))
	}
	return nil
}

// Clear removes every entry and records the time. Counters are kept.
func (c *TTLCache[T]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrStopped
	}

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.lastCleared = c.clock.Now()
	c.recorder.SetEntries(c.name, 0)
	return nil
}

// Stats returns a snapshot. Size counts only entries that have not expired.
func (c *TTLCache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	live := 0
	for _, el := range c.entries {
		if !el.Value.(*Entry[T]).Expired(now) {
			live++
		}
	}

	return Stats{
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
		Size:        live,
		LastCleared: c.lastCleared,
	}
}

// ResetStats zeroes the hit, miss, eviction and expiration counters.
func (c *TTLCache[T]) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hits, c.misses, c.evictions, c.expirations = 0, 0, 0, 0
}

// Len returns the number of stored entries, including expired entries
// that have not been purged yet.
func (c *TTLCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns live keys, newest insert first.
func (c *TTLCache[T]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	out := make([]string, 0, len(c.entries))
	for el := c.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*Entry[T])
		if !e.Expired(now) {
			out = append(out, e.Key)
		}
	}
	return out
}

// Stop cancels the background sweep, waits for it to exit and drops all entries.
// Stop is safe to call multiple times.
func (c *TTLCache[T]) Stop() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.stopped = true
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	cancel := c.cancel
	c.mu.Unlock()

	// Cancel outside the lock; an in-flight sweep needs the lock to finish.
	cancel()
	c.wg.Wait()

	c.recorder.SetEntries(c.name, 0)
	c.log.Info("cache stopped")
	return nil
}

func (c *TTLCache[T]) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// lookupLocked returns the live entry for key, purging it if it has expired.
func (c *TTLCache[T]) lookupLocked(key string, now time.Time) (*Entry[T], bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	e := el.Value.(*Entry[T])
	if e.Expired(now) {
		c.removeLocked(el)
		c.expirations++
		c.recorder.RecordEviction(c.name, reasonExpired, 1)
		c.recorder.SetEntries(c.name, len(c.entries))
		return nil, false
	}
	return e, true
}

// makeRoomLocked frees one slot: expired entries go first, then the oldest inserts.
func (c *TTLCache[T]) makeRoomLocked(now time.Time) {
	c.deleteExpiredLocked(now)

	evicted := 0
	for len(c.entries) >= c.maxSize {
		el := c.order.Back()
		if el == nil {
			break
		}
		c.removeLocked(el)
		evicted++
	}

	if evicted > 0 {
		c.evictions += uint64(evicted)
		c.recorder.RecordEviction(c.name, reasonCapacity, evicted)
		c.log.Debug("evicted oldest entries", observability.Int("evicted", evicted))
	}
}

// deleteExpiredLocked removes all expired entries. This is O(n).
func (c *TTLCache[T]) deleteExpiredLocked(now time.Time) int {
	removed := 0
	for _, el := range c.entries {
		if el.Value.(*Entry[T]).Expired(now) {
			c.removeLocked(el)
			removed++
		}
	}

	if removed > 0 {
		c.expirations += uint64(removed)
		c.recorder.RecordEviction(c.name, reasonExpired, removed)
		c.recorder.SetEntries(c.name, len(c.entries))
	}
	return removed
}

func (c *TTLCache[T]) removeLocked(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*Entry[T]).Key)
}
