// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import (
	"context"
	stderrors "errors"

	"github.com/chainkit-labs/ttlcache/pkg/errors"
)

// LoadFunc produces the value for a key on a miss.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// GetOrLoad returns the live value for key, or calls load and stores its result.
//
// Concurrent misses on the same key share one load call. The shared load runs
// on a context detached from any single caller's cancellation, so a caller
// that gives up only abandons its own wait and the others still get the value.
// Load errors are returned as ErrLoad errors and nothing is stored.
func (c *TTLCache[T]) GetOrLoad(ctx context.Context, key string, load LoadFunc[T]) (T, error) {
	var zero T

	if v, ok := c.Get(key); ok {
		return v, nil
	}
	if c.isStopped() {
		return zero, ErrStopped
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// A flight that finished between our Get and DoChan may already have stored it.
		if v, ok := c.peek(key); ok {
			return v, nil
		}

		v, err := load(flightCtx)
		if err != nil {
			return nil, err
		}
		if err := c.Set(key, v); err != nil {
			return nil, err
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, errors.LoadError("load abandoned", ctx.Err()).WithContext("key", key)
	case res := <-ch:
		if res.Err != nil {
			if stderrors.Is(res.Err, ErrStopped) {
				return zero, res.Err
			}
			return zero, errors.LoadError("load failed", res.Err).WithContext("key", key)
		}
		v, _ := res.Val.(T)
		return v, nil
	}
}

// peek is Get without touching the hit/miss counters.
func (c *TTLCache[T]) peek(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.stopped {
		return zero, false
	}
	e, ok := c.lookupLocked(key, c.clock.Now())
	if !ok {
		return zero, false
	}
	return e.Value, true
}
