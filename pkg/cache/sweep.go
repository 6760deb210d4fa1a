// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import (
	"github.com/benbjohnson/clock"

	"github.com/chainkit-labs/ttlcache/pkg/observability"
)

// sweepLoop removes expired entries on every tick until Stop cancels the context.
//
// The ticker is created by New before the goroutine starts so a mock clock
// advanced right after construction still fires it.
func (c *TTLCache[T]) sweepLoop(ticker *clock.Ticker) {
	defer c.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Sweep removes every expired entry now and returns how many were removed.
// It is what the background loop runs; callers may also invoke it directly.
func (c *TTLCache[T]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return 0
	}

	start := c.clock.Now()
	removed := c.deleteExpiredLocked(start)
	c.recorder.ObserveSweep(c.name, c.clock.Since(start))

	if removed > 0 {
		c.log.Debug("swept expired entries",
			observability.Int("removed", removed),
			observability.Int("remaining", len(c.entries)))
	}
	return removed
}
