// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import "time"

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	// Evictions counts entries dropped to respect MaxSize.
	Evictions uint64
	// Expirations counts expired entries purged on access or by a sweep.
	Expirations uint64
	// Size counts entries that are still live, not every stored entry.
	Size int
	// LastCleared is zero if Clear was never called.
	LastCleared time.Time
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
