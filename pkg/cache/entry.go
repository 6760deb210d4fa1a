// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import "time"

// Entry is a stored value with its insertion and expiry times.
// ExpiresAt is always InsertedAt plus the TTL in effect when it was set.
type Entry[T any] struct {
	Key        string
	Value      T
	InsertedAt time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the entry is logically absent at now.
func (e *Entry[T]) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
