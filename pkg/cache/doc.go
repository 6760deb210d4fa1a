// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package cache provides an in-memory key/value cache with per-instance TTL.
//
// Expired entries are invisible to readers as soon as their deadline passes and
// are removed on the next access (lazy expiration). When CleanupInterval is set,
// a goroutine owned by the cache also sweeps expired entries periodically so keys
// that are written once and never read again do not pin memory.
//
// A cache is safe for concurrent use. Call Stop to end the sweep goroutine.
package cache
