// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import (
	"fmt"
	"sync"

	"github.com/chainkit-labs/ttlcache/pkg/errors"
)

// Provider hands out one shared cache per process.
//
// The application owns the Provider value and passes it to whoever needs the
// shared cache; this package keeps no global instance. The first Get
// constructs the cache. Later calls with equal Options return the same handle
// and later calls with different Options fail with an ErrReconfigure error.
// Functional options only apply to the constructing call.
//
// The zero value is ready to use.
type Provider[T any] struct {
	mu   sync.Mutex
	opts Options
	inst *TTLCache[T]
}

// Get returns the shared cache, constructing it on first use.
func (p *Provider[T]) Get(opts Options, extra ...Option) (*TTLCache[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inst != nil && !p.inst.isStopped() {
		if opts != p.opts {
			return nil, errors.ReconfigureError(
				fmt.Sprintf("shared cache %q already exists with ttl=%s cleanup=%s max_size=%d",
					p.opts.Name, p.opts.TTL, p.opts.CleanupInterval, p.opts.MaxSize)).
				WithContext("requested", opts)
		}
		return p.inst, nil
	}

	c, err := New[T](opts, extra...)
	if err != nil {
		return nil, err
	}
	p.opts = opts
	p.inst = c
	return c, nil
}

// Instance returns the current shared cache, if one is live.
func (p *Provider[T]) Instance() (*TTLCache[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inst == nil || p.inst.isStopped() {
		return nil, false
	}
	return p.inst, true
}

// Reset stops the shared cache. The next Get constructs a new one.
func (p *Provider[T]) Reset() error {
	p.mu.Lock()
	inst := p.inst
	p.inst = nil
	p.opts = Options{}
	p.mu.Unlock()

	if inst == nil {
		return nil
	}
	return inst.Stop()
}
