// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/chainkit-labs/ttlcache/pkg/errors"
	"github.com/chainkit-labs/ttlcache/pkg/observability"
)

// DefaultTTL is used when no TTL is configured anywhere else.
const DefaultTTL = 300 * time.Second

// Options configures a cache at construction time.
//
//   - TTL must be positive.
//   - CleanupInterval <= 0 disables the background sweep (lazy expiration still works).
//   - MaxSize <= 0 means unbounded. Otherwise inserting a new key at the cap evicts
//     the oldest inserted entry after expired entries have been purged.
type Options struct {
	Name            string
	TTL             time.Duration
	CleanupInterval time.Duration
	MaxSize         int
}

// DefaultOptions returns a 300s TTL, no sweep, unbounded cache.
func DefaultOptions() Options {
	return Options{
		Name: "default",
		TTL:  DefaultTTL,
	}
}

// Validate checks the options for structural errors.
func (o Options) Validate() error {
	if o.TTL <= 0 {
		return errors.ValidationError(fmt.Sprintf("ttl must be positive, got %s", o.TTL), nil).
			WithContext("ttl", o.TTL)
	}
	if o.CleanupInterval < 0 {
		return errors.ValidationError(fmt.Sprintf("cleanup interval must not be negative, got %s", o.CleanupInterval), nil)
	}
	if o.MaxSize < 0 {
		return errors.ValidationError(fmt.Sprintf("max size must not be negative, got %d", o.MaxSize), nil)
	}
	return nil
}

// Recorder receives cache events. *observability.Metrics implements it.
type Recorder interface {
	RecordCacheHit(cache string, hit bool)
	RecordEviction(cache, reason string, n int)
	SetEntries(cache string, n int)
	ObserveSweep(cache string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordCacheHit(string, bool) {}
func (nopRecorder) RecordEviction(string, string, int) {}
func (nopRecorder) SetEntries(string, int) {}
func (nopRecorder) ObserveSweep(string, time.Duration) {}

// Option customizes collaborators that are not part of Options.
type Option func(*settings)

type settings struct {
	clock    clock.Clock
	logger   observability.Logger
	recorder Recorder
}

func defaultSettings() settings {
	return settings{
		clock:    clock.New(),
		logger:   observability.NewNopLogger(),
		recorder: nopRecorder{},
	}
}

// WithClock sets the time source. Tests pass clock.NewMock().
func WithClock(c clock.Clock) Option {
	return func(s *settings) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l observability.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *settings) {
		if r != nil {
			s.recorder = r
		}
	}
}
