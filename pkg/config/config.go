// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for ttlcache.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Config file: --config path, else $TTLCACHE_CONFIG, else ./.ttlcache.yaml
//    found by walking up from the project root
// 3. Environment Variables: CACHE_TTL, CACHE_CLEANUP_INTERVAL, CACHE_MAX_SIZE, ...
package config

import (
	"time"

	"github.com/chainkit-labs/ttlcache/pkg/cache"
	"github.com/chainkit-labs/ttlcache/pkg/observability"
)

// Config represents the complete application configuration.
type Config struct {
	Cache CacheConfig `yaml:"cache"`
	Log   LogConfig   `yaml:"log"`
	Fetch FetchConfig `yaml:"fetch"`

	// Source is the file the config was read from, empty for defaults only.
	Source string `yaml:"-"`
}

// CacheConfig sizes the TTL cache. Durations are whole seconds.
type CacheConfig struct {
	Name                   string `yaml:"name" env:"CACHE_NAME"`
	TTLSeconds             int    `yaml:"ttl_seconds" env:"CACHE_TTL"`
	CleanupIntervalSeconds int    `yaml:"cleanup_interval_seconds" env:"CACHE_CLEANUP_INTERVAL"` // 0 disables the sweep
	MaxSize                int    `yaml:"max_size" env:"CACHE_MAX_SIZE"`                         // 0 means unbounded
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`   // debug, info, warn, error
	Format     string `yaml:"format" env:"LOG_FORMAT"` // text, json
	File       string `yaml:"file,omitempty" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// FetchConfig contains GraphQL client settings.
type FetchConfig struct {
	Endpoint       string            `yaml:"endpoint,omitempty" env:"GRAPHQL_ENDPOINT"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	RetryCount     int               `yaml:"retry_count"`
	Headers        map[string]string `yaml:"headers,omitempty"`
}

// Options converts the cache section to construction options.
func (c CacheConfig) Options() cache.Options {
	return cache.Options{
		Name:            c.Name,
		TTL:             time.Duration(c.TTLSeconds) * time.Second,
		CleanupInterval: time.Duration(c.CleanupIntervalSeconds) * time.Second,
		MaxSize:         c.MaxSize,
	}
}

// Observability converts the log section to logger settings.
func (l LogConfig) Observability() observability.LogConfig {
	return observability.LogConfig{
		Level:      l.Level,
		Format:     l.Format,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
	}
}

// Timeout returns the request timeout.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}
