// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"path/filepath"
	"time"

	"github.com/chainkit-labs/ttlcache/pkg/cache"
)

const (
	// DefaultTTLSeconds is used when neither the file nor CACHE_TTL sets a TTL.
	DefaultTTLSeconds = int(cache.DefaultTTL / time.Second)
	// DefaultFetchTimeoutSeconds bounds a single GraphQL request.
	DefaultFetchTimeoutSeconds = 30
	// ConfigPathEnv overrides config file discovery.
	ConfigPathEnv = "TTLCACHE_CONFIG"
)

// Default config file names to search for
var defaultConfigFiles = []string{
	".ttlcache.yaml",
	".ttlcache.yml",
	"ttlcache.yaml",
	"ttlcache.yml",
}

// DefaultConfig returns the default configuration.
// These values are used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Cache: DefaultCacheConfig(),
		Log:   DefaultLogConfig(),
		Fetch: DefaultFetchConfig(),
	}
}

// DefaultCacheConfig returns default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Name:       "default",
		TTLSeconds: DefaultTTLSeconds,
	}
}

// DefaultLogConfig returns default log configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		Format:     "text",
		MaxSizeMB:  100,
		MaxBackups: 3,
	}
}

// DefaultFetchConfig returns default GraphQL client configuration.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		TimeoutSeconds: DefaultFetchTimeoutSeconds,
		RetryCount:     2,
	}
}

// GetProjectConfigPath returns where a project config file is expected in projectRoot.
func GetProjectConfigPath(projectRoot string) string {
	if projectRoot == "" {
		projectRoot = "."
	}
	return filepath.Join(projectRoot, defaultConfigFiles[0])
}
