// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/chainkit-labs/ttlcache/pkg/errors"
)

const (
	// MaxRetryCount is the maximum allowed value for fetch.retry_count
	MaxRetryCount = 10
)

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true}
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c == nil {
		return errors.ValidationError("config is nil", nil)
	}

	if err := c.Cache.Validate(); err != nil {
		return errors.ValidationError("cache config", err)
	}

	if err := c.Log.Validate(); err != nil {
		return errors.ValidationError("log config", err)
	}

	if err := c.Fetch.Validate(); err != nil {
		return errors.ValidationError("fetch config", err)
	}

	return nil
}

// Validate validates cache configuration
func (c *CacheConfig) Validate() error {
	if c.TTLSeconds <= 0 {
		return fmt.Errorf("ttl_seconds must be positive, got %d", c.TTLSeconds)
	}
	if c.CleanupIntervalSeconds < 0 {
		return fmt.Errorf("cleanup_interval_seconds must not be negative, got %d", c.CleanupIntervalSeconds)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("max_size must not be negative, got %d", c.MaxSize)
	}
	return nil
}

// Validate validates log configuration
func (l *LogConfig) Validate() error {
	if !validLogLevels[strings.ToLower(l.Level)] {
		return fmt.Errorf("invalid level %q (valid: debug, info, warn, error)", l.Level)
	}
	if !validLogFormats[strings.ToLower(l.Format)] {
		return fmt.Errorf("invalid format %q (valid: text, json)", l.Format)
	}
	if l.MaxSizeMB < 0 || l.MaxBackups < 0 {
		return fmt.Errorf("max_size_mb and max_backups must not be negative")
	}
	return nil
}

// Validate validates fetch configuration
func (f *FetchConfig) Validate() error {
	if f.Endpoint != "" {
		u, err := url.Parse(f.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoint must be http or https, got %q", f.Endpoint)
		}
	}
	if f.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", f.TimeoutSeconds)
	}
	if f.RetryCount < 0 || f.RetryCount > MaxRetryCount {
		return fmt.Errorf("retry_count must be between 0 and %d, got %d", MaxRetryCount, f.RetryCount)
	}
	return nil
}
