// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	"github.com/chainkit-labs/ttlcache/pkg/errors"
)

// Loader loads configuration from files and environment.
type Loader struct {
	path        string
	projectRoot string
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// WithPath sets an explicit config file. A missing file is then an error.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// WithProjectRoot sets the directory where file discovery starts.
func (l *Loader) WithProjectRoot(root string) *Loader {
	l.projectRoot = root
	return l
}

// Load loads configuration with full precedence order:
// 1. Defaults
// 2. Config file (explicit path, $TTLCACHE_CONFIG, or discovered)
// 3. Environment variables
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := l.resolvePath()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
		cfg.Source = path
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load loads configuration from a specific file path, then applies
// environment overrides and validation.
func Load(path string) (*Config, error) {
	return NewLoader().WithPath(path).Load()
}

// LoadDefault discovers configuration from the environment and current directory.
func LoadDefault() (*Config, error) {
	return NewLoader().Load()
}

func (l *Loader) resolvePath() (string, error) {
	if l.path != "" {
		return l.path, nil
	}
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path, nil
	}

	root := l.projectRoot
	if root == "" {
		root = "."
	}
	path, ok, err := findInParents(root)
	if err != nil {
		return "", errors.ConfigError("failed to search for config file", err)
	}
	if !ok {
		return "", nil
	}
	return path, nil
}

// loadFile overlays the YAML file at path onto cfg; keys absent from the file keep their value.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
	}
	return nil
}

// applyEnvOverrides overwrites fields whose env tag is set in the environment.
// Unset variables leave the current value in place.
func applyEnvOverrides(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return errors.ConfigError("invalid environment override", err)
	}
	return nil
}

// findInParents searches for config file in startDir and its parent directories
func findInParents(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}

	for {
		for _, filename := range defaultConfigFiles {
			configPath := filepath.Join(dir, filename)
			if _, err := os.Stat(configPath); err == nil {
				return configPath, true, nil
			}
		}

		// Move to parent directory
		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root
			break
		}
		dir = parentDir
	}

	return "", false, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
