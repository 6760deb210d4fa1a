// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithConfig(LogConfig{Level: "warn", Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithConfig(LogConfig{Level: "debug", Format: "json", Output: &buf}).
		With(String("cache", "rpc"))

	log.Debug("swept", Int("removed", 3), Err(errors.New("none")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "swept", line["msg"])
	assert.Equal(t, "rpc", line["cache"])
	assert.Equal(t, float64(3), line["removed"])
}

func TestLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithConfig(LogConfig{Level: "chatty", Output: &buf})

	log.Debug("debug line")
	log.Info("info line")

	out := buf.String()
	assert.False(t, strings.Contains(out, "debug line"))
	assert.True(t, strings.Contains(out, "info line"))
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()

	assert.NotPanics(t, func() {
		log.With(String("k", "v")).Error("dropped")
	})
}
