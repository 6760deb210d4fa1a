// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainkit-labs/ttlcache/pkg/errors"
)

func TestProviderReturnsSameHandle(t *testing.T) {
	var p Provider[string]
	t.Cleanup(func() { _ = p.Reset() })

	opts := Options{Name: "shared", TTL: time.Minute}

	first, err := p.Get(opts)
	require.NoError(t, err)
	second, err := p.Get(opts)
	require.NoError(t, err)

	assert.Same(t, first, second)

	require.NoError(t, first.Set("k", "v"))
	v, ok := second.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestProviderRejectsReconfiguration(t *testing.T) {
	var p Provider[string]
	t.Cleanup(func() { _ = p.Reset() })

	_, err := p.Get(Options{Name: "shared", TTL: time.Minute})
	require.NoError(t, err)

	c, err := p.Get(Options{Name: "shared", TTL: time.Hour})
	assert.Nil(t, c)
	assert.True(t, errors.IsType(err, errors.ErrReconfigure), "got %v", err)

	// The original instance is untouched.
	inst, ok := p.Instance()
	require.True(t, ok)
	assert.Equal(t, time.Minute, inst.TTL())
}

func TestProviderInvalidOptions(t *testing.T) {
	var p Provider[string]

	_, err := p.Get(Options{TTL: 0})
	assert.True(t, errors.IsType(err, errors.ErrValidation))

	_, ok := p.Instance()
	assert.False(t, ok)
}

func TestProviderResetAllowsNewOptions(t *testing.T) {
	var p Provider[string]
	t.Cleanup(func() { _ = p.Reset() })

	first, err := p.Get(Options{TTL: time.Minute})
	require.NoError(t, err)

	require.NoError(t, p.Reset())
	assert.ErrorIs(t, first.Set("k", "v"), ErrStopped)

	second, err := p.Get(Options{TTL: time.Hour})
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, time.Hour, second.TTL())
}

func TestProviderRebuildsAfterDirectStop(t *testing.T) {
	var p Provider[string]
	t.Cleanup(func() { _ = p.Reset() })

	first, err := p.Get(Options{TTL: time.Minute})
	require.NoError(t, err)
	require.NoError(t, first.Stop())

	_, ok := p.Instance()
	assert.False(t, ok)

	second, err := p.Get(Options{TTL: time.Second})
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestProviderResetWithoutInstance(t *testing.T) {
	var p Provider[int]
	assert.NoError(t, p.Reset())
}
