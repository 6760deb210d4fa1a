// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package cache

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainkit-labs/ttlcache/pkg/errors"
)

func TestGetOrLoadCachesResult(t *testing.T) {
	c, _ := newTestCache[string](t, Options{TTL: time.Minute})
	var calls atomic.Int32

	load := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "balance:42", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(context.Background(), "wallet:abc", load)
		require.NoError(t, err)
		assert.Equal(t, "balance:42", v)
	}

	assert.Equal(t, int32(1), calls.Load())
	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestGetOrLoadReloadsAfterExpiry(t *testing.T) {
	c, mock := newTestCache[int](t, Options{TTL: time.Second})
	var calls atomic.Int32

	load := func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	v, err := c.GetOrLoad(context.Background(), "slot", load)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	mock.Add(2 * time.Second)

	v, err = c.GetOrLoad(context.Background(), "slot", load)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	c, _ := newTestCache[string](t, Options{TTL: time.Minute})
	rpcErr := stderrors.New("rpc unavailable")

	_, err := c.GetOrLoad(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "", rpcErr
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrLoad))
	assert.ErrorIs(t, err, rpcErr)
	assert.False(t, c.Has("k"))

	v, err := c.GetOrLoad(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestGetOrLoadSharesConcurrentLoads(t *testing.T) {
	c, err := New[string](Options{TTL: time.Minute})
	require.NoError(t, err)
	defer c.Stop()

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "k", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let the goroutines pile up on the in-flight load before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "v", v)
	}
}

func TestGetOrLoadOnStoppedCache(t *testing.T) {
	c, _ := newTestCache[string](t, Options{TTL: time.Minute})
	require.NoError(t, c.Stop())

	_, err := c.GetOrLoad(context.Background(), "k", func(ctx context.Context) (string, error) {
		t.Fatal("loader must not run on a stopped cache")
		return "", nil
	})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestGetOrLoadSurvivesFirstCallerCancel(t *testing.T) {
	c, err := New[string](Options{TTL: time.Minute})
	require.NoError(t, err)
	defer c.Stop()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(ctx context.Context) (string, error) {
		calls.Add(1)
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "block:100", nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(ctxA, "head", load)
		errA <- err
	}()
	<-started

	type result struct {
		v   string
		err error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := c.GetOrLoad(context.Background(), "head", load)
		resB <- result{v, err}
	}()

	// Give B time to join the in-flight load, then abandon A.
	time.Sleep(20 * time.Millisecond)
	cancelA()

	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, errors.IsType(err, errors.ErrLoad))
	case <-time.After(time.Second):
		t.Fatal("cancelled caller should return without waiting for the load")
	}

	close(release)

	select {
	case r := <-resB:
		require.NoError(t, r.err)
		assert.Equal(t, "block:100", r.v)
	case <-time.After(time.Second):
		t.Fatal("second caller should get the loaded value")
	}

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, c.Has("head"))
}
