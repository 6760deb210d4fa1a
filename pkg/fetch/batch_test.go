// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package fetch

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainkit-labs/ttlcache/pkg/cache"
	"github.com/chainkit-labs/ttlcache/pkg/config"
	"github.com/chainkit-labs/ttlcache/pkg/errors"
)

func TestQueryBatchSharesUpstreamCall(t *testing.T) {
	release := make(chan struct{})
	srv := newFakeServer(t, func(w http.ResponseWriter, _ int32) {
		<-release
		_, _ = io.WriteString(w, `{"data":{"n":1}}`)
	})
	c, _, _ := newTestClient(t, srv.URL, 0)

	reqs := make([]Request, 8)
	for i := range reqs {
		reqs[i] = Request{Query: blockQuery, Variables: map[string]interface{}{"n": 1}}
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	results, err := c.QueryBatch(context.Background(), reqs, len(reqs))
	require.NoError(t, err)

	require.Len(t, results, len(reqs))
	for _, r := range results {
		assert.JSONEq(t, `{"n":1}`, string(r))
	}
	assert.Equal(t, int32(1), srv.hits.Load())
}

func TestQueryBatchKeepsOrder(t *testing.T) {
	srv := newFakeServer(t, func(w http.ResponseWriter, _ int32) {
		_, _ = io.WriteString(w, `{"data":"ok"}`)
	})
	c, _, _ := newTestClient(t, srv.URL, 0)

	reqs := []Request{
		{Query: blockQuery, Variables: map[string]interface{}{"n": 1}},
		{Query: blockQuery, Variables: map[string]interface{}{"n": 2}},
		{Query: blockQuery, Variables: map[string]interface{}{"n": 3}},
	}

	results, err := c.QueryBatch(context.Background(), reqs, 2)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, int32(3), srv.hits.Load())
}

func TestQueryBatchStopsOnError(t *testing.T) {
	srv := newFakeServer(t, func(w http.ResponseWriter, _ int32) {
		_, _ = io.WriteString(w, `{"errors":[{"message":"boom"}]}`)
	})
	c, _, _ := newTestClient(t, srv.URL, 0)

	_, err := c.QueryBatch(context.Background(), []Request{{Query: blockQuery}}, 0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrFetch))
	assert.Contains(t, err.Error(), "request 0")
}

func TestQueryBatchEmpty(t *testing.T) {
	c, _, _ := newTestClient(t, "http://localhost/graphql", 0)

	results, err := c.QueryBatch(context.Background(), nil, 4)
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestBatchDeadline(t *testing.T) {
	store, err := cache.New[[]byte](cache.DefaultOptions())
	require.NoError(t, err)
	defer store.Stop()

	cfg := config.DefaultFetchConfig()
	cfg.Endpoint = "http://localhost/graphql"
	cfg.TimeoutSeconds = 10
	cfg.RetryCount = 2

	c, err := NewClient(cfg, store, WithRetryWait(time.Millisecond, time.Second))
	require.NoError(t, err)

	// Three attempts of 10s plus two backoffs of up to 1s.
	assert.Equal(t, 32*time.Second, c.AttemptBudget())

	tests := []struct {
		name        string
		n           int
		concurrency int
		want        time.Duration
	}{
		{"sequential", 3, 1, 96 * time.Second},
		{"one wave", 3, 3, 32 * time.Second},
		{"partial last wave", 5, 2, 96 * time.Second},
		{"non-positive concurrency", 2, 0, 64 * time.Second},
		{"empty", 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.BatchDeadline(tt.n, tt.concurrency))
		})
	}
}
