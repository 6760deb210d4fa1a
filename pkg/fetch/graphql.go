// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package fetch provides a GraphQL client whose responses are memoized in a TTL cache.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/chainkit-labs/ttlcache/pkg/cache"
	"github.com/chainkit-labs/ttlcache/pkg/config"
	"github.com/chainkit-labs/ttlcache/pkg/errors"
	"github.com/chainkit-labs/ttlcache/pkg/observability"
)

// Sorted map keys make the variables encoding canonical for cache keys.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	keyPrefix = "gql"

	retryWait    = 100 * time.Millisecond
	retryMaxWait = 2 * time.Second
)

// Request is the POST body sent to the endpoint.
type Request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLError is one entry of a response's errors array.
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

type response struct {
	Data   jsoniter.RawMessage `json:"data"`
	Errors []GraphQLError      `json:"errors,omitempty"`
}

// Client sends GraphQL queries and caches the data field of successful responses.
type Client struct {
	endpoint string
	http     *resty.Client
	store    cache.Store[[]byte]
	keys     *cache.KeyGenerator
	log      observability.Logger

	timeout      time.Duration
	retryCount   int
	retryMaxWait time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l observability.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRetryWait overrides the backoff between retries.
func WithRetryWait(wait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.http.SetRetryWaitTime(wait).SetRetryMaxWaitTime(maxWait)
		c.retryMaxWait = maxWait
	}
}

// NewClient creates a client for cfg.Endpoint backed by store.
func NewClient(cfg config.FetchConfig, store cache.Store[[]byte], opts ...Option) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.ValidationError("graphql endpoint is required", nil)
	}
	if store == nil {
		return nil, errors.ValidationError("cache store is required", nil)
	}

	rc := resty.New().
		SetTimeout(cfg.Timeout()).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(retryMaxWait).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeaders(cfg.Headers).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && retryableStatus(r.StatusCode()))
		})

	c := &Client{
		endpoint: cfg.Endpoint,
		http:     rc,
		store:    store,
		keys:     cache.NewKeyGenerator(keyPrefix),
		log:      observability.NewNopLogger(),

		timeout:      cfg.Timeout(),
		retryCount:   cfg.RetryCount,
		retryMaxWait: retryMaxWait,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// AttemptBudget is the longest a single Query can take on the network: every
// attempt running to the timeout, plus the longest backoff before each retry.
func (c *Client) AttemptBudget() time.Duration {
	return time.Duration(c.retryCount+1)*c.timeout + time.Duration(c.retryCount)*c.retryMaxWait
}

// retryableStatus reports whether a response status is worth another attempt.
// Only server-side failures are; 4xx means the request itself was rejected.
func retryableStatus(code int) bool {
	return code >= 500
}

// Key returns the cache key for a query and its variables.
func (c *Client) Key(query string, variables map[string]interface{}) (string, error) {
	vars, err := json.Marshal(variables)
	if err != nil {
		return "", errors.ValidationError("encode variables", err)
	}
	return c.keys.Generate(c.endpoint, query, string(vars)), nil
}

// Query returns the data field for query, from the cache when a live entry
// exists. Failed requests and GraphQL errors are never cached.
func (c *Client) Query(ctx context.Context, query string, variables map[string]interface{}) (jsoniter.RawMessage, error) {
	key, err := c.Key(query, variables)
	if err != nil {
		return nil, err
	}

	data, err := c.store.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		return c.do(ctx, query, variables)
	})
	if err != nil {
		return nil, err
	}

	// Callers get their own copy so the cached bytes stay intact.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}) ([]byte, error) {
	body, err := json.Marshal(Request{Query: query, Variables: variables})
	if err != nil {
		return nil, errors.ValidationError("encode request", err)
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		return nil, errors.FetchError("graphql request failed", err).
			WithRetryable(true).
			WithContext("endpoint", c.endpoint)
	}

	c.log.Debug("graphql response",
		observability.String("endpoint", c.endpoint),
		observability.Int("status", resp.StatusCode()),
		observability.Duration("elapsed", time.Since(start)))

	if resp.IsError() {
		return nil, errors.FetchError(fmt.Sprintf("graphql endpoint returned %s", resp.Status()), nil).
			WithRetryable(retryableStatus(resp.StatusCode())).
			WithContext("endpoint", c.endpoint).
			WithContext("status", resp.StatusCode())
	}

	var out response
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, errors.FetchError("decode graphql response", err).
			WithContext("endpoint", c.endpoint)
	}
	if len(out.Errors) > 0 {
		c.log.Warn("graphql errors in response",
			observability.String("endpoint", c.endpoint),
			observability.Any("errors", out.Errors))
		return nil, errors.FetchError(fmt.Sprintf("graphql error: %s", out.Errors[0].Message), nil).
			WithContext("endpoint", c.endpoint).
			WithContext("errors", out.Errors)
	}
	return out.Data, nil
}
