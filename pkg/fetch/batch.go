// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package fetch

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

// BatchDeadline bounds a QueryBatch of n requests at the given concurrency:
// the requests run in ceil(n/concurrency) waves of at most AttemptBudget each.
func (c *Client) BatchDeadline(n, concurrency int) time.Duration {
	if n <= 0 {
		return 0
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	waves := (n + concurrency - 1) / concurrency
	return time.Duration(waves) * c.AttemptBudget()
}

// QueryBatch runs reqs through Query with at most concurrency in flight and
// returns the results in request order. The first failure cancels the
// remaining requests.
//
// Identical requests in the batch share one upstream call.
func (c *Client) QueryBatch(ctx context.Context, reqs []Request, concurrency int) ([]jsoniter.RawMessage, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]jsoniter.RawMessage, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			data, err := c.Query(ctx, req.Query, req.Variables)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
