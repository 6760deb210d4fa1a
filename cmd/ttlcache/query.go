// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"fmt"
	"os"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/chainkit-labs/ttlcache/pkg/cache"
	pkgcontext "github.com/chainkit-labs/ttlcache/pkg/context"
	"github.com/chainkit-labs/ttlcache/pkg/errors"
	"github.com/chainkit-labs/ttlcache/pkg/fetch"
)

// queryFlags holds the flags for the query command
type queryFlags struct {
	endpoint string
	query    string
	vars     string
	repeat   int
	parallel int
}

func newQueryCmd(a *app) *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a GraphQL query through the cache",
		Long: `Send a GraphQL query to the configured endpoint --repeat times.

Only the first request reaches the endpoint while the response is live in
the cache, even when --parallel runs the repeats concurrently. The response
data is printed once, followed by cache stats.

The whole run is bounded by ceil(repeat/parallel) times the per-query budget:
(retry_count+1) attempts of timeout_seconds each, plus the retry backoff.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, a, f)
		},
	}

	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "GraphQL endpoint (default from config or $GRAPHQL_ENDPOINT)")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "GraphQL query document")
	cmd.Flags().StringVar(&f.vars, "vars", "", "query variables as a JSON object")
	cmd.Flags().IntVarP(&f.repeat, "repeat", "n", 1, "number of times to run the query")
	cmd.Flags().IntVarP(&f.parallel, "parallel", "p", 1, "number of repeats in flight at once")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func runQuery(cmd *cobra.Command, a *app, f queryFlags) error {
	if f.repeat < 1 {
		return errors.ValidationError(fmt.Sprintf("--repeat must be at least 1, got %d", f.repeat), nil)
	}

	var vars map[string]interface{}
	if f.vars != "" {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(f.vars, &vars); err != nil {
			return errors.ValidationError("--vars must be a JSON object", err)
		}
	}

	fc := a.cfg.Fetch
	if f.endpoint != "" {
		fc.Endpoint = f.endpoint
		if err := fc.Validate(); err != nil {
			return errors.ValidationError("invalid --endpoint", err)
		}
	}

	store, err := cache.New[[]byte](a.cfg.Cache.Options(), cache.WithLogger(a.log))
	if err != nil {
		return err
	}
	defer store.Stop()

	client, err := fetch.NewClient(fc, store, fetch.WithLogger(a.log))
	if err != nil {
		return err
	}

	ctx, cancel := pkgcontext.WithSignalTimeout(cmd.Context(),
		client.BatchDeadline(f.repeat, f.parallel), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reqs := make([]fetch.Request, f.repeat)
	for i := range reqs {
		reqs[i] = fetch.Request{Query: f.query, Variables: vars}
	}

	results, err := client.QueryBatch(ctx, reqs, f.parallel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, string(results[0]))

	printStats(out, store.Stats())
	return nil
}
