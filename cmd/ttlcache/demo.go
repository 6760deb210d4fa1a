// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/chainkit-labs/ttlcache/pkg/cache"
	pkgcontext "github.com/chainkit-labs/ttlcache/pkg/context"
	"github.com/chainkit-labs/ttlcache/pkg/errors"
	"github.com/chainkit-labs/ttlcache/pkg/observability"
)

// demoFlags holds the flags for the demo command
type demoFlags struct {
	ttl     time.Duration
	wait    time.Duration
	cleanup time.Duration
	metrics bool
}

func newDemoCmd(a *app) *cobra.Command {
	var f demoFlags

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Set a key, read it, wait past its TTL and read it again",
		Long: `Run the expiry scenario against a fresh shared cache:

  set user:1, get user:1 (hit), wait, get user:1 (miss), print stats.

The cache name and max size come from the config; --ttl and --cleanup
override the configured TTL and sweep interval. Ctrl-C ends the wait early.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, a, f)
		},
	}

	cmd.Flags().DurationVar(&f.ttl, "ttl", 5*time.Second, "TTL for the demo entry")
	cmd.Flags().DurationVar(&f.wait, "wait", 6*time.Second, "time to wait before the second lookup")
	cmd.Flags().DurationVar(&f.cleanup, "cleanup", 0, "background sweep interval, 0 disables the sweep")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "print Prometheus metrics after the run")

	return cmd
}

func runDemo(cmd *cobra.Command, a *app, f demoFlags) error {
	if f.wait < 0 {
		return errors.ValidationError(fmt.Sprintf("--wait must not be negative, got %s", f.wait), nil)
	}

	ctx, cancel := pkgcontext.WithSignal(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := a.cfg.Cache.Options()
	opts.TTL = f.ttl
	opts.CleanupInterval = f.cleanup

	reg := prometheus.NewRegistry()
	var shared cache.Provider[string]
	c, err := shared.Get(opts,
		cache.WithLogger(a.log),
		cache.WithRecorder(observability.NewMetrics("ttlcache", reg)))
	if err != nil {
		return err
	}
	defer shared.Reset()

	out := cmd.OutOrStdout()
	key := cache.NewKeyGenerator("").Namespaced("user", "1")

	if err := c.Set(key, "Alice"); err != nil {
		return err
	}
	fmt.Fprintf(out, "set %s = %q (ttl %s)\n", key, "Alice", c.TTL())

	v, ok := c.Get(key)
	fmt.Fprintf(out, "get %s -> %q found=%t\n", key, v, ok)

	fmt.Fprintf(out, "waiting %s...\n", f.wait)
	timer := time.NewTimer(f.wait)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		fmt.Fprintln(out, "interrupted")
	}

	v, ok = c.Get(key)
	fmt.Fprintf(out, "get %s -> %q found=%t\n", key, v, ok)

	printStats(out, c.Stats())

	if f.metrics {
		fmt.Fprintln(out)
		return observability.WriteText(out, reg)
	}
	return nil
}
