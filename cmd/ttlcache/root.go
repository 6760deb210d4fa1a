// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chainkit-labs/ttlcache/pkg/cache"
	"github.com/chainkit-labs/ttlcache/pkg/config"
	"github.com/chainkit-labs/ttlcache/pkg/errors"
	"github.com/chainkit-labs/ttlcache/pkg/observability"
	"github.com/chainkit-labs/ttlcache/pkg/version"
)

// app carries the state every subcommand shares once the root has loaded config.
type app struct {
	cfgFile  string
	logLevel string

	cfg *config.Config
	log observability.Logger
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ttlcache",
		Short: "In-memory TTL cache toolkit",
		Long: `ttlcache - an in-memory key/value cache whose entries expire a fixed
time after they were written.

The CLI runs the cache end to end, memoizes GraphQL queries through it,
and inspects the effective configuration.`,
		Version:       version.FullString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default $"+config.ConfigPathEnv+" or .ttlcache.yaml in a parent directory)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"override the log level (debug, info, warn, error)")

	rootCmd.AddCommand(newDemoCmd(a))
	rootCmd.AddCommand(newQueryCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// load resolves configuration and builds the logger. Log lines go to the
// command's stderr unless a log file is configured.
func (a *app) load(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.Load(a.cfgFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Log.Validate(); err != nil {
			return errors.ValidationError("invalid --log-level", err)
		}
	}

	logCfg := cfg.Log.Observability()
	if logCfg.File == "" {
		logCfg.Output = cmd.ErrOrStderr()
	}

	a.cfg = cfg
	a.log = observability.NewLoggerWithConfig(logCfg)
	if cfg.Source != "" {
		a.log.Debug("config loaded", observability.String("source", cfg.Source))
	}
	return nil
}

func printStats(w io.Writer, s cache.Stats) {
	fmt.Fprintf(w, "hits=%d misses=%d evictions=%d expirations=%d size=%d hit_rate=%.2f\n",
		s.Hits, s.Misses, s.Evictions, s.Expirations, s.Size, s.HitRate())
	if !s.LastCleared.IsZero() {
		fmt.Fprintf(w, "last_cleared=%s\n", s.LastCleared.Format("2006-01-02T15:04:05Z07:00"))
	}
}
