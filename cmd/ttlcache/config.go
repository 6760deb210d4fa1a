// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainkit-labs/ttlcache/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long:  `Print or validate the effective configuration (defaults, file, then environment).`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.cfg.Source != "" {
				fmt.Fprintf(out, "# source: %s\n", a.cfg.Source)
			} else {
				fmt.Fprintf(out, "# no config file found, showing defaults (create %s to override)\n",
					config.GetProjectConfigPath(""))
			}
			_, err = out.Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [config-path]",
		Short: "Validate a config file, or the effective configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if len(args) == 1 {
				loaded, err := config.Load(args[0])
				if err != nil {
					return err
				}
				cfg = loaded
			}

			source := cfg.Source
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid (%s)\n", source)
			return nil
		},
	})

	return cmd
}
