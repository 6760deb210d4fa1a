// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package version provides build information for the ttlcache binary.
// These variables are set via ldflags during the build process.
package version

import (
	"fmt"
	"runtime"
)

// Name is the binary name used in version output.
const Name = "ttlcache"

// Version is the current version of the binary.
// Set via -ldflags "-X github.com/chainkit-labs/ttlcache/pkg/version.Version=..."
var Version = "dev"

// BuildDate is the date when the binary was built.
var BuildDate = "unknown"

// GitCommit is the git commit hash used to build the binary.
var GitCommit = "unknown"

// GoVersion defaults to the running toolchain when not stamped.
var GoVersion = runtime.Version()

// String returns the bare version.
func String() string {
	return Version
}

// FullString returns a one-line version including the commit and build date.
func FullString() string {
	if Version == "dev" {
		return Name + " development version"
	}
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", Name, Version, GitCommit, BuildDate, GoVersion)
}

// Info returns all version information as a map.
func Info() map[string]string {
	return map[string]string{
		"version":   Version,
		"buildDate": BuildDate,
		"gitCommit": GitCommit,
		"goVersion": GoVersion,
	}
}
