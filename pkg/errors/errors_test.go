// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, "[CONFIG] bad file: boom", ConfigError("bad file", cause).Error())
	assert.Equal(t, "[STOPPED] cache is stopped", StoppedError("cache is stopped").Error())
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		typ  ErrorType
		want bool
	}{
		{"nil", nil, ErrConfig, false},
		{"plain error", errors.New("x"), ErrConfig, false},
		{"matching", ValidationError("ttl", nil), ErrValidation, true},
		{"other type", ValidationError("ttl", nil), ErrStopped, false},
		{"wrapped", fmt.Errorf("outer: %w", ReconfigureError("ttl changed")), ErrReconfigure, true},
		{"nested typed", LoadError("load failed", FetchError("status 500", nil)), ErrFetch, true},
		{"nested outer", LoadError("load failed", FetchError("status 500", nil)), ErrLoad, true},
		{"nested absent", LoadError("load failed", errors.New("x")), ErrFetch, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.typ))
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := FetchError("post failed", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("plain"), false},
		{"stopped", StoppedError("stopped"), false},
		{"load with plain cause", LoadError("rpc", errors.New("timeout")), true},
		{"fetch unmarked", FetchError("status 400", nil), false},
		{"fetch marked", FetchError("status 502", nil).WithRetryable(true), true},
		{"load wrapping rejected fetch", LoadError("load failed", FetchError("status 400", nil)), false},
		{"load wrapping transient fetch", LoadError("load failed", FetchError("status 503", nil).WithRetryable(true)), true},
		{"fmt wrapped", fmt.Errorf("request 0: %w", LoadError("load failed", FetchError("status 404", nil))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestWithContext(t *testing.T) {
	err := ValidationError("ttl must be positive", nil).WithContext("ttl", 0)

	assert.Equal(t, 0, err.Context["ttl"])
}
