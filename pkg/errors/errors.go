// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package errors provides typed errors for ttlcache
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration file error
	ErrConfig ErrorType = iota
	// ErrValidation indicates invalid options or config values
	ErrValidation
	// ErrStopped indicates an operation on a stopped cache
	ErrStopped
	// ErrReconfigure indicates a shared cache was requested with different options
	ErrReconfigure
	// ErrLoad indicates a read-through loader failed
	ErrLoad
	// ErrFetch indicates a remote fetch failed
	ErrFetch
)

// Error is the base error type for all ttlcache errors
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
	// Retryable is set by the code that creates the error. See IsRetryable.
	Retryable bool
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	e.Context[key] = value
	return e
}

// IsType checks if an error, or any typed error it wraps, is of a specific type
func IsType(err error, errType ErrorType) bool {
	for err != nil {
		var typed *Error
		if !errors.As(err, &typed) {
			return false
		}
		if typed.Type == errType {
			return true
		}
		err = typed.Cause
	}
	return false
}

// WithRetryable marks whether the caller may try again
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// IsRetryable reports whether the caller may try again. The innermost typed
// error decides, so a load error wrapping a rejected fetch is not retryable.
func IsRetryable(err error) bool {
	retryable := false
	for err != nil {
		var typed *Error
		if !errors.As(err, &typed) {
			break
		}
		retryable = typed.Retryable
		err = typed.Cause
	}
	return retryable
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrValidation:
		return "VALIDATION"
	case ErrStopped:
		return "STOPPED"
	case ErrReconfigure:
		return "RECONFIGURE"
	case ErrLoad:
		return "LOAD"
	case ErrFetch:
		return "FETCH"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *Error {
	return New(ErrConfig, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *Error {
	return New(ErrValidation, message, cause)
}

// StoppedError creates a stopped-cache error
func StoppedError(message string) *Error {
	return New(ErrStopped, message, nil)
}

// ReconfigureError creates a reconfiguration error
func ReconfigureError(message string) *Error {
	return New(ErrReconfigure, message, nil)
}

// LoadError creates a loader error. Loader failures are retryable unless the
// cause is a typed error that says otherwise.
func LoadError(message string, cause error) *Error {
	return New(ErrLoad, message, cause).WithRetryable(true)
}

// FetchError creates a fetch error. It is retryable only when marked so.
func FetchError(message string, cause error) *Error {
	return New(ErrFetch, message, cause)
}
