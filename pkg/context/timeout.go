// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package context provides signal-aware contexts for the CLI commands.
package context

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"
)

// signalContext cancels when one of its signals arrives.
// stop releases the signal handler and the watcher goroutine.
type signalContext struct {
	context.Context

	cancel   context.CancelFunc
	stopOnce sync.Once
	stopCh   chan struct{}
	sigCh    chan os.Signal
}

func (sc *signalContext) stop() {
	sc.stopOnce.Do(func() {
		signal.Stop(sc.sigCh)
		sc.cancel()
		close(sc.stopCh)
	})
}

// WithSignal returns a context cancelled by any of sigs or by the returned
// cancel function, which must be called to release the signal handler.
//
// Example:
//
//	ctx, cancel := WithSignal(context.Background(), os.Interrupt)
//	defer cancel()
func WithSignal(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return watch(ctx, cancel, sigs)
}

// WithSignalTimeout is WithSignal with a deadline, so a command waiting on
// a slow remote call still gives up after timeout.
func WithSignalTimeout(parent context.Context, timeout time.Duration, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return watch(ctx, cancel, sigs)
}

func watch(ctx context.Context, cancel context.CancelFunc, sigs []os.Signal) (context.Context, context.CancelFunc) {
	sc := &signalContext{
		Context: ctx,
		cancel:  cancel,
		stopCh:  make(chan struct{}),
		sigCh:   make(chan os.Signal, 1),
	}
	signal.Notify(sc.sigCh, sigs...)

	go func() {
		select {
		case <-sc.sigCh:
			cancel()
		case <-sc.stopCh:
		case <-ctx.Done():
		}
	}()

	return sc, sc.stop
}
