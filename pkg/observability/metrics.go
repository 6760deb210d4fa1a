// Copyright 2026 Chainkit Labs. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package observability

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the Prometheus collectors for cache activity.
// Every series is labelled by cache name so several caches can share a registry.
type Metrics struct {
	Hits          *prometheus.CounterVec
	Misses        *prometheus.CounterVec
	Evictions     *prometheus.CounterVec
	Entries       *prometheus.GaugeVec
	SweepDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors under namespace and registers them with reg.
// A nil reg skips registration.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache lookups that returned a live entry",
		}, []string{"cache"}),
		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache lookups that found no live entry",
		}, []string{"cache"}),
		Evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of entries removed by expiry or capacity",
		}, []string{"cache", "reason"}),
		Entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Number of entries currently stored, including ones not yet purged",
		}, []string{"cache"}),
		SweepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cache_sweep_duration_seconds",
			Help:      "Time spent in background expiry sweeps",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		}, []string{"cache"}),
	}

	if reg != nil {
		reg.MustRegister(m.Hits, m.Misses, m.Evictions, m.Entries, m.SweepDuration)
	}
	return m
}

// RecordCacheHit records a cache hit/miss.
func (m *Metrics) RecordCacheHit(cache string, hit bool) {
	if hit {
		m.Hits.WithLabelValues(cache).Inc()
		return
	}
	m.Misses.WithLabelValues(cache).Inc()
}

// RecordEviction records n entries removed for reason ("expired" or "capacity").
func (m *Metrics) RecordEviction(cache, reason string, n int) {
	if n <= 0 {
		return
	}
	m.Evictions.WithLabelValues(cache, reason).Add(float64(n))
}

// SetEntries sets the stored entry count.
func (m *Metrics) SetEntries(cache string, n int) {
	m.Entries.WithLabelValues(cache).Set(float64(n))
}

// ObserveSweep records the duration of one sweep pass.
func (m *Metrics) ObserveSweep(cache string, d time.Duration) {
	m.SweepDuration.WithLabelValues(cache).Observe(d.Seconds())
}

// WriteText writes every family gathered from g in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
