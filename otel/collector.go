// Package otel provides OpenTelemetry integration for fastcache metrics.
//
// This package implements fastcache.MetricsCollector using OpenTelemetry,
// giving Get/Put latency histograms (with automatic percentile
// aggregation) and counters for hits, misses, evictions, expirations,
// and oversize skips, exportable to any OTEL-compatible backend.
//
// # Usage
//
//	import (
//	    "github.com/agilira/fastcache"
//	    fastcacheotel "github.com/agilira/fastcache/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//
//	collector, _ := fastcacheotel.NewOTelMetricsCollector(provider)
//
//	cache, _ := fastcache.New[string, string](fastcache.Config{
//	    MaxSize:          10000,
//	    MetricsCollector: collector,
//	}, nil, nil)
//
// # Metrics Exposed
//
//   - fastcache_get_latency_ns: histogram of Get latencies
//   - fastcache_put_latency_ns: histogram of Put latencies
//   - fastcache_hits_total / fastcache_misses_total: Get outcome counters
//   - fastcache_evictions_total: entries evicted to make room
//   - fastcache_expirations_total: entries purged for exceeding TTL
//   - fastcache_oversize_skips_total: puts skipped for exceeding size bounds
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/fastcache"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements fastcache.MetricsCollector using
// OpenTelemetry. All instruments are thread-safe and lock-free.
type OTelMetricsCollector struct {
	getLatency    metric.Int64Histogram
	putLatency    metric.Int64Histogram
	hits          metric.Int64Counter
	misses        metric.Int64Counter
	evictions     metric.Int64Counter
	expirations   metric.Int64Counter
	oversizeSkips metric.Int64Counter
}

// Options configures OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/fastcache"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name, useful for distinguishing
// metrics from multiple cache instances.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates the OTEL instruments and returns a
// collector ready to pass as Config.MetricsCollector. provider must not
// be nil.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/agilira/fastcache"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	collector := &OTelMetricsCollector{}

	var err error
	collector.getLatency, err = meter.Int64Histogram(
		"fastcache_get_latency_ns",
		metric.WithDescription("Latency of Get operations in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.putLatency, err = meter.Int64Histogram(
		"fastcache_put_latency_ns",
		metric.WithDescription("Latency of Put operations in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.hits, err = meter.Int64Counter(
		"fastcache_hits_total",
		metric.WithDescription("Total number of cache hits"),
	)
	if err != nil {
		return nil, err
	}

	collector.misses, err = meter.Int64Counter(
		"fastcache_misses_total",
		metric.WithDescription("Total number of cache misses"),
	)
	if err != nil {
		return nil, err
	}

	collector.evictions, err = meter.Int64Counter(
		"fastcache_evictions_total",
		metric.WithDescription("Total number of evictions"),
	)
	if err != nil {
		return nil, err
	}

	collector.expirations, err = meter.Int64Counter(
		"fastcache_expirations_total",
		metric.WithDescription("Total number of TTL-based expirations"),
	)
	if err != nil {
		return nil, err
	}

	collector.oversizeSkips, err = meter.Int64Counter(
		"fastcache_oversize_skips_total",
		metric.WithDescription("Total number of puts skipped for exceeding size bounds"),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// RecordGet records a Get operation's latency and hit/miss outcome.
func (c *OTelMetricsCollector) RecordGet(latencyNs int64, hit bool) {
	ctx := context.Background()
	c.getLatency.Record(ctx, latencyNs)
	if hit {
		c.hits.Add(ctx, 1)
	} else {
		c.misses.Add(ctx, 1)
	}
}

// RecordPut records a Put operation's latency.
func (c *OTelMetricsCollector) RecordPut(latencyNs int64) {
	c.putLatency.Record(context.Background(), latencyNs)
}

// RecordEviction records that an entry was evicted to make room.
func (c *OTelMetricsCollector) RecordEviction() {
	c.evictions.Add(context.Background(), 1)
}

// RecordExpiration records that an entry was purged for exceeding TTL.
func (c *OTelMetricsCollector) RecordExpiration() {
	c.expirations.Add(context.Background(), 1)
}

// RecordOversizeSkip records that a put was skipped for exceeding the
// shared backend's per-entry size limit.
func (c *OTelMetricsCollector) RecordOversizeSkip() {
	c.oversizeSkips.Add(context.Background(), 1)
}

var _ fastcache.MetricsCollector = (*OTelMetricsCollector)(nil)
