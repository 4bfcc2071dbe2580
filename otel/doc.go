// Package otel provides OpenTelemetry integration for fastcache cache
// metrics.
//
// # Overview
//
// This package implements fastcache.MetricsCollector using OpenTelemetry,
// giving automatic percentile calculation and multi-backend export
// (Prometheus, Jaeger, DataDog, or any OTEL-compatible collector). It is
// a separate module so the fastcache core carries no OTEL dependency;
// applications that don't need metrics don't pay for them.
//
// # Quick Start
//
//	import (
//	    "github.com/agilira/fastcache"
//	    fastcacheotel "github.com/agilira/fastcache/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, err := prometheus.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	collector, err := fastcacheotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cache, _ := fastcache.New[string, User](fastcache.Config{
//	    MaxSize:          10_000,
//	    MetricsCollector: collector,
//	}, nil, nil)
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":2112", nil))
//
// # Metrics Exposed
//
// Histograms (automatic percentiles):
//   - fastcache_get_latency_ns
//   - fastcache_put_latency_ns
//
// Counters:
//   - fastcache_hits_total / fastcache_misses_total
//   - fastcache_evictions_total
//   - fastcache_expirations_total
//   - fastcache_oversize_skips_total
//
// # Prometheus Queries
//
// P95 latency over the last 5 minutes:
//
//	histogram_quantile(0.95, rate(fastcache_get_latency_ns_bucket[5m]))
//
// Hit ratio:
//
//	rate(fastcache_hits_total[5m]) /
//	(rate(fastcache_hits_total[5m]) + rate(fastcache_misses_total[5m]))
//
// # Configuration
//
// Custom meter name, useful when running several cache instances:
//
//	collector, err := fastcacheotel.NewOTelMetricsCollector(
//	    provider,
//	    fastcacheotel.WithMeterName("myapp_user_cache"),
//	)
//
// # Thread Safety
//
// All methods are safe for concurrent use; the underlying OTEL
// instruments are themselves lock-free.
package otel
