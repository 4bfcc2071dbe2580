// config.go: configuration for fastcache
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import (
	"time"

	"github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// Backend selects where an engine's state lives.
type Backend int

const (
	// Memory is an in-process engine: hash map + RWMutex. Default.
	Memory Backend = iota
	// Shared is a memory-mapped engine visible to sibling processes that
	// open the same region path with identical parameters.
	Shared
)

func (b Backend) String() string {
	switch b {
	case Memory:
		return "memory"
	case Shared:
		return "shared"
	default:
		return "unknown"
	}
}

// Config holds the configuration parameters for a Cache.
type Config struct {
	// Strategy selects the eviction policy. Default: LRU.
	Strategy Strategy

	// MaxSize is the maximum number of entries the cache can hold.
	// Must be > 0. Default: DefaultMaxSize.
	MaxSize int

	// TTL is the time-to-live for cache entries. If 0, entries never
	// expire. Default: 0 (no expiration). There is no per-entry override.
	TTL time.Duration

	// Backend selects the storage location. Default: Memory.
	Backend Backend

	// Path names the shared-memory region. Required when Backend is
	// Shared; ignored for Memory. See the shared package for path
	// resolution rules when Path is a bare name rather than an
	// absolute path.
	Path string

	// MaxKeySize bounds a serialized key's size for the Shared backend.
	// Oversize keys are skipped, not rejected. Default: DefaultMaxKeySize.
	MaxKeySize int

	// MaxValueSize bounds a serialized value's size for the Shared
	// backend. Oversize values are skipped, not rejected.
	// Default: DefaultMaxValueSize.
	MaxValueSize int

	// CleanupInterval, if > 0, starts a background janitor that
	// proactively sweeps TTL-expired entries. Purely an optimization:
	// the engine's lazy purge-on-write already guarantees expired
	// entries read as Miss without it. Only used if TTL > 0.
	CleanupInterval time.Duration

	// Logger is used for debugging and monitoring.
	// If nil, NoOpLogger is used. Default: NoOpLogger.
	Logger Logger

	// TimeProvider provides current time for TTL calculations.
	// If nil, a default implementation is used. Default: system time.
	TimeProvider TimeProvider

	// MetricsCollector is used for collecting operation metrics (latencies, hit/miss rates).
	// If nil, NoOpMetricsCollector is used (zero overhead). Default: NoOpMetricsCollector.
	MetricsCollector MetricsCollector

	// OnEvict is called when an entry is evicted to make room for another.
	// This callback must be fast and non-blocking. Only the Memory backend
	// calls it; the Shared backend does not.
	OnEvict func(key any, value interface{})

	// OnExpire is called when an entry is purged for having exceeded TTL.
	// This callback must be fast and non-blocking. Only the Memory backend
	// calls it; the Shared backend does not.
	OnExpire func(key any, value interface{})
}

// Validate checks configuration parameters and applies sensible defaults.
// Zero values are normalized rather than rejected; it returns an error only
// for a negative TTL or for a Shared backend with an empty Path, neither of
// which has a sane default.
//
// This method is called automatically by New, so you typically don't need
// to call it manually. It's exported so callers can inspect the normalized
// configuration before constructing a cache.
//
// Default values applied:
//   - MaxSize: DefaultMaxSize (128) if <= 0
//   - MaxKeySize: DefaultMaxKeySize (512) if <= 0
//   - MaxValueSize: DefaultMaxValueSize (4096) if <= 0
//   - CleanupInterval: clamped to 0 if negative, otherwise left as set
//     (the janitor only runs when both it and TTL are > 0)
//   - Logger: NoOpLogger{} if nil
//   - TimeProvider: systemTimeProvider{} if nil
//   - MetricsCollector: NoOpMetricsCollector{} if nil
func (c *Config) Validate() error {
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxSize
	}

	if c.MaxKeySize <= 0 {
		c.MaxKeySize = DefaultMaxKeySize
	}

	if c.MaxValueSize <= 0 {
		c.MaxValueSize = DefaultMaxValueSize
	}

	if c.TTL < 0 {
		return NewErrInvalidTTL(c.TTL)
	}

	if c.Backend == Shared && c.Path == "" {
		return errors.NewWithField(ErrCodeInvalidConfig, "invalid config: Path is required for the Shared backend", "backend", c.Backend.String())
	}

	if c.CleanupInterval < 0 {
		c.CleanupInterval = 0
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:         LRU,
		MaxSize:          DefaultMaxSize,
		Backend:          Memory,
		MaxKeySize:       DefaultMaxKeySize,
		MaxValueSize:     DefaultMaxValueSize,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default time provider using go-timecache.
// This provides cached, low-overhead time access compared to time.Now().
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
