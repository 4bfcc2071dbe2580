// engine_shared.go: Cache[K,V] adapter over the memory-mapped shared engine
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import (
	"github.com/agilira/fastcache/shared"
)

// sharedEngine bridges the generic Cache[K,V] surface to shared.Engine's
// byte-oriented, non-generic operations: K is checked via NewKey,
// serialized with keyCodec, and addressed by shared.HashKey of the encoded
// bytes; V is serialized with valueCodec. Eviction,
// TTL, and locking all live in the shared package; this file only
// translates types and error domains at the boundary (spec §6.2).
type sharedEngine[K comparable, V any] struct {
	engine *shared.Engine

	keyCodec   shared.Codec[K]
	valueCodec shared.Codec[V]

	timeProvider     TimeProvider
	logger           Logger
	metricsCollector MetricsCollector
	onEvict          func(key any, value interface{})
}

func newSharedEngine[K comparable, V any](config Config, keyCodec shared.Codec[K], valueCodec shared.Codec[V]) (Cache[K, V], error) {
	if !shared.Supported() {
		return nil, NewErrBackendUnavailable(config.Path, nil)
	}
	if keyCodec == nil {
		keyCodec = shared.GobCodec[K]{}
	}
	if valueCodec == nil {
		valueCodec = shared.GobCodec[V]{}
	}

	path, err := shared.ResolvePath("fastcache", config.Path)
	if err != nil {
		return nil, NewErrBackendUnavailable(config.Path, err)
	}

	params := shared.Params{
		Capacity:     uint64(config.MaxSize),
		MaxKeySize:   uint64(config.MaxKeySize),
		MaxValueSize: uint64(config.MaxValueSize),
		Strategy:     uint32(config.Strategy),
		TTLNanos:     uint64(config.TTL.Nanoseconds()),
	}

	eng, err := shared.Open(path, params, shared.Strategy(config.Strategy))
	if err != nil {
		return nil, NewErrBackendUnavailable(path, err)
	}

	return &sharedEngine[K, V]{
		engine:           eng,
		keyCodec:         keyCodec,
		valueCodec:       valueCodec,
		timeProvider:     config.TimeProvider,
		logger:           config.Logger,
		metricsCollector: config.MetricsCollector,
		onEvict:          config.OnEvict,
	}, nil
}

// Get implements Cache.Get by encoding key, hashing it, and decoding
// whatever byte payload the shared region returns.
func (e *sharedEngine[K, V]) Get(key K) (V, Result) {
	var zero V

	start := e.timeProvider.Now()

	if _, err := NewKey(key); err != nil {
		e.logger.Warn("fastcache: key not hashable", "error", err)
		return zero, Miss
	}

	encodedKey, err := e.keyCodec.Encode(key)
	if err != nil {
		e.logger.Warn("fastcache: key encode failed", "error", err)
		return zero, Miss
	}

	// The address hash must be deterministic across processes (unlike
	// Key.Hash, which is process-seeded) or sibling processes would probe
	// different slots for the identical key.
	hash := shared.HashKey(encodedKey)

	raw, result := e.engine.Get(hash, encodedKey, e.timeProvider.Now())
	if result != shared.Found {
		e.metricsCollector.RecordGet(e.timeProvider.Now()-start, false)
		return zero, Miss
	}

	value, err := e.valueCodec.Decode(raw)
	if err != nil {
		e.logger.Warn("fastcache: value decode failed", "error", err)
		e.metricsCollector.RecordGet(e.timeProvider.Now()-start, false)
		return zero, Miss
	}

	e.metricsCollector.RecordGet(e.timeProvider.Now()-start, true)
	return value, Hit
}

// Put implements Cache.Put. Oversize keys/values are reported via
// PutResult rather than an error, matching spec §4.4's write path.
func (e *sharedEngine[K, V]) Put(key K, value V) PutResult {
	start := e.timeProvider.Now()

	if _, err := NewKey(key); err != nil {
		e.logger.Warn("fastcache: key not hashable", "error", err)
		return OversizeSkipped
	}

	encodedKey, err := e.keyCodec.Encode(key)
	if err != nil {
		e.logger.Warn("fastcache: key encode failed", "error", err)
		return OversizeSkipped
	}

	encodedValue, err := e.valueCodec.Encode(value)
	if err != nil {
		e.logger.Warn("fastcache: value encode failed", "error", err)
		return OversizeSkipped
	}

	hash := shared.HashKey(encodedKey)

	outcome, err := e.engine.Put(hash, encodedKey, encodedValue, e.timeProvider.Now())
	if err != nil {
		// Busy, not Oversize: the writer lock itself blocks (spec §5
		// "writers block all other writers"), so this only fires on the
		// defensive paths in shared.Engine.Put (in-process spinlock
		// starvation, or no victim found for an ostensibly full table).
		// Reporting it as OversizeSkipped would misclassify a legitimate
		// concurrent write as one that was too large to store.
		e.logger.Error("fastcache: shared put contended", "error", err)
		e.metricsCollector.RecordPut(e.timeProvider.Now() - start)
		return Busy
	}
	if outcome == shared.Oversize {
		e.metricsCollector.RecordOversizeSkip()
		return OversizeSkipped
	}

	e.metricsCollector.RecordPut(e.timeProvider.Now() - start)
	return Ok
}

// Clear implements Cache.Clear.
func (e *sharedEngine[K, V]) Clear() {
	_ = e.engine.Clear()
}

// Info implements Cache.Info, reading directly from the mmapped header.
func (e *sharedEngine[K, V]) Info() Info {
	info := e.engine.Info()
	return Info{
		Hits:          info.Hits,
		Misses:        info.Misses,
		Size:          int(info.Size),
		MaxSize:       int(info.MaxSize),
		OversizeSkips: info.OversizeSkips,
	}
}

// Close unmaps the region and closes the file descriptor this handle
// holds open; sibling processes with their own handle are unaffected.
func (e *sharedEngine[K, V]) Close() error {
	return e.engine.Close()
}
