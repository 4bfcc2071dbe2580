// Package fastcache provides a general-purpose function-result cache: a
// concurrent key/value store with pluggable eviction, optional
// time-to-live, and a choice of two storage backends.
//
// # Overview
//
// fastcache is not a decorator or a memoization facade — it does not call
// your function for you, and it does not derive keys from arguments. You
// compute the key, call Get, and on a miss call your function yourself and
// Put the result. This keeps the cache agnostic to the shape of whatever
// it is fronting.
//
// # Backends
//
// The Memory backend is a single-process hash map guarded by a
// reader-writer lock, with recency/frequency bookkeeping applied lazily
// through a bounded deferred access log so Get only needs a read lock on
// the hot path.
//
// The Shared backend memory-maps a fixed-layout binary region so
// unrelated processes on the same host can observe one another's Put
// calls without a network hop. Readers use a seqlock and retry on a torn
// generation; writers serialize with a TTAS spinlock layered under an
// advisory inter-process file lock. Opening a region whose on-disk
// parameters (capacity, key/value size bounds, strategy, TTL) don't match
// the caller's Config reinitializes it from scratch — there is no
// migration path between incompatible shapes.
//
// # Eviction
//
// Four strategies are available via Config.Strategy: LRU, MRU, FIFO, and
// LFU. Ties in LFU break toward the oldest insertion. Eviction only ever
// runs on the write path; Get never removes anything, even for an expired
// entry — expired reads report Miss and are purged lazily on the next
// write that happens to touch them.
//
// # Example
//
//	cache, err := fastcache.New[string, int](fastcache.Config{
//		MaxSize:  1000,
//		Strategy: fastcache.LRU,
//	}, nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer cache.Close()
//
//	cache.Put("key", 42)
//	value, result := cache.Get("key")
//
// # Non-goals
//
// fastcache does not derive cache keys from function arguments, does not
// prevent cache stampedes (no singleflight-style call coalescing), and
// does not offer a per-entry TTL override — every entry in a given cache
// shares the Config.TTL. The Shared backend offers no crash durability
// guarantee beyond whatever the OS page cache happens to have flushed.
//
// # Observability
//
// Logger, TimeProvider, and MetricsCollector are all injectable; nil
// values fall back to no-op implementations so the zero Config is always
// usable. The github.com/agilira/fastcache/otel subpackage adapts
// MetricsCollector onto OpenTelemetry instruments.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package fastcache
