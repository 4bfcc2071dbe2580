// engine_memory.go: in-process concurrent cache engine
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import (
	"sync"
	"sync/atomic"
)

// accessLogCapacity bounds the deferred access log drained on every write.
// A hit pushed past this capacity is simply dropped: eviction ordering is
// best-effort under contention, never correctness-affecting (spec §5).
const accessLogCapacity = 256

// memoryEngine is the in-process backend: a hash map guarded by a
// reader-writer lock, with eviction bookkeeping held in policyState and
// promoted lazily via a deferred access log.
type memoryEngine[K comparable, V any] struct {
	mu      sync.RWMutex
	store   map[K]entry[V]
	policy  *policyState[K]
	maxSize int
	ttl     float64 // seconds; 0 means no expiry

	// log records keys whose recency needs promotion, pushed on a
	// hit under the read lock, drained under the write lock.
	logMu sync.Mutex
	log   []K

	timeProvider     TimeProvider
	logger           Logger
	metricsCollector MetricsCollector
	onEvict          func(key any, value interface{})
	onExpire         func(key any, value interface{})

	janitor *janitor

	hits          atomic.Uint64
	misses        atomic.Uint64
	oversizeSkips atomic.Uint64
	evictions     atomic.Uint64
}

func newMemoryEngine[K comparable, V any](config Config) *memoryEngine[K, V] {
	e := &memoryEngine[K, V]{
		store:            make(map[K]entry[V], config.MaxSize),
		policy:           newPolicyState[K](config.Strategy),
		maxSize:          config.MaxSize,
		ttl:              config.TTL.Seconds(),
		log:              make([]K, 0, accessLogCapacity),
		timeProvider:     config.TimeProvider,
		logger:           config.Logger,
		metricsCollector: config.MetricsCollector,
		onEvict:          config.OnEvict,
		onExpire:         config.OnExpire,
	}

	if config.TTL > 0 && config.CleanupInterval > 0 {
		e.janitor = newJanitor(config.CleanupInterval)
		go e.janitor.run(e.sweep)
	}

	return e
}

// sweep runs one active-expiration pass under the write lock.
func (e *memoryEngine[K, V]) sweep() {
	e.mu.Lock()
	e.purgeExpired()
	e.mu.Unlock()
}

func (e *memoryEngine[K, V]) now() float64 {
	return float64(e.timeProvider.Now()) / 1e9
}

// Get implements Cache.Get: spec §4.3's get(key).
func (e *memoryEngine[K, V]) Get(key K) (V, Result) {
	start := e.timeProvider.Now()

	e.mu.RLock()
	ent, ok := e.store[key]
	if !ok {
		e.mu.RUnlock()
		e.misses.Add(1)
		e.metricsCollector.RecordGet(e.timeProvider.Now()-start, false)
		var zero V
		return zero, Miss
	}
	if ent.expired(e.now(), e.ttl) {
		// Not removed on the read path: treated as missing, purged on
		// the next write (spec §4.3).
		e.mu.RUnlock()
		e.misses.Add(1)
		e.metricsCollector.RecordGet(e.timeProvider.Now()-start, false)
		var zero V
		return zero, Miss
	}
	e.pushAccessLog(key)
	value := ent.value
	e.mu.RUnlock()

	e.hits.Add(1)
	e.metricsCollector.RecordGet(e.timeProvider.Now()-start, true)
	return value, Hit
}

// pushAccessLog best-effort records a hit for deferred recency promotion.
// Called while e.mu is only read-locked, so it uses its own mutex.
func (e *memoryEngine[K, V]) pushAccessLog(key K) {
	e.logMu.Lock()
	if len(e.log) < accessLogCapacity {
		e.log = append(e.log, key)
	}
	e.logMu.Unlock()
}

// drainAccessLog applies on_hit for every logged key still present.
// Caller must hold e.mu for writing.
func (e *memoryEngine[K, V]) drainAccessLog() {
	e.logMu.Lock()
	pending := e.log
	e.log = make([]K, 0, accessLogCapacity)
	e.logMu.Unlock()

	for _, key := range pending {
		if _, ok := e.store[key]; ok {
			e.policy.onHit(key)
		}
	}
}

// purgeExpired removes every entry whose age has reached ttl.
// Caller must hold e.mu for writing.
func (e *memoryEngine[K, V]) purgeExpired() {
	if e.ttl <= 0 {
		return
	}
	now := e.now()
	for key, ent := range e.store {
		if ent.expired(now, e.ttl) {
			delete(e.store, key)
			e.policy.onRemove(key)
			if e.onExpire != nil {
				e.onExpire(key, ent.value)
			}
			e.metricsCollector.RecordExpiration()
		}
	}
}

// Put implements Cache.Put: spec §4.3's put(key, value).
func (e *memoryEngine[K, V]) Put(key K, value V) PutResult {
	start := e.timeProvider.Now()

	e.mu.Lock()
	e.drainAccessLog()
	e.purgeExpired()

	now := e.now()
	if _, exists := e.store[key]; exists {
		e.store[key] = newEntry(value, now)
		e.policy.onHit(key)
		e.mu.Unlock()
		e.metricsCollector.RecordPut(e.timeProvider.Now() - start)
		return Ok
	}

	if len(e.store) >= e.maxSize {
		if victim, ok := e.policy.pickVictim(); ok {
			evicted := e.store[victim]
			delete(e.store, victim)
			e.policy.onRemove(victim)
			if e.onEvict != nil {
				e.onEvict(victim, evicted.value)
			}
			e.evictions.Add(1)
			e.metricsCollector.RecordEviction()
		}
	}

	e.store[key] = newEntry(value, now)
	e.policy.onInsert(key)
	e.mu.Unlock()

	e.metricsCollector.RecordPut(e.timeProvider.Now() - start)
	return Ok
}

// Clear implements Cache.Clear.
func (e *memoryEngine[K, V]) Clear() {
	e.mu.Lock()
	e.store = make(map[K]entry[V], e.maxSize)
	e.policy.clear()
	e.mu.Unlock()

	e.logMu.Lock()
	e.log = e.log[:0]
	e.logMu.Unlock()

	e.hits.Store(0)
	e.misses.Store(0)
	e.oversizeSkips.Store(0)
	e.evictions.Store(0)
}

// Info implements Cache.Info: spec §4.5.
func (e *memoryEngine[K, V]) Info() Info {
	e.mu.RLock()
	size := len(e.store)
	e.mu.RUnlock()

	return Info{
		Hits:          e.hits.Load(),
		Misses:        e.misses.Load(),
		Size:          size,
		MaxSize:       e.maxSize,
		OversizeSkips: e.oversizeSkips.Load(),
		Evictions:     e.evictions.Load(),
	}
}

// Close stops the background janitor, if one is running. The in-process
// engine otherwise holds no resources that need releasing.
func (e *memoryEngine[K, V]) Close() error {
	if e.janitor != nil {
		e.janitor.stop()
	}
	return nil
}

// SetTTL changes the TTL applied to entries going forward. Existing
// entries are reinterpreted against the new TTL on their next read or
// write; nothing is purged immediately. Only the Memory backend supports
// this — the Shared backend's TTL is part of its on-disk parameter set
// and changing it triggers a reinit rather than a live update.
func (e *memoryEngine[K, V]) SetTTL(ttl float64) {
	e.mu.Lock()
	e.ttl = ttl
	e.mu.Unlock()
}
