// engine.go: operations atop the shared-memory layout (spec §4.4)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package shared

import (
	"encoding/binary"
	"sync"
	"sync/atomic"
)

// Strategy mirrors fastcache.Strategy without importing the parent
// package (which imports shared); the numeric values are kept identical
// by convention (LRU=0, MRU=1, FIFO=2, LFU=3), matching spec §6.1.
type Strategy uint32

const (
	StrategyLRU Strategy = iota
	StrategyMRU
	StrategyFIFO
	StrategyLFU
)

// GetResult reports the outcome of Engine.Get.
type GetResult int

const (
	Found GetResult = iota
	NotFound
)

// PutOutcome reports the outcome of Engine.Put.
type PutOutcome int

const (
	Installed PutOutcome = iota
	// Oversize means the key or value exceeded the region's configured
	// size bound; distinct from Busy, which means the write could not
	// proceed for a locking/eviction reason unrelated to payload size.
	Oversize
	Busy
)

// Engine operates the seqlock/spinlock-synchronized region for one opened
// handle. Multiple Engine values in the same process that wrap the same
// path share no state beyond the OS file lock and the mmap itself; writeMu
// only serializes writers within THIS handle, mirroring the teacher
// reference's per-file in-process guard ahead of the interprocess lock.
type Engine struct {
	region   *Region
	strategy Strategy
	writeMu  sync.Mutex
}

// Open opens or creates the region at path for the given parameters and
// returns an Engine ready to serve Get/Put/Clear.
func Open(path string, params Params, strategy Strategy) (*Engine, error) {
	region, err := OpenOrCreate(path, params)
	if err != nil {
		return nil, err
	}
	return &Engine{region: region, strategy: strategy}, nil
}

func (e *Engine) Close() error {
	return e.region.Close()
}

func (e *Engine) mapped() []byte { return e.region.Bytes() }

func (e *Engine) capacity() uint64 {
	return binary.NativeEndian.Uint64(e.mapped()[headerOffset(fCapacity):])
}

func (e *Engine) maxKeySize() uint64 {
	return binary.NativeEndian.Uint64(e.mapped()[headerOffset(fMaxKeySize):])
}

func (e *Engine) maxValueSize() uint64 {
	return binary.NativeEndian.Uint64(e.mapped()[headerOffset(fMaxValueSize):])
}

func (e *Engine) ttlNanos() uint64 {
	return binary.NativeEndian.Uint64(e.mapped()[headerOffset(fTTLNanos):])
}

func (e *Engine) slotOffset(i uint64) int { return headerSize + int(i)*slotSize }

func (e *Engine) entryBase() int {
	return headerSize + int(e.capacity())*slotSize
}

func (e *Engine) entryOffset(i uint64) int {
	return e.entryBase() + int(i*entryRecordSize(e.maxKeySize(), e.maxValueSize()))
}

func (e *Engine) readSlot(i uint64) (state uint32, entryIndex uint32, hash uint64) {
	buf := e.mapped()[e.slotOffset(i):]
	state = binary.NativeEndian.Uint32(buf[0:])
	entryIndex = binary.NativeEndian.Uint32(buf[4:])
	hash = binary.NativeEndian.Uint64(buf[8:])
	return
}

func (e *Engine) writeSlot(i uint64, state uint32, entryIndex uint32, hash uint64) {
	buf := e.mapped()[e.slotOffset(i):]
	binary.NativeEndian.PutUint32(buf[0:], state)
	binary.NativeEndian.PutUint32(buf[4:], entryIndex)
	binary.NativeEndian.PutUint64(buf[8:], hash)
}

// Get implements spec §4.4's read path: optimistic seqlock read, retried
// on a torn observation.
func (e *Engine) Get(hash uint64, key []byte, now int64) ([]byte, GetResult) {
	var out []byte
	var result GetResult
	var hitIndex uint64

	ok := withReadRetry(e.mapped(), func() bool {
		s1 := beginRead(e.mapped())
		if s1%2 != 0 {
			return false
		}

		out, result, hitIndex, _ = e.probe(hash, key, now)

		s2 := beginRead(e.mapped())
		return readStable(s1, s2)
	})

	if !ok {
		return nil, NotFound
	}

	if result == Found {
		atomic.AddUint64((*uint64)(ptr(e.mapped(), headerOffset(fHits))), 1)
		if e.strategy != StrategyFIFO {
			e.writerAssistHit(hash, key, hitIndex)
		}
	} else {
		atomic.AddUint64((*uint64)(ptr(e.mapped(), headerOffset(fMisses))), 1)
	}

	return out, result
}

// probe performs one (non-retried) pass of the probe sequence.
func (e *Engine) probe(hash uint64, key []byte, now int64) (value []byte, result GetResult, idx uint64, hit bool) {
	capacity := e.capacity()
	start := hash & (capacity - 1)

	for step := uint64(0); step < capacity; step++ {
		i := (start + step) % capacity
		state, entryIdx, slotHash := e.readSlot(i)

		switch state {
		case slotEmpty:
			return nil, NotFound, 0, false
		case slotTombstone:
			continue
		case slotOccupied:
			if slotHash != hash {
				continue
			}
			rec := e.entryRecord(uint64(entryIdx))
			if !rec.keyEquals(key) {
				continue
			}
			if ttl := e.ttlNanos(); ttl > 0 && uint64(now)-rec.createdAtNs() >= ttl {
				return nil, NotFound, 0, false
			}
			return rec.valueBytes(), Found, uint64(entryIdx), true
		}
	}
	return nil, NotFound, 0, false
}

// writerAssistHit re-verifies the slot under the writer lock and applies
// the policy's on_hit update (spec §4.4 Writer-assist). It waits for the
// inter-process writer lock like any writer; the update is skipped silently
// if that lock cannot be taken, the spinlock is starved, or the slot no
// longer matches.
func (e *Engine) writerAssistHit(hash uint64, key []byte, entryIdx uint64) {
	wl, err := acquireWriterLock(e.region.Path())
	if err != nil {
		return
	}
	defer wl.release()

	if !acquireSpinlock(e.mapped()) {
		return
	}
	defer releaseSpinlock(e.mapped())

	rec := e.entryRecord(entryIdx)
	if !rec.keyEquals(key) {
		return
	}
	e.onHit(entryIdx)
}

// Put implements spec §4.4's write path.
func (e *Engine) Put(hash uint64, key, value []byte, now int64) (PutOutcome, error) {
	if uint64(len(key)) > e.maxKeySize() || uint64(len(value)) > e.maxValueSize() {
		atomic.AddUint64((*uint64)(ptr(e.mapped(), headerOffset(fOversizeSkips))), 1)
		return Oversize, nil
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	wl, err := acquireWriterLock(e.region.Path())
	if err != nil {
		return Busy, err
	}
	defer wl.release()

	if !acquireSpinlock(e.mapped()) {
		return Busy, ErrBusy
	}
	defer releaseSpinlock(e.mapped())

	e.purgeExpiredAlongProbe(hash, now)

	capacity := e.capacity()
	start := hash & (capacity - 1)

	var firstFree uint64
	haveFree := false

probe:
	for step := uint64(0); step < capacity; step++ {
		i := (start + step) % capacity
		state, entryIdx, slotHash := e.readSlot(i)

		switch state {
		case slotEmpty:
			if !haveFree {
				firstFree, haveFree = i, true
			}
			break probe
		case slotTombstone:
			if !haveFree {
				firstFree, haveFree = i, true
			}
		case slotOccupied:
			if slotHash == hash {
				rec := e.entryRecord(uint64(entryIdx))
				if rec.keyEquals(key) {
					rec.setValue(value, uint64(now))
					e.onHit(uint64(entryIdx))
					return Installed, nil
				}
			}
		}
	}

	liveCount := binary.NativeEndian.Uint64(e.mapped()[headerOffset(fLiveCount):])
	if liveCount >= capacity {
		victim, ok := e.pickVictim()
		if !ok {
			return Busy, ErrBusy
		}
		e.removeEntry(victim)
		liveCount--
		firstFree, haveFree = victim, true
	}

	if !haveFree {
		return Busy, ErrBusy
	}

	e.installEntry(firstFree, hash, key, value, uint64(now))
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fLiveCount):], liveCount+1)

	return Installed, nil
}

// purgeExpiredAlongProbe purges only the entries along the insertion
// probe path, per spec §4.4 write-path step 3. The engine does not scan
// the whole table on every write; entries outside the probe path expire
// lazily on their own next visit.
func (e *Engine) purgeExpiredAlongProbe(hash uint64, now int64) {
	ttl := e.ttlNanos()
	if ttl == 0 {
		return
	}
	capacity := e.capacity()
	start := hash & (capacity - 1)
	for step := uint64(0); step < capacity; step++ {
		i := (start + step) % capacity
		state, entryIdx, _ := e.readSlot(i)
		if state == slotEmpty {
			break
		}
		if state != slotOccupied {
			continue
		}
		rec := e.entryRecord(uint64(entryIdx))
		if uint64(now)-rec.createdAtNs() >= ttl {
			e.removeEntry(i)
			liveCount := binary.NativeEndian.Uint64(e.mapped()[headerOffset(fLiveCount):])
			if liveCount > 0 {
				binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fLiveCount):], liveCount-1)
			}
		}
	}
}

// Clear removes all entries and resets counters, keeping capacity/strategy/ttl.
func (e *Engine) Clear() error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	wl, err := acquireWriterLock(e.region.Path())
	if err != nil {
		return err
	}
	defer wl.release()

	if !acquireSpinlock(e.mapped()) {
		return ErrBusy
	}
	defer releaseSpinlock(e.mapped())

	initSlotTable(e.mapped(), e.capacity())
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fLiveCount):], 0)
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fHits):], 0)
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fMisses):], 0)
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fOversizeSkips):], 0)
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fOrderHead):], noSlot)
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fOrderTail):], noSlot)
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fNextSeq):], 0)

	return nil
}

// Info snapshots the header's atomic counters directly from the mmap —
// there is no in-process cache of any field (spec §9).
type Info struct {
	Hits          uint64
	Misses        uint64
	Size          uint64
	MaxSize       uint64
	OversizeSkips uint64
}

func (e *Engine) Info() Info {
	m := e.mapped()
	return Info{
		Hits:          atomic.LoadUint64((*uint64)(ptr(m, headerOffset(fHits)))),
		Misses:        atomic.LoadUint64((*uint64)(ptr(m, headerOffset(fMisses)))),
		Size:          binary.NativeEndian.Uint64(m[headerOffset(fLiveCount):]),
		MaxSize:       e.capacity(),
		OversizeSkips: atomic.LoadUint64((*uint64)(ptr(m, headerOffset(fOversizeSkips)))),
	}
}
