// slab.go: entry-record accessors and the ordering structures eviction
// policies use when they run inside the mmapped region (spec §3 "ordering
// links", §4.2).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package shared

import (
	"bytes"
	"encoding/binary"
)

// entryRecord is a view over one slab entry's bytes.
type entryRecord struct {
	buf          []byte
	maxKeySize   uint64
	maxValueSize uint64
}

func (e *Engine) entryRecord(i uint64) entryRecord {
	off := e.entryOffset(i)
	size := int(entryRecordSize(e.maxKeySize(), e.maxValueSize()))
	return entryRecord{
		buf:          e.mapped()[off : off+size],
		maxKeySize:   e.maxKeySize(),
		maxValueSize: e.maxValueSize(),
	}
}

func (r entryRecord) keyLen() uint32   { return binary.NativeEndian.Uint32(r.buf[recKeyLen:]) }
func (r entryRecord) valueLen() uint32 { return binary.NativeEndian.Uint32(r.buf[recValueLen:]) }
func (r entryRecord) createdAtNs() uint64 {
	return binary.NativeEndian.Uint64(r.buf[recCreatedAt:])
}
func (r entryRecord) frequency() uint64 { return binary.NativeEndian.Uint64(r.buf[recFrequency:]) }
func (r entryRecord) prev() uint32      { return binary.NativeEndian.Uint32(r.buf[recPrev:]) }
func (r entryRecord) next() uint32      { return binary.NativeEndian.Uint32(r.buf[recNext:]) }

func (r entryRecord) keyBytes() []byte {
	return r.buf[recKeyBytes : recKeyBytes+r.keyLen()]
}

func (r entryRecord) valueBytes() []byte {
	off := recValueBytesOffset(r.maxKeySize)
	return r.buf[off : off+uint64(r.valueLen())]
}

func (r entryRecord) keyEquals(key []byte) bool {
	return int(r.keyLen()) == len(key) && bytes.Equal(r.keyBytes(), key)
}

func (r entryRecord) setFrequency(f uint64) {
	binary.NativeEndian.PutUint64(r.buf[recFrequency:], f)
}

func (r entryRecord) setPrev(v uint32) { binary.NativeEndian.PutUint32(r.buf[recPrev:], v) }
func (r entryRecord) setNext(v uint32) { binary.NativeEndian.PutUint32(r.buf[recNext:], v) }

// setValue overwrites an existing record's value and refreshes its
// creation timestamp (spec §4.4 write-path "overwrite" case).
func (r entryRecord) setValue(value []byte, nowNs uint64) {
	binary.NativeEndian.PutUint32(r.buf[recValueLen:], uint32(len(value)))
	binary.NativeEndian.PutUint64(r.buf[recCreatedAt:], nowNs)
	copy(r.valueBytes(), value)
}

// setKeyValue installs a brand-new record.
func (r entryRecord) setKeyValue(key, value []byte, nowNs uint64) {
	binary.NativeEndian.PutUint32(r.buf[recKeyLen:], uint32(len(key)))
	binary.NativeEndian.PutUint32(r.buf[recValueLen:], uint32(len(value)))
	binary.NativeEndian.PutUint64(r.buf[recCreatedAt:], nowNs)
	binary.NativeEndian.PutUint64(r.buf[recFrequency:], 0)
	r.setPrev(noIndex)
	r.setNext(noIndex)
	copy(r.keyBytes(), key)
	copy(r.valueBytes(), value)
}

// --- ordering root accessors (header fields) ---

func (e *Engine) orderHead() uint64 {
	return binary.NativeEndian.Uint64(e.mapped()[headerOffset(fOrderHead):])
}
func (e *Engine) orderTail() uint64 {
	return binary.NativeEndian.Uint64(e.mapped()[headerOffset(fOrderTail):])
}
func (e *Engine) setOrderHead(v uint64) {
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fOrderHead):], v)
}
func (e *Engine) setOrderTail(v uint64) {
	binary.NativeEndian.PutUint64(e.mapped()[headerOffset(fOrderTail):], v)
}

func asSlot(v uint32) uint64 {
	if v == noIndex {
		return noSlot
	}
	return uint64(v)
}

func asLink(v uint64) uint32 {
	if v == noSlot {
		return noIndex
	}
	return uint32(v)
}

// listRemove unlinks idx from the recency/FIFO list. Caller must hold the
// writer spinlock.
func (e *Engine) listRemove(idx uint64) {
	rec := e.entryRecord(idx)
	p, n := rec.prev(), rec.next()

	if p != noIndex {
		e.entryRecord(uint64(p)).setNext(n)
	} else {
		e.setOrderHead(asSlot(n))
	}
	if n != noIndex {
		e.entryRecord(uint64(n)).setPrev(p)
	} else {
		e.setOrderTail(asSlot(p))
	}
}

// listPushFront links idx in as the new head (most-recently-touched end).
func (e *Engine) listPushFront(idx uint64) {
	head := e.orderHead()
	rec := e.entryRecord(idx)
	rec.setPrev(noIndex)
	rec.setNext(asLink(head))

	if head != noSlot {
		e.entryRecord(head).setPrev(asLink(idx))
	} else {
		e.setOrderTail(idx)
	}
	e.setOrderHead(idx)
}

// onInsert records a newly installed entry in the policy's ordering
// structures (spec §4.2 on_insert).
func (e *Engine) onInsert(idx uint64) {
	switch e.strategy {
	case StrategyLRU, StrategyMRU, StrategyFIFO:
		e.listPushFront(idx)
	case StrategyLFU:
		// frequency and created_at already set by setKeyValue; no list.
	}
}

// onHit updates ordering for an accessed entry (spec §4.2 on_hit).
func (e *Engine) onHit(idx uint64) {
	switch e.strategy {
	case StrategyLRU, StrategyMRU:
		if e.orderHead() != idx {
			e.listRemove(idx)
			e.listPushFront(idx)
		}
	case StrategyFIFO:
		// no-op: hits never reorder insertion order.
	case StrategyLFU:
		rec := e.entryRecord(idx)
		rec.setFrequency(rec.frequency() + 1)
	}
}

// onRemove forgets an entry leaving the store (evicted or purged).
func (e *Engine) onRemove(idx uint64) {
	switch e.strategy {
	case StrategyLRU, StrategyMRU, StrategyFIFO:
		e.listRemove(idx)
	case StrategyLFU:
		// nothing to unlink; the slot itself is tombstoned by the caller.
	}
}

// removeEntry tombstones idx's slot and forgets it from policy state.
func (e *Engine) removeEntry(idx uint64) {
	_, entryIdx, _ := e.readSlot(idx)
	e.onRemove(idx)
	e.writeSlot(idx, slotTombstone, entryIdx, 0)
}

// installEntry writes a brand-new record into slot idx and records it
// with the eviction policy.
func (e *Engine) installEntry(idx uint64, hash uint64, key, value []byte, nowNs uint64) {
	e.writeSlot(idx, slotOccupied, uint32(idx), hash)
	e.entryRecord(idx).setKeyValue(key, value, nowNs)
	e.onInsert(idx)
}

// pickVictim selects the next entry pickVictim would evict, per spec
// §4.2's per-strategy rule. LFU breaks ties by oldest insertion
// (created_at), matching spec §9's explicit tie-break rule.
func (e *Engine) pickVictim() (uint64, bool) {
	switch e.strategy {
	case StrategyLRU, StrategyFIFO:
		if tail := e.orderTail(); tail != noSlot {
			return tail, true
		}
	case StrategyMRU:
		if head := e.orderHead(); head != noSlot {
			return head, true
		}
	case StrategyLFU:
		return e.pickLFUVictim()
	}
	return 0, false
}

func (e *Engine) pickLFUVictim() (uint64, bool) {
	capacity := e.capacity()
	best, bestFreq, bestCreated := uint64(0), ^uint64(0), ^uint64(0)
	found := false

	for i := uint64(0); i < capacity; i++ {
		state, entryIdx, _ := e.readSlot(i)
		if state != slotOccupied {
			continue
		}
		rec := e.entryRecord(uint64(entryIdx))
		f, c := rec.frequency(), rec.createdAtNs()
		if !found || f < bestFreq || (f == bestFreq && c < bestCreated) {
			best, bestFreq, bestCreated, found = i, f, c, true
		}
	}
	return best, found
}
