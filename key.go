// key.go: opaque hashable keys
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import (
	"hash/maphash"
)

// keySeed is process-wide and random, which is fine for Hash(): it only
// needs to compare consistently with itself within one process. The
// shared backend does NOT use Key.Hash() for slot addressing — two
// processes with different keySeed values would pick different slots for
// the same key — it derives its own deterministic hash from the encoded
// key bytes instead (shared.HashKey). NewKey is still used on that path
// purely to surface a NotHashable error before encoding is attempted.
var keySeed = maphash.MakeSeed()

// Key pairs a caller-supplied value with its precomputed hash.
//
// Equality is the value's own equality (V is comparable, so Go's built-in
// `==` already does the right thing); the hash only accelerates bucket
// selection in a process-local context and is never consulted for
// equality itself.
type Key[V comparable] struct {
	value V
	hash  uint64
}

// NewKey computes the hash of value once and returns an immutable Key.
//
// Returns a NotHashable error (see IsNotHashable) if value's dynamic
// contents cannot be hashed —
// this can only happen when V is an interface type (or contains one) whose
// concrete value turns out to be a non-comparable type such as a slice,
// map, or func stored behind the interface. The hash this produces is
// process-local only; see Key.Hash's doc comment.
func NewKey[V comparable](value V) (k Key[V], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newNotHashableError(r)
		}
	}()

	h := maphash.Comparable(keySeed, value)

	return Key[V]{value: value, hash: h}, nil
}

// Value returns the underlying value.
func (k Key[V]) Value() V { return k.value }

// Hash returns the precomputed 64-bit hash. Stable within the current
// process only — it is seeded randomly at process start (per
// hash/maphash's design, to resist hash-flooding), so it must never be
// used to address the shared backend's slot table across processes.
func (k Key[V]) Hash() uint64 { return k.hash }
