// hash.go: deterministic key hashing for the shared-memory slot table
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package shared

import "hash/fnv"

// HashKey derives the slot-table address hash for an already-encoded key.
// It must be deterministic across processes: two sibling processes hashing
// the same encoded bytes must land on the same hash, and therefore the same
// probe-start slot, or they can never observe one another's entries (spec
// §4.4, §8 scenario 7). hash/maphash's per-process random seed cannot be
// used here for exactly that reason; FNV-1a over the encoded bytes gives
// the same answer everywhere.
func HashKey(encoded []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(encoded) // fnv.New64a's Write never errors
	return h.Sum64()
}
