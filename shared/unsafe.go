// unsafe.go: raw pointer arithmetic into the mmapped region
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package shared

import "unsafe"

// ptr returns a pointer to byte offset off within mapped. Callers only use
// this for fixed-width atomic field access (the generation word and the
// header's hit/miss/oversize counters); all
// other reads/writes go through the byte-slice-based encode/decode
// helpers so bounds are checked by the slice machinery.
func ptr(mapped []byte, off int) unsafe.Pointer {
	return unsafe.Pointer(&mapped[off])
}
