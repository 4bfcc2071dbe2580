// Package shared implements the memory-mapped, cross-process cache
// backend: an SLC1-style binary layout (fixed header, open-addressing slot
// table, slab-allocated entry records), a seqlock-protected read fast
// path, and a cooperative writer spinlock layered under an advisory
// inter-process lock file.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package shared
