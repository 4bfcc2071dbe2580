// errors.go: internal sentinel errors for the shared-memory backend
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package shared

import "errors"

// Sentinel errors of the shared backend. The fastcache package wraps any
// error from Open as a BackendUnavailable go-errors value, and turns an
// error from Engine.Put (such as ErrBusy) into its Busy put result.
var (
	// ErrBusy indicates a defensive in-process condition: the writer
	// spinlock was starved past its spin budget, or no eviction victim
	// could be found for an ostensibly full table. The inter-process
	// writer lock itself blocks rather than erroring on contention, so
	// ordinary concurrent writers never produce this.
	ErrBusy = errors.New("shared: busy")

	// ErrUnsupported indicates the host platform lacks the
	// process-shared locking primitives this backend requires.
	ErrUnsupported = errors.New("shared: unsupported platform")

	// ErrClosed indicates an operation on a region that has been closed.
	ErrClosed = errors.New("shared: closed")
)
