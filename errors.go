// errors.go: structured error types for fastcache operations
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error codes
// for all cache operations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package fastcache

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for fastcache operations.
const (
	// Configuration errors (1xxx)
	ErrCodeInvalidConfig  errors.ErrorCode = "FASTCACHE_INVALID_CONFIG"
	ErrCodeInvalidMaxSize errors.ErrorCode = "FASTCACHE_INVALID_MAX_SIZE"
	ErrCodeInvalidTTL     errors.ErrorCode = "FASTCACHE_INVALID_TTL"

	// Key/value errors (2xxx)
	ErrCodeNotHashable     errors.ErrorCode = "FASTCACHE_NOT_HASHABLE"
	ErrCodeNotSerializable errors.ErrorCode = "FASTCACHE_NOT_SERIALIZABLE"
	ErrCodeCorruptPayload  errors.ErrorCode = "FASTCACHE_CORRUPT_PAYLOAD"

	// Shared-backend errors (3xxx)
	ErrCodeBackendUnavailable errors.ErrorCode = "FASTCACHE_BACKEND_UNAVAILABLE"
	ErrCodeBusy               errors.ErrorCode = "FASTCACHE_BUSY"

	// Internal errors (5xxx)
	ErrCodeInternalError errors.ErrorCode = "FASTCACHE_INTERNAL_ERROR"
)

// Common error messages.
const (
	msgInvalidMaxSize     = "invalid max size: must be greater than 0"
	msgInvalidTTL         = "invalid TTL: must be non-negative"
	msgNotHashable        = "key value cannot be hashed"
	msgNotSerializable    = "value cannot be serialized by the configured codec"
	msgCorruptPayload     = "shared-memory payload failed validation"
	msgBackendUnavailable = "shared-memory backend is unavailable"
	msgBusy               = "shared-memory writer could not make progress"
	msgInternalError      = "internal cache error"
)

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

// NewErrInvalidMaxSize creates an error for invalid max size.
func NewErrInvalidMaxSize(size int) error {
	return errors.NewWithContext(ErrCodeInvalidMaxSize, msgInvalidMaxSize, map[string]interface{}{
		"provided_size":    size,
		"minimum_required": 1,
	})
}

// NewErrInvalidTTL creates an error for invalid TTL.
func NewErrInvalidTTL(ttl interface{}) error {
	return errors.NewWithContext(ErrCodeInvalidTTL, msgInvalidTTL, map[string]interface{}{
		"provided_ttl": ttl,
	})
}

// =============================================================================
// KEY / VALUE ERRORS
// =============================================================================

// newNotHashableError wraps a recovered maphash.Comparable panic into a
// structured error. Called from a recover() in NewKey.
func newNotHashableError(panicValue interface{}) error {
	return errors.NewWithContext(ErrCodeNotHashable, msgNotHashable, map[string]interface{}{
		"panic_value": fmt.Sprintf("%v", panicValue),
	})
}

// NewErrNotSerializable creates an error when a codec fails to encode a value.
func NewErrNotSerializable(cause error) error {
	return errors.Wrap(cause, ErrCodeNotSerializable, msgNotSerializable)
}

// NewErrCorruptPayload creates an error when a shared-memory slot fails
// header/checksum validation on read.
func NewErrCorruptPayload(details string) error {
	return errors.NewWithField(ErrCodeCorruptPayload, msgCorruptPayload, "details", details)
}

// =============================================================================
// SHARED-BACKEND ERRORS
// =============================================================================

// NewErrBackendUnavailable creates an error when the shared-memory region
// cannot be opened, created, or mapped.
func NewErrBackendUnavailable(path string, cause error) error {
	return errors.Wrap(cause, ErrCodeBackendUnavailable, msgBackendUnavailable).
		WithContext("path", path)
}

// NewErrBusy creates an error for the shared backend's defensive busy
// conditions: the in-process writer spinlock was starved, or no eviction
// victim was found. The inter-process writer lock itself blocks rather
// than failing on contention, so this does not cover ordinary concurrent
// writers; a reader that exhausts its seqlock retries reports a Miss.
func NewErrBusy(path string) error {
	return errors.NewWithField(ErrCodeBusy, msgBusy, "path", path).AsRetryable()
}

// =============================================================================
// INTERNAL ERRORS
// =============================================================================

// NewErrInternal creates a generic internal error.
func NewErrInternal(operation string, cause error) error {
	if cause != nil {
		return errors.Wrap(cause, ErrCodeInternalError, msgInternalError).
			WithContext("operation", operation).
			WithSeverity("warning")
	}
	return errors.NewWithField(ErrCodeInternalError, msgInternalError, "operation", operation).
		WithSeverity("warning")
}

// =============================================================================
// ERROR CHECKING HELPERS
// =============================================================================

// IsNotHashable reports whether err is a not-hashable key error.
func IsNotHashable(err error) bool {
	return errors.HasCode(err, ErrCodeNotHashable)
}

// IsNotSerializable reports whether err is a codec encode/decode error.
func IsNotSerializable(err error) bool {
	return errors.HasCode(err, ErrCodeNotSerializable)
}

// IsCorruptPayload reports whether err is a shared-memory corruption error.
func IsCorruptPayload(err error) bool {
	return errors.HasCode(err, ErrCodeCorruptPayload)
}

// IsBackendUnavailable reports whether err means the shared backend could
// not be opened or mapped.
func IsBackendUnavailable(err error) bool {
	return errors.HasCode(err, ErrCodeBackendUnavailable)
}

// IsBusy reports whether err is a busy error from NewErrBusy.
func IsBusy(err error) bool {
	return errors.HasCode(err, ErrCodeBusy)
}

// IsConfigError reports whether err is a configuration validation error.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeInvalidMaxSize || code == ErrCodeInvalidTTL || code == ErrCodeInvalidConfig
	}
	return false
}

// IsRetryable reports whether the error can be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts context from an error.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var fcErr *errors.Error
	if goerrors.As(err, &fcErr) {
		return fcErr.Context
	}
	return nil
}
