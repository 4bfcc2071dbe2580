// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import "github.com/agilira/fastcache/shared"

const (
	// Version of the fastcache library.
	Version = "v0.1.0-dev"

	// DefaultMaxSize is the default maximum number of entries.
	DefaultMaxSize = 128

	// DefaultMaxKeySize is the default per-entry key size bound for the
	// shared backend, in bytes.
	DefaultMaxKeySize = 512

	// DefaultMaxValueSize is the default per-entry value size bound for
	// the shared backend, in bytes.
	DefaultMaxValueSize = 4096
)

// New constructs a Cache for the backend named in config. For Backend ==
// Shared, keyCodec and valueCodec marshal K and V to the opaque byte
// payloads the shared region stores; pass nil for both when Backend ==
// Memory (the in-process engine never serializes).
//
// Returns BackendUnavailable if Shared is requested on a platform without
// process-shared locking primitives (see shared.Supported).
func New[K comparable, V any](config Config, keyCodec shared.Codec[K], valueCodec shared.Codec[V]) (Cache[K, V], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Backend {
	case Memory:
		return newMemoryEngine[K, V](config), nil
	case Shared:
		return newSharedEngine[K, V](config, keyCodec, valueCodec)
	default:
		return newMemoryEngine[K, V](config), nil
	}
}
