// codec.go: serializer contract for the shared backend (spec §6.2)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package shared

import (
	"bytes"
	"encoding/gob"
)

// Codec marshals values of type T to and from the opaque byte payloads the
// shared region stores. The engine never inspects the bytes it receives
// from Encode; it treats them as an opaque string of known length.
type Codec[T any] interface {
	// Encode serializes value. The fastcache Shared backend logs a failure
	// and reports the Put as OversizeSkipped (a failed key encode on Get
	// reports Miss); the error itself is not returned to the caller.
	Encode(value T) ([]byte, error)

	// Decode deserializes data back into a T. The fastcache Shared backend
	// logs a failure and reports the Get as Miss; the error itself is not
	// returned to the caller.
	Decode(data []byte) (T, error)
}

// GobCodec is the default Codec, built on the standard library's
// encoding/gob. No third-party serialization library appeared anywhere in
// the retrieved reference corpus (see this repo's DESIGN.md), so gob is
// the grounded choice rather than an arbitrary default.
type GobCodec[T any] struct{}

func (GobCodec[T]) Encode(value T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (GobCodec[T]) Decode(data []byte) (T, error) {
	var value T
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&value); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}
