// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashkey provides the default hashing capability HashMap needs:
// a fast, non-cryptographic hash from an ordered key to a machine word.
//
// The default hasher encodes a numeric or bool key to a fixed-width
// little-endian buffer keyed on its kind (a string key is written as its
// raw bytes), then feeds it through FNV-1a (hash/fnv). Since each
// bucket is itself a small balanced tree, worst-case collision cost is
// already bounded, so there is no need for a stronger hash here.
package hashkey

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"golang.org/x/exp/constraints"
)

// Hasher computes a hash for a key of type K.
type Hasher[K any] func(K) uint64

// Default returns the default FNV-1a based Hasher for ordered key type K.
func Default[K constraints.Ordered]() Hasher[K] {
	return func(k K) uint64 {
		h := fnv.New64a()
		writeKey(h, k)
		return h.Sum64()
	}
}

type byteWriter interface {
	Write(p []byte) (int, error)
}

func writeKey[K any](h byteWriter, k K) {
	var buf [8]byte
	switch v := any(k).(type) {
	case string:
		h.Write([]byte(v))
	case bool:
		if v {
			buf[0] = 1
		} else {
			buf[0] = 0
		}
		h.Write(buf[:1])
	case int:
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	case int8:
		buf[0] = byte(v)
		h.Write(buf[:1])
	case int16:
		binary.LittleEndian.PutUint16(buf[:2], uint16(v))
		h.Write(buf[:2])
	case int32:
		binary.LittleEndian.PutUint32(buf[:4], uint32(v))
		h.Write(buf[:4])
	case int64:
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	case uint:
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	case uint8:
		buf[0] = v
		h.Write(buf[:1])
	case uint16:
		binary.LittleEndian.PutUint16(buf[:2], v)
		h.Write(buf[:2])
	case uint32:
		binary.LittleEndian.PutUint32(buf[:4], v)
		h.Write(buf[:4])
	case uint64:
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	case uintptr:
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	case float32:
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(v))
		h.Write(buf[:4])
	case float64:
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	default:
		// Reached by named types whose underlying type is one of the
		// kinds above (e.g. type ID int): they satisfy
		// constraints.Ordered but match no case here, so they are
		// hashed through their fmt %v text.
		fmt.Fprintf(h, "%v", v)
	}
}
