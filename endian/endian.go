// Package endian
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Byte-order swap primitives and native byte-order detection.
// All swaps are involutions: Swap(Swap(x)) == x bit-for-bit, including
// NaN payloads, since floats are swapped through their raw bit pattern.

package endian

import (
	"math"
	"math/bits"

	"github.com/momentics/hioload-buf/api"
	"golang.org/x/sys/cpu"
)

// Native returns the byte order of the running platform.
func Native() api.Endianness {
	if cpu.IsBigEndian {
		return api.BigEndian
	}
	return api.LittleEndian
}

// IsReversed reports whether e differs from the native order.
func IsReversed(e api.Endianness) bool {
	return e != Native()
}

// Swap16 reverses the byte order of a 16-bit value.
func Swap16(v uint16) uint16 { return bits.ReverseBytes16(v) }

// Swap32 reverses the byte order of a 32-bit value.
func Swap32(v uint32) uint32 { return bits.ReverseBytes32(v) }

// Swap64 reverses the byte order of a 64-bit value.
func Swap64(v uint64) uint64 { return bits.ReverseBytes64(v) }

// SwapInt16 reverses the byte order of a signed 16-bit value.
func SwapInt16(v int16) int16 { return int16(Swap16(uint16(v))) }

// SwapInt32 reverses the byte order of a signed 32-bit value.
func SwapInt32(v int32) int32 { return int32(Swap32(uint32(v))) }

// SwapInt64 reverses the byte order of a signed 64-bit value.
func SwapInt64(v int64) int64 { return int64(Swap64(uint64(v))) }

// SwapFloat32 reverses the byte order of the raw bits of v.
func SwapFloat32(v float32) float32 {
	return math.Float32frombits(Swap32(math.Float32bits(v)))
}

// SwapFloat64 reverses the byte order of the raw bits of v.
func SwapFloat64(v float64) float64 {
	return math.Float64frombits(Swap64(math.Float64bits(v)))
}
