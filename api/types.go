// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations, DTOs, and constants.

package api

import (
	"fmt"
	"math/bits"
)

// Endianness is the byte order used for multi-byte reads and writes.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

// IsBig reports big-endian order.
func (e Endianness) IsBig() bool { return e == BigEndian }

// IsLittle reports little-endian order.
func (e Endianness) IsLittle() bool { return e == LittleEndian }

// Reverse returns the opposite byte order.
func (e Endianness) Reverse() Endianness {
	if e == BigEndian {
		return LittleEndian
	}
	return BigEndian
}

func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	default:
		return "unknown"
	}
}

// Kind tags the storage backend of a segment or pool.
type Kind int

const (
	KindNull Kind = iota
	KindBytes
	KindMemory
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindMemory:
		return "memory"
	case KindModel:
		return "model"
	default:
		return "null"
	}
}

// Byte widths of the typed accessors.
const (
	ByteSize   = 1
	UByteSize  = 1
	ShortSize  = 2
	UShortSize = 2
	IntSize    = 4
	UIntSize   = 4
	LongSize   = 8
	ULongSize  = 8
	FloatSize  = 4
	DoubleSize = 8
)

// DataSize is a power-of-two allocation size class.
type DataSize int

const (
	SizeUnknown DataSize = -1
	Size32B     DataSize = 32
	Size64B     DataSize = Size32B << 1
	Size128B    DataSize = Size64B << 1
	Size256B    DataSize = Size128B << 1
	Size512B    DataSize = Size256B << 1
	Size1K      DataSize = Size512B << 1
	Size2K      DataSize = Size1K << 1
	Size4K      DataSize = Size2K << 1
	Size8K      DataSize = Size4K << 1
	Size16K     DataSize = Size8K << 1
	Size32K     DataSize = Size16K << 1
	Size64K     DataSize = Size32K << 1
	Size128K    DataSize = Size64K << 1
	Size256K    DataSize = Size128K << 1
	Size512K    DataSize = Size256K << 1
	Size1M      DataSize = Size512K << 1
	Size2M      DataSize = Size1M << 1
	Size4M      DataSize = Size2M << 1
	Size8M      DataSize = Size4M << 1
	Size16M     DataSize = Size8M << 1
	Size32M     DataSize = Size16M << 1
	Size64M     DataSize = Size32M << 1
	Size128M    DataSize = Size64M << 1
	Size256M    DataSize = Size128M << 1
	Size512M    DataSize = Size256M << 1
	Size1G      DataSize = Size512M << 1
)

// Int returns the size in bytes.
func (d DataSize) Int() int { return int(d) }

// Valid reports whether d is one of the defined size classes.
func (d DataSize) Valid() bool {
	return d >= Size32B && d <= Size1G && bits.OnesCount(uint(d)) == 1
}

func (d DataSize) String() string {
	switch {
	case !d.Valid():
		return "unknown"
	case d >= Size1G:
		return fmt.Sprintf("%dG", d/Size1G)
	case d >= Size1M:
		return fmt.Sprintf("%dM", d/Size1M)
	case d >= Size1K:
		return fmt.Sprintf("%dK", d/Size1K)
	default:
		return fmt.Sprintf("%dB", int(d))
	}
}

// FindLowestAbove returns the smallest size class holding n bytes.
// Sizes up to 32 map to Size32B; n outside [0, 1G] yields SizeUnknown.
func FindLowestAbove(n int) DataSize {
	if n < 0 || n > int(Size1G) {
		return SizeUnknown
	}
	if n <= int(Size32B) {
		return Size32B
	}
	return DataSize(1 << bits.Len(uint(n-1)))
}

// PoolStats aggregates segment allocation/reuse stats.
type PoolStats struct {
	TotalAlloc   int64 // segments handed out by Allocate
	TotalRecycle int64 // segments returned by Recycle
	InUse        int64 // segments currently checked out
	Reserved     int64 // bytes carved from the backing block
	Capacity     int64 // bytes of the backing block
}
