// Package api
// Author: momentics <momentics@gmail.com>
//
// Capability interfaces for typed, endianness-aware buffers.
//
// Buffers compose the small interfaces below instead of a deep hierarchy:
// a read-only data-buffer is Sized+Limitable+EndianAware+Retrievable, a
// mutable one adds Storable, and stream-buffers swap the random-access
// pair for Readable/Writable.

package api

// Sized exposes a fixed size in bytes.
type Sized interface {
	Size() int
}

// Limitable exposes a logical limit between 0 and Size.
type Limitable interface {
	Sized
	Limit() int
}

// EndianAware exposes the byte order used for multi-byte access.
type EndianAware interface {
	Endianness() Endianness
	SetEndianness(e Endianness)
	// Reverse is true when Endianness differs from the native order.
	Reverse() bool
}

// Disposable releases resources held by a value.
type Disposable interface {
	Dispose() error
}

// Retrievable reads typed values at explicit byte positions.
type Retrievable interface {
	GetInt8(position int) (int8, error)
	GetUint8(position int) (uint8, error)
	GetInt16(position int) (int16, error)
	GetUint16(position int) (uint16, error)
	GetInt32(position int) (int32, error)
	GetUint32(position int) (uint32, error)
	GetInt64(position int) (int64, error)
	GetUint64(position int) (uint64, error)
	GetFloat32(position int) (float32, error)
	GetFloat64(position int) (float64, error)
}

// Storable writes typed values at explicit byte positions.
type Storable interface {
	SetInt8(position int, value int8) error
	SetUint8(position int, value uint8) error
	SetInt16(position int, value int16) error
	SetUint16(position int, value uint16) error
	SetInt32(position int, value int32) error
	SetUint32(position int, value uint32) error
	SetInt64(position int, value int64) error
	SetUint64(position int, value uint64) error
	SetFloat32(position int, value float32) error
	SetFloat64(position int, value float64) error
}

// Readable reads typed values at the cursor and advances it.
type Readable interface {
	ReadInt8() (int8, error)
	ReadUint8() (uint8, error)
	ReadInt16() (int16, error)
	ReadUint16() (uint16, error)
	ReadInt32() (int32, error)
	ReadUint32() (uint32, error)
	ReadInt64() (int64, error)
	ReadUint64() (uint64, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)
}

// Writable writes typed values at the cursor and advances it.
type Writable interface {
	WriteInt8(value int8) error
	WriteUint8(value uint8) error
	WriteInt16(value int16) error
	WriteUint16(value uint16) error
	WriteInt32(value int32) error
	WriteUint32(value uint32) error
	WriteInt64(value int64) error
	WriteUint64(value uint64) error
	WriteFloat32(value float32) error
	WriteFloat64(value float64) error
}
