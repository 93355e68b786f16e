// File: buffer/data.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Random-access data-buffers: every call names its byte position, and
// each position is validated independently against the limit.

package buffer

import (
	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/seg"
)

// DataBuffer reads typed values at explicit positions.
type DataBuffer struct {
	base
}

// NewDataBuffer wraps s for random-access reads.
func NewDataBuffer(s *seg.Segment, opts ...Option) (*DataBuffer, error) {
	b, err := newBase(s, opts)
	if err != nil {
		return nil, err
	}
	return &DataBuffer{base: b}, nil
}

// LimitAt moves the limit within [0, Size].
func (b *DataBuffer) LimitAt(limit int) error { return b.seg.LimitAt(limit) }

// Remaining returns the bytes between position and the limit.
func (b *DataBuffer) Remaining(position int) int { return b.remainingAt(position) }

// HasRemaining reports whether width bytes fit at position.
func (b *DataBuffer) HasRemaining(position, width int) bool {
	return hasRemaining(position, b.Limit(), width)
}

func (b *DataBuffer) GetInt8(position int) (int8, error) {
	v, err := b.get8(position)
	return int8(v), err
}

func (b *DataBuffer) GetUint8(position int) (uint8, error) { return b.get8(position) }

func (b *DataBuffer) GetInt16(position int) (int16, error) {
	v, err := b.get16(position)
	return int16(v), err
}

func (b *DataBuffer) GetUint16(position int) (uint16, error) { return b.get16(position) }

func (b *DataBuffer) GetInt32(position int) (int32, error) {
	v, err := b.get32(position)
	return int32(v), err
}

func (b *DataBuffer) GetUint32(position int) (uint32, error) { return b.get32(position) }

func (b *DataBuffer) GetInt64(position int) (int64, error) {
	v, err := b.get64(position)
	return int64(v), err
}

func (b *DataBuffer) GetUint64(position int) (uint64, error) { return b.get64(position) }

func (b *DataBuffer) GetFloat32(position int) (float32, error) { return b.getF32(position) }

func (b *DataBuffer) GetFloat64(position int) (float64, error) { return b.getF64(position) }

// MutableDataBuffer adds typed writes and Reset to DataBuffer.
type MutableDataBuffer struct {
	DataBuffer
}

// NewMutableDataBuffer wraps s for random-access reads and writes.
func NewMutableDataBuffer(s *seg.Segment, opts ...Option) (*MutableDataBuffer, error) {
	b, err := newBase(s, opts)
	if err != nil {
		return nil, err
	}
	return &MutableDataBuffer{DataBuffer{base: b}}, nil
}

// Reset sets a new limit and, when zeroing, clears every byte.
// Nothing changes if limit is out of range.
func (b *MutableDataBuffer) Reset(limit int, zeroing bool) error {
	if limit < 0 || limit > b.Size() {
		return api.Wrap(api.ErrInvalidArgument).WithContext("limit", limit).WithContext("size", b.Size())
	}
	if zeroing {
		if err := b.seg.Wipe(); err != nil {
			return err
		}
	}
	return b.seg.LimitAt(limit)
}

func (b *MutableDataBuffer) SetInt8(position int, value int8) error {
	return b.put8(position, uint8(value))
}

func (b *MutableDataBuffer) SetUint8(position int, value uint8) error {
	return b.put8(position, value)
}

func (b *MutableDataBuffer) SetInt16(position int, value int16) error {
	return b.put16(position, uint16(value))
}

func (b *MutableDataBuffer) SetUint16(position int, value uint16) error {
	return b.put16(position, value)
}

func (b *MutableDataBuffer) SetInt32(position int, value int32) error {
	return b.put32(position, uint32(value))
}

func (b *MutableDataBuffer) SetUint32(position int, value uint32) error {
	return b.put32(position, value)
}

func (b *MutableDataBuffer) SetInt64(position int, value int64) error {
	return b.put64(position, uint64(value))
}

func (b *MutableDataBuffer) SetUint64(position int, value uint64) error {
	return b.put64(position, value)
}

func (b *MutableDataBuffer) SetFloat32(position int, value float32) error {
	return b.putF32(position, value)
}

func (b *MutableDataBuffer) SetFloat64(position int, value float64) error {
	return b.putF64(position, value)
}

var (
	_ api.Retrievable = (*DataBuffer)(nil)
	_ api.Limitable   = (*DataBuffer)(nil)
	_ api.EndianAware = (*DataBuffer)(nil)
	_ api.Disposable  = (*DataBuffer)(nil)
	_ api.Storable    = (*MutableDataBuffer)(nil)
)
