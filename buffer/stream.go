// File: buffer/stream.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cursor-based stream-buffers.
//
// A stream starts writable with limit == size. Flip fixes the read limit
// and rewinds the cursor. An immutable StreamBuffer flips exactly once:
// after that it only reads, and a second Flip, a write or Clear fails
// with an illegal-state error. A MutableStreamBuffer may flip and clear
// any number of times.

package buffer

import (
	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/seg"
)

type stream struct {
	base
	position int
	mark     int
	flipped  bool
	mutable  bool
}

// StreamBuffer is a one-shot write-then-read stream.
type StreamBuffer struct {
	stream
}

// MutableStreamBuffer is a stream that may be flipped and cleared repeatedly.
type MutableStreamBuffer struct {
	stream
}

// NewStreamBuffer wraps s as an immutable stream.
func NewStreamBuffer(s *seg.Segment, opts ...Option) (*StreamBuffer, error) {
	b, err := newBase(s, opts)
	if err != nil {
		return nil, err
	}
	return &StreamBuffer{stream{base: b}}, nil
}

// NewMutableStreamBuffer wraps s as a reusable stream.
func NewMutableStreamBuffer(s *seg.Segment, opts ...Option) (*MutableStreamBuffer, error) {
	b, err := newBase(s, opts)
	if err != nil {
		return nil, err
	}
	return &MutableStreamBuffer{stream{base: b, mutable: true}}, nil
}

// Position returns the cursor.
func (b *stream) Position() int { return b.position }

// Remaining returns the bytes between the cursor and the limit.
func (b *stream) Remaining() int { return b.remainingAt(b.position) }

// HasRemaining reports whether width bytes fit ahead of the cursor.
func (b *stream) HasRemaining(width int) bool {
	return hasRemaining(b.position, b.Limit(), width)
}

// Flipped reports whether the stream is in read mode.
func (b *stream) Flipped() bool { return b.flipped }

// IsMutable reports whether the stream may flip repeatedly.
func (b *stream) IsMutable() bool { return b.mutable }

// PositionAt moves the cursor within [mark, limit].
func (b *stream) PositionAt(position int) error {
	if position < b.mark || position > b.Limit() {
		return api.Wrap(api.ErrInvalidArgument).
			WithContext("position", position).
			WithContext("mark", b.mark).
			WithContext("limit", b.Limit())
	}
	b.position = position
	return nil
}

// Mark returns the last marked position.
func (b *stream) Mark() int { return b.mark }

// MarkAt records the current cursor as the mark.
func (b *stream) MarkAt() { b.mark = b.position }

// ResetToMark moves the cursor back to the mark.
func (b *stream) ResetToMark() { b.position = b.mark }

// Rewind resets the cursor and mark to zero. The limit is kept.
func (b *stream) Rewind() {
	b.position = 0
	b.mark = 0
}

// Clear returns to write mode: cursor zero, limit at size.
func (b *stream) Clear() error {
	if b.flipped && !b.mutable {
		return api.Wrap(api.ErrAlreadyFlipped).WithContext("op", "clear")
	}
	b.Rewind()
	b.seg.Clear()
	b.flipped = false
	return nil
}

// Flip fixes the read limit at limit and rewinds the cursor.
func (b *stream) Flip(limit int) error {
	if b.flipped && !b.mutable {
		return api.Wrap(api.ErrAlreadyFlipped).WithContext("op", "flip")
	}
	if limit < 0 || limit > b.Size() {
		return api.Wrap(api.ErrInvalidArgument).WithContext("limit", limit).WithContext("size", b.Size())
	}
	if err := b.seg.LimitAt(limit); err != nil {
		return err
	}
	b.Rewind()
	b.flipped = true
	return nil
}

// FlipHere flips with the limit at the current cursor.
func (b *stream) FlipHere() error { return b.Flip(b.position) }

// writable rejects writes on an immutable stream in read mode.
func (b *stream) writable() error {
	if b.flipped && !b.mutable {
		return api.Wrap(api.ErrAlreadyFlipped).WithContext("op", "write")
	}
	return nil
}

func (b *stream) advance(width int, err error) error {
	if err == nil {
		b.position += width
	}
	return err
}

func (b *stream) ReadInt8() (int8, error) {
	v, err := b.get8(b.position)
	return int8(v), b.advance(api.ByteSize, err)
}

func (b *stream) ReadUint8() (uint8, error) {
	v, err := b.get8(b.position)
	return v, b.advance(api.UByteSize, err)
}

func (b *stream) ReadInt16() (int16, error) {
	v, err := b.get16(b.position)
	return int16(v), b.advance(api.ShortSize, err)
}

func (b *stream) ReadUint16() (uint16, error) {
	v, err := b.get16(b.position)
	return v, b.advance(api.UShortSize, err)
}

func (b *stream) ReadInt32() (int32, error) {
	v, err := b.get32(b.position)
	return int32(v), b.advance(api.IntSize, err)
}

func (b *stream) ReadUint32() (uint32, error) {
	v, err := b.get32(b.position)
	return v, b.advance(api.UIntSize, err)
}

func (b *stream) ReadInt64() (int64, error) {
	v, err := b.get64(b.position)
	return int64(v), b.advance(api.LongSize, err)
}

func (b *stream) ReadUint64() (uint64, error) {
	v, err := b.get64(b.position)
	return v, b.advance(api.ULongSize, err)
}

func (b *stream) ReadFloat32() (float32, error) {
	v, err := b.getF32(b.position)
	return v, b.advance(api.FloatSize, err)
}

func (b *stream) ReadFloat64() (float64, error) {
	v, err := b.getF64(b.position)
	return v, b.advance(api.DoubleSize, err)
}

func (b *stream) WriteInt8(value int8) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.ByteSize, b.put8(b.position, uint8(value)))
}

func (b *stream) WriteUint8(value uint8) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.UByteSize, b.put8(b.position, value))
}

func (b *stream) WriteInt16(value int16) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.ShortSize, b.put16(b.position, uint16(value)))
}

func (b *stream) WriteUint16(value uint16) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.UShortSize, b.put16(b.position, value))
}

func (b *stream) WriteInt32(value int32) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.IntSize, b.put32(b.position, uint32(value)))
}

func (b *stream) WriteUint32(value uint32) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.UIntSize, b.put32(b.position, value))
}

func (b *stream) WriteInt64(value int64) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.LongSize, b.put64(b.position, uint64(value)))
}

func (b *stream) WriteUint64(value uint64) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.ULongSize, b.put64(b.position, value))
}

func (b *stream) WriteFloat32(value float32) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.FloatSize, b.putF32(b.position, value))
}

func (b *stream) WriteFloat64(value float64) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.advance(api.DoubleSize, b.putF64(b.position, value))
}

var (
	_ api.Readable    = (*StreamBuffer)(nil)
	_ api.Writable    = (*StreamBuffer)(nil)
	_ api.Readable    = (*MutableStreamBuffer)(nil)
	_ api.Writable    = (*MutableStreamBuffer)(nil)
	_ api.EndianAware = (*MutableStreamBuffer)(nil)
)
