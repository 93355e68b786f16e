// Package buffer
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Typed, endianness-aware buffers over a single segment.
//
// Data-buffers take an explicit position per access; stream-buffers keep
// a cursor that each access advances. Every access validates its range
// against the limit before touching storage, so a failed call never
// leaves a partial write behind. Multi-byte values are stored through the
// segment in native order and swapped here when the buffer endianness
// differs from the platform.

package buffer

import (
	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/endian"
	"github.com/momentics/hioload-buf/seg"
)

// Option configures a buffer at construction.
type Option func(*base) error

// WithEndianness sets the initial byte order. Native order is the default.
func WithEndianness(e api.Endianness) Option {
	return func(b *base) error {
		b.SetEndianness(e)
		return nil
	}
}

// WithLimit sets the initial limit, which must lie within [0, Size].
func WithLimit(limit int) Option {
	return func(b *base) error {
		return b.seg.LimitAt(limit)
	}
}

// AsView marks the buffer as a view: Close leaves the segment alone.
func AsView() Option {
	return func(b *base) error {
		b.view = true
		return nil
	}
}

// Segmented is any buffer exposing its segment and byte order.
type Segmented interface {
	Segment() *seg.Segment
	Endianness() api.Endianness
}

// base holds state shared by every buffer flavour.
type base struct {
	seg     *seg.Segment
	order   api.Endianness
	reverse bool
	view    bool
}

func newBase(s *seg.Segment, opts []Option) (base, error) {
	if s == nil {
		return base{}, api.Wrap(api.ErrInvalidArgument).WithContext("segment", "nil")
	}
	b := base{seg: s}
	b.SetEndianness(endian.Native())
	for _, opt := range opts {
		if err := opt(&b); err != nil {
			return base{}, err
		}
	}
	return b, nil
}

// Size returns the segment capacity.
func (b *base) Size() int { return b.seg.Size() }

// Limit returns the logical end of valid data.
func (b *base) Limit() int { return b.seg.Limit() }

// Endianness returns the byte order used for multi-byte access.
func (b *base) Endianness() api.Endianness { return b.order }

// SetEndianness changes the byte order for subsequent accesses.
func (b *base) SetEndianness(e api.Endianness) {
	b.order = e
	b.reverse = endian.IsReversed(e)
}

// Reverse is true when the buffer order differs from the native order.
func (b *base) Reverse() bool { return b.reverse }

// Segment exposes the underlying segment.
func (b *base) Segment() *seg.Segment { return b.seg }

// Kind returns the storage backend of the segment.
func (b *base) Kind() api.Kind { return b.seg.Kind() }

// IsView reports whether Close leaves the segment alone.
func (b *base) IsView() bool { return b.view }

// IsMem reports whether the segment lives in off-heap memory.
func (b *base) IsMem() bool { return b.seg.Kind() == api.KindMemory }

// IsNull reports whether the buffer wraps the null segment.
func (b *base) IsNull() bool { return b.seg.IsNull() }

// CheckSum returns the content checksum of the whole segment.
func (b *base) CheckSum() uint64 { return b.seg.CheckSum() }

// Close disposes the segment unless the buffer is a view. Pool segments
// return to their pool; standalone native segments are freed.
func (b *base) Close() error {
	if b.view {
		return nil
	}
	return b.seg.Dispose()
}

// Dispose is an alias of Close.
func (b *base) Dispose() error { return b.Close() }

// CopyInto copies bytes [from, to) of this buffer into dst at offset.
// Both ranges are checked against the respective limits before any byte
// moves.
func (b *base) CopyInto(dst Segmented, offset, from, to int) error {
	if dst == nil {
		return api.Wrap(api.ErrInvalidArgument).WithContext("destination", "nil")
	}
	if from > to {
		return api.Wrap(api.ErrInvalidArgument).WithContext("from", from).WithContext("to", to)
	}
	length := to - from
	if err := b.checkAccess(from, length); err != nil {
		return err
	}
	target := base{seg: dst.Segment()}
	if err := target.checkAccess(offset, length); err != nil {
		return err
	}
	return b.seg.CopyInto(target.seg, offset, from, to)
}
