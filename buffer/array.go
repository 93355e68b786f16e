// File: buffer/array.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Element-indexed typed views. An ArrayBuffer addresses its segment in
// units of one element instead of bytes: index i covers bytes
// [i*width, (i+1)*width). Len counts whole elements below the limit.

package buffer

import (
	"iter"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/pool"
	"github.com/momentics/hioload-buf/seg"
)

// Element is the set of fixed-width values an ArrayBuffer can hold.
type Element interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// ArrayBuffer reads and writes elements of type T by index.
type ArrayBuffer[T Element] struct {
	base
	width int
}

// NewArrayBuffer wraps s as an array of T.
func NewArrayBuffer[T Element](s *seg.Segment, opts ...Option) (*ArrayBuffer[T], error) {
	b, err := newBase(s, opts)
	if err != nil {
		return nil, err
	}
	return &ArrayBuffer[T]{base: b, width: widthOf[T]()}, nil
}

// NewArray allocates a heap array of n elements from pool.Default.
func NewArray[T Element](n int, opts ...Option) (*ArrayBuffer[T], error) {
	s, err := pool.Default.Allocate(n * widthOf[T]())
	if err != nil {
		return nil, err
	}
	a, err := NewArrayBuffer[T](s, opts...)
	if err != nil {
		_ = s.Dispose()
		return nil, err
	}
	return a, nil
}

// ArrayView reinterprets the segment behind src as an array of T. The
// view shares storage and byte order with src and never disposes it.
func ArrayView[T Element](src Segmented) (*ArrayBuffer[T], error) {
	if src == nil {
		return nil, api.Wrap(api.ErrInvalidArgument).WithContext("source", "nil")
	}
	return NewArrayBuffer[T](src.Segment(), WithEndianness(src.Endianness()), AsView())
}

func widthOf[T Element]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return api.ByteSize
	case int16, uint16:
		return api.ShortSize
	case int32, uint32, float32:
		return api.IntSize
	default:
		return api.LongSize
	}
}

// Width returns the element size in bytes.
func (a *ArrayBuffer[T]) Width() int { return a.width }

// Len returns the number of whole elements below the limit.
func (a *ArrayBuffer[T]) Len() int { return a.Limit() / a.width }

// Cap returns the number of whole elements the segment can hold.
func (a *ArrayBuffer[T]) Cap() int { return a.Size() / a.width }

func (a *ArrayBuffer[T]) offset(index int) (int, error) {
	if index < 0 || index >= a.Len() {
		return 0, api.Wrap(api.ErrOverflow).
			WithContext("index", index).
			WithContext("len", a.Len())
	}
	return index * a.width, nil
}

// At returns the element at index.
func (a *ArrayBuffer[T]) At(index int) (T, error) {
	var zero T
	if err := a.checkAccess(0, 0); err != nil {
		return zero, err
	}
	pos, err := a.offset(index)
	if err != nil {
		return zero, err
	}
	switch any(zero).(type) {
	case int8, uint8:
		v, err := a.get8(pos)
		return T(v), err
	case int16, uint16:
		v, err := a.get16(pos)
		return T(v), err
	case int32, uint32:
		v, err := a.get32(pos)
		return T(v), err
	case float32:
		v, err := a.getF32(pos)
		return T(v), err
	case float64:
		v, err := a.getF64(pos)
		return T(v), err
	default:
		v, err := a.get64(pos)
		return T(v), err
	}
}

// SetAt stores value at index.
func (a *ArrayBuffer[T]) SetAt(index int, value T) error {
	if err := a.checkAccess(0, 0); err != nil {
		return err
	}
	pos, err := a.offset(index)
	if err != nil {
		return err
	}
	switch v := any(value).(type) {
	case int8:
		return a.put8(pos, uint8(v))
	case uint8:
		return a.put8(pos, v)
	case int16:
		return a.put16(pos, uint16(v))
	case uint16:
		return a.put16(pos, v)
	case int32:
		return a.put32(pos, uint32(v))
	case uint32:
		return a.put32(pos, v)
	case int64:
		return a.put64(pos, uint64(v))
	case uint64:
		return a.put64(pos, v)
	case float32:
		return a.putF32(pos, v)
	case float64:
		return a.putF64(pos, v)
	}
	return api.ErrUnsupported
}

// All yields index and value for every element below the limit. Iteration
// stops at the first failed read.
func (a *ArrayBuffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.Len(); i++ {
			v, err := a.At(i)
			if err != nil || !yield(i, v) {
				return
			}
		}
	}
}
