// File: buffer/constructors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Convenience constructors over slices, fresh native memory and pools,
// plus scoped helpers that dispose the buffer when the callback returns.

package buffer

import (
	"github.com/momentics/hioload-buf/pool"
)

// WrapBytes wraps b without copying. Writes go straight into b.
func WrapBytes(b []byte, opts ...Option) (*MutableDataBuffer, error) {
	return NewMutableDataBuffer(pool.WrapBytesSegment(b), opts...)
}

// NewNativeDataBuffer allocates size bytes of off-heap memory. Close
// frees it.
func NewNativeDataBuffer(size int, opts ...Option) (*MutableDataBuffer, error) {
	s, err := pool.NewMemorySegment(size)
	if err != nil {
		return nil, err
	}
	b, err := NewMutableDataBuffer(s, opts...)
	if err != nil {
		_ = s.Dispose()
		return nil, err
	}
	return b, nil
}

// NewNativeStreamBuffer allocates a reusable off-heap stream of size bytes.
func NewNativeStreamBuffer(size int, opts ...Option) (*MutableStreamBuffer, error) {
	s, err := pool.NewMemorySegment(size)
	if err != nil {
		return nil, err
	}
	b, err := NewMutableStreamBuffer(s, opts...)
	if err != nil {
		_ = s.Dispose()
		return nil, err
	}
	return b, nil
}

// FromPool allocates a segment of at least size bytes from m and wraps it
// as a mutable data-buffer. Close hands the segment back to m.
func FromPool(m pool.MemoryManager, size int, opts ...Option) (*MutableDataBuffer, error) {
	s, err := m.Allocate(size)
	if err != nil {
		return nil, err
	}
	b, err := NewMutableDataBuffer(s, opts...)
	if err != nil {
		_ = m.Recycle(s)
		return nil, err
	}
	return b, nil
}

// StreamFromPool allocates a segment from m and wraps it as a reusable stream.
func StreamFromPool(m pool.MemoryManager, size int, opts ...Option) (*MutableStreamBuffer, error) {
	s, err := m.Allocate(size)
	if err != nil {
		return nil, err
	}
	b, err := NewMutableStreamBuffer(s, opts...)
	if err != nil {
		_ = m.Recycle(s)
		return nil, err
	}
	return b, nil
}

// WithNative runs fn over a fresh off-heap data-buffer of size bytes and
// frees the memory when fn returns, whatever the outcome.
func WithNative(size int, fn func(*MutableDataBuffer) error, opts ...Option) (err error) {
	b, err := NewNativeDataBuffer(size, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := b.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(b)
}

// WithPool runs fn over a data-buffer allocated from m and hands the
// segment back to m when fn returns.
func WithPool(m pool.MemoryManager, size int, fn func(*MutableDataBuffer) error, opts ...Option) (err error) {
	b, err := FromPool(m, size, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := b.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(b)
}
