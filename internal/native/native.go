// File: internal/native/native.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral off-heap block allocation. Concrete allocators are
// selected at build time through platform-specific files; every block is
// released deterministically through Free, never through a finalizer.

package native

import (
	"sync/atomic"

	"github.com/momentics/hioload-buf/api"
)

// Allocator reserves off-heap memory blocks.
type Allocator interface {
	Alloc(size int) (*Block, error)
}

// Block is one off-heap allocation. It must be freed exactly once.
type Block struct {
	data    []byte
	release func([]byte) error
	freed   bool
}

var outstanding atomic.Int64

// Outstanding returns the number of blocks allocated and not yet freed.
func Outstanding() int64 { return outstanding.Load() }

func newBlock(data []byte, release func([]byte) error) *Block {
	outstanding.Add(1)
	return &Block{data: data, release: release}
}

// Bytes returns the block memory. It is nil after Free.
func (b *Block) Bytes() []byte { return b.data }

// Len returns the block size in bytes.
func (b *Block) Len() int { return len(b.data) }

// Freed reports whether the block has been released.
func (b *Block) Freed() bool { return b.freed }

// Free returns the memory to the operating system. Calls after the
// first are no-ops.
func (b *Block) Free() error {
	if b.freed {
		return nil
	}
	b.freed = true
	data := b.data
	b.data = nil
	outstanding.Add(-1)
	if b.release == nil {
		return nil
	}
	if err := b.release(data); err != nil {
		return api.Wrap(api.ErrMemory).WithContext("op", "free").WithContext("cause", err.Error())
	}
	return nil
}

// Default returns the platform allocator.
func Default() Allocator { return platformAllocator{} }

// Alloc reserves size bytes with the platform allocator.
func Alloc(size int) (*Block, error) { return Default().Alloc(size) }

// HeapAllocator serves blocks from the Go heap. It backs platforms without
// an anonymous mapping primitive and is handy for tests.
type HeapAllocator struct{}

// Alloc returns a heap-backed block.
func (HeapAllocator) Alloc(size int) (*Block, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return newBlock(make([]byte, size), nil), nil
}

func checkSize(size int) error {
	if size <= 0 {
		return api.Wrap(api.ErrInvalidArgument).WithContext("size", size)
	}
	return nil
}
