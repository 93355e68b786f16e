//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// File: internal/native/native_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unix allocator: anonymous private mappings outside the Go heap.

package native

import (
	"github.com/momentics/hioload-buf/api"
	"golang.org/x/sys/unix"
)

type platformAllocator struct{}

func (platformAllocator) Alloc(size int) (*Block, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, api.Wrap(api.ErrMemory).WithContext("op", "mmap").WithContext("cause", err.Error())
	}
	return newBlock(data, unix.Munmap), nil
}

// PageSize returns the operating system page size.
func PageSize() int { return unix.Getpagesize() }
