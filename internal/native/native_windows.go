//go:build windows

// File: internal/native/native_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows allocator: committed VirtualAlloc regions.

package native

import (
	"os"
	"unsafe"

	"github.com/momentics/hioload-buf/api"
	"golang.org/x/sys/windows"
)

type platformAllocator struct{}

func (platformAllocator) Alloc(size int) (*Block, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil || addr == 0 {
		e := api.Wrap(api.ErrMemory).WithContext("op", "VirtualAlloc")
		if err != nil {
			e.WithContext("cause", err.Error())
		}
		return nil, e
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return newBlock(data, virtualFree), nil
}

func virtualFree(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return windows.VirtualFree(uintptr(unsafe.Pointer(&data[0])), 0, windows.MEM_RELEASE)
}

// PageSize returns the operating system page size.
func PageSize() int { return os.Getpagesize() }
