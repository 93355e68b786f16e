//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

// File: internal/native/native_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback allocator for platforms without anonymous mappings.

package native

import "os"

type platformAllocator struct{ HeapAllocator }

// PageSize returns the operating system page size.
func PageSize() int { return os.Getpagesize() }
