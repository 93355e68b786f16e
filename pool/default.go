// File: pool/default.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unbounded heap manager and the process-wide size-class manager.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/seg"
)

// DefaultSegmentSize is the size handed out by Default.AllocateDefault.
const DefaultSegmentSize = api.Size4K

type defaultManager struct {
	totalAlloc   atomic.Int64
	totalRecycle atomic.Int64
}

// Default is an unbounded heap manager: every allocation is a fresh slice
// of exactly the requested size and recycled segments are left to the GC.
// It is safe for concurrent use; the segments it hands out are not.
var Default = &defaultManager{}

// AllocateDefault allocates a DefaultSegmentSize segment.
func (d *defaultManager) AllocateDefault() (*seg.Segment, error) {
	return d.Allocate(DefaultSegmentSize.Int())
}

func (d *defaultManager) Allocate(size int) (*seg.Segment, error) {
	if size <= 0 {
		return nil, api.Wrap(api.ErrBelowMinSize).WithContext("size", size).WithContext("min", 1)
	}
	d.totalAlloc.Add(1)
	return seg.New(seg.NewHeapStorage(make([]byte, size)), api.KindBytes, d), nil
}

func (d *defaultManager) Recycle(s *seg.Segment) error {
	if s == nil {
		return api.Wrap(api.ErrInvalidArgument).WithContext("segment", "nil")
	}
	if s.Owner() != seg.Owner(d) {
		return api.Wrap(api.ErrNotOwned).WithContext("size", s.Size())
	}
	if !s.IsOpen() {
		return api.Wrap(api.ErrDoubleRecycle).WithContext("size", s.Size())
	}
	d.totalRecycle.Add(1)
	return s.Release()
}

func (d *defaultManager) Dispose() error   { return nil }
func (d *defaultManager) IsNull() bool     { return false }
func (d *defaultManager) Kind() api.Kind   { return api.KindBytes }
func (d *defaultManager) SegmentSize() int { return DefaultSegmentSize.Int() }

func (d *defaultManager) Stats() api.PoolStats {
	alloc, recycle := d.totalAlloc.Load(), d.totalRecycle.Load()
	return api.PoolStats{
		TotalAlloc:   alloc,
		TotalRecycle: recycle,
		InUse:        alloc - recycle,
		Capacity:     -1,
	}
}

var _ MemoryManager = Default

var (
	defaultOnce sync.Once
	defaultMgr  *Manager
)

// DefaultManager returns a process-wide heap Manager so callers that do
// not care about placement share the same size-class pools. The manager
// may be shared across goroutines; each segment it hands out belongs to
// one goroutine at a time.
func DefaultManager() *Manager {
	defaultOnce.Do(func() {
		mgr, err := NewManager(*DefaultConfig())
		if err != nil {
			panic(err)
		}
		defaultMgr = mgr
	})
	return defaultMgr
}
