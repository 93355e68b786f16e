// Package fake
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fake

import (
	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/pool"
	"github.com/momentics/hioload-buf/seg"
)

// Manager is a fake pool.MemoryManager handing out instrumented segments
// and recording every recycle.
type Manager struct {
	allocated int64
	recycled  int64
	Segments  []*seg.Segment
	Storages  []*Storage
}

// NewManager creates a new fake manager.
func NewManager() *Manager { return &Manager{} }

// Allocate returns a segment of exactly size bytes.
func (m *Manager) Allocate(size int) (*seg.Segment, error) {
	if size <= 0 {
		return nil, api.Wrap(api.ErrBelowMinSize).WithContext("size", size)
	}
	st := NewStorage(size)
	s := seg.New(st, api.KindBytes, m)
	m.allocated++
	m.Segments = append(m.Segments, s)
	m.Storages = append(m.Storages, st)
	return s, nil
}

// Recycle closes s and counts it.
func (m *Manager) Recycle(s *seg.Segment) error {
	if s.Owner() != seg.Owner(m) {
		return api.ErrNotOwned
	}
	if !s.IsOpen() {
		return api.ErrDoubleRecycle
	}
	s.Fence()
	m.recycled++
	return nil
}

func (m *Manager) Dispose() error   { return nil }
func (m *Manager) IsNull() bool     { return false }
func (m *Manager) Kind() api.Kind   { return api.KindBytes }
func (m *Manager) SegmentSize() int { return int(api.Size32B) }

// Stats returns counters accumulated so far.
func (m *Manager) Stats() api.PoolStats {
	return api.PoolStats{
		TotalAlloc:   m.allocated,
		TotalRecycle: m.recycled,
		InUse:        m.allocated - m.recycled,
		Capacity:     -1,
	}
}

var _ pool.MemoryManager = (*Manager)(nil)
