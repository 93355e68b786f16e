// File: pool/null.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Null managers own segments that are not backed by any real pool, such
// as wrapped slices and standalone test fixtures.

package pool

import (
	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/internal/native"
	"github.com/momentics/hioload-buf/seg"
)

type nullManager struct {
	kind api.Kind
	name string
}

// Null manager sentinels. Each is a distinct value: the generic one and
// one per storage backend.
var (
	NullManager       MemoryManager = &nullManager{kind: api.KindNull, name: "null"}
	NullBytesManager  MemoryManager = &nullManager{kind: api.KindBytes, name: "null-bytes"}
	NullMemoryManager MemoryManager = &nullManager{kind: api.KindMemory, name: "null-memory"}
	NullModelManager  MemoryManager = &nullManager{kind: api.KindModel, name: "null-model"}
)

// NullFor returns the null manager of kind.
func NullFor(kind api.Kind) MemoryManager {
	switch kind {
	case api.KindBytes:
		return NullBytesManager
	case api.KindMemory:
		return NullMemoryManager
	case api.KindModel:
		return NullModelManager
	default:
		return NullManager
	}
}

func (n *nullManager) Allocate(int) (*seg.Segment, error) {
	return nil, api.Wrap(api.ErrUnsupported).WithContext("manager", n.name)
}

// Recycle is a no-op: segments under a null manager release their own storage.
func (n *nullManager) Recycle(*seg.Segment) error { return nil }
func (n *nullManager) Dispose() error             { return nil }
func (n *nullManager) IsNull() bool               { return true }
func (n *nullManager) Kind() api.Kind             { return n.kind }
func (n *nullManager) SegmentSize() int           { return 0 }
func (n *nullManager) Stats() api.PoolStats       { return api.PoolStats{} }
func (n *nullManager) String() string             { return n.name }

// NewBytesSegment returns a standalone heap segment of size bytes.
func NewBytesSegment(size int) (*seg.Segment, error) {
	if size <= 0 {
		return nil, api.Wrap(api.ErrInvalidArgument).WithContext("size", size)
	}
	return seg.New(seg.NewHeapStorage(make([]byte, size)), api.KindBytes, NullBytesManager), nil
}

// WrapBytesSegment returns a standalone heap segment over b without copying.
func WrapBytesSegment(b []byte) *seg.Segment {
	return seg.New(seg.NewHeapStorage(b), api.KindBytes, NullBytesManager)
}

// NewModelSegment returns a standalone long-word segment of size bytes.
func NewModelSegment(size int) (*seg.Segment, error) {
	if size <= 0 {
		return nil, api.Wrap(api.ErrInvalidArgument).WithContext("size", size)
	}
	words := make([]uint64, seg.WordsFor(size))
	return seg.New(seg.NewModelStorage(words, size), api.KindModel, NullModelManager), nil
}

// NewMemorySegment returns a standalone off-heap segment of size bytes.
// The caller must Dispose it to free the native block.
func NewMemorySegment(size int) (*seg.Segment, error) {
	block, err := native.Alloc(size)
	if err != nil {
		return nil, err
	}
	return seg.New(seg.NewNativeStorage(block), api.KindMemory, NullMemoryManager), nil
}

// NewSegment returns a standalone segment of the given backend.
func NewSegment(kind api.Kind, size int) (*seg.Segment, error) {
	switch kind {
	case api.KindBytes:
		return NewBytesSegment(size)
	case api.KindModel:
		return NewModelSegment(size)
	case api.KindMemory:
		return NewMemorySegment(size)
	default:
		return nil, api.Wrap(api.ErrUnsupported).WithContext("kind", kind.String())
	}
}
