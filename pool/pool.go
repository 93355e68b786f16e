// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Size-class segment pool over one reserved backing block.
//
// A pool reserves TotalSize bytes up front (Go heap slice, long-word
// array or off-heap block, depending on Kind) and carves segments from it
// sequentially. Recycled storage goes to a FIFO free list for its size
// class and is handed out again before any new carving, so the backing
// block never grows. Every checkout wraps the storage in a fresh segment
// handle; a recycled handle stays closed for good, so a stale reference
// can never reach the next holder's data. Fixed pools have
// MinSize == MaxSize, Single pools additionally have TotalSize == MaxSize.

package pool

import (
	"log/slog"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/internal/native"
	"github.com/momentics/hioload-buf/seg"
)

// MemoryManager allocates and recycles segments.
type MemoryManager interface {
	seg.Owner
	Allocate(size int) (*seg.Segment, error)
	Dispose() error
	Kind() api.Kind
	SegmentSize() int
	Stats() api.PoolStats
}

// Pool is a bounded segment allocator. Pool methods are safe for
// concurrent use; the segments it hands out are not.
type Pool struct {
	mu   sync.Mutex
	cfg  Config
	log  *slog.Logger
	wipe bool

	// Backing block; exactly one is set, matching cfg.Kind.
	heap  []byte
	words []uint64
	block *native.Block

	carved   int
	free     map[api.DataSize]*queue.Queue // of seg.Storage
	live     map[*seg.Segment]struct{}     // handles currently checked out
	disposed bool

	totalAlloc   int64
	totalRecycle int64
	inUse        int64
}

// New validates cfg and reserves the backing block.
func New(cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	p := &Pool{
		cfg:   cfg,
		log:   cfg.Logger.With("pool", cfg.Name, "kind", cfg.Kind.String()),
		wipe:  cfg.WipeOnRecycle,
		free:  make(map[api.DataSize]*queue.Queue),
		live:  make(map[*seg.Segment]struct{}),
	}
	total := cfg.TotalSize.Int()
	switch cfg.Kind {
	case api.KindBytes:
		p.heap = make([]byte, total)
	case api.KindModel:
		p.words = make([]uint64, seg.WordsFor(total))
	case api.KindMemory:
		block, err := cfg.Allocator.Alloc(total)
		if err != nil {
			return nil, err
		}
		p.block = block
	}
	p.log.Debug("pool created",
		"total", cfg.TotalSize.String(),
		"min", cfg.MinSize.String(),
		"max", cfg.MaxSize.String())
	return p, nil
}

func newShaped(kind api.Kind, total, minSize, maxSize api.DataSize) (*Pool, error) {
	cfg := DefaultConfig()
	cfg.Name = kind.String()
	cfg.Kind = kind
	cfg.TotalSize = total
	cfg.MinSize = minSize
	cfg.MaxSize = maxSize
	return New(*cfg)
}

// NewFixedBytesPool serves segments of exactly segmentSize from a heap block.
func NewFixedBytesPool(total, segmentSize api.DataSize) (*Pool, error) {
	return newShaped(api.KindBytes, total, segmentSize, segmentSize)
}

// NewArbitraryBytesPool serves segments between minSize and maxSize from a heap block.
func NewArbitraryBytesPool(total, minSize, maxSize api.DataSize) (*Pool, error) {
	return newShaped(api.KindBytes, total, minSize, maxSize)
}

// NewSingleBytesPool holds exactly one heap segment.
func NewSingleBytesPool(segmentSize api.DataSize) (*Pool, error) {
	return newShaped(api.KindBytes, segmentSize, segmentSize, segmentSize)
}

// NewFixedMemoryPool serves segments of exactly segmentSize from off-heap memory.
func NewFixedMemoryPool(total, segmentSize api.DataSize) (*Pool, error) {
	return newShaped(api.KindMemory, total, segmentSize, segmentSize)
}

// NewArbitraryMemoryPool serves segments between minSize and maxSize from off-heap memory.
func NewArbitraryMemoryPool(total, minSize, maxSize api.DataSize) (*Pool, error) {
	return newShaped(api.KindMemory, total, minSize, maxSize)
}

// NewSingleMemoryPool holds exactly one off-heap segment.
func NewSingleMemoryPool(segmentSize api.DataSize) (*Pool, error) {
	return newShaped(api.KindMemory, segmentSize, segmentSize, segmentSize)
}

// NewFixedModelPool serves segments of exactly segmentSize from a long-word block.
func NewFixedModelPool(total, segmentSize api.DataSize) (*Pool, error) {
	return newShaped(api.KindModel, total, segmentSize, segmentSize)
}

// NewArbitraryModelPool serves segments between minSize and maxSize from a long-word block.
func NewArbitraryModelPool(total, minSize, maxSize api.DataSize) (*Pool, error) {
	return newShaped(api.KindModel, total, minSize, maxSize)
}

// NewSingleModelPool holds exactly one long-word segment.
func NewSingleModelPool(segmentSize api.DataSize) (*Pool, error) {
	return newShaped(api.KindModel, segmentSize, segmentSize, segmentSize)
}

// Kind returns the storage backend.
func (p *Pool) Kind() api.Kind { return p.cfg.Kind }

// IsNull is always false for real pools.
func (p *Pool) IsNull() bool { return false }

// TotalSize returns the backing block size.
func (p *Pool) TotalSize() int { return p.cfg.TotalSize.Int() }

// MinSize returns the smallest accepted request.
func (p *Pool) MinSize() int { return p.cfg.MinSize.Int() }

// MaxSize returns the largest accepted request.
func (p *Pool) MaxSize() int { return p.cfg.MaxSize.Int() }

// SegmentSize is the default allocation size, the pool minimum.
func (p *Pool) SegmentSize() int { return p.cfg.MinSize.Int() }

// IsFixed reports whether the pool serves a single segment size.
func (p *Pool) IsFixed() bool { return p.cfg.MinSize == p.cfg.MaxSize }

// IsSingle reports whether the pool holds exactly one segment.
func (p *Pool) IsSingle() bool { return p.IsFixed() && p.cfg.TotalSize == p.cfg.MaxSize }

// Disposed reports whether the backing block has been released.
func (p *Pool) Disposed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disposed
}

// SetWipeOnRecycle toggles zeroing of segments returned to the free list.
func (p *Pool) SetWipeOnRecycle(wipe bool) {
	p.mu.Lock()
	p.wipe = wipe
	p.mu.Unlock()
}

// AllocateDefault allocates a segment of SegmentSize.
func (p *Pool) AllocateDefault() (*seg.Segment, error) {
	return p.Allocate(p.SegmentSize())
}

// Allocate checks out a segment holding at least size bytes. The request
// must lie within [MinSize, MaxSize]; the segment size is rounded up to
// the next size class.
func (p *Pool) Allocate(size int) (*seg.Segment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return nil, api.ErrPoolDisposed
	}
	if size < p.MinSize() {
		return nil, api.Wrap(api.ErrBelowMinSize).WithContext("size", size).WithContext("min", p.MinSize())
	}
	if size > p.MaxSize() {
		return nil, api.Wrap(api.ErrAboveMaxSize).WithContext("size", size).WithContext("max", p.MaxSize())
	}
	class := api.FindLowestAbove(size)

	var store seg.Storage
	if q := p.free[class]; q != nil && q.Length() > 0 {
		store = q.Remove().(seg.Storage)
	} else {
		var err error
		if store, err = p.carve(class); err != nil {
			return nil, err
		}
	}
	s := seg.New(store, p.cfg.Kind, p)
	p.live[s] = struct{}{}
	p.totalAlloc++
	p.inUse++
	p.count("alloc", 1)
	return s, nil
}

// carve cuts new storage of class bytes from the unused tail of the block.
func (p *Pool) carve(class api.DataSize) (seg.Storage, error) {
	n := class.Int()
	if p.TotalSize()-p.carved < n {
		return nil, api.Wrap(api.ErrPoolExhausted).
			WithContext("size", n).
			WithContext("left", p.TotalSize()-p.carved)
	}
	off := p.carved
	var store seg.Storage
	switch p.cfg.Kind {
	case api.KindBytes:
		store = seg.NewHeapStorage(p.heap[off : off+n : off+n])
	case api.KindModel:
		store = seg.NewModelStorage(p.words[off/8:(off+n)/8:(off+n)/8], n)
	case api.KindMemory:
		store = seg.NewBorrowedNativeStorage(p.block.Bytes()[off : off+n : off+n])
	}
	p.carved += n
	p.count("reserved", int64(n))
	p.log.Debug("segment carved", "size", class.String(), "offset", off)
	return store, nil
}

// Recycle closes s and returns its storage to the free list of its size
// class. Segments from other managers and segments already recycled are
// rejected.
func (p *Pool) Recycle(s *seg.Segment) error {
	if s == nil {
		return api.Wrap(api.ErrInvalidArgument).WithContext("segment", "nil")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return api.ErrPoolDisposed
	}
	if _, ok := p.live[s]; !ok {
		if s.Owner() == seg.Owner(p) {
			p.log.Warn("double recycle rejected", "size", s.Size())
			return api.Wrap(api.ErrDoubleRecycle).WithContext("size", s.Size())
		}
		p.log.Warn("foreign segment rejected", "size", s.Size())
		return api.Wrap(api.ErrNotOwned).WithContext("size", s.Size())
	}
	if p.wipe {
		if err := s.Wipe(); err != nil {
			return err
		}
	}
	store := s.Detach()
	delete(p.live, s)

	class := s.Class()
	q := p.free[class]
	if q == nil {
		q = queue.New()
		p.free[class] = q
	}
	q.Add(store)
	p.totalRecycle++
	p.inUse--
	p.count("recycle", 1)
	return nil
}

// Dispose closes every segment and releases the backing block. Off-heap
// memory is freed exactly once; further calls are no-ops.
func (p *Pool) Dispose() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return nil
	}
	p.disposed = true
	for s := range p.live {
		_ = s.Release()
	}
	for _, q := range p.free {
		for q.Length() > 0 {
			_ = q.Remove().(seg.Storage).Release()
		}
	}
	p.live = nil
	p.free = nil
	p.heap, p.words = nil, nil

	var err error
	if p.block != nil {
		err = p.block.Free()
		p.block = nil
	}
	p.log.Debug("pool disposed", "allocs", p.totalAlloc, "recycles", p.totalRecycle)
	return err
}

// Stats reports allocation counters.
func (p *Pool) Stats() api.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return api.PoolStats{
		TotalAlloc:   p.totalAlloc,
		TotalRecycle: p.totalRecycle,
		InUse:        p.inUse,
		Reserved:     int64(p.carved),
		Capacity:     int64(p.TotalSize()),
	}
}

func (p *Pool) count(name string, delta int64) {
	if p.cfg.Metrics != nil {
		p.cfg.Metrics.Add(p.cfg.Name+"."+name, delta)
	}
}

var _ MemoryManager = (*Pool)(nil)
