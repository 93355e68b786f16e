// File: seg/segment.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Segment is the minimal unit of allocated storage: a fixed-size byte
// range with raw typed access, content checksum, secure wipe and a
// deterministic dispose path back to its owner.

package seg

import (
	"bytes"
	"crypto/rand"
	"hash/fnv"

	"github.com/momentics/hioload-buf/api"
)

// Owner is the manager a segment returns to on Dispose.
type Owner interface {
	Recycle(s *Segment) error
	IsNull() bool
}

// Segment is a fixed-capacity byte range over a Storage backend.
// Not safe for concurrent use.
type Segment struct {
	kind  api.Kind
	data  Storage
	size  int
	limit int
	owner Owner
	class api.DataSize
	open  bool
}

// Null is the segment sentinel for "no storage". Every access fails.
var Null = &Segment{kind: api.KindNull, class: api.SizeUnknown}

// New builds an open segment over data. owner may be nil for standalone
// segments that release their storage directly.
func New(data Storage, kind api.Kind, owner Owner) *Segment {
	n := data.Len()
	return &Segment{
		kind:  kind,
		data:  data,
		size:  n,
		limit: n,
		owner: owner,
		class: api.FindLowestAbove(n),
		open:  true,
	}
}

// Size returns the capacity in bytes.
func (s *Segment) Size() int { return s.size }

// Limit returns the logical end of valid data.
func (s *Segment) Limit() int { return s.limit }

// LimitAt moves the logical limit within [0, Size].
func (s *Segment) LimitAt(limit int) error {
	if limit < 0 || limit > s.size {
		return api.Wrap(api.ErrInvalidArgument).WithContext("limit", limit).WithContext("size", s.size)
	}
	s.limit = limit
	return nil
}

// Clear resets the limit to the full size.
func (s *Segment) Clear() { s.limit = s.size }

// Kind returns the storage backend tag.
func (s *Segment) Kind() api.Kind { return s.kind }

// Class returns the size class the segment was allocated under.
func (s *Segment) Class() api.DataSize { return s.class }

// Owner returns the managing pool, nil for standalone segments.
func (s *Segment) Owner() Owner { return s.owner }

// IsNull reports whether s is the Null sentinel.
func (s *Segment) IsNull() bool { return s == Null }

// IsOpen reports whether the segment may be accessed.
func (s *Segment) IsOpen() bool { return s.open }

// Fence closes the segment for good without touching its storage. Every
// later access fails with ErrSegmentDisposed.
func (s *Segment) Fence() {
	if s.IsNull() {
		return
	}
	s.open = false
}

// Detach fences the segment and hands its storage to the caller. Pools
// use it on recycle so the storage can be wrapped in a fresh handle while
// this one stays closed.
func (s *Segment) Detach() Storage {
	s.Fence()
	data := s.data
	s.data = nil
	return data
}

// check validates an access of width bytes at index against the size.
func (s *Segment) check(index, width int) error {
	if s.kind == api.KindNull {
		return api.ErrUnsupported
	}
	if !s.open {
		return api.ErrSegmentDisposed
	}
	if index < 0 || index > s.size-width {
		return api.Wrap(api.ErrSegmentRange).
			WithContext("index", index).
			WithContext("width", width).
			WithContext("size", s.size)
	}
	return nil
}

// GetInt8 reads one byte at index.
func (s *Segment) GetInt8(index int) (int8, error) {
	if err := s.check(index, api.ByteSize); err != nil {
		return 0, err
	}
	return int8(s.data.Byte(index)), nil
}

// GetInt16 reads two bytes at index in native order.
func (s *Segment) GetInt16(index int) (int16, error) {
	if err := s.check(index, api.ShortSize); err != nil {
		return 0, err
	}
	return int16(s.data.Uint16(index)), nil
}

// GetInt32 reads four bytes at index in native order.
func (s *Segment) GetInt32(index int) (int32, error) {
	if err := s.check(index, api.IntSize); err != nil {
		return 0, err
	}
	return int32(s.data.Uint32(index)), nil
}

// GetInt64 reads eight bytes at index in native order.
func (s *Segment) GetInt64(index int) (int64, error) {
	if err := s.check(index, api.LongSize); err != nil {
		return 0, err
	}
	return int64(s.data.Uint64(index)), nil
}

// SetInt8 writes one byte at index.
func (s *Segment) SetInt8(index int, v int8) error {
	if err := s.check(index, api.ByteSize); err != nil {
		return err
	}
	s.data.SetByte(index, byte(v))
	return nil
}

// SetInt16 writes two bytes at index in native order.
func (s *Segment) SetInt16(index int, v int16) error {
	if err := s.check(index, api.ShortSize); err != nil {
		return err
	}
	s.data.PutUint16(index, uint16(v))
	return nil
}

// SetInt32 writes four bytes at index in native order.
func (s *Segment) SetInt32(index int, v int32) error {
	if err := s.check(index, api.IntSize); err != nil {
		return err
	}
	s.data.PutUint32(index, uint32(v))
	return nil
}

// SetInt64 writes eight bytes at index in native order.
func (s *Segment) SetInt64(index int, v int64) error {
	if err := s.check(index, api.LongSize); err != nil {
		return err
	}
	s.data.PutUint64(index, uint64(v))
	return nil
}

// CheckSum returns a 64-bit FNV-1a hash over all Size bytes. Segments with
// identical content have identical checksums regardless of backend.
// The Null sentinel and closed segments hash as empty.
func (s *Segment) CheckSum() uint64 {
	h := fnv.New64a()
	if s.open && s.data != nil {
		h.Write(s.data.Bytes())
	}
	return h.Sum64()
}

// Hash is the content-based hash, equal to CheckSum.
func (s *Segment) Hash() uint64 { return s.CheckSum() }

// Equal compares content byte for byte.
func (s *Segment) Equal(other *Segment) bool {
	if s == other {
		return true
	}
	if other == nil || s.size != other.size {
		return false
	}
	return bytes.Equal(s.view(), other.view())
}

func (s *Segment) view() []byte {
	if !s.open || s.data == nil {
		return nil
	}
	return s.data.Bytes()
}

// SecurelyRandomize overwrites every byte with cryptographically strong
// random data.
func (s *Segment) SecurelyRandomize() error {
	if err := s.check(0, 0); err != nil {
		return err
	}
	if _, err := rand.Read(s.data.Bytes()); err != nil {
		return api.Wrap(api.ErrInternal).WithContext("op", "randomize").WithContext("cause", err.Error())
	}
	return nil
}

// Wipe zeroes every byte.
func (s *Segment) Wipe() error {
	if err := s.check(0, 0); err != nil {
		return err
	}
	clear(s.data.Bytes())
	return nil
}

// Copy returns a deep copy of the segment content.
func (s *Segment) Copy() []byte {
	v := s.view()
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

// CopyInto copies bytes [from, to) of s into dst starting at dstOffset.
// Ranges are validated on both sides before any byte moves.
func (s *Segment) CopyInto(dst *Segment, dstOffset, from, to int) error {
	if err := s.check(0, 0); err != nil {
		return err
	}
	if err := dst.check(0, 0); err != nil {
		return err
	}
	length := to - from
	if from < 0 || length < 0 || to > s.size {
		return api.Wrap(api.ErrSegmentRange).
			WithContext("from", from).WithContext("to", to).WithContext("size", s.size)
	}
	if dstOffset < 0 || dstOffset+length > dst.size {
		return api.Wrap(api.ErrSegmentRange).
			WithContext("offset", dstOffset).WithContext("length", length).WithContext("size", dst.size)
	}
	copy(dst.data.Bytes()[dstOffset:dstOffset+length], s.data.Bytes()[from:to])
	return nil
}

// Dispose ends the caller's use of the segment. Pool-owned segments are
// randomized and handed back to their pool; standalone segments release
// their storage, freeing native memory exactly once. Disposing a closed
// segment is a no-op.
func (s *Segment) Dispose() error {
	if s.IsNull() || !s.open {
		return nil
	}
	if s.owner != nil && !s.owner.IsNull() {
		if err := s.SecurelyRandomize(); err != nil {
			return err
		}
		return s.owner.Recycle(s)
	}
	s.open = false
	return s.data.Release()
}

// Release frees the storage regardless of owner. Managers use it when
// tearing down their backing block. Closed segments are left alone.
func (s *Segment) Release() error {
	if s.IsNull() || !s.open {
		return nil
	}
	s.open = false
	if s.data == nil {
		return nil
	}
	return s.data.Release()
}
