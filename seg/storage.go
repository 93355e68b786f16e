// File: seg/storage.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Raw storage backends for segments. Storage reads and writes bytes in
// memory order; multi-byte values use the platform's native order and
// byte-order conversion is left to the buffer layer. Storage performs no
// bounds checking of its own: Segment validates every access first.

package seg

import (
	"encoding/binary"
	"unsafe"

	"github.com/momentics/hioload-buf/internal/native"
)

// Storage is the raw memory behind a Segment.
type Storage interface {
	Len() int
	Byte(i int) byte
	SetByte(i int, v byte)
	Uint16(i int) uint16
	PutUint16(i int, v uint16)
	Uint32(i int) uint32
	PutUint32(i int, v uint32)
	Uint64(i int) uint64
	PutUint64(i int, v uint64)
	// Bytes returns the storage as a byte view in memory order.
	Bytes() []byte
	// Release frees storage owned by this value. Borrowed storage ignores it.
	Release() error
}

// heapStorage keeps bytes in a Go slice.
type heapStorage struct {
	b []byte
}

// NewHeapStorage wraps b without copying.
func NewHeapStorage(b []byte) Storage { return &heapStorage{b: b} }

func (h *heapStorage) Len() int                  { return len(h.b) }
func (h *heapStorage) Byte(i int) byte           { return h.b[i] }
func (h *heapStorage) SetByte(i int, v byte)     { h.b[i] = v }
func (h *heapStorage) Uint16(i int) uint16       { return binary.NativeEndian.Uint16(h.b[i:]) }
func (h *heapStorage) PutUint16(i int, v uint16) { binary.NativeEndian.PutUint16(h.b[i:], v) }
func (h *heapStorage) Uint32(i int) uint32       { return binary.NativeEndian.Uint32(h.b[i:]) }
func (h *heapStorage) PutUint32(i int, v uint32) { binary.NativeEndian.PutUint32(h.b[i:], v) }
func (h *heapStorage) Uint64(i int) uint64       { return binary.NativeEndian.Uint64(h.b[i:]) }
func (h *heapStorage) PutUint64(i int, v uint64) { binary.NativeEndian.PutUint64(h.b[i:], v) }
func (h *heapStorage) Bytes() []byte             { return h.b }

func (h *heapStorage) Release() error {
	h.b = nil
	return nil
}

// modelStorage keeps bytes in 64-bit words. Word-aligned 8-byte accesses
// go straight to the word; everything else uses a byte view over the
// same memory, so results are bit-identical to heapStorage.
type modelStorage struct {
	words []uint64
	view  []byte
}

// NewModelStorage wraps words without copying. size trims the byte view
// when the last word is only partly used.
func NewModelStorage(words []uint64, size int) Storage {
	m := &modelStorage{words: words}
	if len(words) > 0 {
		m.view = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), len(words)*8)[:size]
	}
	return m
}

// WordsFor returns the number of 64-bit words needed for size bytes.
func WordsFor(size int) int { return (size + 7) / 8 }

func (m *modelStorage) Len() int                  { return len(m.view) }
func (m *modelStorage) Byte(i int) byte           { return m.view[i] }
func (m *modelStorage) SetByte(i int, v byte)     { m.view[i] = v }
func (m *modelStorage) Uint16(i int) uint16       { return binary.NativeEndian.Uint16(m.view[i:]) }
func (m *modelStorage) PutUint16(i int, v uint16) { binary.NativeEndian.PutUint16(m.view[i:], v) }
func (m *modelStorage) Uint32(i int) uint32       { return binary.NativeEndian.Uint32(m.view[i:]) }
func (m *modelStorage) PutUint32(i int, v uint32) { binary.NativeEndian.PutUint32(m.view[i:], v) }
func (m *modelStorage) Bytes() []byte             { return m.view }

func (m *modelStorage) Uint64(i int) uint64 {
	if i&7 == 0 {
		return m.words[i>>3]
	}
	return binary.NativeEndian.Uint64(m.view[i:])
}

func (m *modelStorage) PutUint64(i int, v uint64) {
	if i&7 == 0 {
		m.words[i>>3] = v
		return
	}
	binary.NativeEndian.PutUint64(m.view[i:], v)
}

func (m *modelStorage) Release() error {
	m.words, m.view = nil, nil
	return nil
}

// nativeStorage keeps bytes outside the Go heap. When block is set the
// storage owns it and frees it on Release; otherwise it borrows a slice
// of a larger block owned by a pool.
type nativeStorage struct {
	b     []byte
	block *native.Block
}

// NewNativeStorage takes ownership of block.
func NewNativeStorage(block *native.Block) Storage {
	return &nativeStorage{b: block.Bytes(), block: block}
}

// NewBorrowedNativeStorage wraps a slice of native memory owned elsewhere.
func NewBorrowedNativeStorage(b []byte) Storage {
	return &nativeStorage{b: b}
}

func (n *nativeStorage) Len() int                  { return len(n.b) }
func (n *nativeStorage) Byte(i int) byte           { return n.b[i] }
func (n *nativeStorage) SetByte(i int, v byte)     { n.b[i] = v }
func (n *nativeStorage) Uint16(i int) uint16       { return binary.NativeEndian.Uint16(n.b[i:]) }
func (n *nativeStorage) PutUint16(i int, v uint16) { binary.NativeEndian.PutUint16(n.b[i:], v) }
func (n *nativeStorage) Uint32(i int) uint32       { return binary.NativeEndian.Uint32(n.b[i:]) }
func (n *nativeStorage) PutUint32(i int, v uint32) { binary.NativeEndian.PutUint32(n.b[i:], v) }
func (n *nativeStorage) Uint64(i int) uint64       { return binary.NativeEndian.Uint64(n.b[i:]) }
func (n *nativeStorage) PutUint64(i int, v uint64) { binary.NativeEndian.PutUint64(n.b[i:], v) }
func (n *nativeStorage) Bytes() []byte             { return n.b }

func (n *nativeStorage) Release() error {
	n.b = nil
	if n.block == nil {
		return nil
	}
	return n.block.Free()
}
