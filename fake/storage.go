// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake storage and manager implementations for testing.
// Provides predictable, observable behavior for the seg and pool contracts.

package fake

import (
	"encoding/binary"

	"github.com/momentics/hioload-buf/seg"
)

// Storage is a heap seg.Storage that counts every mutation, so tests can
// prove a rejected access wrote nothing.
type Storage struct {
	data     []byte
	Writes   int
	Reads    int
	Released bool
}

// NewStorage creates a zeroed storage of size bytes.
func NewStorage(size int) *Storage {
	return &Storage{data: make([]byte, size)}
}

func (s *Storage) Len() int { return len(s.data) }

func (s *Storage) Byte(i int) byte {
	s.Reads++
	return s.data[i]
}

func (s *Storage) SetByte(i int, v byte) {
	s.Writes++
	s.data[i] = v
}

func (s *Storage) Uint16(i int) uint16 {
	s.Reads++
	return binary.NativeEndian.Uint16(s.data[i:])
}

func (s *Storage) PutUint16(i int, v uint16) {
	s.Writes++
	binary.NativeEndian.PutUint16(s.data[i:], v)
}

func (s *Storage) Uint32(i int) uint32 {
	s.Reads++
	return binary.NativeEndian.Uint32(s.data[i:])
}

func (s *Storage) PutUint32(i int, v uint32) {
	s.Writes++
	binary.NativeEndian.PutUint32(s.data[i:], v)
}

func (s *Storage) Uint64(i int) uint64 {
	s.Reads++
	return binary.NativeEndian.Uint64(s.data[i:])
}

func (s *Storage) PutUint64(i int, v uint64) {
	s.Writes++
	binary.NativeEndian.PutUint64(s.data[i:], v)
}

// Bytes exposes the raw view. Writes through it are not counted.
func (s *Storage) Bytes() []byte { return s.data }

// Snapshot returns a copy of the current content.
func (s *Storage) Snapshot() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

func (s *Storage) Release() error {
	s.Released = true
	return nil
}

var _ seg.Storage = (*Storage)(nil)
