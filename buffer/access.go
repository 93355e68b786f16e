// File: buffer/access.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Raw typed access at a validated position with byte-order conversion.

package buffer

import (
	"math"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/endian"
)

func (b *base) get8(pos int) (uint8, error) {
	if err := b.checkAccess(pos, api.ByteSize); err != nil {
		return 0, err
	}
	v, err := b.seg.GetInt8(pos)
	return uint8(v), err
}

func (b *base) get16(pos int) (uint16, error) {
	if err := b.checkAccess(pos, api.ShortSize); err != nil {
		return 0, err
	}
	v, err := b.seg.GetInt16(pos)
	if err != nil {
		return 0, err
	}
	if b.reverse {
		return endian.Swap16(uint16(v)), nil
	}
	return uint16(v), nil
}

func (b *base) get32(pos int) (uint32, error) {
	if err := b.checkAccess(pos, api.IntSize); err != nil {
		return 0, err
	}
	v, err := b.seg.GetInt32(pos)
	if err != nil {
		return 0, err
	}
	if b.reverse {
		return endian.Swap32(uint32(v)), nil
	}
	return uint32(v), nil
}

func (b *base) get64(pos int) (uint64, error) {
	if err := b.checkAccess(pos, api.LongSize); err != nil {
		return 0, err
	}
	v, err := b.seg.GetInt64(pos)
	if err != nil {
		return 0, err
	}
	if b.reverse {
		return endian.Swap64(uint64(v)), nil
	}
	return uint64(v), nil
}

func (b *base) put8(pos int, v uint8) error {
	if err := b.checkAccess(pos, api.ByteSize); err != nil {
		return err
	}
	return b.seg.SetInt8(pos, int8(v))
}

func (b *base) put16(pos int, v uint16) error {
	if err := b.checkAccess(pos, api.ShortSize); err != nil {
		return err
	}
	if b.reverse {
		v = endian.Swap16(v)
	}
	return b.seg.SetInt16(pos, int16(v))
}

func (b *base) put32(pos int, v uint32) error {
	if err := b.checkAccess(pos, api.IntSize); err != nil {
		return err
	}
	if b.reverse {
		v = endian.Swap32(v)
	}
	return b.seg.SetInt32(pos, int32(v))
}

func (b *base) put64(pos int, v uint64) error {
	if err := b.checkAccess(pos, api.LongSize); err != nil {
		return err
	}
	if b.reverse {
		v = endian.Swap64(v)
	}
	return b.seg.SetInt64(pos, int64(v))
}

// Float helpers go through the raw bit pattern so NaN payloads survive.

func (b *base) getF32(pos int) (float32, error) {
	v, err := b.get32(pos)
	return math.Float32frombits(v), err
}

func (b *base) getF64(pos int) (float64, error) {
	v, err := b.get64(pos)
	return math.Float64frombits(v), err
}

func (b *base) putF32(pos int, v float32) error { return b.put32(pos, math.Float32bits(v)) }
func (b *base) putF64(pos int, v float64) error { return b.put64(pos, math.Float64bits(v)) }
