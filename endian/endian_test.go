package endian

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/momentics/hioload-buf/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwap_KnownValues(t *testing.T) {
	assert.Equal(t, uint16(0x3412), Swap16(0x1234))
	assert.Equal(t, uint32(0x78563412), Swap32(0x12345678))
	assert.Equal(t, uint64(0x8877665544332211), Swap64(0x1122334455667788))
	assert.Equal(t, int16(-1), SwapInt16(-1))
	assert.Equal(t, int32(0x01000000), SwapInt32(1))
}

func TestSwap_Involution(t *testing.T) {
	for _, v := range []uint16{0, 1, 0x00ff, 0xff00, math.MaxUint16, 0x8000, 0x7fff} {
		assert.Equal(t, v, Swap16(Swap16(v)), "uint16 %#x", v)
	}
	for _, v := range []int16{0, -1, math.MinInt16, math.MaxInt16} {
		assert.Equal(t, v, SwapInt16(SwapInt16(v)), "int16 %d", v)
	}
	for _, v := range []uint32{0, 1, math.MaxUint32, 0xcafebabe} {
		assert.Equal(t, v, Swap32(Swap32(v)), "uint32 %#x", v)
	}
	for _, v := range []int32{0, -1, math.MinInt32, math.MaxInt32} {
		assert.Equal(t, v, SwapInt32(SwapInt32(v)), "int32 %d", v)
	}
	for _, v := range []uint64{0, 1, math.MaxUint64, 0x1122334455667788} {
		assert.Equal(t, v, Swap64(Swap64(v)), "uint64 %#x", v)
	}
	for _, v := range []int64{0, -1, math.MinInt64, math.MaxInt64} {
		assert.Equal(t, v, SwapInt64(SwapInt64(v)), "int64 %d", v)
	}
}

func TestSwap_FloatRawBits(t *testing.T) {
	floats := []float32{0, -0, 1.5, math.MaxFloat32, math.SmallestNonzeroFloat32,
		float32(math.Inf(1)), float32(math.Inf(-1)), float32(math.NaN()),
		math.Float32frombits(0x7fc00001)}
	for _, f := range floats {
		assert.Equal(t, math.Float32bits(f), math.Float32bits(SwapFloat32(SwapFloat32(f))))
	}

	doubles := []float64{0, math.Copysign(0, -1), 1.5, math.MaxFloat64, math.SmallestNonzeroFloat64,
		math.Inf(1), math.Inf(-1), math.NaN(), math.Float64frombits(0x7ff8000000000001)}
	for _, d := range doubles {
		assert.Equal(t, math.Float64bits(d), math.Float64bits(SwapFloat64(SwapFloat64(d))))
	}
}

func TestNative_MatchesMemoryLayout(t *testing.T) {
	var probe uint16 = 0x0102
	first := *(*byte)(unsafe.Pointer(&probe))
	if first == 0x01 {
		require.Equal(t, api.BigEndian, Native())
	} else {
		require.Equal(t, api.LittleEndian, Native())
	}
	assert.False(t, IsReversed(Native()))
	assert.True(t, IsReversed(Native().Reverse()))

	buf := make([]byte, 4)
	binary.NativeEndian.PutUint32(buf, 0xdeadbeef)
	if Native() == api.LittleEndian {
		assert.Equal(t, uint32(0xdeadbeef), binary.LittleEndian.Uint32(buf))
	} else {
		assert.Equal(t, uint32(0xdeadbeef), binary.BigEndian.Uint32(buf))
	}
}
