package buffer

import (
	"errors"
	"math"
	"testing"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/fake"
	"github.com/momentics/hioload-buf/internal/native"
	"github.com/momentics/hioload-buf/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkArray[T Element](t *testing.T, values []T) {
	t.Helper()
	for _, kind := range backends {
		for name, order := range orders {
			t.Run(kind.String()+"/"+name, func(t *testing.T) {
				a, err := NewArrayBuffer[T](newSegment(t, kind, 64), WithEndianness(order))
				require.NoError(t, err)
				require.Equal(t, 64/a.Width(), a.Len())
				assert.Equal(t, a.Len(), a.Cap())

				for i, v := range values {
					require.NoError(t, a.SetAt(i, v))
				}
				for i, v := range values {
					got, err := a.At(i)
					require.NoError(t, err)
					assert.Equal(t, v, got, "index %d", i)
				}

				_, err = a.At(a.Len())
				assert.ErrorIs(t, err, api.ErrOverflow)
				assert.ErrorIs(t, a.SetAt(-1, values[0]), api.ErrOverflow)
			})
		}
	}
}

func TestArrayBuffer_AllElementTypes(t *testing.T) {
	t.Run("int8", func(t *testing.T) { checkArray(t, []int8{math.MinInt8, -1, 0, math.MaxInt8}) })
	t.Run("uint8", func(t *testing.T) { checkArray(t, []uint8{0, 1, 200, math.MaxUint8}) })
	t.Run("int16", func(t *testing.T) { checkArray(t, []int16{math.MinInt16, -2, math.MaxInt16}) })
	t.Run("uint16", func(t *testing.T) { checkArray(t, []uint16{0xbeef, 1, math.MaxUint16}) })
	t.Run("int32", func(t *testing.T) { checkArray(t, []int32{math.MinInt32, -3, math.MaxInt32}) })
	t.Run("uint32", func(t *testing.T) { checkArray(t, []uint32{0xdeadbeef, 4000000000}) })
	t.Run("int64", func(t *testing.T) { checkArray(t, []int64{math.MinInt64, -4, math.MaxInt64}) })
	t.Run("uint64", func(t *testing.T) { checkArray(t, []uint64{math.MaxUint64, 1 << 63}) })
	t.Run("float32", func(t *testing.T) { checkArray(t, []float32{-1.25, 0.5, math.MaxFloat32}) })
	t.Run("float64", func(t *testing.T) { checkArray(t, []float64{math.Pi, -math.MaxFloat64, 0}) })
}

func TestArrayBuffer_LenFollowsLimit(t *testing.T) {
	a, err := NewArrayBuffer[int32](newSegment(t, api.KindBytes, 16), WithLimit(11))
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len(), "partial trailing element is not counted")
	assert.Equal(t, 4, a.Cap())
	require.NoError(t, a.SetAt(1, 9))
	assert.ErrorIs(t, a.SetAt(2, 9), api.ErrOverflow)
}

func TestArrayBuffer_All(t *testing.T) {
	a, err := NewArray[uint16](4)
	require.NoError(t, err)
	defer a.Close()
	for i := 0; i < a.Len(); i++ {
		require.NoError(t, a.SetAt(i, uint16(i*10)))
	}

	var got []uint16
	for i, v := range a.All() {
		assert.Equal(t, uint16(i*10), v)
		got = append(got, v)
	}
	assert.Equal(t, []uint16{0, 10, 20, 30}, got)

	for i := range a.All() {
		if i == 1 {
			break
		}
	}
}

func TestArrayView_SharesSegment(t *testing.T) {
	b, err := NewMutableDataBuffer(newSegment(t, api.KindModel, 16), WithEndianness(api.BigEndian))
	require.NoError(t, err)
	require.NoError(t, b.SetInt32(4, 0x01020304))

	ints, err := ArrayView[int32](b)
	require.NoError(t, err)
	assert.True(t, ints.IsView())
	assert.Equal(t, api.BigEndian, ints.Endianness())
	v, err := ints.At(1)
	require.NoError(t, err)
	assert.Equal(t, int32(0x01020304), v)

	bytes, err := ArrayView[uint8](b)
	require.NoError(t, err)
	first, err := bytes.At(4)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), first, "big-endian high byte first")

	require.NoError(t, ints.Close())
	assert.True(t, b.Segment().IsOpen(), "closing a view keeps the segment")

	_, err = ArrayView[int8](nil)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestArrayBuffer_Closed(t *testing.T) {
	a, err := NewArray[float64](2)
	require.NoError(t, err)
	require.NoError(t, a.Close())
	_, err = a.At(0)
	assert.ErrorIs(t, err, api.ErrSegmentDisposed)
	assert.ErrorIs(t, a.SetAt(0, 1), api.ErrSegmentDisposed)
}

func TestBuffer_CopyInto(t *testing.T) {
	for _, srcKind := range backends {
		for _, dstKind := range backends {
			t.Run(srcKind.String()+"->"+dstKind.String(), func(t *testing.T) {
				src, err := NewMutableDataBuffer(newSegment(t, srcKind, 16))
				require.NoError(t, err)
				dst, err := NewMutableDataBuffer(newSegment(t, dstKind, 16))
				require.NoError(t, err)
				require.NoError(t, dst.Reset(16, true))
				for i := 0; i < 16; i++ {
					require.NoError(t, src.SetUint8(i, uint8(i+1)))
				}

				require.NoError(t, src.CopyInto(dst, 2, 4, 12))
				want := make([]byte, 16)
				copy(want[2:10], []byte{5, 6, 7, 8, 9, 10, 11, 12})
				assert.Equal(t, want, dst.Segment().Copy())
			})
		}
	}
}

func TestBuffer_CopyIntoRespectsLimits(t *testing.T) {
	src, err := NewMutableDataBuffer(newSegment(t, api.KindBytes, 16), WithLimit(8))
	require.NoError(t, err)
	dst, err := NewMutableDataBuffer(newSegment(t, api.KindMemory, 16), WithLimit(4))
	require.NoError(t, err)
	require.NoError(t, dst.Reset(4, true))
	before := dst.Segment().Copy()

	assert.ErrorIs(t, src.CopyInto(dst, 0, 4, 9), api.ErrOverflow, "source past limit")
	assert.ErrorIs(t, src.CopyInto(dst, 1, 0, 4), api.ErrOverflow, "destination past limit")
	assert.ErrorIs(t, src.CopyInto(dst, -1, 0, 1), api.ErrOverflow)
	assert.ErrorIs(t, src.CopyInto(dst, 0, 3, 2), api.ErrInvalidArgument)
	assert.ErrorIs(t, src.CopyInto(nil, 0, 0, 1), api.ErrInvalidArgument)
	assert.Equal(t, before, dst.Segment().Copy(), "failed copies move nothing")

	require.NoError(t, src.CopyInto(dst, 0, 4, 8))
	require.NoError(t, src.CopyInto(dst, 4, 8, 8), "empty range at the limit")
}

func TestWithNative(t *testing.T) {
	before := native.Outstanding()
	var seen *MutableDataBuffer
	err := WithNative(64, func(b *MutableDataBuffer) error {
		seen = b
		assert.True(t, b.IsMem())
		assert.Equal(t, before+1, native.Outstanding())
		return b.SetInt64(56, -1)
	}, WithEndianness(api.LittleEndian))
	require.NoError(t, err)
	assert.Equal(t, before, native.Outstanding())
	_, err = seen.GetInt64(56)
	assert.ErrorIs(t, err, api.ErrSegmentDisposed)

	boom := errors.New("boom")
	err = WithNative(8, func(*MutableDataBuffer) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, native.Outstanding())

	assert.ErrorIs(t, WithNative(0, func(*MutableDataBuffer) error { return nil }), api.ErrInvalidArgument)
}

func TestWithPool(t *testing.T) {
	m := fake.NewManager()
	err := WithPool(m, 32, func(b *MutableDataBuffer) error {
		return b.SetInt32(28, 5)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.Stats().TotalRecycle)

	p, err := pool.NewSingleBytesPool(api.Size32B)
	require.NoError(t, err)
	defer p.Dispose()
	for i := 0; i < 3; i++ {
		require.NoError(t, WithPool(p, 32, func(*MutableDataBuffer) error { return nil }))
	}
	assert.Equal(t, int64(0), p.Stats().InUse)
}
