package buffer

import (
	"math"
	"testing"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/endian"
	"github.com/momentics/hioload-buf/fake"
	"github.com/momentics/hioload-buf/seg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAll writes one value of every type; 43 bytes in total.
func writeAll(t *testing.T, w api.Writable) {
	t.Helper()
	require.NoError(t, w.WriteInt8(-1))
	require.NoError(t, w.WriteUint8(200))
	require.NoError(t, w.WriteInt16(-2))
	require.NoError(t, w.WriteUint16(60000))
	require.NoError(t, w.WriteInt32(-3))
	require.NoError(t, w.WriteUint32(4000000000))
	require.NoError(t, w.WriteInt64(-4))
	require.NoError(t, w.WriteUint64(math.MaxUint64))
	require.NoError(t, w.WriteFloat32(0.5))
	require.NoError(t, w.WriteFloat64(-0.25))
}

func readAll(t *testing.T, r api.Readable) {
	t.Helper()
	i8, err := r.ReadInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(-1), i8)
	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u8)
	i16, err := r.ReadInt16()
	require.NoError(t, err)
	assert.Equal(t, int16(-2), i16)
	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(60000), u16)
	i32, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-3), i32)
	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(4000000000), u32)
	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-4), i64)
	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u64)
	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), f32)
	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, -0.25, f64)
}

const streamBytes = 1 + 1 + 2 + 2 + 4 + 4 + 8 + 8 + 4 + 8

func TestStreamBuffer_WriteFlipRead(t *testing.T) {
	for _, kind := range backends {
		for name, order := range orders {
			t.Run(kind.String()+"/"+name, func(t *testing.T) {
				b, err := NewStreamBuffer(newSegment(t, kind, 64), WithEndianness(order))
				require.NoError(t, err)
				assert.False(t, b.IsMutable())

				writeAll(t, b)
				assert.Equal(t, streamBytes, b.Position())
				require.NoError(t, b.FlipHere())
				assert.True(t, b.Flipped())
				assert.Equal(t, streamBytes, b.Limit())
				assert.Equal(t, 0, b.Position())

				readAll(t, b)
				assert.Equal(t, 0, b.Remaining())

				_, err = b.ReadInt8()
				assert.ErrorIs(t, err, api.ErrOverflow)

				b.Rewind()
				readAll(t, b)
			})
		}
	}
}

func TestStreamBuffer_DoubleFlipRejected(t *testing.T) {
	b, err := NewStreamBuffer(newSegment(t, api.KindBytes, 16))
	require.NoError(t, err)
	require.NoError(t, b.WriteInt32(7))
	require.NoError(t, b.Flip(4))

	err = b.Flip(4)
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrAlreadyFlipped)
	assert.ErrorIs(t, err, api.ErrIllegalState)

	assert.ErrorIs(t, b.WriteInt8(1), api.ErrIllegalState)
	assert.ErrorIs(t, b.Clear(), api.ErrIllegalState)
	assert.Equal(t, 4, b.Limit(), "rejected calls leave state alone")

	v, err := b.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
}

func TestStreamBuffer_FlipLimitRange(t *testing.T) {
	b, err := NewStreamBuffer(newSegment(t, api.KindModel, 16))
	require.NoError(t, err)
	assert.ErrorIs(t, b.Flip(17), api.ErrInvalidArgument)
	assert.ErrorIs(t, b.Flip(-1), api.ErrInvalidArgument)
	assert.False(t, b.Flipped(), "failed flip does not consume the transition")
	require.NoError(t, b.Flip(16))
}

func TestMutableStreamBuffer_Cycles(t *testing.T) {
	for _, kind := range backends {
		t.Run(kind.String(), func(t *testing.T) {
			b, err := NewMutableStreamBuffer(newSegment(t, kind, 64))
			require.NoError(t, err)
			assert.True(t, b.IsMutable())

			for cycle := 0; cycle < 3; cycle++ {
				require.NoError(t, b.Clear())
				assert.Equal(t, 64, b.Limit())
				writeAll(t, b)
				require.NoError(t, b.FlipHere())
				readAll(t, b)
				require.NoError(t, b.Flip(streamBytes), "repeated flip")
				readAll(t, b)
			}
		})
	}
}

func TestStreamBuffer_OverflowKeepsCursor(t *testing.T) {
	st := fake.NewStorage(10)
	b, err := NewMutableStreamBuffer(seg.New(st, api.KindBytes, nil), WithEndianness(endian.Native().Reverse()))
	require.NoError(t, err)

	require.NoError(t, b.WriteInt64(1))
	writes := st.Writes
	before := st.Snapshot()

	assert.ErrorIs(t, b.WriteInt32(2), api.ErrOverflow)
	assert.ErrorIs(t, b.WriteFloat64(2), api.ErrOverflow)
	assert.Equal(t, 8, b.Position())
	assert.Equal(t, writes, st.Writes)
	assert.Equal(t, before, st.Snapshot())

	require.NoError(t, b.WriteInt16(3))
	assert.Equal(t, 10, b.Position())
	assert.False(t, b.HasRemaining(1))

	require.NoError(t, b.Flip(10))
	_, err = b.ReadInt64()
	require.NoError(t, err)
	_, err = b.ReadInt32()
	assert.ErrorIs(t, err, api.ErrOverflow)
	assert.Equal(t, 8, b.Position())
}

func TestStreamBuffer_MarkAndPosition(t *testing.T) {
	b, err := NewMutableStreamBuffer(newSegment(t, api.KindBytes, 16))
	require.NoError(t, err)
	require.NoError(t, b.WriteInt32(1))
	require.NoError(t, b.WriteInt32(2))
	require.NoError(t, b.FlipHere())

	_, err = b.ReadInt32()
	require.NoError(t, err)
	b.MarkAt()
	assert.Equal(t, 4, b.Mark())

	v, err := b.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	b.ResetToMark()
	v, err = b.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	assert.ErrorIs(t, b.PositionAt(2), api.ErrInvalidArgument, "before mark")
	assert.ErrorIs(t, b.PositionAt(9), api.ErrInvalidArgument, "past limit")
	require.NoError(t, b.PositionAt(4))

	b.Rewind()
	assert.Equal(t, 0, b.Mark())
	assert.Equal(t, 8, b.Limit())
}

func TestNativeStreamBuffer(t *testing.T) {
	b, err := NewNativeStreamBuffer(64, WithEndianness(api.BigEndian))
	require.NoError(t, err)
	writeAll(t, b)
	require.NoError(t, b.FlipHere())
	readAll(t, b)
	require.NoError(t, b.Close())
	_, err = b.ReadInt8()
	assert.ErrorIs(t, err, api.ErrSegmentDisposed)
}

func BenchmarkStreamBuffer_WriteRead(b *testing.B) {
	buf, err := NewMutableStreamBuffer(newSegment(b, api.KindModel, 4096), WithEndianness(api.BigEndian))
	require.NoError(b, err)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Clear()
		for buf.HasRemaining(api.LongSize) {
			_ = buf.WriteUint64(uint64(i))
		}
		_ = buf.FlipHere()
		for buf.HasRemaining(api.LongSize) {
			_, _ = buf.ReadUint64()
		}
	}
}
