package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindLowestAbove(t *testing.T) {
	tests := []struct {
		in   int
		want DataSize
	}{
		{-1, SizeUnknown},
		{0, Size32B},
		{1, Size32B},
		{32, Size32B},
		{33, Size64B},
		{64, Size64B},
		{4095, Size4K},
		{4096, Size4K},
		{4097, Size8K},
		{int(Size1G), Size1G},
		{int(Size1G) + 1, SizeUnknown},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, FindLowestAbove(tt.in))
		})
	}
}

func TestDataSize_String(t *testing.T) {
	assert.Equal(t, "32B", Size32B.String())
	assert.Equal(t, "4K", Size4K.String())
	assert.Equal(t, "2M", Size2M.String())
	assert.Equal(t, "1G", Size1G.String())
	assert.Equal(t, "unknown", SizeUnknown.String())
	assert.False(t, DataSize(48).Valid())
	assert.False(t, DataSize(16).Valid())
	assert.True(t, Size512K.Valid())
}

func TestEndianness(t *testing.T) {
	assert.Equal(t, LittleEndian, BigEndian.Reverse())
	assert.Equal(t, BigEndian, LittleEndian.Reverse())
	assert.True(t, BigEndian.IsBig())
	assert.True(t, LittleEndian.IsLittle())
	assert.Equal(t, "big-endian", BigEndian.String())
}

func TestError_FamilyAndReason(t *testing.T) {
	err := error(Wrap(ErrBelowMinSize).WithContext("size", 1))

	assert.True(t, errors.Is(err, ErrBelowMinSize))
	assert.True(t, errors.Is(err, ErrMemory), "reason errors match their family")
	assert.False(t, errors.Is(err, ErrAboveMaxSize))
	assert.False(t, errors.Is(err, ErrOverflow))
	assert.Contains(t, err.Error(), "size:1")

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, ErrCodeMemory, e.Code)
	assert.Equal(t, "below-min", e.Reason())
	assert.Empty(t, ErrBelowMinSize.Context, "sentinel untouched")

	wrapped := fmt.Errorf("allocate: %w", Wrap(ErrOverflow))
	assert.True(t, errors.Is(wrapped, ErrOverflow))
	assert.False(t, errors.Is(wrapped, ErrIllegalState))

	assert.True(t, errors.Is(ErrAlreadyFlipped, ErrIllegalState))
	assert.False(t, errors.Is(ErrIllegalState, ErrAlreadyFlipped), "family does not match a reason")
	assert.Equal(t, "illegal state", ErrCodeIllegalState.String())
}
