// File: buffer/bounds.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Offset arithmetic shared by all buffers. Remaining space is
// limit - position; an access of width bytes at position succeeds iff
// position >= 0 and remaining >= width.

package buffer

import "github.com/momentics/hioload-buf/api"

func remaining(position, limit int) int { return limit - position }

func hasRemaining(position, limit, width int) bool {
	return position >= 0 && remaining(position, limit) >= width
}

// checkAccess validates segment state and range for one typed access.
func (b *base) checkAccess(position, width int) error {
	if b.seg.IsNull() {
		return api.ErrUnsupported
	}
	if !b.seg.IsOpen() {
		return api.ErrSegmentDisposed
	}
	if !hasRemaining(position, b.seg.Limit(), width) {
		return api.Wrap(api.ErrOverflow).
			WithContext("position", position).
			WithContext("width", width).
			WithContext("limit", b.seg.Limit())
	}
	return nil
}

// remainingAt returns the bytes between position and the limit.
func (b *base) remainingAt(position int) int { return remaining(position, b.seg.Limit()) }
