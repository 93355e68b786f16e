// Package pool
// Author: momentics <momentics@gmail.com>
//
// Segment pooling for hioload-buf.
// Implements fixed, arbitrary and single pools over heap, long-word and
// off-heap backing blocks, null managers for standalone segments, an
// unbounded heap manager and a size-class Manager with metrics and
// runtime configuration.
// See pool.go, manager.go and null.go for implementation details.
package pool
