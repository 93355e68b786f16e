// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration control and debug introspection layer
// for hioload-buf pools.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads with synchronous reload listeners
//   - Metrics counters and snapshots
//   - Debug hooks and platform probe registration
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
