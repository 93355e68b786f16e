// File: pool/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool configuration with defaults and validation.

package pool

import (
	"log/slog"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/control"
	"github.com/momentics/hioload-buf/internal/native"
)

// Config describes one pool's storage backend and size bounds.
// Sizes are power-of-two classes: MinSize <= MaxSize <= TotalSize.
type Config struct {
	Name          string                   // Prefix for metric keys and log attributes
	Kind          api.Kind                 // Storage backend: bytes, memory or model
	TotalSize     api.DataSize             // Size of the reserved backing block
	MinSize       api.DataSize             // Smallest request accepted
	MaxSize       api.DataSize             // Largest request accepted
	WipeOnRecycle bool                     // Zero segments when they return to the free list
	Logger        *slog.Logger             // Defaults to slog.Default()
	Metrics       *control.MetricsRegistry // Optional counters sink
	Allocator     native.Allocator         // Off-heap allocator for KindMemory, defaults to native.Default()
}

// DefaultConfig returns a heap-backed arbitrary pool of 1M serving
// requests from 32B to 64K.
func DefaultConfig() *Config {
	return &Config{
		Name:          "pool",
		Kind:          api.KindBytes,
		TotalSize:     api.Size1M,
		MinSize:       api.Size32B,
		MaxSize:       api.Size64K,
		WipeOnRecycle: false,
		Logger:        slog.Default(),
	}
}

// Validate checks the size relations and the storage kind.
func (c *Config) Validate() error {
	switch c.Kind {
	case api.KindBytes, api.KindMemory, api.KindModel:
	default:
		return api.Wrap(api.ErrInvalidArgument).WithContext("kind", c.Kind.String())
	}
	sizes := []struct {
		name string
		v    api.DataSize
	}{
		{"total", c.TotalSize},
		{"min", c.MinSize},
		{"max", c.MaxSize},
	}
	for _, sz := range sizes {
		if !sz.v.Valid() {
			return api.Wrap(api.ErrInvalidArgument).WithContext(sz.name, int(sz.v))
		}
	}
	if c.MaxSize < c.MinSize {
		return api.Wrap(api.ErrInvalidArgument).
			WithContext("min", c.MinSize.String()).
			WithContext("max", c.MaxSize.String())
	}
	if c.TotalSize < c.MaxSize {
		return api.Wrap(api.ErrInvalidArgument).
			WithContext("total", c.TotalSize.String()).
			WithContext("max", c.MaxSize.String())
	}
	return nil
}

// withDefaults fills the optional collaborators.
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Allocator == nil {
		c.Allocator = native.Default()
	}
	if c.Name == "" {
		c.Name = "pool"
	}
	return c
}
