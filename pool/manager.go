// File: pool/manager.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Size-class manager: routes each request to a lazily created fixed pool
// for its power-of-two class, with metrics, debug probes and runtime
// configuration shared by all class pools.

package pool

import (
	"log/slog"
	"sync"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/control"
	"github.com/momentics/hioload-buf/seg"
)

// Runtime configuration keys understood by Manager.SetConfig.
const (
	KeyWipeOnRecycle = "pool.wipeOnRecycle"
)

// Manager keeps one fixed pool per size class. Each class pool reserves
// cfg.TotalSize bytes; requests must lie within [cfg.MinSize, cfg.MaxSize].
// Manager methods are safe for concurrent use; the segments it hands out
// are not.
type Manager struct {
	mu       sync.RWMutex
	cfg      Config
	pools    map[api.DataSize]*Pool
	disposed bool

	log     *slog.Logger
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes
	store   *control.ConfigStore
}

// NewManager validates cfg and prepares an empty manager.
func NewManager(cfg Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if cfg.Metrics == nil {
		cfg.Metrics = control.NewMetricsRegistry()
	}

	m := &Manager{
		cfg:     cfg,
		pools:   make(map[api.DataSize]*Pool),
		log:     cfg.Logger.With("manager", cfg.Name, "kind", cfg.Kind.String()),
		metrics: cfg.Metrics,
		probes:  control.NewDebugProbes(),
		store:   control.NewConfigStore(),
	}
	m.store.SetConfig(map[string]any{KeyWipeOnRecycle: cfg.WipeOnRecycle})
	m.store.OnReload(m.applyConfig)

	control.RegisterPlatformProbes(m.probes)
	m.probes.RegisterProbe("pool.classes", func() any {
		m.mu.RLock()
		defer m.mu.RUnlock()
		out := make([]string, 0, len(m.pools))
		for class := range m.pools {
			out = append(out, class.String())
		}
		return out
	})
	m.probes.RegisterProbe("pool.stats", func() any { return m.Stats() })
	return m, nil
}

// getOrCreatePool returns the pool for class, creating it on first use.
func (m *Manager) getOrCreatePool(class api.DataSize) (*Pool, error) {
	m.mu.RLock()
	p, ok := m.pools[class]
	m.mu.RUnlock()
	if ok {
		return p, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.pools[class]; ok {
		return p, nil
	}
	cfg := m.cfg
	cfg.Name = m.cfg.Name + "." + class.String()
	cfg.MinSize, cfg.MaxSize = class, class
	cfg.WipeOnRecycle = m.store.GetBool(KeyWipeOnRecycle, m.cfg.WipeOnRecycle)
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	m.pools[class] = p
	m.log.Debug("class pool created", "class", class.String())
	return p, nil
}

// Allocate returns a segment from the pool of the smallest class holding size.
func (m *Manager) Allocate(size int) (*seg.Segment, error) {
	if m.isDisposed() {
		return nil, api.ErrPoolDisposed
	}
	if size < m.cfg.MinSize.Int() {
		return nil, api.Wrap(api.ErrBelowMinSize).WithContext("size", size).WithContext("min", m.cfg.MinSize.Int())
	}
	if size > m.cfg.MaxSize.Int() {
		return nil, api.Wrap(api.ErrAboveMaxSize).WithContext("size", size).WithContext("max", m.cfg.MaxSize.Int())
	}
	p, err := m.getOrCreatePool(api.FindLowestAbove(size))
	if err != nil {
		return nil, err
	}
	return p.Allocate(size)
}

// AllocateDefault allocates a segment of SegmentSize.
func (m *Manager) AllocateDefault() (*seg.Segment, error) {
	return m.Allocate(m.SegmentSize())
}

// Recycle hands s back to the class pool that carved it.
func (m *Manager) Recycle(s *seg.Segment) error {
	if s == nil {
		return api.Wrap(api.ErrInvalidArgument).WithContext("segment", "nil")
	}
	if m.isDisposed() {
		return api.ErrPoolDisposed
	}
	m.mu.RLock()
	p, ok := m.pools[s.Class()]
	m.mu.RUnlock()
	if !ok || s.Owner() != seg.Owner(p) {
		return api.Wrap(api.ErrNotOwned).WithContext("size", s.Size())
	}
	return p.Recycle(s)
}

func (m *Manager) isDisposed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disposed
}

// Dispose releases every class pool.
func (m *Manager) Dispose() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return nil
	}
	m.disposed = true
	var first error
	for class, p := range m.pools {
		if err := p.Dispose(); err != nil && first == nil {
			first = err
		}
		delete(m.pools, class)
	}
	m.log.Debug("manager disposed")
	return first
}

// SetConfig applies runtime configuration to every class pool.
func (m *Manager) SetConfig(values map[string]any) {
	m.store.SetConfig(values)
}

func (m *Manager) applyConfig(changed map[string]any) {
	v, ok := changed[KeyWipeOnRecycle].(bool)
	if !ok {
		return
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.pools {
		p.SetWipeOnRecycle(v)
	}
	m.log.Debug("config applied", KeyWipeOnRecycle, v)
}

// Pool returns the class pool serving size, if it exists yet.
func (m *Manager) Pool(size int) (*Pool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pools[api.FindLowestAbove(size)]
	return p, ok
}

// Stats sums the counters of all class pools.
func (m *Manager) Stats() api.PoolStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out api.PoolStats
	for _, p := range m.pools {
		st := p.Stats()
		out.TotalAlloc += st.TotalAlloc
		out.TotalRecycle += st.TotalRecycle
		out.InUse += st.InUse
		out.Reserved += st.Reserved
		out.Capacity += st.Capacity
	}
	return out
}

// Snapshot returns metrics, probe output and runtime config.
func (m *Manager) Snapshot() map[string]any {
	return map[string]any{
		"metrics": m.metrics.GetSnapshot(),
		"probes":  m.probes.DumpState(),
		"config":  m.store.GetSnapshot(),
	}
}

// Metrics exposes the shared registry.
func (m *Manager) Metrics() *control.MetricsRegistry { return m.metrics }

func (m *Manager) IsNull() bool     { return false }
func (m *Manager) Kind() api.Kind   { return m.cfg.Kind }
func (m *Manager) SegmentSize() int { return m.cfg.MinSize.Int() }

var _ MemoryManager = (*Manager)(nil)
