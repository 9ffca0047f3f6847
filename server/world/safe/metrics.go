package safe

import (
	"sync"
)

// Counters holds aggregated counters of all searches in a single world.
type Counters struct {
	Searches  uint64
	Found     uint64
	Examined  uint64
	Queries   uint64
	CacheHits uint64
}

// NotFound returns the amount of searches that did not find a safe position.
func (c Counters) NotFound() uint64 {
	return c.Searches - c.Found
}

// Metrics tracks per-world search counters for observability.
type Metrics struct {
	mu     sync.Mutex
	worlds map[string]*Counters
}

// NewMetrics creates an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{worlds: make(map[string]*Counters)}
}

// Record adds the Stats of a single search in a world to the counters.
func (m *Metrics) Record(world string, found bool, s Stats) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.worlds[world]
	if !ok {
		c = &Counters{}
		m.worlds[world] = c
	}
	c.Searches++
	if found {
		c.Found++
	}
	c.Examined += uint64(s.Examined)
	c.Queries += uint64(s.Queries)
	c.CacheHits += uint64(s.CacheHits)
}

// Counters returns a copy of the counters of a world.
func (m *Metrics) Counters(world string) Counters {
	if m == nil {
		return Counters{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.worlds[world]; ok {
		return *c
	}
	return Counters{}
}
