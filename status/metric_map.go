package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap maps metric keys to stable pointers of T
// Writers cache the pointer once; access through it needs no lock
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the pointer for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr := m.items[key]
	m.mu.RUnlock()
	if ptr != nil {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr = m.items[key]; ptr == nil {
		ptr = new(T)
		m.items[key] = ptr
	}
	return ptr
}

// Keys returns the registered keys in sorted order
func (m *MetricMap[T]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.items))
}

// Collect reads every metric of m through read into a plain map
func Collect[T, V any](m *MetricMap[T], read func(*T) V) map[string]V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]V, len(m.items))
	for k, ptr := range m.items {
		out[k] = read(ptr)
	}
	return out
}
