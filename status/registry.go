package status

import "sync/atomic"

// Metric keys written by the regeneration pipeline
const (
	KeyRegenerations = "regen.count"
	KeyFailures      = "regen.failures"
	KeyIndeterminate = "regen.indeterminate"
	KeyCells         = "cells.live"
	KeySurfacesLive  = "surfaces.live"
	KeySurfacesTotal = "surfaces.allocated"
	KeyGenerateMs    = "regen.last_ms"
	KeyGenerateAvgMs = "regen.avg_ms"
	KeyLastError     = "regen.last_error"
)

// Registry groups the metric maps by value type
// Systems cache pointers at construction; Update loops write the atomics directly
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Snapshot is a point-in-time copy of every metric
type Snapshot struct {
	Ints    map[string]int64   `json:"ints"`
	Floats  map[string]float64 `json:"floats"`
	Strings map[string]string  `json:"strings"`
}

// Snapshot reads all metrics; values are individually atomic, not mutually consistent
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Ints:    Collect(r.Ints, func(v *atomic.Int64) int64 { return v.Load() }),
		Floats:  Collect(r.Floats, func(v *AtomicFloat) float64 { return v.Get() }),
		Strings: Collect(r.Strings, func(v *AtomicString) string { return v.Load() }),
	}
}
