package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge stored as bits
// Zero value reads 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores val
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the current value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Smooth folds val into an exponential moving average with weight alpha in (0,1]
// The first observation on a zero gauge is taken as is
func (f *AtomicFloat) Smooth(val, alpha float64) float64 {
	for {
		old := f.bits.Load()
		prev := math.Float64frombits(old)
		next := val
		if old != 0 {
			next = prev + alpha*(val-prev)
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
