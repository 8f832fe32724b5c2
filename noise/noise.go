// Package noise provides the seeded scalar fields sampled by shape generation
package noise

import (
	"sync"

	"github.com/ojrac/opensimplex-go"
)

// Sampler is a deterministic 2D scalar field selected by seed
// Output is approximately in [-1, 1] and continuous in (x, y)
// Implementations must be safe for concurrent use
type Sampler interface {
	Sample(x, y, seed float32) float32
}

// SamplerFunc adapts a plain function to Sampler
type SamplerFunc func(x, y, seed float32) float32

// Sample implements Sampler
func (f SamplerFunc) Sample(x, y, seed float32) float32 {
	return f(x, y, seed)
}

// Constant returns a sampler that ignores its inputs
func Constant(v float32) Sampler {
	return SamplerFunc(func(_, _, _ float32) float32 { return v })
}

// Simplex samples OpenSimplex noise, one generator per seed
// Generators are built lazily and kept for the sampler's lifetime
type Simplex struct {
	mu     sync.RWMutex
	fields map[int64]opensimplex.Noise32
}

// NewSimplex creates an empty simplex sampler
func NewSimplex() *Simplex {
	return &Simplex{
		fields: make(map[int64]opensimplex.Noise32),
	}
}

// Sample implements Sampler
func (s *Simplex) Sample(x, y, seed float32) float32 {
	return s.field(int64(seed)).Eval2(x, y)
}

// Seeds returns the number of generators built so far
func (s *Simplex) Seeds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}

func (s *Simplex) field(seed int64) opensimplex.Noise32 {
	s.mu.RLock()
	n, ok := s.fields[seed]
	s.mu.RUnlock()
	if ok {
		return n
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another caller may have built it between locks
	if n, ok = s.fields[seed]; ok {
		return n
	}
	n = opensimplex.New32(seed)
	s.fields[seed] = n
	return n
}
