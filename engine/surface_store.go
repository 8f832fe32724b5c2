package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/asteroid-forge/component"
	"github.com/lixenwraith/asteroid-forge/shape"
)

// Surface is an opaque shading resource built from the four shading floats
type Surface struct {
	ID       uuid.UUID
	Shading  shape.ShadingVector
	Geometry component.Geometry
}

// SurfaceStore holds shading surface resources keyed by handle
// Every Add allocates a new resource; nothing is updated in place
type SurfaceStore struct {
	mu        sync.RWMutex
	surfaces  map[uuid.UUID]*Surface
	allocated uint64
}

// NewSurfaceStore creates an empty surface store
func NewSurfaceStore() *SurfaceStore {
	return &SurfaceStore{
		surfaces: make(map[uuid.UUID]*Surface),
	}
}

// Add allocates a new surface resource and returns its handle
func (s *SurfaceStore) Add(shading shape.ShadingVector, geom component.Geometry) uuid.UUID {
	surf := &Surface{
		ID:       uuid.New(),
		Shading:  shading,
		Geometry: geom,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.surfaces[surf.ID] = surf
	s.allocated++
	return surf.ID
}

// Get returns the surface for a handle
func (s *SurfaceStore) Get(id uuid.UUID) (*Surface, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	surf, ok := s.surfaces[id]
	return surf, ok
}

// Release drops an unreferenced surface; unknown handles are ignored
func (s *SurfaceStore) Release(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.surfaces, id)
}

// Count returns the number of live surfaces
func (s *SurfaceStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.surfaces)
}

// Allocated returns the number of surfaces ever added
func (s *SurfaceStore) Allocated() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allocated
}

// Clear drops every surface
func (s *SurfaceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surfaces = make(map[uuid.UUID]*Surface)
}
