package engine

import (
	"reflect"
	"sync"

	"github.com/lixenwraith/asteroid-forge/noise"
	"github.com/lixenwraith/asteroid-forge/status"
)

// ResourceStore is a thread-safe container for global resources
// It allows systems to access shared services (sampler, metrics, audio)
// without coupling to the host
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

// NewResourceStore creates a new empty resource store
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or updates a resource in the store
// Pointer types are recommended so systems observe later mutation
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	t := reflect.TypeOf(resource)
	rs.resources[t] = resource
}

// GetResource retrieves a resource of type T from the store
// Returns the zero value of T and false if not found
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	var target T
	t := reflect.TypeOf(target)

	val, ok := rs.resources[t]
	if !ok {
		return target, false
	}

	return val.(T), true
}

// MustGetResource retrieves a resource or panics if missing
// Useful for resources that must exist (Sampler)
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		var target T
		panic("Required resource not found: " + reflect.TypeOf(target).String())
	}
	return res
}

// --- Core Resources ---

// SamplerResource holds the noise field shared by generation and shading
type SamplerResource struct {
	Sampler noise.Sampler
}

// StatusResource exposes the metrics registry to systems
type StatusResource struct {
	Registry *status.Registry
}

// AudioPlayer defines the minimal audio interface used by systems
type AudioPlayer interface {
	Play(cells int) bool
	ToggleMute() bool
	IsMuted() bool
}

// AudioResource wraps the audio player interface
type AudioResource struct {
	Player AudioPlayer
}

// Resource holds cached resource pointers for systems
type Resource struct {
	Sampler *SamplerResource
	Status  *StatusResource
}

// GetResourceStore populates Resource from the world's store
// Call once during system construction; optional resources (Audio) are looked up per use
func GetResourceStore(w *World) Resource {
	return Resource{
		Sampler: MustGetResource[*SamplerResource](w.Resources),
		Status:  MustGetResource[*StatusResource](w.Resources),
	}
}
