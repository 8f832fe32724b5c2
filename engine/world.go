package engine

import (
	"sync"

	"github.com/lixenwraith/asteroid-forge/core"
)

// System is an interface that all systems must implement
type System interface {
	Update()
	Priority() int // Lower values run first
}

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	// Global ResourceStore
	Resources *ResourceStore

	// Shading surface resources, keyed by handle
	Surfaces *SurfaceStore

	Components ComponentStore
	allStores  []AnyStore

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a new ECS world with all component stores initialized
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		Resources:    NewResourceStore(),
		Surfaces:     NewSurfaceStore(),
		systems:      make([]System, 0),
	}
	w.Components, w.allStores = newComponentStore()
	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	for _, store := range w.allStores {
		store.RemoveEntity(e)
	}
}

// DestroyBatch removes all components of many entities, one pass per store
func (w *World) DestroyBatch(entities []core.Entity) {
	for _, store := range w.allStores {
		store.RemoveBatch(entities)
	}
}

// HasAnyComponent checks if an entity has at least one component
func (w *World) HasAnyComponent(e core.Entity) bool {
	for _, store := range w.allStores {
		if store.HasEntity(e) {
			return true
		}
	}
	return false
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	for _, store := range w.allStores {
		store.ClearAllComponents()
	}
	w.Surfaces.Clear()
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
// Parameter mutation from other goroutines goes through here
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update runs all systems sequentially
func (w *World) Update() {
	w.RunSafe(func() {
		w.UpdateLocked()
	})
}

// UpdateLocked runs all systems assuming the caller already holds updateMutex
func (w *World) UpdateLocked() {
	for _, system := range w.Systems() {
		system.Update()
	}
}
