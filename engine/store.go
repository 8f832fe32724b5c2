package engine

import (
	"sync"

	"github.com/lixenwraith/asteroid-forge/core"
	"github.com/lixenwraith/asteroid-forge/parameter"
)

// Store is a sparse set of components of type T
// values and entities are dense and parallel; index maps an entity to its slot
type Store[T any] struct {
	mu       sync.RWMutex
	index    map[core.Entity]int
	entities []core.Entity
	values   []T
}

// NewStore creates an empty component store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index:    make(map[core.Entity]int),
		entities: make([]core.Entity, 0, parameter.StoreInitialCapacity),
		values:   make([]T, 0, parameter.StoreInitialCapacity),
	}
}

// SetComponent inserts or overwrites the component of e
func (s *Store[T]) SetComponent(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[e]; ok {
		s.values[i] = val
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, val)
}

// GetComponent returns a copy of the component of e
func (s *Store[T]) GetComponent(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// RemoveEntity drops the component of e; the last slot moves into the hole
func (s *Store[T]) RemoveEntity(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(e)
}

// RemoveBatch drops the components of every listed entity under one lock
func (s *Store[T]) RemoveBatch(entities []core.Entity) {
	if len(entities) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entities {
		s.removeLocked(e)
	}
}

func (s *Store[T]) removeLocked(e core.Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.values[i] = s.values[last]
		s.index[moved] = i
	}

	var zero T
	s.values[last] = zero
	s.entities = s.entities[:last]
	s.values = s.values[:last]
	delete(s.index, e)
}

// HasEntity reports whether e has this component
func (s *Store[T]) HasEntity(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[e]
	return ok
}

// GetAllEntities returns a copy of the entity list
// Order is unspecified; callers needing determinism sort the result
func (s *Store[T]) GetAllEntities() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// CountEntities returns the number of entities with this component
func (s *Store[T]) CountEntities() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// ClearAllComponents empties the store
func (s *Store[T]) ClearAllComponents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = make(map[core.Entity]int)
	s.entities = make([]core.Entity, 0, parameter.StoreInitialCapacity)
	s.values = make([]T, 0, parameter.StoreInitialCapacity)
}
