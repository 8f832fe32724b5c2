package engine

import (
	"github.com/lixenwraith/asteroid-forge/core"
)

// AnyStore provides type-erased operations for lifecycle management
// This interface allows World to manage all stores uniformly
// for operations like entity destruction without knowing the concrete type
type AnyStore interface {
	RemoveEntity(e core.Entity)
	RemoveBatch(entities []core.Entity)
	HasEntity(e core.Entity) bool
	GetAllEntities() []core.Entity
	CountEntities() int
	ClearAllComponents()
}
