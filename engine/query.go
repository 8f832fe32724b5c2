package engine

import (
	"slices"

	"github.com/lixenwraith/asteroid-forge/core"
)

// QueryBuilder provides a fluent interface for querying entities based on component intersection
// The query starts with the smallest store and filters through larger ones
type QueryBuilder struct {
	stores   []AnyStore
	executed bool
	results  []core.Entity
}

// Query creates a new QueryBuilder
//
// Example:
//
//	sprites := world.Query().
//	    With(world.Components.Sprite).
//	    With(world.Components.Member).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		stores: make([]AnyStore, 0, 4),
	}
}

// With adds a component store to the query filter
// Panics if called after Execute()
func (qb *QueryBuilder) With(store AnyStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, store)
	return qb
}

// Execute returns entities present in all stores, in ascending entity order
// Calling Execute() multiple times returns the cached result
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if len(qb.stores) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	slices.SortFunc(qb.stores, func(a, b AnyStore) int {
		return a.CountEntities() - b.CountEntities()
	})

	candidates := qb.stores[0].GetAllEntities()
	for _, store := range qb.stores[1:] {
		filtered := candidates[:0]
		for _, e := range candidates {
			if store.HasEntity(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			break
		}
	}

	slices.Sort(candidates)
	qb.results = candidates
	return qb.results
}
