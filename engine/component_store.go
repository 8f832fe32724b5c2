package engine

import (
	"github.com/lixenwraith/asteroid-forge/component"
)

// ComponentStore provides cached pointer to typed component store
// Initialized once with the world; pointers remain valid for its lifetime
type ComponentStore struct {
	// Authored
	Asteroid *Store[component.AsteroidComponent]

	// Generated
	Shape    *Store[component.ShapeComponent]
	Children *Store[component.ChildrenComponent]
	Member   *Store[component.MemberComponent]
	Sprite   *Store[component.SpriteComponent]
	Surface  *Store[component.SurfaceComponent]
}

// newComponentStore creates every store and the lifecycle registry over them
func newComponentStore() (ComponentStore, []AnyStore) {
	cs := ComponentStore{
		Asteroid: NewStore[component.AsteroidComponent](),
		Shape:    NewStore[component.ShapeComponent](),
		Children: NewStore[component.ChildrenComponent](),
		Member:   NewStore[component.MemberComponent](),
		Sprite:   NewStore[component.SpriteComponent](),
		Surface:  NewStore[component.SurfaceComponent](),
	}
	all := []AnyStore{
		cs.Asteroid,
		cs.Shape,
		cs.Children,
		cs.Member,
		cs.Sprite,
		cs.Surface,
	}
	return cs, all
}
