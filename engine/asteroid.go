package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/asteroid-forge/component"
	"github.com/lixenwraith/asteroid-forge/core"
	"github.com/lixenwraith/asteroid-forge/shape"
)

// ErrNoAsteroid is returned when an entity carries no AsteroidComponent
var ErrNoAsteroid = errors.New("entity is not an asteroid")

// SpawnAsteroid creates an asteroid instance in the Uninitialized state
// The first world update after spawn generates it
func SpawnAsteroid(w *World, name string, p shape.Params) core.Entity {
	e := w.CreateEntity()
	w.Components.Asteroid.SetComponent(e, component.AsteroidComponent{
		Name:    name,
		Params:  p,
		Version: 1,
	})
	return e
}

// SetAsteroidParams replaces the parameters of an instance as one change event
// Value-equal parameters are not a change: the version is returned unchanged
func SetAsteroidParams(w *World, e core.Entity, p shape.Params) (uint64, error) {
	ast, ok := w.Components.Asteroid.GetComponent(e)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNoAsteroid, e)
	}
	if ast.Params.Equal(p) {
		return ast.Version, nil
	}
	ast.Params = p
	ast.Version++
	w.Components.Asteroid.SetComponent(e, ast)
	return ast.Version, nil
}

// PatchAsteroidParams merges a subset of parameters into the instance
func PatchAsteroidParams(w *World, e core.Entity, patch shape.Patch) (uint64, error) {
	ast, ok := w.Components.Asteroid.GetComponent(e)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNoAsteroid, e)
	}
	return SetAsteroidParams(w, e, patch.Apply(ast.Params))
}

// DestroyAsteroid removes the instance, its generation and all its presentation artifacts
func DestroyAsteroid(w *World, e core.Entity) error {
	if !w.Components.Asteroid.HasEntity(e) {
		return fmt.Errorf("%w: %d", ErrNoAsteroid, e)
	}
	NewWorldPresenter(w).Clear(e)
	w.DestroyEntity(e)
	return nil
}

// Asteroids returns all asteroid instances in ascending entity order
func Asteroids(w *World) []core.Entity {
	return w.Query().With(w.Components.Asteroid).Execute()
}

// ChildSprites returns the current sprite primitives of an instance in spawn order
func ChildSprites(w *World, anchor core.Entity) []component.SpriteComponent {
	children, ok := w.Components.Children.GetComponent(anchor)
	if !ok {
		return nil
	}
	sprites := make([]component.SpriteComponent, 0, len(children.Sprites))
	for _, e := range children.Sprites {
		if s, ok := w.Components.Sprite.GetComponent(e); ok {
			sprites = append(sprites, s)
		}
	}
	return sprites
}

// ChildSurface returns the shading surface currently bound to an instance
func ChildSurface(w *World, anchor core.Entity) (*Surface, bool) {
	children, ok := w.Components.Children.GetComponent(anchor)
	if !ok || children.Surface == 0 {
		return nil, false
	}
	binding, ok := w.Components.Surface.GetComponent(children.Surface)
	if !ok {
		return nil, false
	}
	return w.Surfaces.Get(binding.Resource)
}
