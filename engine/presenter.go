package engine

import (
	"github.com/lixenwraith/asteroid-forge/component"
	"github.com/lixenwraith/asteroid-forge/core"
	"github.com/lixenwraith/asteroid-forge/shape"
)

// Primitive is one discrete cell visual
type Primitive struct {
	Position core.Vec3
	Size     float32
	Color    core.RGB
}

// Presenter receives generated artifacts for an anchor entity
// Both calls fully replace prior state for the anchor
type Presenter interface {
	ReplaceChildren(anchor core.Entity, primitives []Primitive)
	InstallSurface(anchor core.Entity, shading shape.ShadingVector, geom component.Geometry)
}

// WorldPresenter materializes presentation artifacts as child entities of the anchor
type WorldPresenter struct {
	world *World
}

// NewWorldPresenter creates a presenter writing into w
func NewWorldPresenter(w *World) *WorldPresenter {
	return &WorldPresenter{world: w}
}

// ReplaceChildren destroys the anchor's sprite children and spawns one per primitive
func (p *WorldPresenter) ReplaceChildren(anchor core.Entity, primitives []Primitive) {
	cs := p.world.Components
	children, _ := cs.Children.GetComponent(anchor)

	p.world.DestroyBatch(children.Sprites)

	sprites := make([]core.Entity, 0, len(primitives))
	for _, prim := range primitives {
		e := p.world.CreateEntity()
		cs.Sprite.SetComponent(e, component.SpriteComponent{
			Position: prim.Position,
			Size:     prim.Size,
			Color:    prim.Color,
		})
		cs.Member.SetComponent(e, component.MemberComponent{AnchorID: anchor})
		sprites = append(sprites, e)
	}

	children.Sprites = sprites
	cs.Children.SetComponent(anchor, children)
}

// InstallSurface allocates a new surface resource and binds it to a fresh child entity
// The previous binding is destroyed and its resource released
func (p *WorldPresenter) InstallSurface(anchor core.Entity, shading shape.ShadingVector, geom component.Geometry) {
	cs := p.world.Components
	children, _ := cs.Children.GetComponent(anchor)

	p.removeSurface(children.Surface)

	id := p.world.Surfaces.Add(shading, geom)
	e := p.world.CreateEntity()
	cs.Surface.SetComponent(e, component.SurfaceComponent{Resource: id, Geometry: geom})
	cs.Member.SetComponent(e, component.MemberComponent{AnchorID: anchor})

	children.Surface = e
	cs.Children.SetComponent(anchor, children)
}

// Clear destroys every generated child of the anchor
func (p *WorldPresenter) Clear(anchor core.Entity) {
	cs := p.world.Components
	children, ok := cs.Children.GetComponent(anchor)
	if !ok {
		return
	}
	p.world.DestroyBatch(children.Sprites)
	p.removeSurface(children.Surface)
	cs.Children.RemoveEntity(anchor)
}

func (p *WorldPresenter) removeSurface(e core.Entity) {
	if e == 0 {
		return
	}
	if surf, ok := p.world.Components.Surface.GetComponent(e); ok {
		p.world.Surfaces.Release(surf.Resource)
	}
	p.world.DestroyEntity(e)
}
