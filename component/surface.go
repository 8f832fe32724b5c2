package component

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/asteroid-forge/core"
)

// Geometry is the quad a shading surface covers, centered on Position
type Geometry struct {
	Width, Height float32
	Position      core.Vec3
}

// SurfaceComponent binds an entity to a shading surface resource
type SurfaceComponent struct {
	Resource uuid.UUID
	Geometry Geometry
}
