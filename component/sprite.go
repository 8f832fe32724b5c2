package component

import "github.com/lixenwraith/asteroid-forge/core"

// SpriteComponent is a discrete cell primitive
// Position is relative to the owning anchor
type SpriteComponent struct {
	Position core.Vec3
	Size     float32
	Color    core.RGB
}
