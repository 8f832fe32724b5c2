package component

import (
	"github.com/lixenwraith/asteroid-forge/shape"
)

// AsteroidComponent holds the authored parameters of an asteroid instance
// Version increments on every discrete parameter change; the regeneration
// system compares it with ShapeComponent.Version
type AsteroidComponent struct {
	Name    string
	Params  shape.Params
	Version uint64
}

// ShapeComponent holds the current generation of an asteroid instance
type ShapeComponent struct {
	Shape   *shape.Shape
	Version uint64 // AsteroidComponent.Version that produced Shape

	// FailedVersion is the last version whose generation failed, 0 if none
	FailedVersion uint64
}
