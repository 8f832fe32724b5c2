package parameter

// Asteroid defaults applied at instance creation
const (
	DefaultFrequencyScale float32 = 0.1
	DefaultAmplitudeScale float32 = 2.8
	DefaultRadius         float32 = 14.0
	DefaultSeed           uint32  = 0
)

// Generation limits
const (
	// MaxRadius bounds the sweep window to (2*1025)^2 samples
	MaxRadius float32 = 1024

	// MaxCellHint caps the up-front cell slice capacity
	MaxCellHint = 1 << 16
)

// Cell sprite presentation
const (
	// SpriteLuminance is the luminance applied to white cell sprites
	SpriteLuminance float32 = 0.2

	// SpriteSize is the edge length of one cell sprite in lattice units
	SpriteSize float32 = 1.0

	// SpriteDepth places cell sprites above the shading surface
	SpriteDepth float32 = 100.0
)

// Shading surface presentation
const (
	// SurfaceWidth and SurfaceHeight size the quad the shading routine covers
	SurfaceWidth  float32 = 100.0
	SurfaceHeight float32 = 100.0

	// SurfaceDepth places the surface behind the cell sprites
	SurfaceDepth float32 = 1.5
)
