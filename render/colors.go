package render

// Palette for the shading routine and status bar
var (
	RgbSpace     = RGB{0, 0, 0}
	RgbHalo      = RGB{28, 22, 40}
	RgbRockEdge  = RGB{92, 78, 66}
	RgbRockCore  = RGB{38, 32, 30}
	RgbStatusBg  = RGB{26, 27, 38}
	RgbStatusFg  = RGB{200, 200, 200}
	RgbStatusErr = RGB{255, 90, 90}
)

// Shading bands in lattice units
const (
	// HaloWidth is the distance outside the boundary that glows
	HaloWidth float32 = 1.5

	// RockDepth is the distance inside the boundary over which edge fades to core
	RockDepth float32 = 6.0
)
