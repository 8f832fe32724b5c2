package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asteroid-forge/core"
)

// RGB is an alias to core.RGB, allowing render package to extend functionality
type RGB = core.RGB

// clamp converts float to uint8 efficiently
func clamp(v float32) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Lerp blends a toward b by t in [0,1]
func Lerp(a, b RGB, t float32) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: clamp(float32(a.R) + (float32(b.R)-float32(a.R))*t + 0.5),
		G: clamp(float32(a.G) + (float32(b.G)-float32(a.G))*t + 0.5),
		B: clamp(float32(a.B) + (float32(b.B)-float32(a.B))*t + 0.5),
	}
}

// TcellColor converts to a true-color tcell color
func TcellColor(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
