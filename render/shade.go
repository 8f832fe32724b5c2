package render

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/asteroid-forge/noise"
	"github.com/lixenwraith/asteroid-forge/shape"
)

// BoundaryDistance returns the signed distance from (x, y) to the perturbed boundary
// described by the shading vector; positive inside
// NaN when the sampler yields a non-finite value
func BoundaryDistance(v shape.ShadingVector, sampler noise.Sampler, x, y float32) float32 {
	freq, amp, radius, seed := v[0], v[1], v[2], v[3]
	o := sampler.Sample(x*freq, y*freq, seed) * amp
	return radius + o - math32.Sqrt(x*x+y*y)
}

// ShadeColor maps a signed boundary distance to a surface color
func ShadeColor(d float32) RGB {
	switch {
	case math32.IsNaN(d):
		return RgbSpace
	case d > 0:
		return Lerp(RgbRockEdge, RgbRockCore, d/RockDepth)
	case d > -HaloWidth:
		return Lerp(RgbHalo, RgbSpace, -d/HaloWidth)
	default:
		return RgbSpace
	}
}

// Shade evaluates the continuous representation at lattice point (x, y)
func Shade(v shape.ShadingVector, sampler noise.Sampler, x, y float32) RGB {
	return ShadeColor(BoundaryDistance(v, sampler, x, y))
}
