// Package shape synthesizes the lattice cells of a noise-perturbed disk
package shape

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/asteroid-forge/core"
	"github.com/lixenwraith/asteroid-forge/noise"
	"github.com/lixenwraith/asteroid-forge/parameter"
)

var (
	// ErrInvalidRadius is returned for a negative, non-finite or oversized radius
	ErrInvalidRadius = errors.New("invalid radius")

	// ErrInvalidScale is returned for a non-finite frequency or amplitude scale
	ErrInvalidScale = errors.New("invalid scale")
)

// Shape is one generation: the inside cells and the matching shading vector
// Immutable after Generate returns
type Shape struct {
	Params  Params
	Cells   []core.Point // Sweep order: x outer, y inner
	Shading ShadingVector

	// Indeterminate counts cells skipped because the perturbation was non-finite
	Indeterminate int
}

// Validate checks the parameters Generate rejects
func (p Params) Validate() error {
	if !finite(p.Radius) || p.Radius < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, p.Radius)
	}
	if p.Radius > parameter.MaxRadius {
		return fmt.Errorf("%w: %v exceeds %v", ErrInvalidRadius, p.Radius, parameter.MaxRadius)
	}
	if !finite(p.FrequencyScale) {
		return fmt.Errorf("%w: frequency %v", ErrInvalidScale, p.FrequencyScale)
	}
	if !finite(p.AmplitudeScale) {
		return fmt.Errorf("%w: amplitude %v", ErrInvalidScale, p.AmplitudeScale)
	}
	return nil
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// HalfExtent returns the half size of the sweep window
// Caller must validate p first
func HalfExtent(p Params) int {
	return int(math32.Floor(p.Radius)) + 1
}

// Bounds returns the sweep window as an area
// The window clips the shape: cells beyond it are never generated
func Bounds(p Params) core.Area {
	h := HalfExtent(p)
	return core.Area{X: -h, Y: -h, Width: 2*h + 1, Height: 2*h + 1}
}

// Generate sweeps the window and collects cells inside the perturbed boundary
// A cell is inside iff x²+y² < (radius + noise*amplitude)²
func Generate(p Params, sampler noise.Sampler) (*Shape, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	area := Bounds(p)
	seed := float32(p.Seed)
	s := &Shape{
		Params:  p,
		Cells:   make([]core.Point, 0, estimateCells(p.Radius, area)),
		Shading: p.Shading(),
	}

	for x := area.X; x < area.X+area.Width; x++ {
		for y := area.Y; y < area.Y+area.Height; y++ {
			o := sampler.Sample(float32(x)*p.FrequencyScale, float32(y)*p.FrequencyScale, seed) * p.AmplitudeScale
			if !finite(o) {
				s.Indeterminate++
				continue
			}
			r := p.Radius + o
			if float32(x*x+y*y) < r*r {
				s.Cells = append(s.Cells, core.Point{X: x, Y: y})
			}
		}
	}

	return s, nil
}

// estimateCells sizes the cell slice to the unperturbed disk area
// The hint never exceeds the window or MaxCellHint
func estimateCells(radius float32, area core.Area) int {
	disk := float64(math32.Pi*radius*radius) + 1
	return int(min(disk, float64(area.Width*area.Height), parameter.MaxCellHint))
}
