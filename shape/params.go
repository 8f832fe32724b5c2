package shape

import (
	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/asteroid-forge/parameter"
)

// Params is the input tuple of one generation
// Value type: a generation captures a copy, later mutation never leaks in
type Params struct {
	FrequencyScale float32 `yaml:"frequency_scale" json:"frequency_scale"`
	AmplitudeScale float32 `yaml:"amplitude_scale" json:"amplitude_scale"`
	Radius         float32 `yaml:"radius" json:"radius"`
	Seed           uint32  `yaml:"seed" json:"seed"`
}

// DefaultParams returns the parameters applied at instance creation
func DefaultParams() Params {
	return Params{
		FrequencyScale: parameter.DefaultFrequencyScale,
		AmplitudeScale: parameter.DefaultAmplitudeScale,
		Radius:         parameter.DefaultRadius,
		Seed:           parameter.DefaultSeed,
	}
}

// UnmarshalYAML decodes over DefaultParams so omitted keys keep their defaults
func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	type plain Params
	v := plain(DefaultParams())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Params(v)
	return nil
}

// Equal compares bit patterns, so identical non-finite values are equal
func (p Params) Equal(o Params) bool {
	return math32.Float32bits(p.FrequencyScale) == math32.Float32bits(o.FrequencyScale) &&
		math32.Float32bits(p.AmplitudeScale) == math32.Float32bits(o.AmplitudeScale) &&
		math32.Float32bits(p.Radius) == math32.Float32bits(o.Radius) &&
		p.Seed == o.Seed
}

// Patch is a partial parameter update; nil fields keep their current value
type Patch struct {
	FrequencyScale *float32 `json:"frequency_scale,omitempty"`
	AmplitudeScale *float32 `json:"amplitude_scale,omitempty"`
	Radius         *float32 `json:"radius,omitempty"`
	Seed           *uint32  `json:"seed,omitempty"`
}

// Apply merges the patch over p and returns the resulting full value
func (pt Patch) Apply(p Params) Params {
	if pt.FrequencyScale != nil {
		p.FrequencyScale = *pt.FrequencyScale
	}
	if pt.AmplitudeScale != nil {
		p.AmplitudeScale = *pt.AmplitudeScale
	}
	if pt.Radius != nil {
		p.Radius = *pt.Radius
	}
	if pt.Seed != nil {
		p.Seed = *pt.Seed
	}
	return p
}

// Empty reports whether the patch sets nothing
func (pt Patch) Empty() bool {
	return pt.FrequencyScale == nil && pt.AmplitudeScale == nil && pt.Radius == nil && pt.Seed == nil
}

// ShadingVector packs the parameters for the continuous representation
// Order: frequency, amplitude, radius, seed
type ShadingVector [4]float32

// Shading returns the shading vector of p
func (p Params) Shading() ShadingVector {
	return ShadingVector{p.FrequencyScale, p.AmplitudeScale, p.Radius, float32(p.Seed)}
}

// Params unpacks the vector; seed is truncated back to an integer
func (v ShadingVector) Params() Params {
	return Params{
		FrequencyScale: v[0],
		AmplitudeScale: v[1],
		Radius:         v[2],
		Seed:           uint32(v[3]),
	}
}
