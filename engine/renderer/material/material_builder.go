package material

import (
	"github.com/Carmen-Shannon/oxy-obj/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuse is an option builder that sets the Kd color of the material.
//
// Parameters:
//   - color: the diffuse color as RGB float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse option to a material
func WithDiffuse(color [3]float32) MaterialBuilderOption {
	return func(m *material) {
		m.diffuse = color
	}
}

// WithDissolve is an option builder that sets the d transparency factor.
//
// Parameters:
//   - d: the dissolve factor (1.0 = opaque)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the dissolve option to a material
func WithDissolve(d float32) MaterialBuilderOption {
	return func(m *material) {
		m.dissolve = d
	}
}

// WithImported copies every property of an imported material library record.
//
// Parameters:
//   - im: the imported material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the imported properties to a material
func WithImported(im common.ImportedMaterial) MaterialBuilderOption {
	return func(m *material) {
		m.name = im.Name
		m.ambient = im.Ambient
		m.diffuse = im.Diffuse
		m.specular = im.Specular
		m.specularExponent = im.SpecularExponent
		m.opticalDensity = im.OpticalDensity
		m.dissolve = im.Dissolve
		m.illumination = im.Illumination
		m.diffuseMap = im.DiffuseMap
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key of the material.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}
