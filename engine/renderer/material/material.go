package material

import (
	"github.com/Carmen-Shannon/oxy-obj/common"
)

// material is the implementation of the Material interface.
type material struct {
	name             string
	ambient          [3]float32
	diffuse          [3]float32
	specular         [3]float32
	specularExponent float32
	opticalDensity   float32
	dissolve         float32
	illumination     int
	diffuseMap       string
	pipelineKey      string
}

// Material defines the interface for a render material built from a material library record.
//
// Surface properties are set at load time and are read-only through this interface. Only the
// diffuse color reaches the GPU, baked into the vertex records by the assembler; the other
// properties are kept for inspection. The pipeline key is mutable so the Loader can assign it
// once the model's vertex layout is known.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Ambient retrieves the Ka color.
	//
	// Returns:
	//   - [3]float32: the ambient color
	Ambient() [3]float32

	// Diffuse retrieves the Kd color.
	//
	// Returns:
	//   - [3]float32: the diffuse color
	Diffuse() [3]float32

	// Specular retrieves the Ks color.
	//
	// Returns:
	//   - [3]float32: the specular color
	Specular() [3]float32

	// SpecularExponent retrieves the Ns shininess.
	//
	// Returns:
	//   - float32: the specular exponent
	SpecularExponent() float32

	// OpticalDensity retrieves the Ni index of refraction.
	//
	// Returns:
	//   - float32: the optical density
	OpticalDensity() float32

	// Dissolve retrieves the d transparency factor.
	//
	// Returns:
	//   - float32: the dissolve factor
	Dissolve() float32

	// Illumination retrieves the illum model selector.
	//
	// Returns:
	//   - int: the illumination model
	Illumination() int

	// DiffuseMap retrieves the map_Kd texture file name, or "" if none was declared.
	//
	// Returns:
	//   - string: the texture file name
	DiffuseMap() string

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Unset properties default to an opaque material.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		dissolve: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewMaterials converts an imported material table into render materials, preserving order.
//
// Parameters:
//   - table: the imported material table
//   - pipelineKey: the pipeline key assigned to every material
//
// Returns:
//   - []Material: one Material per table entry
func NewMaterials(table common.MaterialTable, pipelineKey string) []Material {
	mats := make([]Material, len(table))
	for i := range table {
		mats[i] = NewMaterial(WithImported(table[i]), WithPipelineKey(pipelineKey))
	}
	return mats
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Ambient() [3]float32 {
	return m.ambient
}

func (m *material) Diffuse() [3]float32 {
	return m.diffuse
}

func (m *material) Specular() [3]float32 {
	return m.specular
}

func (m *material) SpecularExponent() float32 {
	return m.specularExponent
}

func (m *material) OpticalDensity() float32 {
	return m.opticalDensity
}

func (m *material) Dissolve() float32 {
	return m.dissolve
}

func (m *material) Illumination() int {
	return m.illumination
}

func (m *material) DiffuseMap() string {
	return m.diffuseMap
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}
