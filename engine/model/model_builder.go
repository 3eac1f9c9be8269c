package model

import (
	"github.com/Carmen-Shannon/oxy-obj/common"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithAttributes is an option builder that fills the Model's vertex and index data from assembled attributes.
//
// Parameters:
//   - attrs: the assembler output
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertex layout, data and counts to a model
func WithAttributes(attrs *Attributes) ModelBuilderOption {
	return func(m *model) {
		m.layout = attrs.Layout
		m.vertexData = attrs.VertexBytes()
		m.vertexCount = attrs.VertexCount()
		m.indexData = attrs.IndexBytes()
		m.indexCount = len(attrs.Indices)
	}
}

// WithBounds is an option builder that sets the bounding box from a geometry.
//
// Parameters:
//   - g: the geometry whose positions are measured
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounds option to a model
func WithBounds(g *Geometry) ModelBuilderOption {
	return func(m *model) {
		m.boundsMin, m.boundsMax = g.Bounds()
	}
}

// WithImportedMaterials is an option builder that sets the material table of the Model.
//
// Parameters:
//   - materials: the imported material table
//
// Returns:
//   - ModelBuilderOption: a function that applies the imported materials option to a model
func WithImportedMaterials(materials common.MaterialTable) ModelBuilderOption {
	return func(m *model) {
		m.importedMaterials = materials
	}
}

// WithRenderMaterials is an option builder that sets the render materials for the Model.
//
// Parameters:
//   - mats: the render materials to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the render materials option to a model
func WithRenderMaterials(mats ...material.Material) ModelBuilderOption {
	return func(m *model) {
		m.renderMaterials = mats
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider for mesh GPU resources.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

// WithPipelineKey is an option builder that overrides the pipeline key derived from the vertex layout.
//
// Parameters:
//   - key: the render pipeline key
//
// Returns:
//   - ModelBuilderOption: a function that applies the pipeline key option to a model
func WithPipelineKey(key string) ModelBuilderOption {
	return func(m *model) {
		m.pipelineKey = key
	}
}
