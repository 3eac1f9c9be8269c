package model

import (
	"github.com/Carmen-Shannon/oxy-obj/common"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	layout                VertexLayout
	importedMaterials     common.MaterialTable
	renderMaterials       []material.Material
	meshProvider          bind_group_provider.BindGroupProvider
	pipelineKey           string
	boundsMin, boundsMax  mgl32.Vec3
	vertexData, indexData []byte
	vertexCount           int
	indexCount            int
}

// Model defines the interface for a loaded, assembled 3D model.
// A Model is a GPU-ready container holding the interleaved vertex records, the triangle
// index list and, once uploaded, the GPU buffers via a BindGroupProvider.
// It is produced by the Loader after importing and assembling a model file.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Layout retrieves the record shape of the vertex data.
	//
	// Returns:
	//   - VertexLayout: the vertex layout
	Layout() VertexLayout

	// ImportedMaterials retrieves the material table the model was assembled against.
	//
	// Returns:
	//   - common.MaterialTable: the imported materials
	ImportedMaterials() common.MaterialTable

	// RenderMaterials retrieves the render materials built from the imported table.
	//
	// Returns:
	//   - []material.Material: the render materials
	RenderMaterials() []material.Material

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources,
	// or nil if the model has not been uploaded.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider assigns the BindGroupProvider holding GPU mesh resources.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// PipelineKey returns the key of the render pipeline that draws this model.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Bounds returns the axis-aligned bounding box of the model's positions.
	//
	// Returns:
	//   - mgl32.Vec3: the minimum corner
	//   - mgl32.Vec3: the maximum corner
	Bounds() (mgl32.Vec3, mgl32.Vec3)

	// VertexData returns the serialized vertex records.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// VertexCount returns the number of vertex records.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexData returns the serialized index list.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's index list.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// ReleaseCPUData drops the CPU copies of the vertex and index data once they live on the GPU.
	// Counts, bounds and the mesh provider are kept.
	ReleaseCPUData()

	// Release frees the model's GPU resources.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.pipelineKey == "" {
		m.pipelineKey = m.layout.PipelineKey()
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Layout() VertexLayout {
	return m.layout
}

func (m *model) ImportedMaterials() common.MaterialTable {
	return m.importedMaterials
}

func (m *model) RenderMaterials() []material.Material {
	return m.renderMaterials
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) PipelineKey() string {
	return m.pipelineKey
}

func (m *model) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return m.boundsMin, m.boundsMax
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) ReleaseCPUData() {
	m.vertexData = nil
	m.indexData = nil
}

func (m *model) Release() {
	if m.meshProvider != nil {
		m.meshProvider.Release()
		m.meshProvider = nil
	}
}
