package pipeline

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-obj/common"
	"github.com/Carmen-Shannon/oxy-obj/engine/model"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrInvalidPipeline is returned by Validate when the shaders or the vertex layout cannot form a render pipeline.
var ErrInvalidPipeline = errors.New("invalid pipeline")

// Handle is the backend object a registered pipeline owns: a *wgpu.RenderPipeline for WebGPU
// or a linked program for OpenGL.
type Handle interface {
	Release()
}

// pipeline is the implementation of the Pipeline interface.
// It holds the backend pipeline object and the configuration it was created from.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// the following shader references are required to be set before registering a pipeline.

	vertexShader, fragmentShader shader.Shader

	// stride is the byte size of one interleaved vertex record
	stride uint64
	// attributes describe the float attributes inside one vertex record
	attributes []common.VertexAttribute

	// handle is the backend pipeline object, nil until registered
	handle Handle

	// The following properties configure the pipeline during creation and can be toggled/set with the builder options.

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a render pipeline: a vertex and fragment shader pair, the
// vertex layout they consume and the fixed-function state (depth, blend, cull, winding). Both
// renderer backends create their native pipeline object from it.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader of the given stage.
	//
	// Parameters:
	//   - shaderType: the stage of the shader to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for the stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// Stride returns the byte size of one vertex record.
	//
	// Returns:
	//   - uint64: the vertex stride in bytes
	Stride() uint64

	// Attributes returns the vertex attributes read from each record.
	//
	// Returns:
	//   - []common.VertexAttribute: the attributes in location order
	Attributes() []common.VertexAttribute

	// Pipeline returns the underlying backend pipeline object.
	// Note: The caller is responsible for type asserting the returned value.
	//
	// Returns:
	//   - any: the backend pipeline object, or nil if the pipeline is not registered
	Pipeline() any

	// SetPipeline stores the backend pipeline object created at registration.
	//
	// Parameters:
	//   - h: the backend pipeline object
	SetPipeline(h Handle)

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// BlendState returns the blend state used when blending is enabled.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeBack)
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline (e.g., wgpu.FrontFaceCCW)
	FrontFace() wgpu.FrontFace

	// Validate checks that both shaders are set and share a language, that the topology is a
	// triangle list, and that every vertex input the vertex shader declares is fed by an
	// attribute of the same width.
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidPipeline, or nil
	Validate() error

	// Release releases the backend pipeline object, if any.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new render Pipeline.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ForLayout creates the pipeline used to draw models assembled with the given vertex layout.
// The pipeline key is layout.PipelineKey(), so models find their pipeline by key.
//
// Parameters:
//   - layout: the vertex layout of the models the pipeline draws
//   - vs: the vertex shader
//   - fs: the fragment shader
//   - opts: additional builder options, applied after the layout and shaders
//
// Returns:
//   - Pipeline: the configured pipeline
func ForLayout(layout model.VertexLayout, vs, fs shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	base := []PipelineBuilderOption{
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithVertexLayout(layout.StrideBytes(), layout.Attributes()),
	}
	return NewPipeline(layout.PipelineKey(), append(base, opts...)...)
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) Stride() uint64 {
	return p.stride
}

func (p *pipeline) Attributes() []common.VertexAttribute {
	return p.attributes
}

func (p *pipeline) Pipeline() any {
	if p.handle == nil {
		return nil
	}
	return p.handle
}

func (p *pipeline) SetPipeline(h Handle) {
	p.handle = h
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) Validate() error {
	if p.vertexShader == nil || p.fragmentShader == nil {
		return fmt.Errorf("%w %s: vertex and fragment shaders are required", ErrInvalidPipeline, p.pipelineKey)
	}
	if p.vertexShader.Language() != p.fragmentShader.Language() {
		return fmt.Errorf("%w %s: vertex shader is %s but fragment shader is %s",
			ErrInvalidPipeline, p.pipelineKey, p.vertexShader.Language(), p.fragmentShader.Language())
	}
	if p.topology != wgpu.PrimitiveTopologyTriangleList {
		return fmt.Errorf("%w %s: index buffers hold triangle lists, got topology %v", ErrInvalidPipeline, p.pipelineKey, p.topology)
	}
	if p.stride == 0 || len(p.attributes) == 0 {
		return fmt.Errorf("%w %s: no vertex layout", ErrInvalidPipeline, p.pipelineKey)
	}

	provided := make(map[uint32]int, len(p.attributes))
	for _, a := range p.attributes {
		provided[a.Location] = a.Components
	}
	for loc, n := range p.vertexShader.Inputs() {
		have, ok := provided[loc]
		if !ok {
			return fmt.Errorf("%w %s: vertex input at location %d has no attribute", ErrInvalidPipeline, p.pipelineKey, loc)
		}
		if have != n {
			return fmt.Errorf("%w %s: vertex input at location %d has %d components, attribute has %d",
				ErrInvalidPipeline, p.pipelineKey, loc, n, have)
		}
	}
	return nil
}

func (p *pipeline) Release() {
	if p.handle != nil {
		p.handle.Release()
		p.handle = nil
	}
}
