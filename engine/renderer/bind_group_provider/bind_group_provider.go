package bind_group_provider

// Resource is a GPU object held by a provider. The WebGPU backend stores *wgpu.Buffer and
// *wgpu.BindGroup values directly; the OpenGL backend wraps its object names in small types that
// delete the object on Release.
type Resource interface {
	Release()
}

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed. They are populated by the Renderer during initialization, not by user-creation.

	// bindGroup is the backend bind group (or uniform block binding) for this provider, or nil if not initialized with the Renderer.
	bindGroup Resource
	// buffers holds the uniform buffers created for this provider, keyed by binding index.
	buffers map[int]Resource

	// The following fields are specific to mesh providers.

	// vertexBuffer is the GPU vertex buffer created for this provider, or nil if not initialized with the Renderer.
	vertexBuffer Resource
	// indexBuffer is the GPU index buffer created for this provider, or nil if not initialized with the Renderer.
	indexBuffer Resource
	// vertexArray is the vertex array object of the OpenGL backend, or nil.
	vertexArray Resource
	// indexCount is the number of indices for draw calls.
	indexCount int
}

// BindGroupProvider defines the interface for components that require GPU resources.
// Models hold one for their vertex and index buffers and the engine holds one for the
// per-frame uniform. The Renderer populates the provider and later reads it back during draw calls.
//
// Usage pattern:
//  1. Caller creates a BindGroupProvider with a label
//  2. Renderer.InitMeshBuffers / Renderer.InitFrameParams create and store the GPU resources
//  3. Renderer.WriteBuffers updates uniform buffers through BufferWrite values
//  4. Renderer.DrawCall reads the resources back with a type assertion to its own types
//  5. Release frees everything the provider holds
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the bind group for shader binding, or nil if not initialized.
	//
	// Returns:
	//   - Resource: the bind group or nil
	BindGroup() Resource

	// Buffer returns the uniform buffer stored at binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - Resource: the buffer or nil
	Buffer(binding int) Resource

	// Buffers returns all uniform buffers, keyed by binding index.
	//
	// Returns:
	//   - map[int]Resource: the buffers
	Buffers() map[int]Resource

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - Resource: the vertex buffer or nil
	VertexBuffer() Resource

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - Resource: the index buffer or nil
	IndexBuffer() Resource

	// VertexArray returns the vertex array object, or nil for backends without one.
	//
	// Returns:
	//   - Resource: the vertex array or nil
	VertexArray() Resource

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup stores the bind group after GPU initialization.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg Resource)

	// SetBuffer stores a uniform buffer for a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf Resource)

	// SetVertexBuffer stores the GPU vertex buffer.
	//
	// Parameters:
	//   - buf: the created vertex buffer
	SetVertexBuffer(buf Resource)

	// SetIndexBuffer stores the GPU index buffer.
	//
	// Parameters:
	//   - buf: the created index buffer
	SetIndexBuffer(buf Resource)

	// SetVertexArray stores the vertex array object.
	//
	// Parameters:
	//   - vao: the created vertex array
	SetVertexArray(vao Resource)

	// SetIndexCount sets the number of indices for draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: debug label for the provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]Resource),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() Resource {
	return p.bindGroup
}

func (p *bindGroupProvider) Buffer(binding int) Resource {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]Resource {
	return p.buffers
}

func (p *bindGroupProvider) VertexBuffer() Resource {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() Resource {
	return p.indexBuffer
}

func (p *bindGroupProvider) VertexArray() Resource {
	return p.vertexArray
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg Resource) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf Resource) {
	if p.buffers == nil {
		p.buffers = make(map[int]Resource)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf Resource) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf Resource) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetVertexArray(vao Resource) {
	p.vertexArray = vao
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	// bind groups reference their buffers, so they go first
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.vertexArray != nil {
		p.vertexArray.Release()
		p.vertexArray = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
