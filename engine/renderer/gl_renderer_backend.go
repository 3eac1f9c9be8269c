package renderer

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-obj/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// frameParamsBlock is the GLSL uniform block name bound to the per-frame uniform buffer.
const frameParamsBlock = "FrameParams"

// glBuffer is an OpenGL buffer object stored on a BindGroupProvider.
type glBuffer struct {
	id uint32
}

func (b *glBuffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// glVertexArray is an OpenGL vertex array object. Attribute pointers are recorded into it the
// first time it is drawn with a pipeline; layoutKey remembers which pipeline layout that was.
type glVertexArray struct {
	id        uint32
	layoutKey string
}

func (v *glVertexArray) Release() {
	if v.id != 0 {
		gl.DeleteVertexArrays(1, &v.id)
		v.id = 0
	}
}

// glProgram is a linked OpenGL program stored on a Pipeline.
type glProgram struct {
	id uint32
}

func (p *glProgram) Release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

type glRendererBackendImpl struct {
	mu     *sync.Mutex
	window window.Window

	presentMode PresentMode
	info        DeviceInfo
}

var _ RendererBackend = &glRendererBackendImpl{}

// newGLRendererBackend makes the window's context current, loads the OpenGL function pointers
// and enables depth testing with the LESS comparison.
//
// Parameters:
//   - win: a window created with window.ClientAPIOpenGL
//
// Returns:
//   - *glRendererBackendImpl: the backend
//   - error: error if the window has no OpenGL context or the functions cannot be loaded
func newGLRendererBackend(win window.Window) (*glRendererBackendImpl, error) {
	if win.ClientAPI() != window.ClientAPIOpenGL {
		return nil, errors.New("the OpenGL backend needs a window created with window.ClientAPIOpenGL")
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	b := &glRendererBackendImpl{
		mu:          &sync.Mutex{},
		window:      win,
		presentMode: PresentModeUncapped,
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	b.info = DeviceInfo{
		Backend:                      BackendTypeOpenGL,
		Version:                      gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer:                     gl.GoStr(gl.GetString(gl.RENDERER)),
		Vendor:                       gl.GoStr(gl.GetString(gl.VENDOR)),
		ShadingLanguage:              gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		MaxVertexAttribs:             glInteger(gl.MAX_VERTEX_ATTRIBS),
		MaxVertexUniformComponents:   glInteger(gl.MAX_VERTEX_UNIFORM_COMPONENTS),
		MaxFragmentUniformComponents: glInteger(gl.MAX_FRAGMENT_UNIFORM_COMPONENTS),
		MaxGeometryUniformComponents: glInteger(gl.MAX_GEOMETRY_UNIFORM_COMPONENTS),
	}
	return b, nil
}

func glInteger(pname uint32) int {
	var v int32
	gl.GetIntegerv(pname, &v)
	return int(v)
}

func (b *glRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))

	interval := 0
	if b.presentMode == PresentModeVSync {
		interval = 1
	}
	b.window.SetSwapInterval(interval)
}

func (b *glRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *glRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := p.Validate(); err != nil {
		return err
	}
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader.Language() != shader.LanguageGLSL {
		return fmt.Errorf("pipeline %s: the OpenGL backend needs GLSL shaders, got %s", p.PipelineKey(), vertexShader.Language())
	}

	vs, err := compileGLShader(vertexShader.Source(), gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("vertex shader %s: %w", vertexShader.Key(), err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileGLShader(fragmentShader.Source(), gl.FRAGMENT_SHADER)
	if err != nil {
		return fmt.Errorf("fragment shader %s: %w", fragmentShader.Key(), err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]uint8, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &infoLog[0])
		gl.DeleteProgram(program)
		return fmt.Errorf("failed to link program %s: %s", p.PipelineKey(), strings.TrimRight(string(infoLog), "\x00"))
	}

	// Shaders that do not declare the block (or optimize it away) simply skip the binding.
	if idx := gl.GetUniformBlockIndex(program, gl.Str(frameParamsBlock+"\x00")); idx != gl.INVALID_INDEX {
		gl.UniformBlockBinding(program, idx, frameParamsBinding)
	}

	p.SetPipeline(&glProgram{id: program})
	return nil
}

// compileGLShader compiles one GLSL stage and returns its shader object.
func compileGLShader(source string, shaderType uint32) (uint32, error) {
	s := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csources, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]uint8, logLength+1)
		gl.GetShaderInfoLog(s, logLength, nil, &infoLog[0])
		gl.DeleteShader(s)
		return 0, fmt.Errorf("failed to compile: %s", strings.TrimRight(string(infoLog), "\x00"))
	}
	return s, nil
}

func (b *glRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("mesh %s has no vertex or index data", provider.Label())
	}

	vao := &glVertexArray{}
	gl.GenVertexArrays(1, &vao.id)
	gl.BindVertexArray(vao.id)

	vbo := &glBuffer{}
	gl.GenBuffers(1, &vbo.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertexData), gl.Ptr(vertexData), gl.STATIC_DRAW)

	// The element buffer binding is part of the vertex array state.
	ebo := &glBuffer{}
	gl.GenBuffers(1, &ebo.id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo.id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indexData), gl.Ptr(indexData), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	provider.SetVertexArray(vao)
	provider.SetVertexBuffer(vbo)
	provider.SetIndexBuffer(ebo)
	provider.SetIndexCount(indexCount)
	return nil
}

func (b *glRendererBackendImpl) InitUniformBuffer(provider bind_group_provider.BindGroupProvider, binding int, size uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ubo := &glBuffer{}
	gl.GenBuffers(1, &ubo.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, ubo.id)
	gl.BufferData(gl.UNIFORM_BUFFER, int(size), nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	provider.SetBuffer(binding, ubo)
	return nil
}

func (b *glRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf, ok := w.Provider.Buffer(w.Binding).(*glBuffer)
		if !ok || buf.id == 0 || len(w.Data) == 0 {
			continue
		}
		gl.BindBuffer(gl.UNIFORM_BUFFER, buf.id)
		gl.BufferSubData(gl.UNIFORM_BUFFER, int(w.Offset), len(w.Data), gl.Ptr(w.Data))
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (b *glRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	gl.ClearColor(float32(clearColor[0]), float32(clearColor[1]), float32(clearColor[2]), float32(clearColor[3]))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (b *glRendererBackendImpl) DrawCall(
	p pipeline.Pipeline,
	meshProvider bind_group_provider.BindGroupProvider,
	bindGroups []bind_group_provider.BindGroupProvider,
) {
	b.mu.Lock()
	defer b.mu.Unlock()

	program, vao, vbo, err := glDrawTargets(p, meshProvider)
	if err != nil {
		log.Printf("[Renderer] skipping draw: %v", err)
		return
	}

	applyGLState(p)
	gl.UseProgram(program.id)

	// Group i's uniform buffer at binding 0 goes to uniform binding point i.
	for i, bg := range bindGroups {
		if ubo, ok := bg.Buffer(frameParamsBinding).(*glBuffer); ok {
			gl.BindBufferBase(gl.UNIFORM_BUFFER, uint32(i), ubo.id)
		}
	}

	gl.BindVertexArray(vao.id)
	if vao.layoutKey != p.PipelineKey() {
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo.id)
		stride := int32(p.Stride())
		for _, a := range p.Attributes() {
			gl.VertexAttribPointerWithOffset(a.Location, int32(a.Components), gl.FLOAT, false, stride, uintptr(a.Offset))
			gl.EnableVertexAttribArray(a.Location)
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		vao.layoutKey = p.PipelineKey()
	}

	gl.DrawElements(gl.TRIANGLES, int32(meshProvider.IndexCount()), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// glDrawTargets extracts the OpenGL objects a draw needs from the pipeline and the mesh provider.
// Handles created by another backend, or not created yet, are reported by type.
func glDrawTargets(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider) (*glProgram, *glVertexArray, *glBuffer, error) {
	program, ok := p.Pipeline().(*glProgram)
	if !ok {
		return nil, nil, nil, fmt.Errorf("pipeline %s has handle %T, want an OpenGL program", p.PipelineKey(), p.Pipeline())
	}
	vao, ok := meshProvider.VertexArray().(*glVertexArray)
	if !ok {
		return nil, nil, nil, fmt.Errorf("mesh %s has vertex array %T, want an OpenGL vertex array", meshProvider.Label(), meshProvider.VertexArray())
	}
	vbo, ok := meshProvider.VertexBuffer().(*glBuffer)
	if !ok {
		return nil, nil, nil, fmt.Errorf("mesh %s has vertex buffer %T, want an OpenGL buffer", meshProvider.Label(), meshProvider.VertexBuffer())
	}
	return program, vao, vbo, nil
}

// glState is the fixed-function state a pipeline asks of OpenGL.
type glState struct {
	depthTest  bool
	depthWrite bool
	cullFace   uint32 // gl.BACK or gl.FRONT; 0 disables culling
	frontFace  uint32
	blend      bool
	blendFunc  [4]uint32 // srcRGB, dstRGB, srcAlpha, dstAlpha
}

// glStateFor translates the pipeline's WebGPU-style settings into OpenGL enums.
func glStateFor(p pipeline.Pipeline) glState {
	s := glState{
		depthTest:  p.DepthTestEnabled(),
		depthWrite: p.DepthWriteEnabled(),
		frontFace:  gl.CCW,
		blend:      p.BlendEnabled(),
		blendFunc:  [4]uint32{gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA},
	}

	switch p.CullMode() {
	case wgpu.CullModeBack:
		s.cullFace = gl.BACK
	case wgpu.CullModeFront:
		s.cullFace = gl.FRONT
	}
	if p.FrontFace() == wgpu.FrontFaceCW {
		s.frontFace = gl.CW
	}

	if bs := p.BlendState(); bs != nil {
		s.blendFunc = [4]uint32{
			glBlendFactor(bs.Color.SrcFactor, s.blendFunc[0]),
			glBlendFactor(bs.Color.DstFactor, s.blendFunc[1]),
			glBlendFactor(bs.Alpha.SrcFactor, s.blendFunc[2]),
			glBlendFactor(bs.Alpha.DstFactor, s.blendFunc[3]),
		}
	}
	return s
}

// glBlendFactor maps a WebGPU blend factor to its OpenGL enum, or fallback when it has no mapping.
func glBlendFactor(f wgpu.BlendFactor, fallback uint32) uint32 {
	switch f {
	case wgpu.BlendFactorZero:
		return gl.ZERO
	case wgpu.BlendFactorOne:
		return gl.ONE
	case wgpu.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case wgpu.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return fallback
	}
}

// applyGLState maps the pipeline's fixed-function settings onto the OpenGL state machine.
func applyGLState(p pipeline.Pipeline) {
	s := glStateFor(p)

	if s.depthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(s.depthWrite)

	if s.cullFace != 0 {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(s.cullFace)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	gl.FrontFace(s.frontFace)

	if s.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFuncSeparate(s.blendFunc[0], s.blendFunc[1], s.blendFunc[2], s.blendFunc[3])
	} else {
		gl.Disable(gl.BLEND)
	}
}

func (b *glRendererBackendImpl) EndFrame() {
	gl.UseProgram(0)
}

func (b *glRendererBackendImpl) Present() {
	b.window.SwapBuffers()
}

func (b *glRendererBackendImpl) DeviceInfo() DeviceInfo {
	return b.info
}

func (b *glRendererBackendImpl) ShaderLanguage() shader.Language {
	return shader.LanguageGLSL
}

// Release has nothing to free: buffers belong to their providers, programs to their pipelines
// and the context to the window.
func (b *glRendererBackendImpl) Release() {}
