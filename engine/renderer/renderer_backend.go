package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/shader"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeOpenGL selects the OpenGL 4.1 core profile backend. The window must be
	// created with window.ClientAPIOpenGL.
	BackendTypeOpenGL
)

// String returns the flag spelling of the backend type.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeOpenGL:
		return "opengl"
	default:
		return fmt.Sprintf("RendererBackendType(%d)", int(t))
	}
}

// ParseBackendType converts a backend name ("wgpu" or "opengl") into a RendererBackendType.
//
// Parameters:
//   - s: the backend name, case-insensitive
//
// Returns:
//   - RendererBackendType: the parsed backend type
//   - error: error if the name is unknown
func ParseBackendType(s string) (RendererBackendType, error) {
	switch strings.ToLower(s) {
	case "wgpu", "webgpu":
		return BackendTypeWGPU, nil
	case "opengl", "gl":
		return BackendTypeOpenGL, nil
	}
	return BackendTypeOpenGL, fmt.Errorf("unknown renderer backend %q", s)
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
// The OpenGL backend renders into the default framebuffer and ignores this setting.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA16x MSAASampleCount = 16
)

// ParseMSAASampleCount converts a sample count (1, 4, 8 or 16) into an MSAASampleCount.
//
// Parameters:
//   - samples: the number of samples per pixel
//
// Returns:
//   - MSAASampleCount: the parsed sample count
//   - error: error if the count is not one the GPU accepts
func ParseMSAASampleCount(samples int) (MSAASampleCount, error) {
	switch c := MSAASampleCount(samples); c {
	case MSAAOff, MSAA4x, MSAA8x, MSAA16x:
		return c, nil
	}
	return MSAA4x, fmt.Errorf("unsupported MSAA sample count %d (want 1, 4, 8 or 16)", samples)
}

// clearColor is the background every frame starts from.
var clearColor = [4]float64{0.2, 0.3, 0.3, 1.0}

// frameParamsBinding is the binding index of the per-frame uniform inside its bind group.
const frameParamsBinding = 0

// RendererBackend is the backend interface for the Renderer. Each GPU API provides one
// implementation; the Renderer owns the pipeline cache and forwards everything else.
type RendererBackend interface {
	// ConfigureSurface (re)creates the size-dependent render targets.
	ConfigureSurface(width, height int)

	// SetPresentMode selects vsync or uncapped presentation. Takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the backend pipeline object and stores it on p.
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data and stores the buffers on provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitUniformBuffer creates a uniform buffer of size bytes at binding on provider,
	// together with whatever binding object the backend draws with.
	InitUniformBuffer(provider bind_group_provider.BindGroupProvider, binding int, size uint64) error

	// WriteBuffers copies each write into its target buffer.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame clears the color and depth targets.
	BeginFrame() error

	// DrawCall draws provider's indexed triangles with pipeline p. bindGroups[i] is bound at group i.
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame finishes recording and submits the frame.
	EndFrame()

	// Present shows the finished frame.
	Present()

	// DeviceInfo reports the device identification and limits.
	DeviceInfo() DeviceInfo

	// ShaderLanguage is the shading language the backend compiles.
	ShaderLanguage() shader.Language

	// Release releases the backend's device objects.
	Release()
}
