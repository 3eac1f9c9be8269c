package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUFrameParamsSource is the canonical WGSL definition of the FrameParams struct.
// Matches GPUFrameParams layout exactly (16 bytes, uniform address space aligned).
//
//go:embed assets/frame_params.wgsl
var GPUFrameParamsSource string

// GPUFrameParamsGLSLSource is the std140 GLSL uniform block matching GPUFrameParams.
// The OpenGL backend binds the block named FrameParams to uniform binding point 0.
//
//go:embed assets/frame_params.glsl
var GPUFrameParamsGLSLSource string

// GPUFrameParams is the per-frame uniform shared by every pipeline.
// Matches the WGSL FrameParams struct and the GLSL std140 FrameParams block (see GPUFrameParamsSource).
// Size: 16 bytes (one f32 padded to a vec4 slot).
type GPUFrameParams struct {
	Time float32    // offset 0: seconds elapsed since the window opened (4 bytes)
	_    [3]float32 // offset 4: padding to 16 bytes (12 bytes)
}

// Size returns the size of the GPUFrameParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUFrameParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUFrameParams) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Time))
	return buf
}
