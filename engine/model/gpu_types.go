package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-obj/common"
)

// GPUColorVertex is the GPU representation of a LayoutColor record.
// Size: 24 bytes (tightly packed float32s, no padding).
type GPUColorVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Color    [3]float32 // offset 12: material diffuse color (12 bytes)
}

// Size returns the size of the GPUColorVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUColorVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUColorVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUColorVertex) Marshal() []byte {
	buf := make([]byte, 24)
	putFloats(buf[0:12], g.Position[:])
	putFloats(buf[12:24], g.Color[:])
	return buf
}

// GPUColorNormalVertex is the GPU representation of a LayoutColorNormal record.
// Size: 36 bytes (tightly packed float32s, no padding).
type GPUColorNormalVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Color    [3]float32 // offset 12: material diffuse color (12 bytes)
	Normal   [3]float32 // offset 24: assembled normal (12 bytes)
}

// Size returns the size of the GPUColorNormalVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUColorNormalVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUColorNormalVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 36-byte buffer ready for GPU upload.
func (g *GPUColorNormalVertex) Marshal() []byte {
	buf := make([]byte, 36)
	putFloats(buf[0:12], g.Position[:])
	putFloats(buf[12:24], g.Color[:])
	putFloats(buf[24:36], g.Normal[:])
	return buf
}

func putFloats(dst []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[i*4:(i+1)*4], math.Float32bits(v))
	}
}

func colorVertexAttributes() []common.VertexAttribute {
	var v GPUColorVertex
	return []common.VertexAttribute{
		{Location: 0, Components: 3, Offset: int(unsafe.Offsetof(v.Position))},
		{Location: 1, Components: 3, Offset: int(unsafe.Offsetof(v.Color))},
	}
}

func colorNormalVertexAttributes() []common.VertexAttribute {
	var v GPUColorNormalVertex
	return []common.VertexAttribute{
		{Location: 0, Components: 3, Offset: int(unsafe.Offsetof(v.Position))},
		{Location: 1, Components: 3, Offset: int(unsafe.Offsetof(v.Color))},
		{Location: 2, Components: 3, Offset: int(unsafe.Offsetof(v.Normal))},
	}
}
