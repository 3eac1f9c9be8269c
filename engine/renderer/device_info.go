package renderer

import "fmt"

// DeviceInfo identifies the graphics device a backend runs on. String fields the backend
// cannot query are left empty and limits it cannot query are left at zero.
type DeviceInfo struct {
	Backend                      RendererBackendType
	Version                      string
	Renderer                     string
	Vendor                       string
	ShadingLanguage              string
	MaxVertexAttribs             int
	MaxVertexUniformComponents   int
	MaxFragmentUniformComponents int
	MaxGeometryUniformComponents int
}

// Lines formats the known fields as "Label: value" lines, in the order they are printed at startup.
//
// Returns:
//   - []string: one line per known field
func (d DeviceInfo) Lines() []string {
	var lines []string
	str := func(label, v string) {
		if v != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", label, v))
		}
	}
	num := func(label string, v int) {
		if v != 0 {
			lines = append(lines, fmt.Sprintf("%s: %d", label, v))
		}
	}

	str("Backend", d.Backend.String())
	str("OpenGL Version", d.glOnly(d.Version))
	str("API Version", d.wgpuOnly(d.Version))
	str("Renderer", d.Renderer)
	str("Vendor", d.Vendor)
	str("GLSL Version", d.glOnly(d.ShadingLanguage))
	str("Shading Language", d.wgpuOnly(d.ShadingLanguage))
	num("Max Attributes", d.MaxVertexAttribs)
	num("Max Vertex Uniforms", d.MaxVertexUniformComponents)
	num("Max Fragment Uniforms", d.MaxFragmentUniformComponents)
	num("Max Geometry Uniforms", d.MaxGeometryUniformComponents)
	return lines
}

func (d DeviceInfo) glOnly(v string) string {
	if d.Backend == BackendTypeOpenGL {
		return v
	}
	return ""
}

func (d DeviceInfo) wgpuOnly(v string) string {
	if d.Backend != BackendTypeOpenGL {
		return v
	}
	return ""
}
