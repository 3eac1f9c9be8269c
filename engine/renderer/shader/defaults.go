package shader

import (
	"embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-obj/engine/model"
)

//go:embed assets/*.glsl assets/*.wgsl
var defaultAssets embed.FS

// Defaults returns the built-in vertex and fragment shaders for a vertex layout.
// The vertex shader rotates the mesh around the Y axis by the frame time; the color-normal
// variant also applies a fixed directional light in the fragment stage.
//
// Parameters:
//   - layout: the vertex layout the shaders consume
//   - language: the shading language of the target backend
//
// Returns:
//   - Shader: the vertex shader
//   - Shader: the fragment shader
//   - error: error if the layout has no built-in shaders
func Defaults(layout model.VertexLayout, language Language) (Shader, Shader, error) {
	var base string
	switch layout {
	case model.LayoutColor:
		base = "color"
	case model.LayoutColorNormal:
		base = "color_normal"
	default:
		return nil, nil, fmt.Errorf("no built-in shaders for %s", layout)
	}

	vs, err := loadDefault(layout.PipelineKey()+"_vs", ShaderTypeVertex, language, fmt.Sprintf("assets/%s.vert.%s", base, language))
	if err != nil {
		return nil, nil, err
	}
	fs, err := loadDefault(layout.PipelineKey()+"_fs", ShaderTypeFragment, language, fmt.Sprintf("assets/%s.frag.%s", base, language))
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}

func loadDefault(key string, shaderType ShaderType, language Language, name string) (Shader, error) {
	src, err := defaultAssets.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShaderFromSource(key, shaderType, language, string(src))
}
