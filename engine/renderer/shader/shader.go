package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader runs in.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the lowercase stage name.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// Language identifies the shading language a shader source is written in.
// The OpenGL backend consumes GLSL and the WebGPU backend consumes WGSL.
type Language int

const (
	// LanguageGLSL is GLSL 4.10 core.
	LanguageGLSL Language = iota

	// LanguageWGSL is the WebGPU shading language.
	LanguageWGSL
)

// String returns the lowercase language name.
func (l Language) String() string {
	if l == LanguageWGSL {
		return "wgsl"
	}
	return "glsl"
}

// LanguageFromPath infers the shading language from a file extension.
// Files ending in .wgsl are WGSL; everything else (.glsl, .vert, .frag, ...) is treated as GLSL.
//
// Parameters:
//   - path: the shader file path
//
// Returns:
//   - Language: the inferred language
func LanguageFromPath(path string) Language {
	if strings.EqualFold(filepath.Ext(path), ".wgsl") {
		return LanguageWGSL
	}
	return LanguageGLSL
}

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	language   Language
	entryPoint string
	inputs     map[uint32]int
	module     *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a loaded and pre-processed shader stage. It exposes the
// shader's unique key, processed source, entry point and the vertex inputs it declares, which
// the pipeline checks against the model's vertex layout.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed shader source code.
	//
	// Returns:
	//   - string: the source with all @oxy:include annotations expanded
	Source() string

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Language returns the shading language of the source.
	//
	// Returns:
	//   - Language: LanguageGLSL or LanguageWGSL
	Language() Language

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name ("main" for GLSL)
	EntryPoint() string

	// Inputs returns the vertex inputs declared by a vertex shader, keyed by location with the
	// number of float components as value. Fragment shaders return an empty map.
	//
	// Returns:
	//   - map[uint32]int: component counts keyed by input location
	Inputs() map[uint32]int

	// Module returns the wgpu.ShaderModuleDescriptor for a WGSL shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor, or nil for GLSL shaders
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader reads a shader source file and creates a Shader from it.
// The language is inferred from the file extension with LanguageFromPath.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the stage of the shader
//   - sourcePath: the file path to read the source from
//
// Returns:
//   - Shader: the loaded shader
//   - error: error if the file cannot be read or the source is invalid
func NewShader(key string, shaderType ShaderType, sourcePath string) (Shader, error) {
	if sourcePath == "" {
		return nil, fmt.Errorf("shader %s: no source path", key)
	}
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to read source file %q: %w", key, sourcePath, err)
	}
	return NewShaderFromSource(key, shaderType, LanguageFromPath(sourcePath), string(data))
}

// NewShaderFromSource creates a Shader from in-memory source text.
// The source is run through the pre-processor, then its entry point and vertex inputs are parsed.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage of the shader
//   - language: the shading language of source
//   - source: the raw shader source
//
// Returns:
//   - Shader: the loaded shader
//   - error: error if pre-processing fails or no entry point is found
func NewShaderFromSource(key string, shaderType ShaderType, language Language, source string) (Shader, error) {
	processed, err := NewPreProcessor(language).Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to pre-process source: %w", key, err)
	}

	s := &shader{
		key:        key,
		source:     processed,
		shaderType: shaderType,
		language:   language,
		inputs:     make(map[uint32]int),
	}

	s.entryPoint = parseEntryPoint(processed, language, shaderType)
	if s.entryPoint == "" {
		return nil, fmt.Errorf("shader %s: no %s entry point found", key, shaderType)
	}
	if shaderType == ShaderTypeVertex {
		s.inputs = parseVertexInputs(processed, language)
	}
	if language == LanguageWGSL {
		s.module = &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: processed,
			},
		}
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Language() Language {
	return s.language
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Inputs() map[uint32]int {
	return s.inputs
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
