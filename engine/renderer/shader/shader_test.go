package shader

import (
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-obj/engine/model"
)

func TestLanguageFromPath(t *testing.T) {
	tcs := []struct {
		path string
		want Language
	}{
		{path: "vertexShader.glsl", want: LanguageGLSL},
		{path: "shader.vert", want: LanguageGLSL},
		{path: "shaders/color.wgsl", want: LanguageWGSL},
		{path: "COLOR.WGSL", want: LanguageWGSL},
		{path: "noext", want: LanguageGLSL},
	}
	for _, tc := range tcs {
		if got := LanguageFromPath(tc.path); got != tc.want {
			t.Errorf("LanguageFromPath(%q)=%v; want %v", tc.path, got, tc.want)
		}
	}
}

func TestPreProcessor_Process(t *testing.T) {
	tcs := []struct {
		name     string
		language Language
		source   string
		contains string
		wantErr  bool
	}{
		{
			name:     "glsl include",
			language: LanguageGLSL,
			source:   "#version 410 core\n//@oxy:include frame_params\nvoid main() {}",
			contains: "uniform FrameParams",
		},
		{
			name:     "wgsl include with spacing",
			language: LanguageWGSL,
			source:   "  // @oxy:include frame_params\n",
			contains: "var<uniform> frame : FrameParams",
		},
		{
			name:     "plain comments are kept",
			language: LanguageGLSL,
			source:   "// just a comment\nvoid main() {}",
			contains: "// just a comment",
		},
		{name: "unknown include", language: LanguageGLSL, source: "//@oxy:include camera", wantErr: true},
		{name: "unknown annotation", language: LanguageWGSL, source: "//@oxy:group 0 0 x y z", wantErr: true},
		{name: "missing argument", language: LanguageWGSL, source: "//@oxy:include", wantErr: true},
		{name: "empty annotation", language: LanguageWGSL, source: "//@oxy:", wantErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out, err := NewPreProcessor(tc.language).Process(tc.source)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Process succeeded with %q", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if !strings.Contains(out, tc.contains) {
				t.Fatalf("output %q does not contain %q", out, tc.contains)
			}
			if strings.Contains(out, "@oxy:") {
				t.Fatalf("annotation left in output %q", out)
			}
		})
	}
}

func TestNewShaderFromSource_EntryPointsAndInputs(t *testing.T) {
	tcs := []struct {
		name       string
		language   Language
		shaderType ShaderType
		source     string
		entry      string
		inputs     map[uint32]int
	}{
		{
			name:       "glsl vertex",
			language:   LanguageGLSL,
			shaderType: ShaderTypeVertex,
			source: `#version 410 core
layout (location = 0) in vec3 aPos;
layout(location=1) in vec2 aUV;
// layout(location = 5) in vec3 commented;
layout(location = 2) in int ignored;
void main() { gl_Position = vec4(aPos, 1.0); }`,
			entry:  "main",
			inputs: map[uint32]int{0: 3, 1: 2},
		},
		{
			name:       "wgsl vertex",
			language:   LanguageWGSL,
			shaderType: ShaderTypeVertex,
			source: `struct Out { @builtin(position) p : vec4<f32>, @location(0) c : vec3<f32> };
struct In { @location(0) pos : vec3<f32>, @location(1) color : vec3f };
/* @vertex fn commented() {} */
@vertex
fn main_vs(v : In) -> Out { var o : Out; return o; }`,
			entry:  "main_vs",
			inputs: map[uint32]int{0: 3, 1: 3},
		},
		{
			name:       "wgsl fragment",
			language:   LanguageWGSL,
			shaderType: ShaderTypeFragment,
			source:     "@fragment fn shade() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }",
			entry:      "shade",
			inputs:     map[uint32]int{},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewShaderFromSource("k", tc.shaderType, tc.language, tc.source)
			if err != nil {
				t.Fatalf("NewShaderFromSource: %v", err)
			}
			if s.EntryPoint() != tc.entry {
				t.Fatalf("EntryPoint=%q; want %q", s.EntryPoint(), tc.entry)
			}
			if !maps.Equal(s.Inputs(), tc.inputs) {
				t.Fatalf("Inputs=%v; want %v", s.Inputs(), tc.inputs)
			}
			if (s.Module() != nil) != (tc.language == LanguageWGSL) {
				t.Fatalf("Module=%v for %v", s.Module(), tc.language)
			}
		})
	}
}

func TestNewShaderFromSource_MissingEntryPoint(t *testing.T) {
	if _, err := NewShaderFromSource("k", ShaderTypeVertex, LanguageGLSL, "#version 410 core\n"); err == nil {
		t.Fatal("expected an error for GLSL without main")
	}
	if _, err := NewShaderFromSource("k", ShaderTypeFragment, LanguageWGSL, "@vertex fn vs() {}"); err == nil {
		t.Fatal("expected an error for WGSL without a fragment entry point")
	}
}

func TestNewShader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fragmentShader.glsl")
	if err := os.WriteFile(path, []byte("#version 410 core\nout vec4 c;\nvoid main() { c = vec4(1.0); }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewShader("fs", ShaderTypeFragment, path)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if s.Key() != "fs" || s.Language() != LanguageGLSL || s.ShaderType() != ShaderTypeFragment {
		t.Fatalf("shader=%s %v %v", s.Key(), s.Language(), s.ShaderType())
	}

	if _, err := NewShader("missing", ShaderTypeVertex, filepath.Join(dir, "nope.glsl")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if _, err := NewShader("empty", ShaderTypeVertex, ""); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}

func TestDefaults(t *testing.T) {
	for _, layout := range []model.VertexLayout{model.LayoutColor, model.LayoutColorNormal} {
		for _, language := range []Language{LanguageGLSL, LanguageWGSL} {
			t.Run(layout.String()+"/"+language.String(), func(t *testing.T) {
				vs, fs, err := Defaults(layout, language)
				if err != nil {
					t.Fatalf("Defaults: %v", err)
				}
				if vs.ShaderType() != ShaderTypeVertex || fs.ShaderType() != ShaderTypeFragment {
					t.Fatal("stages swapped")
				}
				if !strings.Contains(vs.Source(), "FrameParams") {
					t.Fatal("vertex shader does not include FrameParams")
				}
				attrs := layout.Attributes()
				if len(vs.Inputs()) != len(attrs) {
					t.Fatalf("Inputs=%v; want %d attributes", vs.Inputs(), len(attrs))
				}
				for _, a := range attrs {
					if vs.Inputs()[a.Location] != a.Components {
						t.Fatalf("location %d: shader has %d components, layout has %d", a.Location, vs.Inputs()[a.Location], a.Components)
					}
				}
			})
		}
	}

	if _, _, err := Defaults(model.VertexLayout(9), LanguageGLSL); err == nil {
		t.Fatal("expected an error for an unknown layout")
	}
}
