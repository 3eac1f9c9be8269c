package renderer

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/gl/v4.1-core/gl"
)

func TestGLStateFor(t *testing.T) {
	additive := &wgpu.BlendState{
		Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
		Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorZero, Operation: wgpu.BlendOperationAdd},
	}

	tcs := []struct {
		name string
		opts []pipeline.PipelineBuilderOption
		want glState
	}{
		{
			name: "defaults",
			want: glState{
				depthTest:  true,
				depthWrite: true,
				frontFace:  gl.CCW,
				blendFunc:  [4]uint32{gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA},
			},
		},
		{
			name: "depth off",
			opts: []pipeline.PipelineBuilderOption{pipeline.WithDepthTestEnabled(false), pipeline.WithDepthWriteEnabled(false)},
			want: glState{
				frontFace: gl.CCW,
				blendFunc: [4]uint32{gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA},
			},
		},
		{
			name: "cull front clockwise",
			opts: []pipeline.PipelineBuilderOption{pipeline.WithCullMode(wgpu.CullModeFront), pipeline.WithFrontFace(wgpu.FrontFaceCW)},
			want: glState{
				depthTest:  true,
				depthWrite: true,
				cullFace:   gl.FRONT,
				frontFace:  gl.CW,
				blendFunc:  [4]uint32{gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA},
			},
		},
		{
			name: "additive blend",
			opts: []pipeline.PipelineBuilderOption{pipeline.WithBlendEnabled(true), pipeline.WithBlendState(additive), pipeline.WithCullMode(wgpu.CullModeBack)},
			want: glState{
				depthTest:  true,
				depthWrite: true,
				cullFace:   gl.BACK,
				frontFace:  gl.CCW,
				blend:      true,
				blendFunc:  [4]uint32{gl.ONE, gl.ONE, gl.ONE, gl.ZERO},
			},
		},
		{
			name: "nil blend state keeps the alpha blend",
			opts: []pipeline.PipelineBuilderOption{pipeline.WithBlendEnabled(true), pipeline.WithBlendState(nil)},
			want: glState{
				depthTest:  true,
				depthWrite: true,
				frontFace:  gl.CCW,
				blend:      true,
				blendFunc:  [4]uint32{gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA},
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := glStateFor(pipeline.NewPipeline("k", tc.opts...)); got != tc.want {
				t.Fatalf("glStateFor()=%+v; want %+v", got, tc.want)
			}
		})
	}
}

func TestGLDrawTargets(t *testing.T) {
	glPipeline := func() pipeline.Pipeline {
		p := pipeline.NewPipeline("obj_color")
		p.SetPipeline(&glProgram{id: 1})
		return p
	}
	foreignPipeline := pipeline.NewPipeline("obj_color")
	foreignPipeline.SetPipeline(&fakeResource{})

	uploaded := func() bind_group_provider.BindGroupProvider {
		mesh := bind_group_provider.NewBindGroupProvider("cube")
		mesh.SetVertexArray(&glVertexArray{id: 2})
		mesh.SetVertexBuffer(&glBuffer{id: 3})
		return mesh
	}
	noArray := bind_group_provider.NewBindGroupProvider("cube")
	noArray.SetVertexBuffer(&glBuffer{id: 3})
	foreignBuffer := bind_group_provider.NewBindGroupProvider("cube")
	foreignBuffer.SetVertexArray(&glVertexArray{id: 2})
	foreignBuffer.SetVertexBuffer(&fakeResource{})

	tcs := []struct {
		name    string
		p       pipeline.Pipeline
		mesh    bind_group_provider.BindGroupProvider
		wantErr string
	}{
		{name: "ready", p: glPipeline(), mesh: uploaded()},
		{name: "unregistered pipeline", p: pipeline.NewPipeline("obj_color"), mesh: uploaded(), wantErr: "pipeline obj_color has handle <nil>"},
		{name: "pipeline from another backend", p: foreignPipeline, mesh: uploaded(), wantErr: "*renderer.fakeResource, want an OpenGL program"},
		{name: "no vertex array", p: glPipeline(), mesh: noArray, wantErr: "mesh cube has vertex array <nil>"},
		{name: "buffer from another backend", p: glPipeline(), mesh: foreignBuffer, wantErr: "want an OpenGL buffer"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			program, vao, vbo, err := glDrawTargets(tc.p, tc.mesh)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("err=%v; want it to mention %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("glDrawTargets: %v", err)
			}
			if program.id != 1 || vao.id != 2 || vbo.id != 3 {
				t.Fatalf("targets=%d/%d/%d; want 1/2/3", program.id, vao.id, vbo.id)
			}
		})
	}
}
