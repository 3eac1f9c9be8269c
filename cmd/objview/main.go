// Command objview loads a Wavefront OBJ/MTL (or glTF) model and draws it spinning in a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/Carmen-Shannon/oxy-obj/engine"
	"github.com/Carmen-Shannon/oxy-obj/engine/loader"
	"github.com/Carmen-Shannon/oxy-obj/engine/model"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-obj/engine/window"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	objPath   string
	mtlPath   string
	layout    string
	lookup    string
	backend   string
	vertPath  string
	fragPath  string
	width     int
	height    int
	title     string
	verbose   bool
	profile   bool
	vsync     bool
	msaa      int
	software  bool
	resizable bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.objPath, "obj", "Monster1.obj", "model file (.obj, .gltf or .glb)")
	flag.StringVar(&o.mtlPath, "mtl", "", "material library (defaults to the mtllib named in the .obj)")
	flag.StringVar(&o.layout, "layout", model.LayoutColor.String(), "vertex layout: color or color-normal")
	flag.StringVar(&o.lookup, "lookup", model.FaceLookupScan.String(), "face lookup: scan or indexed")
	flag.StringVar(&o.backend, "backend", renderer.BackendTypeOpenGL.String(), "renderer backend: opengl or wgpu")
	flag.StringVar(&o.vertPath, "vert", "", "vertex shader file overriding the built-in one")
	flag.StringVar(&o.fragPath, "frag", "", "fragment shader file overriding the built-in one")
	flag.IntVar(&o.width, "width", 640, "window width in pixels")
	flag.IntVar(&o.height, "height", 480, "window height in pixels")
	flag.StringVar(&o.title, "title", "OpenGL Triangle", "window title")
	flag.BoolVar(&o.verbose, "verbose", false, "log parse phases and buffer sizes")
	flag.BoolVar(&o.profile, "profile", false, "log frame rate and memory statistics every second")
	flag.BoolVar(&o.vsync, "vsync", false, "wait for vertical blank when presenting")
	flag.IntVar(&o.msaa, "msaa", int(renderer.MSAA4x), "multisample count for the wgpu backend: 1, 4, 8 or 16")
	flag.BoolVar(&o.software, "software", false, "ask the wgpu backend for a software fallback adapter")
	flag.BoolVar(&o.resizable, "resizable", true, "allow the window to be resized")
	flag.Parse()
	return o
}

func main() {
	if err := run(parseFlags()); err != nil {
		log.Fatalf("objview: %v", err)
	}
}

func run(o options) error {
	layout, err := model.ParseVertexLayout(o.layout)
	if err != nil {
		return err
	}
	lookup, err := model.ParseFaceLookup(o.lookup)
	if err != nil {
		return err
	}
	backendType, err := renderer.ParseBackendType(o.backend)
	if err != nil {
		return err
	}
	msaa, err := renderer.ParseMSAASampleCount(o.msaa)
	if err != nil {
		return err
	}

	clientAPI := window.ClientAPINone
	if backendType == renderer.BackendTypeOpenGL {
		clientAPI = window.ClientAPIOpenGL
	}
	win, err := window.NewWindow(
		window.WithTitle(o.title),
		window.WithWidth(o.width),
		window.WithHeight(o.height),
		window.WithResizable(o.resizable),
		window.WithClientAPI(clientAPI),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	presentMode := renderer.PresentModeUncapped
	if o.vsync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(backendType, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(o.software),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	for _, line := range r.DeviceInfo().Lines() {
		fmt.Println(line)
	}

	p, err := buildPipeline(layout, r.ShaderLanguage(), o.vertPath, o.fragPath)
	if err != nil {
		return err
	}
	if err := r.RegisterPipelines(p); err != nil {
		return err
	}

	l := loader.NewLoader(
		loader.WithRenderer(r),
		loader.WithLayout(layout),
		loader.WithFaceLookup(lookup),
		loader.WithParseOptions(loader.WithVerbose(o.verbose)),
	)
	var m model.Model
	if o.mtlPath != "" {
		m, err = l.LoadWithMaterials(o.objPath, o.mtlPath)
	} else {
		m, err = l.Load(o.objPath)
	}
	if err != nil {
		return err
	}
	defer m.Release()

	if o.verbose {
		log.Printf("[Loader] %s: %d vertices, %d indices, materials %v",
			m.Name(), m.VertexCount(), m.IndexCount(), m.ImportedMaterials().Names())
	}

	e, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithModel(m),
		engine.WithProfiling(o.profile),
	)
	if err != nil {
		return err
	}
	return e.Run()
}

// buildPipeline pairs the built-in shaders for layout with any file overrides.
func buildPipeline(layout model.VertexLayout, language shader.Language, vertPath, fragPath string) (pipeline.Pipeline, error) {
	vs, fs, err := shader.Defaults(layout, language)
	if err != nil {
		return nil, err
	}
	if vertPath != "" {
		if vs, err = shader.NewShader(layout.PipelineKey()+"_vs", shader.ShaderTypeVertex, vertPath); err != nil {
			return nil, err
		}
	}
	if fragPath != "" {
		if fs, err = shader.NewShader(layout.PipelineKey()+"_fs", shader.ShaderTypeFragment, fragPath); err != nil {
			return nil, err
		}
	}
	return pipeline.ForLayout(layout, vs, fs), nil
}
