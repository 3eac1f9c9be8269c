package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-obj/engine/model"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/material"
)

// Format identifies a model file format.
type Format int

const (
	// FormatOBJ is a Wavefront geometry file (.obj) with an optional material library (.mtl).
	FormatOBJ Format = iota
	// FormatGLTF is a glTF 2.0 JSON (.gltf) or binary (.glb) file.
	FormatGLTF
)

// FormatFromPath selects the Format for a file extension (case-insensitive).
//
// Parameters:
//   - path: the model file path
//
// Returns:
//   - Format: the detected format
//   - error: a wrapped ErrUnsupportedFormat for unknown extensions
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		return FormatOBJ, nil
	case ".gltf", ".glb":
		return FormatGLTF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// MeshUploader is the part of renderer.Renderer the Loader uses to move assembled
// vertex and index data to the GPU.
type MeshUploader interface {
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
}

// LoadRequest names one model for LoadBatch. MTLPath is optional and only used for .obj files.
type LoadRequest struct {
	Path    string
	MTLPath string
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	renderer MeshUploader

	modelCache map[string]model.Model

	objBackend  objLoaderBackend
	gltfBackend gltfLoaderBackend

	layout       model.VertexLayout
	lookup       model.FaceLookup
	parseOptions []ParseOption
	workers      int
	parse        *parseConfig
}

// Loader defines the public-facing interface for loading, assembling and caching models.
// It hides the file format behind per-format backends, assembles the imported geometry into
// interleaved vertex records with the configured layout and face lookup, uploads the result
// through the attached renderer (if any) and caches models by path or name.
type Loader interface {
	// Load imports a model file and caches the result by path.
	// If the model is already cached, the cached version is returned.
	// The backend is selected from the file extension (.obj, .gltf, .glb). An .obj file
	// uses the material library named by its mtllib line.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadWithMaterials imports a Wavefront geometry file with an explicit material library
	// and caches the result by the geometry path.
	//
	// Parameters:
	//   - objPath: the geometry file path
	//   - mtlPath: the material library path
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	LoadWithMaterials(objPath, mtlPath string) (model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	// Wavefront streams get an empty material table.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//   - format: the stream format
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, format Format) (model.Model, error)

	// LoadWavefrontReaders imports a Wavefront geometry stream together with its material
	// library stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - obj: the geometry stream
	//   - mtl: the material library stream
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadWavefrontReaders(name string, obj, mtl io.Reader) (model.Model, error)

	// LoadBatch imports several model files. Parsing and assembly run on a worker pool;
	// GPU upload runs afterwards on the calling goroutine in request order.
	//
	// Parameters:
	//   - requests: the files to load
	//
	// Returns:
	//   - []model.Model: the models in request order
	//   - error: the first error encountered, in request order
	LoadBatch(requests []LoadRequest) ([]model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the full model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]model.Model),
		layout:     model.LayoutColor,
		lookup:     model.FaceLookupScan,
		workers:    4,
	}

	for _, option := range options {
		option(l)
	}

	l.parse = newParseConfig(l.parseOptions)
	l.objBackend = newOBJLoaderBackend(l.parseOptions...)
	l.gltfBackend = newGLTFLoaderBackend(l.parse.initialCapacity)
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	m, err := l.importAndAssemble(LoadRequest{Path: path})
	if err != nil {
		return nil, err
	}
	return l.finish(path, m)
}

func (l *loader) LoadWithMaterials(objPath, mtlPath string) (model.Model, error) {
	if cached := l.Get(objPath); cached != nil {
		return cached, nil
	}

	m, err := l.importAndAssemble(LoadRequest{Path: objPath, MTLPath: mtlPath})
	if err != nil {
		return nil, err
	}
	return l.finish(objPath, m)
}

func (l *loader) LoadReader(name string, r io.Reader, format Format) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	var backend loaderBackend
	switch format {
	case FormatOBJ:
		backend = l.objBackend
	case FormatGLTF:
		backend = l.gltfBackend
	default:
		return nil, fmt.Errorf("%w: format %d", ErrUnsupportedFormat, format)
	}

	imported, err := backend.LoadReader(name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.finish(name, l.assemble(imported))
}

func (l *loader) LoadWavefrontReaders(name string, obj, mtl io.Reader) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	imported, err := l.objBackend.LoadReaders(name, obj, mtl)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.finish(name, l.assemble(imported))
}

func (l *loader) LoadBatch(requests []LoadRequest) ([]model.Model, error) {
	results := make([]model.Model, len(requests))
	errs := make([]error, len(requests))

	pool := worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)

	// Phase 1: parse and assemble on the pool. Only CPU work happens here;
	// graphics contexts are bound to the calling thread.
	var wg sync.WaitGroup
	for i, req := range requests {
		if cached := l.Get(req.Path); cached != nil {
			results[i] = cached
			continue
		}

		wg.Add(1)
		idx, r := i, req
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				m, err := l.importAndAssemble(r)
				results[idx], errs[idx] = m, err
				return m, err
			},
		})
	}
	wg.Wait()

	// Phase 2: upload and cache in request order.
	for i, req := range requests {
		if errs[i] != nil {
			return nil, errs[i]
		}
		m, err := l.finish(req.Path, results[i])
		if err != nil {
			return nil, err
		}
		results[i] = m
	}
	return results, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// importAndAssemble imports a file through the backend matching its extension and assembles it.
// It touches no GPU state and is safe to run on worker goroutines.
func (l *loader) importAndAssemble(req LoadRequest) (model.Model, error) {
	format, err := FormatFromPath(req.Path)
	if err != nil {
		return nil, err
	}

	var imported *model.ImportedModel
	switch {
	case format == FormatOBJ && req.MTLPath != "":
		imported, err = l.objBackend.LoadWithMaterials(req.Path, req.MTLPath)
	case format == FormatOBJ:
		imported, err = l.objBackend.Load(req.Path)
	default:
		imported, err = l.gltfBackend.Load(req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", req.Path, err)
	}
	return l.assemble(imported), nil
}

// assemble converts an ImportedModel (CPU data) into a Model with interleaved vertex records
// and releases the imported geometry.
func (l *loader) assemble(imported *model.ImportedModel) model.Model {
	start := time.Now()
	attrs := model.Assemble(imported.Geometry, imported.Materials, l.layout, l.lookup)

	mdl := model.NewModel(
		model.WithName(imported.Name),
		model.WithAttributes(attrs),
		model.WithBounds(imported.Geometry),
		model.WithImportedMaterials(imported.Materials),
		model.WithRenderMaterials(material.NewMaterials(imported.Materials, l.layout.PipelineKey())...),
	)

	imported.Geometry.Release()
	l.parse.verbosef("Assembled %q: %d vertices, %d indices, layout %s, lookup %s (%s)",
		imported.Name, mdl.VertexCount(), mdl.IndexCount(), l.layout, l.lookup, time.Since(start))
	return mdl
}

// finish uploads the model when a renderer is attached and stores it in the cache.
// If another call cached the same key first, that model wins and is returned.
func (l *loader) finish(key string, m model.Model) (model.Model, error) {
	if cached := l.Get(key); cached != nil {
		return cached, nil
	}

	if l.renderer != nil {
		provider := bind_group_provider.NewBindGroupProvider(m.Name() + "_mesh")
		if err := l.renderer.InitMeshBuffers(provider, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
			return nil, fmt.Errorf("failed to init mesh buffers for %q: %w", m.Name(), err)
		}
		m.SetMeshProvider(provider)
		m.ReleaseCPUData()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.modelCache[key]; ok {
		return cached, nil
	}
	l.modelCache[key] = m
	return m, nil
}

// modelName derives a model name from a file path: the base name without extension.
func modelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
