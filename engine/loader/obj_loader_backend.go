package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-obj/common"
	"github.com/Carmen-Shannon/oxy-obj/engine/model"
)

// objLoaderBackendImpl is the implementation of objLoaderBackend.
type objLoaderBackendImpl struct {
	opts []ParseOption
}

// objLoaderBackend is a loaderBackend implementation for Wavefront geometry files and
// their material libraries.
type objLoaderBackend interface {
	loaderBackend

	// LoadWithMaterials imports a geometry file using an explicit material library instead of
	// the file's mtllib reference.
	//
	// Parameters:
	//   - objPath: the geometry file path
	//   - mtlPath: the material library path
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if either file cannot be loaded
	LoadWithMaterials(objPath, mtlPath string) (*model.ImportedModel, error)

	// LoadReaders imports a geometry stream and an optional material library stream.
	//
	// Parameters:
	//   - name: the model name
	//   - obj: the geometry stream
	//   - mtl: the material library stream, or nil for an empty material table
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if either stream cannot be parsed
	LoadReaders(name string, obj, mtl io.Reader) (*model.ImportedModel, error)
}

var _ objLoaderBackend = &objLoaderBackendImpl{}

// newOBJLoaderBackend creates a new Wavefront loader backend.
//
// Parameters:
//   - opts: parse options forwarded to every parser call
//
// Returns:
//   - objLoaderBackend: the loader backend for .obj files
func newOBJLoaderBackend(opts ...ParseOption) objLoaderBackend {
	return &objLoaderBackendImpl{opts: opts}
}

// Load reads the geometry file, then the material library named by its first mtllib line
// (resolved next to the geometry file). A geometry file without mtllib gets an empty table.
func (b *objLoaderBackendImpl) Load(path string) (*model.ImportedModel, error) {
	g, err := LoadOBJ(path, b.opts...)
	if err != nil {
		return nil, err
	}

	var materials common.MaterialTable
	if len(g.MaterialLibs) > 0 {
		materials, err = LoadMTL(common.ResolveSibling(path, g.MaterialLibs[0]), b.opts...)
		if err != nil {
			return nil, err
		}
	}

	return &model.ImportedModel{
		Name:      modelName(path),
		Geometry:  g,
		Materials: materials,
	}, nil
}

func (b *objLoaderBackendImpl) LoadWithMaterials(objPath, mtlPath string) (*model.ImportedModel, error) {
	materials, err := LoadMTL(mtlPath, b.opts...)
	if err != nil {
		return nil, err
	}
	g, err := LoadOBJ(objPath, b.opts...)
	if err != nil {
		return nil, err
	}
	return &model.ImportedModel{
		Name:      modelName(objPath),
		Geometry:  g,
		Materials: materials,
	}, nil
}

func (b *objLoaderBackendImpl) LoadReader(name string, r io.Reader) (*model.ImportedModel, error) {
	return b.LoadReaders(name, r, nil)
}

func (b *objLoaderBackendImpl) LoadReaders(name string, obj, mtl io.Reader) (*model.ImportedModel, error) {
	var materials common.MaterialTable
	if mtl != nil {
		var err error
		materials, err = ParseMTL(mtl, b.opts...)
		if err != nil {
			return nil, err
		}
	}
	g, err := ParseOBJ(obj, b.opts...)
	if err != nil {
		return nil, err
	}
	return &model.ImportedModel{
		Name:      name,
		Geometry:  g,
		Materials: materials,
	}, nil
}
