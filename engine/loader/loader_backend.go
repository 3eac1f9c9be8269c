package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-obj/engine/model"
)

// loaderBackend defines the generic interface for importing models from files or streams.
// Concrete implementations (objLoaderBackend, gltfLoaderBackend) handle format-specific details
// and all produce the same model.ImportedModel so assembly and upload stay format-agnostic.
type loaderBackend interface {
	// Load performs a full model import from the given file path, including any material
	// library the file references.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string) (*model.ImportedModel, error)

	// LoadReader imports a model from a reader stream. External files referenced by the
	// stream are not resolved.
	//
	// Parameters:
	//   - name: the model name
	//   - r: the reader providing model data
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (*model.ImportedModel, error)
}
