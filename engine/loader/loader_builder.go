package loader

import (
	"github.com/Carmen-Shannon/oxy-obj/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithRenderer is an option builder that sets the renderer used to upload loaded models.
// Without one, models keep their vertex and index data on the CPU and have no mesh provider.
//
// Parameters:
//   - r: the renderer instance (any renderer.Renderer satisfies MeshUploader)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the renderer option to a loader
func WithRenderer(r MeshUploader) LoaderBuilderOption {
	return func(l *loader) {
		l.renderer = r
	}
}

// WithLayout is an option builder that sets the vertex record layout of assembled models.
//
// Parameters:
//   - layout: model.LayoutColor (default) or model.LayoutColorNormal
//
// Returns:
//   - LoaderBuilderOption: a function that applies the layout option to a loader
func WithLayout(layout model.VertexLayout) LoaderBuilderOption {
	return func(l *loader) {
		l.layout = layout
	}
}

// WithFaceLookup is an option builder that sets the assembler's face selection strategy.
//
// Parameters:
//   - lookup: model.FaceLookupScan (default) or model.FaceLookupIndexed
//
// Returns:
//   - LoaderBuilderOption: a function that applies the face lookup option to a loader
func WithFaceLookup(lookup model.FaceLookup) LoaderBuilderOption {
	return func(l *loader) {
		l.lookup = lookup
	}
}

// WithParseOptions is an option builder that forwards options to the Wavefront parsers.
//
// Parameters:
//   - opts: the parse options (logger, verbose, initial capacity)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the parse options to a loader
func WithParseOptions(opts ...ParseOption) LoaderBuilderOption {
	return func(l *loader) {
		l.parseOptions = append(l.parseOptions, opts...)
	}
}

// WithWorkers is an option builder that sets the worker count used by LoadBatch.
//
// Parameters:
//   - workers: the maximum number of concurrent imports (values < 1 are ignored)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(workers int) LoaderBuilderOption {
	return func(l *loader) {
		if workers > 0 {
			l.workers = workers
		}
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}
