package engine

import (
	"github.com/Carmen-Shannon/oxy-obj/engine/model"
	"github.com/Carmen-Shannon/oxy-obj/engine/profiler"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer"
	"github.com/Carmen-Shannon/oxy-obj/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
		if e.profiler != nil {
			e.profiler.SetEnabled(enabled)
		}
	}
}

// WithProfiler replaces the frame clock the engine creates from the window timer.
//
// Parameters:
//   - p: a configured Profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window the engine polls and reads its timer from.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer the engine draws with. The model's pipeline must already be
// registered on it.
//
// Parameters:
//   - r: a created Renderer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithModel sets the model drawn every frame. The model must already be uploaded.
//
// Parameters:
//   - m: the uploaded Model
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithModel(m model.Model) EngineBuilderOption {
	return func(e *engine) {
		e.model = m
	}
}

// WithFrameLimit stops the loop after the given number of frames. Pass 0 to run until the
// window closes (default).
//
// Parameters:
//   - frames: the number of frames to render
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(frames uint64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frames
	}
}
