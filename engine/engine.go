package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-obj/engine/model"
	"github.com/Carmen-Shannon/oxy-obj/engine/profiler"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/material"
)

// State is the lifecycle state of the Engine.
type State int

const (
	// StateUninitialized is the state before NewEngine has attached a window.
	StateUninitialized State = iota
	// StateWindowed means the window, renderer and model are ready but the loop has not started.
	StateWindowed
	// StateRunning means the render loop is executing frames.
	StateRunning
	// StateTerminated means the loop has exited and the engine cannot be run again.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateWindowed:
		return "windowed"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrNotReady is returned by Run when the engine is missing a window, renderer or model.
var ErrNotReady = errors.New("engine is not ready to run")

// ErrTerminated is returned by Run when the engine has already run to completion.
var ErrTerminated = errors.New("engine has terminated")

// frameWindow is the part of window.Window the render loop drives.
type frameWindow interface {
	SetResizeCallback(callback func(width, height int))
	Time() float64
	PollEvents() bool
	IsRunning() bool
}

// frameRenderer is the part of renderer.Renderer the render loop drives.
type frameRenderer interface {
	Resize(width, height int)
	InitFrameParams(provider bind_group_provider.BindGroupProvider) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	BeginFrame() error
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error
	EndFrame()
	Present()
}

// engine implements the Engine interface.
// Runs the render loop on the calling goroutine, which must own the window's OS thread.
type engine struct {
	mu    sync.Mutex
	state State

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   frameWindow
	renderer frameRenderer
	model    model.Model

	frameParams   bind_group_provider.BindGroupProvider
	frameCallback func(stats profiler.FrameStats)

	profiler         *profiler.Profiler
	profilingEnabled bool
	frameLimit       uint64 // stop after this many frames; 0 = until the window closes
}

// Engine is the main entry point for the viewer.
// It owns the frame lifecycle: write the frame uniform, clear, draw the model, present, poll events.
type Engine interface {
	// State returns the current lifecycle state.
	//
	// Returns:
	//   - State: the engine state
	State() State

	// Model returns the model drawn every frame.
	//
	// Returns:
	//   - model.Model: the model
	Model() model.Model

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers a function called after each presented frame.
	//
	// Parameters:
	//   - callback: function receiving the frame timing (or nil to disable)
	SetFrameCallback(callback func(stats profiler.FrameStats))

	// Run executes frames until the window closes, Quit is called or the frame limit is reached.
	// Blocks the calling goroutine, which must be the one that created the window.
	//
	// Returns:
	//   - error: ErrNotReady or ErrTerminated, or the first frame error
	Run() error

	// Quit asks the loop to stop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options. WithWindow, WithRenderer and WithModel
// are required; once all three are present the engine is in StateWindowed.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrNotReady if a required option is missing, or an error creating the frame uniform
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		state:       StateUninitialized,
		quitChannel: make(chan struct{}),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil || e.renderer == nil || e.model == nil {
		return nil, fmt.Errorf("%w: a window, renderer and model are required", ErrNotReady)
	}
	if e.model.MeshProvider() == nil {
		return nil, fmt.Errorf("%w: model %s has not been uploaded", ErrNotReady, e.model.Name())
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(
			profiler.WithTimeSource(e.window.Time),
			profiler.WithEnabled(e.profilingEnabled),
		)
	}

	e.frameParams = bind_group_provider.NewBindGroupProvider("frame_params")
	if err := e.renderer.InitFrameParams(e.frameParams); err != nil {
		return nil, fmt.Errorf("init frame params: %w", err)
	}

	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.Resize(width, height)
	})

	e.state = StateWindowed
	return e, nil
}

func (e *engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *engine) setState(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
}

func (e *engine) Model() model.Model {
	return e.model
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profiler.SetEnabled(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profiler.SetEnabled(false)
}

func (e *engine) SetFrameCallback(callback func(stats profiler.FrameStats)) {
	e.frameCallback = callback
}

func (e *engine) Run() error {
	switch e.State() {
	case StateTerminated:
		return ErrTerminated
	case StateWindowed:
	default:
		return ErrNotReady
	}

	e.setState(StateRunning)
	defer e.setState(StateTerminated)

	for e.window.IsRunning() {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}

		stats, err := e.frame()
		if err != nil {
			return err
		}

		if e.frameCallback != nil {
			e.frameCallback(stats)
		}
		if e.frameLimit > 0 && stats.Frame >= e.frameLimit {
			return nil
		}

		if !e.window.PollEvents() {
			return nil
		}
	}
	return nil
}

// frame renders a single frame: uniform write, clear, draw, present.
func (e *engine) frame() (profiler.FrameStats, error) {
	stats := e.profiler.Tick()

	params := material.GPUFrameParams{Time: float32(stats.Elapsed)}
	e.renderer.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: e.frameParams,
		Binding:  0,
		Data:     params.Marshal(),
	}})

	if err := e.renderer.BeginFrame(); err != nil {
		// Surface acquisition can fail transiently (minimized window); skip the frame.
		log.Printf("[Engine] skipping frame %d: %v", stats.Frame, err)
		return stats, nil
	}
	drawErr := e.renderer.DrawCall(e.model.PipelineKey(), e.model.MeshProvider(), []bind_group_provider.BindGroupProvider{e.frameParams})
	e.renderer.EndFrame()
	if drawErr != nil {
		return stats, fmt.Errorf("draw %s: %w", e.model.Name(), drawErr)
	}
	e.renderer.Present()
	return stats, nil
}

// Quit signals the render loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}
