package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ClientAPI selects the graphics context the window is created with.
type ClientAPI int

const (
	// ClientAPINone creates the window without a graphics context. WebGPU brings its own.
	ClientAPINone ClientAPI = iota

	// ClientAPIOpenGL creates the window with an OpenGL 4.1 core profile context.
	ClientAPIOpenGL
)

// String returns the flag spelling of the client API.
func (c ClientAPI) String() string {
	switch c {
	case ClientAPIOpenGL:
		return "opengl"
	default:
		return "none"
	}
}

// Window provides platform windowing and event polling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// ClientAPI reports which graphics context the window was created with.
	//
	// Returns:
	//   - ClientAPI: ClientAPINone or ClientAPIOpenGL
	ClientAPI() ClientAPI

	// MakeContextCurrent binds the window's OpenGL context to the calling thread.
	// It is a no-op for windows without a context.
	MakeContextCurrent()

	// SwapBuffers swaps the front and back buffers of the OpenGL context.
	// It is a no-op for windows without a context.
	SwapBuffers()

	// SetSwapInterval sets the number of screen updates to wait before swapping buffers.
	// 1 waits for vertical blank, 0 swaps immediately. It is a no-op for windows without a context.
	//
	// Parameters:
	//   - interval: the swap interval
	SetSwapInterval(interval int)

	// Time returns the seconds elapsed since the windowing library was initialized.
	//
	// Returns:
	//   - float64: elapsed seconds
	Time() float64

	// PollEvents processes pending window events without blocking.
	//
	// Returns:
	//   - bool: true if the window is still running after the events were processed
	PollEvents() bool

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// resizable allows the user to resize the window.
	resizable bool

	// clientAPI is the graphics context requested at creation.
	clientAPI ClientAPI

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the windowing library or the window cannot be initialized
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "OpenGL Triangle",
		width:     640,
		height:    480,
		resizable: true,
		clientAPI: ClientAPINone,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) ClientAPI() ClientAPI {
	return w.clientAPI
}

func (w *engineWindow) MakeContextCurrent() {
	platformMakeContextCurrent(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) SetSwapInterval(interval int) {
	platformSetSwapInterval(w, interval)
}

func (w *engineWindow) Time() float64 {
	return platformTime()
}

func (w *engineWindow) PollEvents() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
