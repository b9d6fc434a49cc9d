package window

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/lighthouse/engine/camera"
	"github.com/Carmen-Shannon/lighthouse/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Window provides the platform window with an OpenGL context, cursor control and device polling.
// All methods must be called from the goroutine that created the window.
type Window interface {
	camera.Window

	// PumpEvents processes pending window events. Key, button and cursor state read through Poller only
	// changes here.
	PumpEvents()

	// PollQuit reports whether the user asked to quit (window close or Escape). It does not process events.
	//
	// Returns:
	//   - bool: true if the window should close
	PollQuit() bool

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// Poller returns the device poller reading this window's keyboard, mouse buttons and cursor.
	//
	// Returns:
	//   - input.DevicePoller: the poller
	Poller() input.DevicePoller

	// SetResizeCallback sets the function called when the window is resized. Sizes are in screen coordinates,
	// the space cursor positions and WarpCursor use.
	//
	// Parameters:
	//   - callback: function receiving new width and height in screen coordinates
	SetResizeCallback(callback func(width, height int))

	// SetFramebufferResizeCallback sets the function called when the framebuffer is resized. On high-DPI
	// displays the framebuffer is larger than the window, so only viewports should use these sizes.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetFramebufferResizeCallback(callback func(width, height int))

	// FramebufferSize returns the framebuffer size in pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	FramebufferSize() (int, int)

	// SetTitle changes the title bar text.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was already closed
	Close() error

	// Width returns the window client area width in screen coordinates.
	//
	// Returns:
	//   - int: width
	Width() int

	// Height returns the window client area height in screen coordinates.
	//
	// Returns:
	//   - int: height
	Height() int

	// Size returns the client area size as a vector, the form camera settings take.
	//
	// Returns:
	//   - mgl32.Vec2: width, height
	Size() mgl32.Vec2
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window client area width.
	width int

	// height is the current window client area height.
	height int

	// fbWidth and fbHeight are the framebuffer size in pixels, 0 until the platform window exists.
	fbWidth, fbHeight int

	// vsync synchronizes buffer swaps with the display refresh.
	vsync bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// poller samples keys and buttons from the platform window.
	poller input.DevicePoller

	// onResize is called when the window is resized, in screen coordinates.
	onResize func(width, height int)

	// onFramebufferResize is called when the framebuffer is resized, in pixels.
	onFramebufferResize func(width, height int)

	logger *slog.Logger
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window with a current OpenGL 3.3 core context.
// Applies default values first, then each option in order.
// The calling goroutine is locked to its OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: error if the platform window or context cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	w.logger.Info("window created", "title", w.title, "width", w.width, "height", w.height, "vsync", w.vsync)
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "Opengl tutorial",
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  200,
		minHeight: 150,
		width:     800,
		height:    600,
		vsync:     true,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		opt(w)
	}
	w.width = clamp(w.width, w.minWidth, w.maxWidth)
	w.height = clamp(w.height, w.minHeight, w.maxHeight)
	return w
}

func (w *engineWindow) WarpCursor(x, y float32) {
	platformWarpCursor(w, x, y)
}

func (w *engineWindow) PumpEvents() {
	platformProcessMessages(w)
}

func (w *engineWindow) PollQuit() bool {
	return !platformIsRunningCheck(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) Poller() input.DevicePoller {
	return w.poller
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetFramebufferResizeCallback(callback func(width, height int)) {
	w.onFramebufferResize = callback
}

// FramebufferSize falls back to the window size before the platform window reports one.
func (w *engineWindow) FramebufferSize() (int, int) {
	if w.fbWidth <= 0 || w.fbHeight <= 0 {
		return w.width, w.height
	}
	return w.fbWidth, w.fbHeight
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
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

func (w *engineWindow) Size() mgl32.Vec2 {
	return mgl32.Vec2{float32(w.width), float32(w.height)}
}

// clamp limits v to [lo, hi]. A non-positive bound is treated as unbounded.
func clamp(v, lo, hi int) int {
	if lo > 0 && v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}
