package world

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/lighthouse/engine/camera"
	"github.com/Carmen-Shannon/lighthouse/engine/input"
	"github.com/Carmen-Shannon/lighthouse/engine/object"
	"github.com/Carmen-Shannon/lighthouse/engine/profiler"
)

// WorldBuilderOption is a functional option for configuring a World.
// Use the With* functions to create options that are applied directly to the world instance.
type WorldBuilderOption func(*world)

// WithPlatform sets the window the world polls for quit events and presents to.
//
// Parameters:
//   - p: the platform window
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithPlatform(p Platform) WorldBuilderOption {
	return func(w *world) {
		w.platform = p
	}
}

// WithDevice sets the device poller refreshed at the start of every frame.
//
// Parameters:
//   - d: the device poller
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithDevice(d input.DevicePoller) WorldBuilderOption {
	return func(w *world) {
		w.device = d
	}
}

// WithMouse sets the shared mouse state. Defaults to input.NewMouseState().
func WithMouse(m input.MouseState) WorldBuilderOption {
	return func(w *world) {
		w.mouse = m
	}
}

// WithCamera sets the active camera. Its matrix is uploaded once per frame.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithCamera(c camera.Camera) WorldBuilderOption {
	return func(w *world) {
		w.camera = c
	}
}

// WithObjects registers scene objects during construction.
//
// Parameters:
//   - objects: the objects, updated in the given order after the camera
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithObjects(objects ...object.Object) WorldBuilderOption {
	return func(w *world) {
		w.objects = append(w.objects, objects...)
	}
}

// WithDrawer sets the texture binder and draw call issuer, typically a renderer.Renderer.
// Without one the world skips texture binding and drawing.
func WithDrawer(d Drawer) WorldBuilderOption {
	return func(w *world) {
		w.drawer = d
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithProfiling(enabled bool) WorldBuilderOption {
	return func(w *world) {
		w.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) WorldBuilderOption {
	return func(w *world) {
		w.profiler = p
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second for Run.
// Pass 0 to uncap the loop (default). With vsync the swap already paces frames.
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithFrameLimit(fps float64) WorldBuilderOption {
	return func(w *world) {
		if fps <= 0 {
			w.frameLimit = 0
			return
		}
		w.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithLogger sets the world logger.
func WithLogger(logger *slog.Logger) WorldBuilderOption {
	return func(w *world) {
		if logger != nil {
			w.logger = logger
		}
	}
}
