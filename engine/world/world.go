// Package world drives the per-frame loop: device sampling, quit handling, input dispatch, object updates,
// camera upload, texture binding, drawing and presentation, in that fixed order.
package world

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/lighthouse/engine/camera"
	"github.com/Carmen-Shannon/lighthouse/engine/input"
	"github.com/Carmen-Shannon/lighthouse/engine/object"
	"github.com/Carmen-Shannon/lighthouse/engine/profiler"
)

// Platform is the part of the window the frame loop needs.
type Platform interface {
	// PumpEvents processes pending window events, publishing the key, button and cursor state the device
	// poller reads.
	PumpEvents()

	// PollQuit reports whether the user asked to quit during the last PumpEvents.
	PollQuit() bool

	// SwapBuffers presents the finished frame.
	SwapBuffers()
}

// Drawer binds the frame's textures and draws the frame.
type Drawer interface {
	// BindTextures binds every texture used by the frame.
	BindTextures()

	// Draw clears the target and issues the frame's draw calls.
	Draw()
}

// world implements the World interface.
type world struct {
	mu *sync.Mutex

	platform Platform
	device   input.DevicePoller
	mouse    input.MouseState
	camera   camera.Camera
	objects  []object.Object
	drawer   Drawer

	settingsChannel chan camera.CameraSettings // Channel for settings updates from other goroutines

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameLimit time.Duration // minimum frame duration; 0 = uncapped
	frames     uint64

	logger *slog.Logger
}

// World owns the scene objects and the per-frame collaborators and steps them one frame at a time.
// Frames run on a single goroutine; the only cross-goroutine entry points are SubmitSettings and Quit.
type World interface {
	// Frame runs one frame:
	//   (a) pump window events, refresh the device and sample the cursor,
	//   (b) return false if a quit was requested,
	//   (c) call OnKey / OnMouse on the camera and every object implementing them,
	//   (d) call Update on the camera and every object,
	//   (e) upload the camera matrix to the camera's uniform,
	//   (f) bind textures,
	//   (g) draw,
	//   (h) swap buffers.
	// Settings submitted since the previous frame are applied before (a).
	//
	// Returns:
	//   - bool: false once the window asked to quit
	Frame() bool

	// Run calls Frame until the window asks to quit, Quit is called or ctx is cancelled.
	// A panic inside a frame is recovered and returned as an error.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, the recovered panic, or nil on a normal quit
	Run(ctx context.Context) error

	// Quit stops Run after the current frame. Safe to call multiple times and from any goroutine.
	Quit()

	// SubmitSettings queues new camera settings to be applied at the start of the next frame.
	// Only the latest pending value is kept. Safe to call from any goroutine.
	//
	// Parameters:
	//   - settings: the new settings
	SubmitSettings(settings camera.CameraSettings)

	// AddObjects appends objects to the scene. They take part from the next frame on.
	// The active camera is skipped if passed, since it already takes part in every frame.
	//
	// Parameters:
	//   - objects: the objects to add
	AddObjects(objects ...object.Object)

	// Objects returns a copy of the scene objects, excluding the camera.
	//
	// Returns:
	//   - []object.Object: the objects in update order
	Objects() []object.Object

	// Camera returns the active camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Mouse returns the shared mouse state.
	//
	// Returns:
	//   - input.MouseState: the mouse state
	Mouse() input.MouseState

	// Frames returns the number of completed frames.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// EnableProfiler enables periodic frame statistics in the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics.
	DisableProfiler()
}

var _ World = &world{}

// NewWorld creates a World. WithPlatform, WithDevice and WithCamera are required.
//
// Parameters:
//   - options: functional options for world configuration
//
// Returns:
//   - World: the newly created world
func NewWorld(options ...WorldBuilderOption) World {
	w := &world{
		mu:              &sync.Mutex{},
		settingsChannel: make(chan camera.CameraSettings, 1),
		quitChannel:     make(chan struct{}),
		logger:          slog.Default(),
	}
	for _, opt := range options {
		opt(w)
	}

	if w.platform == nil {
		panic("world: NewWorld requires a platform (use WithPlatform)")
	}
	if w.device == nil {
		panic("world: NewWorld requires a device poller (use WithDevice)")
	}
	if w.camera == nil {
		panic("world: NewWorld requires a camera (use WithCamera)")
	}
	w.objects = w.withoutCamera(w.objects)
	if w.mouse == nil {
		w.mouse = input.NewMouseState(input.WithLogger(w.logger))
	}
	if w.profiler == nil {
		w.profiler = profiler.NewProfiler(profiler.WithLogger(w.logger))
	}
	return w
}

func (w *world) Frame() bool {
	w.applyPendingSettings()

	// (a) Events go first so this frame's device snapshot includes input delivered since the last frame.
	w.platform.PumpEvents()
	w.device.Refresh()
	w.mouse.Sample(w.device)

	// (b)
	if w.platform.PollQuit() {
		w.logger.Info("quit requested", "frames", w.Frames())
		return false
	}

	all := w.participants()

	// (c)
	keys := w.device.PressedKeys()
	for _, obj := range all {
		if h, ok := obj.(object.KeyHandler); ok {
			h.OnKey(keys)
		}
		if h, ok := obj.(object.MouseHandler); ok {
			h.OnMouse(w.mouse, w.device)
		}
	}

	// (d)
	for _, obj := range all {
		obj.Update()
	}

	// (e)
	w.camera.Matrix(w.camera.Uniform())

	// (f), (g)
	if w.drawer != nil {
		w.drawer.BindTextures()
		w.drawer.Draw()
	}

	// (h)
	w.platform.SwapBuffers()

	w.mu.Lock()
	w.frames++
	profile := w.profilingEnabled
	w.mu.Unlock()
	if profile {
		w.profiler.Tick()
	}
	return true
}

func (w *world) Run(ctx context.Context) (err error) {
	// Recover from panics inside a frame so the caller can tear down the window cleanly.
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("frame panicked", "panic", r)
			w.signalQuit()
			err = fmt.Errorf("world: frame panicked: %v", r)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.quitChannel:
			return nil
		default:
		}

		start := time.Now()
		if !w.Frame() {
			w.signalQuit()
			return nil
		}

		// Frame rate limiting
		if w.frameLimit > 0 {
			if remaining := w.frameLimit - time.Since(start); remaining > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(remaining):
				}
			}
		}
	}
}

// Quit signals Run to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (w *world) Quit() {
	w.signalQuit()
}

func (w *world) signalQuit() {
	w.quitOnce.Do(func() {
		close(w.quitChannel)
	})
}

func (w *world) SubmitSettings(settings camera.CameraSettings) {
	// Non-blocking send - if channel is full, replace the pending value
	select {
	case w.settingsChannel <- settings:
	default:
		select {
		case <-w.settingsChannel:
		default:
		}
		select {
		case w.settingsChannel <- settings:
		default:
		}
	}
}

// applyPendingSettings hands a submitted settings value to the camera, if one is waiting.
func (w *world) applyPendingSettings() {
	select {
	case settings := <-w.settingsChannel:
		if err := w.camera.SetSettings(settings); err != nil {
			w.logger.Warn("rejected camera settings", "error", err)
			return
		}
		w.logger.Info("camera settings applied", "fov", settings.Fov, "near", settings.NearPlane, "far", settings.FarPlane)
	default:
	}
}

// participants returns the camera followed by every scene object.
func (w *world) participants() []object.Object {
	w.mu.Lock()
	defer w.mu.Unlock()
	all := make([]object.Object, 0, len(w.objects)+1)
	all = append(all, w.camera)
	return append(all, w.objects...)
}

func (w *world) AddObjects(objects ...object.Object) {
	objects = w.withoutCamera(objects)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.objects = append(w.objects, objects...)
}

// withoutCamera drops the active camera from objects. The camera always takes part in a frame exactly once,
// ahead of the scene objects.
func (w *world) withoutCamera(objects []object.Object) []object.Object {
	kept := make([]object.Object, 0, len(objects))
	for _, obj := range objects {
		if obj == object.Object(w.camera) {
			w.logger.Warn("camera passed as a scene object, ignoring the duplicate")
			continue
		}
		kept = append(kept, obj)
	}
	return kept
}

func (w *world) Objects() []object.Object {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]object.Object(nil), w.objects...)
}

func (w *world) Camera() camera.Camera {
	return w.camera
}

func (w *world) Mouse() input.MouseState {
	return w.mouse
}

func (w *world) Frames() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// EnableProfiler enables performance profiling output to the log.
func (w *world) EnableProfiler() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (w *world) DisableProfiler() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.profilingEnabled = false
}
