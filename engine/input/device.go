// Package input holds the per-frame input model: the device poller contract, the shared mouse state with its
// Free / Locked capture mode, and the per-button press debouncer.
package input

import (
	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DevicePoller exposes the raw device state sampled by the platform layer.
// The world refreshes it once at the start of every frame and hands it to input handlers explicitly,
// so nothing in the core reads process-wide input state.
type DevicePoller interface {
	// Refresh re-reads keyboard, mouse button and cursor state from the platform.
	Refresh()

	// PressedKeys returns the set of keys held down at the last refresh.
	//
	// Returns:
	//   - []common.Key: pressed keys, each at most once
	PressedKeys() []common.Key

	// CursorPosition returns the raw cursor position in window coordinates at the last refresh.
	//
	// Returns:
	//   - mgl32.Vec2: cursor x, y in pixels
	CursorPosition() mgl32.Vec2

	// PressedButtons returns the mouse buttons seen pressed since the previous poll, before any debouncing.
	//
	// Returns:
	//   - []common.MouseButton: pressed buttons, each at most once
	PressedButtons() []common.MouseButton
}
