// Package object defines the minimal contract every scene entity satisfies, plus the optional input
// capabilities the world orchestrator checks for each frame.
package object

import (
	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/Carmen-Shannon/lighthouse/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Object is anything placed in the scene: it has a position, a rotation and a per-frame update hook.
// The meaning of Rotation is up to the implementation. Cameras read it as a look-direction offset,
// meshes read it as a rotation vector (axis scaled by angle in radians).
type Object interface {
	// Position returns the object's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the object.
	//
	// Parameters:
	//   - pos: the new world-space position
	SetPosition(pos mgl32.Vec3)

	// Rotation returns the object's rotation field.
	//
	// Returns:
	//   - mgl32.Vec3: the rotation
	Rotation() mgl32.Vec3

	// SetRotation replaces the object's rotation field.
	//
	// Parameters:
	//   - rot: the new rotation
	SetRotation(rot mgl32.Vec3)

	// Update is invoked once per frame by the world after input handling.
	Update()
}

// KeyHandler is implemented by objects that react to the keys held down this frame.
type KeyHandler interface {
	// OnKey receives the set of keys currently pressed.
	//
	// Parameters:
	//   - keys: keys pressed this frame
	OnKey(keys []common.Key)
}

// MouseHandler is implemented by objects that react to mouse state.
// Handlers may mutate the capture mode and re-sample the device.
type MouseHandler interface {
	// OnMouse receives the shared mouse state and the device poller it was sampled from.
	//
	// Parameters:
	//   - mouse: the shared mouse state
	//   - device: the device poller for this frame
	OnMouse(mouse input.MouseState, device input.DevicePoller)
}
