package camera

import (
	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/Carmen-Shannon/lighthouse/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// MoveStep is the distance the camera travels along an axis per frame while a movement key is held.
const MoveStep float32 = 0.01

// keyOffsets maps each movement key to its per-frame position delta.
var keyOffsets = map[common.Key]mgl32.Vec3{
	common.KeyW:          {0, 0, MoveStep},
	common.KeyS:          {0, 0, -MoveStep},
	common.KeyA:          {MoveStep, 0, 0},
	common.KeyD:          {-MoveStep, 0, 0},
	common.KeyLeftShift:  {0, -MoveStep, 0},
	common.KeyRightShift: {0, -MoveStep, 0},
	common.KeySpace:      {0, MoveStep, 0},
}

// OnKey moves the camera for every held movement key. Offsets are applied independently and summed, so
// diagonal movement is faster than straight movement. Movement is per frame, not per second.
//
// Parameters:
//   - keys: the keys held this frame
func (c *cameraImpl) OnKey(keys []common.Key) {
	var delta mgl32.Vec3
	for _, key := range keys {
		if offset, ok := keyOffsets[key]; ok {
			delta = delta.Add(offset)
		}
	}
	if delta == (mgl32.Vec3{}) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(delta)
}

// OnMouse handles cursor capture. A debounced left click locks the cursor to the screen center, a debounced
// right click releases it. While locked the cursor is warped back to the anchor and the mouse position is
// re-sampled from a refreshed device. The camera direction is not changed by cursor movement.
//
// Parameters:
//   - mouse: the shared mouse state
//   - device: the device poller for this frame
func (c *cameraImpl) OnMouse(mouse input.MouseState, device input.DevicePoller) {
	settings := c.Settings()

	for _, button := range mouse.PressedCooldown(device) {
		switch button {
		case common.MouseLeft:
			mouse.SetMode(input.Locked(common.ScreenCenter(settings.ScreenSize)))
		case common.MouseRight:
			mouse.SetMode(input.Free())
		}
	}

	anchor, locked := mouse.Mode().Anchor()
	if !locked {
		return
	}

	settings.Win.WarpCursor(anchor.X(), anchor.Y())
	device.Refresh()
	mouse.Sample(device)
}
