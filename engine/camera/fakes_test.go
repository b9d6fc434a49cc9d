package camera

import (
	"time"

	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/go-gl/mathgl/mgl32"
)

type warp struct{ x, y float32 }

type fakeWindow struct {
	warps  []warp
	device *fakeDevice
}

func (w *fakeWindow) WarpCursor(x, y float32) {
	w.warps = append(w.warps, warp{x, y})
	if w.device != nil {
		w.device.pending = &mgl32.Vec2{x, y}
	}
}

type upload struct {
	name      string
	value     mgl32.Mat4
	transpose bool
}

type fakeProgram struct {
	uploads []upload
}

func (p *fakeProgram) UploadMatrix4(name string, value mgl32.Mat4, transpose bool) {
	p.uploads = append(p.uploads, upload{name, value, transpose})
}

type fakeDevice struct {
	keys      []common.Key
	buttons   []common.MouseButton
	cursor    mgl32.Vec2
	pending   *mgl32.Vec2
	refreshes int
}

func (f *fakeDevice) Refresh() {
	f.refreshes++
	if f.pending != nil {
		f.cursor = *f.pending
		f.pending = nil
	}
}

func (f *fakeDevice) PressedKeys() []common.Key            { return f.keys }
func (f *fakeDevice) CursorPosition() mgl32.Vec2           { return f.cursor }
func (f *fakeDevice) PressedButtons() []common.MouseButton { return f.buttons }

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testSettings(win Window, program *fakeProgram) CameraSettings {
	return NewCameraSettingsBuilder().
		ScreenSize(mgl32.Vec2{800, 600}).
		Win(win).
		ShaderProgram(program).
		MustBuild()
}
