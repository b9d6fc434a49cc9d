package world

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/Carmen-Shannon/lighthouse/engine/camera"
	"github.com/Carmen-Shannon/lighthouse/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

type callLog struct {
	calls []string
}

func (l *callLog) add(call string) { l.calls = append(l.calls, call) }

// fakePlatform quits immediately with quitNow, or after quitAfter frames when it is positive.
type fakePlatform struct {
	log       *callLog
	quitNow   bool
	quitAfter int
	polls     int
	onPoll    func(n int)
	onPump    func()
}

func (p *fakePlatform) PumpEvents() {
	p.log.add("pump")
	if p.onPump != nil {
		p.onPump()
	}
}

func (p *fakePlatform) PollQuit() bool {
	p.polls++
	p.log.add("poll")
	if p.onPoll != nil {
		p.onPoll(p.polls)
	}
	return p.quitNow || (p.quitAfter > 0 && p.polls > p.quitAfter)
}

func (p *fakePlatform) SwapBuffers() { p.log.add("swap") }

type fakeDevice struct {
	log     *callLog
	keys    []common.Key
	buttons []common.MouseButton
	cursor  mgl32.Vec2
}

func (d *fakeDevice) Refresh()                             { d.log.add("refresh") }
func (d *fakeDevice) PressedKeys() []common.Key            { return d.keys }
func (d *fakeDevice) CursorPosition() mgl32.Vec2           { return d.cursor }
func (d *fakeDevice) PressedButtons() []common.MouseButton { return d.buttons }

type fakeWindow struct {
	warps []mgl32.Vec2
}

func (w *fakeWindow) WarpCursor(x, y float32) { w.warps = append(w.warps, mgl32.Vec2{x, y}) }

type fakeProgram struct {
	log     *callLog
	uploads []mgl32.Mat4
}

func (p *fakeProgram) UploadMatrix4(name string, value mgl32.Mat4, _ bool) {
	p.log.add("matrix " + name)
	p.uploads = append(p.uploads, value)
}

type fakeDrawer struct{ log *callLog }

func (d *fakeDrawer) BindTextures() { d.log.add("bind") }
func (d *fakeDrawer) Draw()         { d.log.add("draw") }

// fakeObject records its handler calls. onUpdate runs inside Update.
type fakeObject struct {
	name     string
	log      *callLog
	pos, rot mgl32.Vec3
	keys     []common.Key
	onUpdate func()
}

func (o *fakeObject) Position() mgl32.Vec3       { return o.pos }
func (o *fakeObject) SetPosition(pos mgl32.Vec3) { o.pos = pos }
func (o *fakeObject) Rotation() mgl32.Vec3       { return o.rot }
func (o *fakeObject) SetRotation(rot mgl32.Vec3) { o.rot = rot }

func (o *fakeObject) Update() {
	o.log.add("update " + o.name)
	if o.onUpdate != nil {
		o.onUpdate()
	}
}

func (o *fakeObject) OnKey(keys []common.Key) {
	o.log.add("key " + o.name)
	o.keys = keys
}

func (o *fakeObject) OnMouse(input.MouseState, input.DevicePoller) {
	o.log.add("mouse " + o.name)
}

type fixture struct {
	log      *callLog
	platform *fakePlatform
	device   *fakeDevice
	window   *fakeWindow
	program  *fakeProgram
	camera   camera.Camera
}

func newFixture() *fixture {
	log := &callLog{}
	f := &fixture{
		log:      log,
		platform: &fakePlatform{log: log},
		device:   &fakeDevice{log: log},
		window:   &fakeWindow{},
		program:  &fakeProgram{log: log},
	}
	settings := camera.NewCameraSettingsBuilder().
		ScreenSize(mgl32.Vec2{800, 600}).
		Win(f.window).
		ShaderProgram(f.program).
		MustBuild()
	f.camera = camera.NewCamera(mgl32.Vec3{0, 0, -2}, mgl32.Vec3{0, 0, 1}, settings)
	return f
}

func (f *fixture) world(options ...WorldBuilderOption) World {
	base := []WorldBuilderOption{
		WithPlatform(f.platform),
		WithDevice(f.device),
		WithCamera(f.camera),
	}
	return NewWorld(append(base, options...)...)
}

func TestNewWorldRequiresCollaborators(t *testing.T) {
	f := newFixture()
	tests := []struct {
		name    string
		options []WorldBuilderOption
		want    string
	}{
		{"platform", []WorldBuilderOption{WithDevice(f.device), WithCamera(f.camera)}, "platform"},
		{"device", []WorldBuilderOption{WithPlatform(f.platform), WithCamera(f.camera)}, "device"},
		{"camera", []WorldBuilderOption{WithPlatform(f.platform), WithDevice(f.device)}, "camera"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				msg, _ := recover().(string)
				if !strings.Contains(msg, tt.want) {
					t.Errorf("expected panic mentioning %q, got %q", tt.want, msg)
				}
			}()
			NewWorld(tt.options...)
		})
	}
}

func TestFrameOrder(t *testing.T) {
	f := newFixture()
	obj := &fakeObject{name: "pyramid", log: f.log}
	w := f.world(WithObjects(obj), WithDrawer(&fakeDrawer{log: f.log}))

	if !w.Frame() {
		t.Fatal("expected frame to continue")
	}

	want := []string{
		"pump",
		"refresh",
		"poll",
		"key pyramid",
		"mouse pyramid",
		"update pyramid",
		"matrix camera_matrix",
		"bind",
		"draw",
		"swap",
	}
	if strings.Join(f.log.calls, ",") != strings.Join(want, ",") {
		t.Errorf("unexpected frame order:\n got  %v\n want %v", f.log.calls, want)
	}
	if w.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", w.Frames())
	}
}

func TestFrameStopsOnQuit(t *testing.T) {
	f := newFixture()
	f.platform.quitNow = true
	w := f.world(WithDrawer(&fakeDrawer{log: f.log}))

	if w.Frame() {
		t.Fatal("expected frame to report quit")
	}
	for _, call := range f.log.calls {
		if call == "draw" || call == "swap" || strings.HasPrefix(call, "matrix") {
			t.Errorf("no work expected after quit, saw %q", call)
		}
	}
	if w.Frames() != 0 {
		t.Errorf("expected no completed frames, got %d", w.Frames())
	}
}

func TestFrameMovesCameraBeforeUpload(t *testing.T) {
	f := newFixture()
	f.device.keys = []common.Key{common.KeyW}
	w := f.world()

	w.Frame()

	if got := w.Camera().Position(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1.99}, 1e-6) {
		t.Fatalf("expected camera at z -1.99, got %v", got)
	}
	_, _, want := camera.ComputeMatrices(w.Camera(), w.Camera().Up())
	if len(f.program.uploads) != 1 || !f.program.uploads[0].ApproxEqualThreshold(want, 1e-6) {
		t.Error("uploaded matrix does not reflect this frame's movement")
	}
}

// eventQueueSource only exposes key state that has been published by an event pump, like GLFW.
type eventQueueSource struct {
	queued []common.Key
	down   map[common.Key]bool
}

func (s *eventQueueSource) pump() {
	s.down = make(map[common.Key]bool, len(s.queued))
	for _, k := range s.queued {
		s.down[k] = true
	}
}

func (s *eventQueueSource) KeyDown(key common.Key) bool        { return s.down[key] }
func (s *eventQueueSource) ButtonDown(common.MouseButton) bool { return false }
func (s *eventQueueSource) Cursor() mgl32.Vec2                 { return mgl32.Vec2{} }

func TestFrameHandlesInputInTheFrameItArrives(t *testing.T) {
	f := newFixture()
	source := &eventQueueSource{}
	f.platform.onPump = source.pump
	poller := input.NewSnapshotPoller(source, common.MovementKeys, common.MouseButtons)
	w := NewWorld(WithPlatform(f.platform), WithDevice(poller), WithCamera(f.camera))

	source.queued = []common.Key{common.KeyW}
	w.Frame()
	if got := w.Camera().Position(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1.99}, 1e-6) {
		t.Fatalf("expected W to move the camera in the frame it was pressed, got %v", got)
	}

	w.Frame()
	if got := w.Camera().Position(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1.98}, 1e-6) {
		t.Errorf("expected two steps after two frames, got %v", got)
	}

	source.queued = nil
	w.Frame()
	if got := w.Camera().Position(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1.98}, 1e-6) {
		t.Errorf("expected no movement once W is released, got %v", got)
	}
}

func TestFramePassesKeysToObjects(t *testing.T) {
	f := newFixture()
	f.device.keys = []common.Key{common.KeyA, common.KeySpace}
	obj := &fakeObject{name: "o", log: f.log}
	w := f.world(WithObjects(obj))

	w.Frame()
	if len(obj.keys) != 2 || obj.keys[0] != common.KeyA || obj.keys[1] != common.KeySpace {
		t.Errorf("expected the device keys, got %v", obj.keys)
	}
}

func TestFrameCaptureModeAcrossFrames(t *testing.T) {
	f := newFixture()
	w := f.world()

	f.device.buttons = []common.MouseButton{common.MouseLeft}
	w.Frame()
	anchor, locked := w.Mouse().Mode().Anchor()
	if !locked || anchor != (mgl32.Vec2{400, 300}) {
		t.Fatalf("expected Locked(400, 300), got %v", w.Mouse().Mode())
	}

	f.device.buttons = nil
	w.Frame()
	w.Frame()
	if !w.Mouse().Mode().IsLocked() {
		t.Fatal("expected capture to persist without input")
	}
	if len(f.window.warps) != 3 {
		t.Errorf("expected a warp on every locked frame, got %d", len(f.window.warps))
	}
}

func TestSubmitSettingsAppliedNextFrame(t *testing.T) {
	f := newFixture()
	w := f.world()

	first := w.Camera().Settings()
	first.Fov = 60
	latest := first
	latest.Fov = 90
	w.SubmitSettings(first)
	w.SubmitSettings(latest)

	if w.Camera().Settings().Fov != camera.DefaultFov {
		t.Fatal("settings must not apply before the next frame")
	}
	w.Frame()
	if got := w.Camera().Settings().Fov; got != 90 {
		t.Errorf("expected the latest submission (90), got %g", got)
	}

	bad := latest
	bad.FarPlane = 0
	w.SubmitSettings(bad)
	w.Frame()
	if got := w.Camera().Settings().FarPlane; got != latest.FarPlane {
		t.Errorf("invalid settings must be rejected, far plane is %g", got)
	}
}

func TestRunStopsWhenWindowQuits(t *testing.T) {
	f := newFixture()
	f.platform.quitAfter = 5
	w := f.world(WithProfiling(true))

	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Frames() != 5 {
		t.Errorf("expected 5 frames, got %d", w.Frames())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.platform.onPoll = func(n int) {
		if n == 3 {
			cancel()
		}
	}
	w := f.world()

	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if w.Frames() != 3 {
		t.Errorf("expected the in-flight frame to finish, got %d frames", w.Frames())
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	f := newFixture()
	var w World
	obj := &fakeObject{name: "o", log: f.log}
	obj.onUpdate = func() {
		if w.Frames() == 1 {
			w.Quit()
			w.Quit()
		}
	}
	w = f.world(WithObjects(obj))

	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", w.Frames())
	}
}

func TestRunRecoversPanic(t *testing.T) {
	f := newFixture()
	obj := &fakeObject{name: "o", log: f.log, onUpdate: func() { panic("boom") }}
	w := f.world(WithObjects(obj))

	err := w.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected recovered panic error, got %v", err)
	}
}

func TestAddObjects(t *testing.T) {
	f := newFixture()
	w := f.world()
	a := &fakeObject{name: "a", log: f.log}
	b := &fakeObject{name: "b", log: f.log}
	w.AddObjects(a, b)

	if len(w.Objects()) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(w.Objects()))
	}
	w.Frame()
	joined := strings.Join(f.log.calls, ",")
	if !strings.Contains(joined, "update a,update b") {
		t.Errorf("expected objects updated in order, got %v", f.log.calls)
	}
}

func TestCameraPassedAsObjectRunsOnce(t *testing.T) {
	f := newFixture()
	f.device.keys = []common.Key{common.KeyW}
	w := f.world(WithObjects(f.camera))
	w.AddObjects(f.camera)

	if len(w.Objects()) != 0 {
		t.Fatalf("expected the camera to be kept out of the object list, got %d objects", len(w.Objects()))
	}
	w.Frame()
	if got := w.Camera().Position(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1.99}, 1e-6) {
		t.Errorf("expected a single step, got %v", got)
	}
}
