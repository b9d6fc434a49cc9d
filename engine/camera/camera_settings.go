package camera

import (
	"fmt"
	"reflect"

	"github.com/Carmen-Shannon/lighthouse/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Default values used by CameraSettingsBuilder for optional fields.
const (
	DefaultFov         float32 = 45.0
	DefaultSensitivity float32 = 1.0
	DefaultNearPlane   float32 = 0.1
	DefaultFarPlane    float32 = 100.0
)

// Window is the slice of the platform window the camera needs: moving the OS cursor.
type Window interface {
	// WarpCursor moves the cursor to a point inside the window's client area.
	//
	// Parameters:
	//   - x, y: window position in screen coordinates
	WarpCursor(x, y float32)
}

// CameraSettings is the per-camera configuration. It is a value type: cameras keep their own copy and
// a settings change is made by building a new value and handing it to Camera.SetSettings.
// Construct it with CameraSettingsBuilder.
type CameraSettings struct {
	// ScreenSize is the viewport width and height in pixels.
	ScreenSize mgl32.Vec2
	// Fov is the vertical field of view in degrees.
	Fov float32
	// Sensitivity is the mouse sensitivity multiplier.
	Sensitivity float32
	// Win is the window the cursor is warped inside. Not owned by the camera.
	Win Window
	// NearPlane is the distance below which geometry is clipped.
	NearPlane float32
	// FarPlane is the distance beyond which geometry is clipped.
	FarPlane float32
	// ShaderProgram receives the camera matrix upload. Not owned by the camera.
	ShaderProgram shader.Program
}

// Aspect returns the viewport aspect ratio (width / height).
func (s CameraSettings) Aspect() float32 {
	return s.ScreenSize.X() / s.ScreenSize.Y()
}

// isNil reports whether v is nil or an interface holding a nil pointer, map, slice, func or channel.
// A typed nil would pass a plain comparison and only fail at the first warp or upload.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Validate checks the settings invariants: both references present, screen size positive,
// 0 < fov < 180, sensitivity >= 0 and 0 < near < far.
//
// Returns:
//   - error: a *ConfigError describing the first violated invariant, or nil
func (s CameraSettings) Validate() error {
	if isNil(s.Win) {
		return missingField("win", "Win")
	}
	if isNil(s.ShaderProgram) {
		return missingField("shader_program", "ShaderProgram")
	}
	if s.ScreenSize.X() <= 0 || s.ScreenSize.Y() <= 0 {
		return invalidField("screen_size", fmt.Sprintf("%gx%g must be positive in both dimensions", s.ScreenSize.X(), s.ScreenSize.Y()))
	}
	if s.Fov <= 0 || s.Fov >= 180 {
		return invalidField("fov", fmt.Sprintf("%g is outside (0, 180) degrees", s.Fov))
	}
	if s.Sensitivity < 0 {
		return invalidField("sensitivity", fmt.Sprintf("%g is negative", s.Sensitivity))
	}
	if s.NearPlane <= 0 || s.NearPlane >= s.FarPlane {
		return invalidField("near_plane", fmt.Sprintf("near %g and far %g must satisfy 0 < near < far", s.NearPlane, s.FarPlane))
	}
	return nil
}
