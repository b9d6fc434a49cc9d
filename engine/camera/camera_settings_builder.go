package camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/lighthouse/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrMissingField is wrapped by ConfigError when a mandatory settings field was never supplied.
	ErrMissingField = errors.New("missing mandatory field")

	// ErrInvalidField is wrapped by ConfigError when a settings field violates its invariant.
	ErrInvalidField = errors.New("invalid field")
)

// ConfigError reports a camera settings misconfiguration. These are wiring errors in the program
// assembling the camera, not runtime failures, so callers are expected to stop rather than recover.
type ConfigError struct {
	// Field is the settings field at fault (screen_size, win, shader_program, fov, ...).
	Field string
	// Help names the builder call that fixes a missing field. Empty for invalid values.
	Help string
	// Reason describes an invalid value. Empty for missing fields.
	Reason string

	err error
}

func (e *ConfigError) Error() string {
	if e.Help != "" {
		return fmt.Sprintf("camera: argument %s is not satisfied (help: call .%s on the CameraSettingsBuilder)", e.Field, e.Help)
	}
	return fmt.Sprintf("camera: argument %s is invalid: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.err
}

func missingField(field, help string) *ConfigError {
	return &ConfigError{Field: field, Help: help, err: ErrMissingField}
}

func invalidField(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason, err: ErrInvalidField}
}

// CameraSettingsBuilder accumulates CameraSettings fields. ScreenSize, Win and ShaderProgram must be
// called; the remaining fields default to DefaultFov, DefaultSensitivity, DefaultNearPlane and
// DefaultFarPlane. Setters never validate; Build does.
//
//	settings, err := camera.NewCameraSettingsBuilder().
//		ScreenSize(mgl32.Vec2{800, 600}).
//		Win(win).
//		ShaderProgram(program).
//		Fov(60).
//		Build()
type CameraSettingsBuilder struct {
	screenSize    mgl32.Vec2
	hasScreenSize bool
	fov           float32
	sensitivity   float32
	win           Window
	nearPlane     float32
	farPlane      float32
	shaderProgram shader.Program
}

// NewCameraSettingsBuilder creates a builder with every optional field at its default.
func NewCameraSettingsBuilder() *CameraSettingsBuilder {
	return &CameraSettingsBuilder{
		fov:         DefaultFov,
		sensitivity: DefaultSensitivity,
		nearPlane:   DefaultNearPlane,
		farPlane:    DefaultFarPlane,
	}
}

// ScreenSize sets the viewport size in pixels. Mandatory.
func (b *CameraSettingsBuilder) ScreenSize(size mgl32.Vec2) *CameraSettingsBuilder {
	b.screenSize = size
	b.hasScreenSize = true
	return b
}

// Fov sets the vertical field of view in degrees. Optional.
func (b *CameraSettingsBuilder) Fov(fov float32) *CameraSettingsBuilder {
	b.fov = fov
	return b
}

// Sensitivity sets the mouse sensitivity multiplier. Optional.
func (b *CameraSettingsBuilder) Sensitivity(sensitivity float32) *CameraSettingsBuilder {
	b.sensitivity = sensitivity
	return b
}

// Win sets the window used for cursor warping. Mandatory.
func (b *CameraSettingsBuilder) Win(win Window) *CameraSettingsBuilder {
	b.win = win
	return b
}

// NearPlane sets the near clipping distance. Optional.
func (b *CameraSettingsBuilder) NearPlane(near float32) *CameraSettingsBuilder {
	b.nearPlane = near
	return b
}

// FarPlane sets the far clipping distance. Optional.
func (b *CameraSettingsBuilder) FarPlane(far float32) *CameraSettingsBuilder {
	b.farPlane = far
	return b
}

// ShaderProgram sets the program receiving the camera matrix. Mandatory.
func (b *CameraSettingsBuilder) ShaderProgram(program shader.Program) *CameraSettingsBuilder {
	b.shaderProgram = program
	return b
}

// Build validates the accumulated fields and returns the settings.
// Mandatory fields are checked first, in the order screen_size, win, shader_program, then the value
// invariants are checked.
//
// Returns:
//   - CameraSettings: the settings value
//   - error: a *ConfigError wrapping ErrMissingField or ErrInvalidField
func (b *CameraSettingsBuilder) Build() (CameraSettings, error) {
	if !b.hasScreenSize {
		return CameraSettings{}, missingField("screen_size", "ScreenSize")
	}
	if isNil(b.win) {
		return CameraSettings{}, missingField("win", "Win")
	}
	if isNil(b.shaderProgram) {
		return CameraSettings{}, missingField("shader_program", "ShaderProgram")
	}

	s := CameraSettings{
		ScreenSize:    b.screenSize,
		Fov:           b.fov,
		Sensitivity:   b.sensitivity,
		Win:           b.win,
		NearPlane:     b.nearPlane,
		FarPlane:      b.farPlane,
		ShaderProgram: b.shaderProgram,
	}
	if err := s.Validate(); err != nil {
		return CameraSettings{}, err
	}
	return s, nil
}

// MustBuild is like Build but panics on a configuration error.
// Intended for program wiring where a missing field is a bug.
func (b *CameraSettingsBuilder) MustBuild() CameraSettings {
	s, err := b.Build()
	if err != nil {
		panic(err.Error())
	}
	return s
}
