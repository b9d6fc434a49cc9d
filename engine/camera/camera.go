package camera

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/Carmen-Shannon/lighthouse/engine/object"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultUniform is the uniform name the camera matrix is uploaded to when none is configured.
const DefaultUniform = "camera_matrix"

// Source is the minimum a camera implementation must provide for ComputeMatrices to derive its
// matrices: the Object position and rotation accessors plus its settings.
type Source interface {
	object.Object

	// Settings returns the camera settings.
	//
	// Returns:
	//   - CameraSettings: a copy of the current settings
	Settings() CameraSettings
}

// ComputeMatrices derives the view, projection and combined matrices for a camera.
// The model matrix is the identity; position and rotation only enter through the view matrix, which
// looks from the position towards position + rotation. The rotation is used as a raw direction
// offset, not as angles.
// The projection follows the OpenGL clip convention (near plane maps to NDC z = -1).
//
// Parameters:
//   - src: the camera
//   - up: world up vector, normally (0, 1, 0)
//
// Returns:
//   - view: the world to camera transform
//   - proj: the perspective projection
//   - viewProj: proj * view * model
func ComputeMatrices(src Source, up mgl32.Vec3) (view, proj, viewProj mgl32.Mat4) {
	settings := src.Settings()
	pos := src.Position()

	model := mgl32.Ident4()
	view = common.LookAt(pos, pos.Add(src.Rotation()), up)
	proj = mgl32.Perspective(
		mgl32.DegToRad(settings.Fov),
		settings.Aspect(),
		settings.NearPlane,
		settings.FarPlane,
	)
	viewProj = proj.Mul4(view).Mul4(model)
	return view, proj, viewProj
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	rotation mgl32.Vec3
	up       mgl32.Vec3
	uniform  string

	settings CameraSettings

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	logger *slog.Logger
}

// Camera is a scene object that derives a view-projection matrix from its position, look direction and
// settings, and pushes it to the settings' shader program every frame. It moves with the keyboard and
// toggles cursor capture with the mouse.
type Camera interface {
	object.Object
	object.KeyHandler
	object.MouseHandler

	// Settings returns a copy of the camera settings.
	//
	// Returns:
	//   - CameraSettings: the current settings
	Settings() CameraSettings

	// SetSettings replaces the camera settings after validating them.
	// On error the previous settings stay in effect.
	//
	// Parameters:
	//   - settings: the new settings value
	//
	// Returns:
	//   - error: a *ConfigError if the settings are invalid
	SetSettings(settings CameraSettings) error

	// Uniform returns the uniform name used by the world when it asks for the matrix upload.
	//
	// Returns:
	//   - string: the uniform name
	Uniform() string

	// Up returns the world up vector used for the look-at matrix.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Matrix recomputes proj * view * model and uploads it, untransposed, to the named uniform of the
	// settings' shader program.
	//
	// Parameters:
	//   - uniform: the uniform name to upload into
	Matrix(uniform string)

	// ViewMatrix returns the view matrix computed by the last Matrix call.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the projection matrix computed by the last Matrix call.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined matrix computed by the last Matrix call.
	//
	// Returns:
	//   - mgl32.Mat4: the matrix that was uploaded
	ViewProjectionMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at pos looking along rot. The settings must be valid; NewCamera panics
// otherwise since an invalid camera is a wiring bug. Build settings with CameraSettingsBuilder.
//
// Parameters:
//   - pos: initial world-space position
//   - rot: initial look direction offset
//   - settings: the camera settings
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(pos, rot mgl32.Vec3, settings CameraSettings, options ...CameraBuilderOption) Camera {
	if err := settings.Validate(); err != nil {
		panic(fmt.Sprintf("camera: NewCamera requires valid settings: %v", err))
	}

	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		position:             pos,
		rotation:             rot,
		up:                   mgl32.Vec3{0, 1, 0},
		uniform:              DefaultUniform,
		settings:             settings,
		viewMatrix:           mgl32.Ident4(),
		projectionMatrix:     mgl32.Ident4(),
		viewProjectionMatrix: mgl32.Ident4(),
		logger:               slog.Default(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(pos mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pos
}

func (c *cameraImpl) Rotation() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) SetRotation(rot mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = rot
}

// Update is a no-op; the camera only changes through its input handlers.
func (c *cameraImpl) Update() {}

func (c *cameraImpl) Settings() CameraSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

func (c *cameraImpl) SetSettings(settings CameraSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = settings
	c.logger.Debug("camera settings updated", "fov", settings.Fov, "near", settings.NearPlane, "far", settings.FarPlane)
	return nil
}

func (c *cameraImpl) Uniform() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uniform
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Matrix(uniform string) {
	view, proj, viewProj := ComputeMatrices(c, c.Up())

	c.mu.Lock()
	c.viewMatrix = view
	c.projectionMatrix = proj
	c.viewProjectionMatrix = viewProj
	program := c.settings.ShaderProgram
	c.mu.Unlock()

	program.UploadMatrix4(uniform, viewProj, false)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}
