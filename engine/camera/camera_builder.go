package camera

import (
	"log/slog"

	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithUniform sets the uniform name the world uploads the camera matrix to.
// An empty name keeps DefaultUniform.
//
// Parameters:
//   - name: the uniform name declared in the vertex shader
//
// Returns:
//   - CameraBuilderOption: a function that sets the uniform name
func WithUniform(name string) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.uniform = common.Coalesce(name, DefaultUniform)
	}
}

// WithUp sets the camera's world up vector.
//
// Parameters:
//   - up: up vector, (0, 1, 0) by default
//
// Returns:
//   - CameraBuilderOption: a function that sets the up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithLogger sets the logger used for capture transitions.
func WithLogger(logger *slog.Logger) CameraBuilderOption {
	return func(c *cameraImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}
