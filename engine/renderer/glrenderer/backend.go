// Package glrenderer implements the OpenGL 3.3 core backend: program compilation and uniform upload, textures,
// vertex buffers and frame clearing. Every call must be made on the goroutine that owns the current GL context.
package glrenderer

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/lighthouse/engine/renderer"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Backend is the OpenGL implementation of renderer.RendererBackend.
type Backend struct {
	logger *slog.Logger
}

var _ renderer.RendererBackend = &Backend{}

// NewBackend loads the OpenGL function pointers for the current context and enables depth testing.
// A GL context must be current on the calling thread.
//
// Parameters:
//   - logger: logger for driver information, nil for slog.Default()
//
// Returns:
//   - *Backend: the backend
//   - error: error if the GL functions cannot be loaded
func NewBackend(logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("opengl initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	gl.Enable(gl.DEPTH_TEST)
	return &Backend{logger: logger}, nil
}

// Clear clears the color and depth buffers.
func (b *Backend) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Viewport resizes the GL viewport.
func (b *Backend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}
