package renderer

import "github.com/go-gl/mathgl/mgl32"

// RendererBackend is the graphics API surface the Renderer drives.
// Implementations must be called from the goroutine owning the graphics context.
type RendererBackend interface {
	// Clear clears the color buffer to color and resets the depth buffer.
	//
	// Parameters:
	//   - color: RGBA in [0, 1]
	Clear(color mgl32.Vec4)

	// Viewport sets the drawable area.
	//
	// Parameters:
	//   - width: the width in pixels
	//   - height: the height in pixels
	Viewport(width, height int)
}

// Drawable is anything that issues its own draw call, e.g. a GPU mesh buffer.
type Drawable interface {
	Draw()
}

// Texture is a GPU texture that binds itself to its texture unit.
type Texture interface {
	Bind()
}
