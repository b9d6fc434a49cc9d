package renderer

import "github.com/go-gl/mathgl/mgl32"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the background color.
//
// Parameters:
//   - color: RGBA in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color mgl32.Vec4) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithDrawables pre-registers drawables in the draw list.
//
// Parameters:
//   - drawables: the drawables to draw every frame
//
// Returns:
//   - RendererBuilderOption: a function that applies the drawables option to a renderer
func WithDrawables(drawables ...Drawable) RendererBuilderOption {
	return func(r *renderer) {
		r.drawables = append(r.drawables, drawables...)
	}
}

// WithTextures pre-registers textures bound at the start of every frame.
//
// Parameters:
//   - textures: the textures to bind
//
// Returns:
//   - RendererBuilderOption: a function that applies the textures option to a renderer
func WithTextures(textures ...Texture) RendererBuilderOption {
	return func(r *renderer) {
		r.textures = append(r.textures, textures...)
	}
}
