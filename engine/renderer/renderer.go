package renderer

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultClearColor is the background color used when none is configured.
var DefaultClearColor = mgl32.Vec4{0.2, 0.3, 0.3, 1.0}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend    RendererBackend
	clearColor mgl32.Vec4
	drawables  []Drawable
	textures   []Texture
}

// Renderer owns the per-frame draw list. Each frame the world binds the textures, then asks the renderer to
// clear the target and draw every registered Drawable in registration order.
type Renderer interface {
	// AddDrawables appends drawables to the draw list.
	//
	// Parameters:
	//   - drawables: the drawables to add
	AddDrawables(drawables ...Drawable)

	// Drawables returns a copy of the draw list.
	//
	// Returns:
	//   - []Drawable: the registered drawables
	Drawables() []Drawable

	// AddTextures appends textures bound at the start of every frame.
	//
	// Parameters:
	//   - textures: the textures to add
	AddTextures(textures ...Texture)

	// BindTextures binds every registered texture.
	BindTextures()

	// ClearColor returns the background color.
	ClearColor() mgl32.Vec4

	// SetClearColor sets the background color used by Draw.
	//
	// Parameters:
	//   - color: RGBA in [0, 1]
	SetClearColor(color mgl32.Vec4)

	// Resize updates the backend viewport for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Draw clears color and depth and draws every registered drawable.
	Draw()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer on top of the given backend.
//
// Parameters:
//   - backend: the graphics API backend, e.g. glrenderer.Backend
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: a new Renderer drawing through backend
func NewRenderer(backend RendererBackend, options ...RendererBuilderOption) Renderer {
	if backend == nil {
		panic("renderer: NewRenderer requires a backend")
	}
	r := &renderer{
		mu:         &sync.Mutex{},
		backend:    backend,
		clearColor: DefaultClearColor,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) AddDrawables(drawables ...Drawable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawables = append(r.drawables, drawables...)
}

func (r *renderer) Drawables() []Drawable {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Drawable(nil), r.drawables...)
}

func (r *renderer) AddTextures(textures ...Texture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textures = append(r.textures, textures...)
}

func (r *renderer) BindTextures() {
	r.mu.Lock()
	textures := append([]Texture(nil), r.textures...)
	r.mu.Unlock()

	for _, t := range textures {
		t.Bind()
	}
}

func (r *renderer) ClearColor() mgl32.Vec4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetClearColor(color mgl32.Vec4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = color
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.Viewport(width, height)
}

func (r *renderer) Draw() {
	r.mu.Lock()
	color := r.clearColor
	drawables := append([]Drawable(nil), r.drawables...)
	r.mu.Unlock()

	r.backend.Clear(color)
	for _, d := range drawables {
		d.Draw()
	}
}
