// Package loader imports static triangle meshes from glTF 2.0 files (.gltf and .glb) and caches them by name.
package loader

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/lighthouse/engine/mesh"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// Model is imported geometry ready to become a mesh.Mesh.
type Model struct {
	// Name is the cache key: the file path for Load, the caller's name for LoadReader.
	Name     string
	Vertices []mesh.Vertex
	Indices  []uint32
}

// NewMesh creates a renderable mesh from the model. The model's slices are copied by mesh.NewMesh.
func (m *Model) NewMesh(options ...mesh.MeshBuilderOption) mesh.Mesh {
	return mesh.NewMesh(m.Vertices, m.Indices, options...)
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]*Model
	backend    loaderBackend

	logger *slog.Logger
}

// Loader loads models and keeps a cache of everything it loaded.
type Loader interface {
	// Load imports a model file and caches the result by path.
	// If the model is already cached, the cached version is returned.
	//
	// Parameters:
	//   - path: the .gltf or .glb file
	//
	// Returns:
	//   - *Model: the loaded model
	//   - error: error if the extension is unsupported or loading fails
	Load(path string) (*Model, error)

	// LoadReader imports a model from a stream and caches it under name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - *Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (*Model, error)

	// Get retrieves a cached model by name, nil if not found.
	Get(name string) *Model

	// Models returns a copy of the cache keyed by name.
	Models() map[string]*Model
}

var _ Loader = &loader{}

// NewLoader creates a Loader for the given backend type.
//
// Parameters:
//   - backendType: the file format backend
//   - options: functional options
//
// Returns:
//   - Loader: the new loader
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string]*Model),
		logger:     slog.Default(),
	}
	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	default:
		panic(fmt.Sprintf("loader: NewLoader requires a known backend type, got %d", backendType))
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (*Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("unsupported model format %q: %s", ext, path)
	}

	vertices, indices, err := l.backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return l.store(path, vertices, indices), nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (*Model, error) {
	vertices, indices, err := l.backend.LoadReader(r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", name, err)
	}
	return l.store(name, vertices, indices), nil
}

func (l *loader) store(name string, vertices []mesh.Vertex, indices []uint32) *Model {
	m := &Model{Name: name, Vertices: vertices, Indices: indices}

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	l.logger.Debug("model loaded", "name", name, "vertices", len(vertices), "triangles", len(indices)/3)
	return m
}

func (l *loader) Get(name string) *Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]*Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]*Model, len(l.modelCache))
	for k, v := range l.modelCache {
		out[k] = v
	}
	return out
}
