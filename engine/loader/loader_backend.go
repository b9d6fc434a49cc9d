package loader

import (
	"io"

	"github.com/Carmen-Shannon/lighthouse/engine/mesh"
)

// loaderBackend imports static geometry from one file format.
type loaderBackend interface {
	// Load imports geometry from a file.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - []mesh.Vertex: the vertices
	//   - []uint32: triangle indices
	//   - error: error if loading fails
	Load(path string) ([]mesh.Vertex, []uint32, error)

	// LoadReader imports geometry from a stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//   - binary: true for the format's binary container (GLB)
	//
	// Returns:
	//   - []mesh.Vertex: the vertices
	//   - []uint32: triangle indices
	//   - error: error if loading fails
	LoadReader(r io.Reader, binary bool) ([]mesh.Vertex, []uint32, error)
}
