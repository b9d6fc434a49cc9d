package loader

import (
	"io"

	"github.com/Carmen-Shannon/lighthouse/engine/mesh"
)

// gltfLoaderBackendImpl is the loaderBackend for .gltf and .glb files.
type gltfLoaderBackendImpl struct{}

var _ loaderBackend = &gltfLoaderBackendImpl{}

func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(path string) ([]mesh.Vertex, []uint32, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, nil, err
	}
	return newGLTFMeshExtractor(parser).ExtractScene()
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader, binary bool) ([]mesh.Vertex, []uint32, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, binary); err != nil {
		return nil, nil, err
	}
	return newGLTFMeshExtractor(parser).ExtractScene()
}
