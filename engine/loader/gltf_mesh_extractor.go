package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/lighthouse/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
}

// gltfMeshExtractor flattens the meshes of a parsed document into one static vertex and index list.
type gltfMeshExtractor interface {
	// ExtractScene bakes every mesh instance of the default scene into model space, applying each node's
	// world transform. Documents without scenes contribute every mesh once, untransformed.
	//
	// Returns:
	//   - []mesh.Vertex: the merged vertices
	//   - []uint32: triangle indices into the merged vertices
	//   - error: error if a primitive cannot be read
	ExtractScene() ([]mesh.Vertex, []uint32, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser}
}

func (e *gltfMeshExtractorImpl) ExtractScene() ([]mesh.Vertex, []uint32, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, nil, errors.New("no document loaded")
	}

	var out gltfMeshBatch
	if len(doc.Scenes) == 0 {
		for i := range doc.Meshes {
			if err := e.appendMesh(&out, i, mgl32.Ident4()); err != nil {
				return nil, nil, err
			}
		}
	} else {
		sceneIndex := 0
		if doc.Scene != nil {
			sceneIndex = *doc.Scene
		}
		if sceneIndex < 0 || sceneIndex >= len(doc.Scenes) {
			return nil, nil, fmt.Errorf("scene index %d out of range", sceneIndex)
		}
		for _, root := range doc.Scenes[sceneIndex].Nodes {
			if err := e.walk(&out, root, mgl32.Ident4(), 0); err != nil {
				return nil, nil, err
			}
		}
	}

	if len(out.indices) == 0 {
		return nil, nil, errors.New("document contains no triangles")
	}
	return out.vertices, out.indices, nil
}

// gltfMeshBatch accumulates primitives.
type gltfMeshBatch struct {
	vertices []mesh.Vertex
	indices  []uint32
}

// maxNodeDepth bounds the hierarchy walk so cyclic documents fail instead of recursing forever.
const maxNodeDepth = 64

func (e *gltfMeshExtractorImpl) walk(out *gltfMeshBatch, nodeIndex int, parent mgl32.Mat4, depth int) error {
	doc := e.parser.Document()
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d (cycle?)", maxNodeDepth)
	}
	if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIndex)
	}
	node := &doc.Nodes[nodeIndex]
	world := parent.Mul4(gltfNodeMatrix(node))

	if node.Mesh != nil {
		if err := e.appendMesh(out, *node.Mesh, world); err != nil {
			return fmt.Errorf("node %d: %w", nodeIndex, err)
		}
	}
	for _, child := range node.Children {
		if err := e.walk(out, child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *gltfMeshExtractorImpl) appendMesh(out *gltfMeshBatch, meshIndex int, world mgl32.Mat4) error {
	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIndex)
	}
	for primIndex := range doc.Meshes[meshIndex].Primitives {
		prim := &doc.Meshes[meshIndex].Primitives[primIndex]
		if err := e.appendPrimitive(out, prim, world); err != nil {
			return fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIndex, err)
		}
	}
	return nil
}

func (e *gltfMeshExtractorImpl) appendPrimitive(out *gltfMeshBatch, prim *gltfPrimitive, world mgl32.Mat4) error {
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return fmt.Errorf("unsupported primitive mode: %d (only triangles supported)", *prim.Mode)
	}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return errors.New("primitive has no POSITION attribute")
	}
	positions, err := e.parser.ReadVec3Accessor(posAccessor)
	if err != nil {
		return fmt.Errorf("failed to read positions: %w", err)
	}

	var texCoords [][2]float32
	if texAccessor, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if texCoords, err = e.parser.ReadVec2Accessor(texAccessor); err != nil {
			return fmt.Errorf("failed to read texcoords: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = e.parser.ReadIndicesAccessor(*prim.Indices); err != nil {
			return fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%d indices do not form a triangle list", len(indices))
	}

	base := uint32(len(out.vertices))
	for i, pos := range positions {
		v := mesh.Vertex{Position: mgl32.TransformCoordinate(mgl32.Vec3(pos), world)}
		if i < len(texCoords) {
			v.TexCoord = mgl32.Vec2(texCoords[i])
		}
		out.vertices = append(out.vertices, v)
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d out of range for %d vertices", idx, len(positions))
		}
		out.indices = append(out.indices, base+idx)
	}
	return nil
}

// gltfNodeMatrix returns the node's local transform: its matrix, or T * R * S.
func gltfNodeMatrix(node *gltfNode) mgl32.Mat4 {
	if node.Matrix != nil {
		return mgl32.Mat4(*node.Matrix)
	}
	m := mgl32.Ident4()
	if t := node.Translation; t != nil {
		m = m.Mul4(mgl32.Translate3D(t[0], t[1], t[2]))
	}
	if r := node.Rotation; r != nil {
		q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		m = m.Mul4(q.Normalize().Mat4())
	}
	if s := node.Scale; s != nil {
		m = m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	}
	return m
}
