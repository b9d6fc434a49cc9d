package mesh

import (
	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of float32 values one Vertex occupies in an interleaved buffer.
const VertexStride = 5

// Vertex is a textured mesh vertex: a model-space position followed by a texture coordinate.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Transform returns the vertex rotated by a rotation vector and then translated.
// The texture coordinate is carried over unchanged.
//
// Parameters:
//   - pos: translation applied after the rotation
//   - rot: rotation vector (axis scaled by angle in radians)
//
// Returns:
//   - Vertex: the transformed vertex
func (v Vertex) Transform(pos, rot mgl32.Vec3) Vertex {
	return Vertex{
		Position: common.RotateByVector(v.Position, rot).Add(pos),
		TexCoord: v.TexCoord,
	}
}

// Floats flattens vertices into the interleaved layout x, y, z, u, v expected by vertex buffers.
//
// Parameters:
//   - vertices: the vertices to flatten
//
// Returns:
//   - []float32: len(vertices) * VertexStride values
func Floats(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*VertexStride)
	for _, v := range vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2], v.TexCoord[0], v.TexCoord[1])
	}
	return out
}

// Pyramid returns the unit square-based pyramid: four base corners at y = -0.5, an apex at y = 0.5,
// and the four side faces as triangles. The base is left open.
//
// Returns:
//   - []Vertex: five vertices
//   - []uint32: twelve indices
func Pyramid() ([]Vertex, []uint32) {
	vertices := []Vertex{
		{Position: mgl32.Vec3{0.5, -0.5, 0.5}, TexCoord: mgl32.Vec2{1, 0}},   // front right
		{Position: mgl32.Vec3{-0.5, -0.5, 0.5}, TexCoord: mgl32.Vec2{0, 0}},  // front left
		{Position: mgl32.Vec3{-0.5, -0.5, -0.5}, TexCoord: mgl32.Vec2{1, 0}}, // back left
		{Position: mgl32.Vec3{0.5, -0.5, -0.5}, TexCoord: mgl32.Vec2{0, 0}},  // back right
		{Position: mgl32.Vec3{0, 0.5, 0}, TexCoord: mgl32.Vec2{0.5, 1.5}},    // top
	}
	indices := []uint32{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		0, 3, 4,
	}
	return vertices, indices
}
