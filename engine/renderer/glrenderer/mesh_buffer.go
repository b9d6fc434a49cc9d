package glrenderer

import (
	"sync"
	"unsafe"

	"github.com/Carmen-Shannon/lighthouse/engine/mesh"
	"github.com/go-gl/gl/v3.3-core/gl"
)

const floatSize = 4

// MeshBuffer holds a vertex array with an interleaved position / texture coordinate vertex buffer and an
// element buffer. It receives per-frame vertex updates from a mesh and draws them as triangles.
// Attribute 0 is the vec3 position and attribute 1 the vec2 texture coordinate.
type MeshBuffer struct {
	mu *sync.Mutex

	vao, vbo, ebo uint32
	vertexCount   int
	indexCount    int32
	pending       []float32
}

var _ mesh.VertexSink = &MeshBuffer{}

// NewMeshBuffer creates the GL buffers for a mesh and uploads its current vertices and indices.
//
// Parameters:
//   - m: the mesh to mirror on the GPU
//
// Returns:
//   - *MeshBuffer: the buffer, already registered as the mesh's vertex sink
func NewMeshBuffer(m mesh.Mesh) *MeshBuffer {
	vertices := mesh.Floats(m.Vertices())
	indices := m.Indices()

	b := &MeshBuffer{
		mu:          &sync.Mutex{},
		vertexCount: len(vertices) / mesh.VertexStride,
		indexCount:  int32(len(indices)),
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, max(len(vertices), 1)*floatSize, glPtr(vertices), gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, max(len(indices), 1)*4, glPtr(indices), gl.STATIC_DRAW)

	stride := int32(mesh.VertexStride * floatSize)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*floatSize)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	m.SetSink(b)
	return b
}

// UploadVertices stages new vertex data; it is copied to the GPU on the next Draw.
// Mesh updates may run before the draw call in the same frame, so the copy is deferred to keep
// GL calls in one place.
func (b *MeshBuffer) UploadVertices(data []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = data
}

// IndexCount returns the number of indices drawn.
func (b *MeshBuffer) IndexCount() int32 {
	return b.indexCount
}

// Draw flushes staged vertices and draws the indexed triangles.
func (b *MeshBuffer) Draw() {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	gl.BindVertexArray(b.vao)
	if len(pending) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		if n := len(pending) / mesh.VertexStride; n != b.vertexCount {
			b.vertexCount = n
			gl.BufferData(gl.ARRAY_BUFFER, len(pending)*floatSize, gl.Ptr(pending), gl.DYNAMIC_DRAW)
		} else {
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(pending)*floatSize, gl.Ptr(pending))
		}
	}
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete releases the GL buffers.
func (b *MeshBuffer) Delete() {
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
}

// glPtr returns the address of the first element, or nil for an empty slice which gl.Ptr rejects.
func glPtr[T float32 | uint32](data []T) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
