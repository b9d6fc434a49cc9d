// Package mesh provides a renderable scene object whose vertices are re-transformed on the CPU every frame
// from its position and rotation vector, then pushed to a vertex buffer.
package mesh

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/lighthouse/engine/object"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultChunkSize is the number of vertices transformed per worker task. Meshes at or below this size are
// transformed inline on the calling goroutine.
const DefaultChunkSize = 4096

// VertexSink receives the interleaved transformed vertices after every Update.
type VertexSink interface {
	// UploadVertices replaces the sink's vertex data.
	//
	// Parameters:
	//   - data: interleaved x, y, z, u, v values
	UploadVertices(data []float32)
}

type meshImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	axis     mgl32.Vec3
	angle    float32
	spin     float32

	source      []Vertex
	transformed []Vertex
	indices     []uint32

	sink      VertexSink
	pool      worker.DynamicWorkerPool
	workers   int
	chunkSize int

	logger *slog.Logger
}

// Mesh is a scene object made of indexed, textured triangles.
// Rotation is a rotation vector: its direction is the axis and its length the angle in radians.
// Every Update adds Spin radians to the angle and recomputes the world-space vertices.
type Mesh interface {
	object.Object

	// Vertices returns the world-space vertices computed by the last Update.
	//
	// Returns:
	//   - []Vertex: a copy of the transformed vertices
	Vertices() []Vertex

	// Indices returns the triangle indices into Vertices.
	//
	// Returns:
	//   - []uint32: a copy of the index list
	Indices() []uint32

	// Spin returns the angle in radians added to the rotation every Update.
	Spin() float32

	// SetSpin sets the per-update rotation increment.
	//
	// Parameters:
	//   - spin: radians per Update, may be negative
	SetSpin(spin float32)

	// SetSink replaces the vertex sink the transformed vertices are pushed to.
	//
	// Parameters:
	//   - sink: the new sink, nil to stop uploading
	SetSink(sink VertexSink)
}

var _ Mesh = &meshImpl{}

// NewMesh creates a mesh from model-space vertices and triangle indices.
// The initial world-space vertices are computed immediately, so the mesh can be uploaded before the first frame.
//
// Parameters:
//   - vertices: the model-space vertices
//   - indices: triangle list, a multiple of three, each index < len(vertices)
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the newly created mesh
func NewMesh(vertices []Vertex, indices []uint32, options ...MeshBuilderOption) Mesh {
	if len(indices)%3 != 0 {
		panic(fmt.Sprintf("mesh: NewMesh requires a triangle list, got %d indices", len(indices)))
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			panic(fmt.Sprintf("mesh: NewMesh requires indices below %d, got %d", len(vertices), idx))
		}
	}

	m := &meshImpl{
		mu:          &sync.Mutex{},
		axis:        mgl32.Vec3{0, 1, 0},
		source:      append([]Vertex(nil), vertices...),
		transformed: make([]Vertex, len(vertices)),
		indices:     append([]uint32(nil), indices...),
		workers:     max(runtime.NumCPU()-1, 1),
		chunkSize:   DefaultChunkSize,
		logger:      slog.Default(),
	}
	for _, option := range options {
		option(m)
	}

	if m.pool == nil && len(m.source) > m.chunkSize {
		// Queue sized to hold every chunk of this mesh.
		m.pool = worker.NewDynamicWorkerPool(m.workers, len(m.source)/m.chunkSize+1, 1*time.Second)
	}

	m.logger.Debug("mesh created", "vertices", len(m.source), "triangles", len(m.indices)/3, "parallel", m.pool != nil)

	m.transform(m.position, m.rotation())
	return m
}

func (m *meshImpl) rotation() mgl32.Vec3 {
	return m.axis.Mul(m.angle)
}

func (m *meshImpl) Position() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *meshImpl) SetPosition(pos mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

func (m *meshImpl) Rotation() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rotation()
}

// SetRotation sets the rotation vector. A zero vector resets the angle but keeps the previous axis,
// so a spinning mesh keeps turning around the same axis.
func (m *meshImpl) SetRotation(rot mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	angle := rot.Len()
	if angle < 1e-8 {
		m.angle = 0
		return
	}
	m.axis = rot.Mul(1 / angle)
	m.angle = angle
}

func (m *meshImpl) Spin() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.spin
}

func (m *meshImpl) SetSpin(spin float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spin = spin
}

func (m *meshImpl) SetSink(sink VertexSink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink = sink
}

func (m *meshImpl) Vertices() []Vertex {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Vertex(nil), m.transformed...)
}

func (m *meshImpl) Indices() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint32(nil), m.indices...)
}

// Update advances the rotation by Spin, recomputes every world-space vertex and pushes the result to the sink.
func (m *meshImpl) Update() {
	m.mu.Lock()
	m.angle += m.spin
	m.transform(m.position, m.rotation())
	sink := m.sink
	var data []float32
	if sink != nil {
		data = Floats(m.transformed)
	}
	m.mu.Unlock()

	if sink != nil {
		sink.UploadVertices(data)
	}
}

// transform writes source vertices rotated by rot and translated by pos into the transformed buffer.
// Large meshes are split into chunks on the worker pool; the call returns once every chunk is done.
func (m *meshImpl) transform(pos, rot mgl32.Vec3) {
	n := len(m.source)
	if m.pool == nil || n <= m.chunkSize {
		transformRange(m.source, m.transformed, 0, n, pos, rot)
		return
	}

	// Workers outlive the frame, so a WaitGroup is the per-frame barrier rather than pool.Wait.
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < n; start += m.chunkSize {
		end := min(start+m.chunkSize, n)
		wg.Add(1)
		m.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				transformRange(m.source, m.transformed, start, end, pos, rot)
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
}

func transformRange(src, dst []Vertex, start, end int, pos, rot mgl32.Vec3) {
	for i := start; i < end; i++ {
		dst[i] = src[i].Transform(pos, rot)
	}
}
