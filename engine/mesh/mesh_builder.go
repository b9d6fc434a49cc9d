package mesh

import (
	"log/slog"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshBuilderOption is a functional option for configuring a Mesh.
type MeshBuilderOption func(*meshImpl)

// WithPosition sets the initial world-space position.
func WithPosition(pos mgl32.Vec3) MeshBuilderOption {
	return func(m *meshImpl) {
		m.position = pos
	}
}

// WithRotation sets the initial rotation vector (axis scaled by angle in radians).
// A zero vector keeps the default +Y axis at angle zero.
//
// Parameters:
//   - rot: the rotation vector
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithRotation(rot mgl32.Vec3) MeshBuilderOption {
	return func(m *meshImpl) {
		angle := rot.Len()
		if angle < 1e-8 {
			return
		}
		m.axis = rot.Mul(1 / angle)
		m.angle = angle
	}
}

// WithSpinAxis sets the axis used while the rotation angle is zero. Defaults to +Y.
// Zero-length axes are ignored.
func WithSpinAxis(axis mgl32.Vec3) MeshBuilderOption {
	return func(m *meshImpl) {
		if axis.Len() < 1e-8 {
			return
		}
		m.axis = axis.Normalize()
	}
}

// WithSpin sets the radians added to the rotation angle every Update.
func WithSpin(spin float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.spin = spin
	}
}

// WithSink sets the sink the transformed vertices are uploaded to after every Update.
func WithSink(sink VertexSink) MeshBuilderOption {
	return func(m *meshImpl) {
		m.sink = sink
	}
}

// WithWorkerPool shares an existing worker pool for chunked vertex transforms.
// Without it a mesh larger than one chunk creates its own pool.
//
// Parameters:
//   - pool: the pool to submit transform chunks to
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithWorkerPool(pool worker.DynamicWorkerPool) MeshBuilderOption {
	return func(m *meshImpl) {
		m.pool = pool
	}
}

// WithWorkers sets the number of workers of the pool a large mesh creates for itself.
// Defaults to runtime.NumCPU()-1. Ignored when WithWorkerPool is used.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithWorkers(n int) MeshBuilderOption {
	return func(m *meshImpl) {
		m.workers = max(n, 1)
	}
}

// WithChunkSize sets how many vertices one worker task transforms. Defaults to DefaultChunkSize.
func WithChunkSize(n int) MeshBuilderOption {
	return func(m *meshImpl) {
		if n > 0 {
			m.chunkSize = n
		}
	}
}

// WithLogger sets the mesh logger.
func WithLogger(logger *slog.Logger) MeshBuilderOption {
	return func(m *meshImpl) {
		if logger != nil {
			m.logger = logger
		}
	}
}
