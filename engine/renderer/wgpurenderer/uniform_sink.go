package wgpurenderer

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/Carmen-Shannon/lighthouse/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// matrixSize is the byte size of a mat4x4<f32> uniform.
const matrixSize = 64

// UniformSink owns one 64-byte uniform buffer per uniform name and implements shader.Program by writing
// matrices into them. Matrices are expected in the OpenGL clip convention and are remapped to WebGPU's
// [0, 1] depth range before upload. ReadMatrix copies a buffer back through a mappable staging buffer.
type UniformSink struct {
	mu *sync.Mutex

	device  *wgpu.Device
	queue   *wgpu.Queue
	buffers map[string]*wgpu.Buffer
	staging *wgpu.Buffer
	writes  int

	logger *slog.Logger
}

var _ shader.Program = &UniformSink{}

// NewUniformSink creates a uniform buffer for every name on the device.
//
// Parameters:
//   - d: the device to allocate on
//   - logger: logger for unknown uniform names, nil for slog.Default()
//   - names: the uniform names accepted by UploadMatrix4
//
// Returns:
//   - *UniformSink: the sink
//   - error: error if a buffer cannot be created
func NewUniformSink(d *Device, logger *slog.Logger, names ...string) (*UniformSink, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &UniformSink{
		mu:      &sync.Mutex{},
		device:  d.device,
		queue:   d.queue,
		buffers: make(map[string]*wgpu.Buffer, len(names)),
		logger:  logger,
	}
	for _, name := range common.Unique(names) {
		buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            name + " Uniform Buffer",
			Size:             matrixSize,
			Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
			MappedAtCreation: false,
		})
		if err != nil {
			s.Release()
			return nil, fmt.Errorf("failed to create uniform buffer %q: %w", name, err)
		}
		s.buffers[name] = buf
	}

	staging, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Uniform Readback Buffer",
		Size:             matrixSize,
		Usage:            wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("failed to create readback buffer: %w", err)
	}
	s.staging = staging
	return s, nil
}

// EncodeMatrix converts an OpenGL-convention matrix into the bytes of a WebGPU mat4x4<f32> uniform.
// With transpose set the matrix is transposed first, mirroring the GL upload flag.
//
// Parameters:
//   - m: the column-major matrix
//   - transpose: whether to transpose before encoding
//
// Returns:
//   - []byte: 64 little-endian bytes
func EncodeMatrix(m mgl32.Mat4, transpose bool) []byte {
	if transpose {
		m = m.Transpose()
	}
	return common.Mat4Bytes(common.DepthZeroToOne(m))
}

// UploadMatrix4 writes the encoded matrix into the buffer registered for name. Unknown names are skipped.
func (s *UniformSink) UploadMatrix4(name string, value mgl32.Mat4, transpose bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers[name]
	if !ok {
		s.logger.Debug("uniform not mirrored", "name", name)
		return
	}
	s.queue.WriteBuffer(buf, 0, EncodeMatrix(value, transpose))
	s.writes++
}

// Buffer returns the uniform buffer for name, or nil if the name was not registered.
func (s *UniformSink) Buffer(name string) *wgpu.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffers[name]
}

// Writes returns how many uploads reached the queue.
func (s *UniformSink) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Release frees every uniform buffer and the readback buffer.
func (s *UniformSink) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, buf := range s.buffers {
		buf.Release()
		delete(s.buffers, name)
	}
	if s.staging != nil {
		s.staging.Release()
		s.staging = nil
	}
}
