package wgpurenderer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrMirrorMismatch is returned by Verifier.Check when the GPU buffer does not hold the expected matrix.
var ErrMirrorMismatch = errors.New("wgpu mirror holds a different matrix")

// mirrorTolerance absorbs float32 rounding in the depth remap.
const mirrorTolerance = 1e-5

// MatrixReader reads back the matrix stored for a uniform name.
type MatrixReader interface {
	// ReadMatrix returns the matrix currently held for name, in the WebGPU clip convention.
	ReadMatrix(name string) (mgl32.Mat4, error)
}

var _ MatrixReader = &UniformSink{}

// DecodeMatrix is the inverse of common.Mat4Bytes.
//
// Parameters:
//   - data: 64 little-endian bytes
//
// Returns:
//   - mgl32.Mat4: the column-major matrix
//   - error: error if data is not 64 bytes long
func DecodeMatrix(data []byte) (mgl32.Mat4, error) {
	var m mgl32.Mat4
	if len(data) != matrixSize {
		return m, fmt.Errorf("matrix needs %d bytes, got %d", matrixSize, len(data))
	}
	for i := range m {
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return m, nil
}

// ReadMatrix copies the uniform buffer for name into the readback buffer, waits for the queue and decodes
// the mapped bytes. It blocks until the GPU has finished every write queued before the call.
//
// Parameters:
//   - name: a registered uniform name
//
// Returns:
//   - mgl32.Mat4: the matrix held by the GPU buffer
//   - error: error if the name is unknown or the copy or map fails
func (s *UniformSink) ReadMatrix(name string) (mgl32.Mat4, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers[name]
	if !ok {
		return mgl32.Mat4{}, fmt.Errorf("uniform %q is not mirrored", name)
	}
	if s.staging == nil {
		return mgl32.Mat4{}, errors.New("uniform sink is released")
	}

	encoder, err := s.device.CreateCommandEncoder(nil)
	if err != nil {
		return mgl32.Mat4{}, fmt.Errorf("failed to create command encoder: %w", err)
	}
	if err := encoder.CopyBufferToBuffer(buf, 0, s.staging, 0, matrixSize); err != nil {
		encoder.Release()
		return mgl32.Mat4{}, fmt.Errorf("failed to copy uniform %q: %w", name, err)
	}
	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		return mgl32.Mat4{}, fmt.Errorf("failed to finish readback commands: %w", err)
	}
	s.queue.Submit(commandBuffer)
	commandBuffer.Release()
	encoder.Release()

	// Reference: https://www.w3.org/TR/webgpu/#dom-gpubuffer-mapasync
	mapped := false
	status := wgpu.BufferMapAsyncStatusSuccess
	if err := s.staging.MapAsync(wgpu.MapModeRead, 0, matrixSize, func(st wgpu.BufferMapAsyncStatus) {
		status = st
		mapped = true
	}); err != nil {
		return mgl32.Mat4{}, fmt.Errorf("failed to map readback buffer: %w", err)
	}
	for !mapped {
		s.device.Poll(true, nil)
	}
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return mgl32.Mat4{}, fmt.Errorf("failed to map readback buffer: status %v", status)
	}
	defer s.staging.Unmap()

	// The mapped range is only valid until Unmap; DecodeMatrix copies it out.
	return DecodeMatrix(s.staging.GetMappedRange(0, matrixSize))
}

// Verifier periodically reads a mirrored uniform back from the GPU and compares it with the matrix the
// camera uploaded in the same frame.
type Verifier struct {
	mu *sync.Mutex

	reader  MatrixReader
	uniform string
	every   uint64

	frames     uint64
	checks     int
	mismatches int

	logger *slog.Logger
}

// NewVerifier creates a Verifier that checks one uniform every n frames.
//
// Parameters:
//   - reader: the source of GPU-side matrices
//   - uniform: the uniform name to check
//   - every: check cadence in frames, values below 1 check every frame
//   - logger: logger for mismatches, nil for slog.Default()
//
// Returns:
//   - *Verifier: the verifier
func NewVerifier(reader MatrixReader, uniform string, every uint64, logger *slog.Logger) *Verifier {
	if reader == nil {
		panic("wgpurenderer: NewVerifier requires a reader")
	}
	if every < 1 {
		every = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{
		mu:      &sync.Mutex{},
		reader:  reader,
		uniform: uniform,
		every:   every,
		logger:  logger,
	}
}

// Check reads the uniform back and compares it with want after the depth remap applied on upload.
//
// Parameters:
//   - want: the OpenGL-convention matrix that was uploaded
//
// Returns:
//   - error: ErrMirrorMismatch wrapped with both matrices, a read error, or nil
func (v *Verifier) Check(want mgl32.Mat4) error {
	got, err := v.reader.ReadMatrix(v.uniform)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.checks++
	if err != nil {
		v.mismatches++
		return err
	}
	expected := common.DepthZeroToOne(want)
	if !got.ApproxEqualThreshold(expected, mirrorTolerance) {
		v.mismatches++
		return fmt.Errorf("%w: uniform %q got %v, want %v", ErrMirrorMismatch, v.uniform, got, expected)
	}
	return nil
}

// Tick counts a frame and runs Check on every n-th one. Failures are logged, not returned, so a broken
// mirror never stops the frame loop.
//
// Parameters:
//   - want: the matrix uploaded this frame
//
// Returns:
//   - bool: true if a check ran this frame
func (v *Verifier) Tick(want mgl32.Mat4) bool {
	v.mu.Lock()
	v.frames++
	due := v.frames%v.every == 0
	v.mu.Unlock()
	if !due {
		return false
	}

	if err := v.Check(want); err != nil {
		v.logger.Warn("wgpu mirror check failed", "uniform", v.uniform, "error", err)
		return true
	}
	v.logger.Debug("wgpu mirror check passed", "uniform", v.uniform)
	return true
}

// Checks returns how many checks ran and how many of them failed.
func (v *Verifier) Checks() (checks, mismatches int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.checks, v.mismatches
}
