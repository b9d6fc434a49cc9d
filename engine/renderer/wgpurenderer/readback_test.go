package wgpurenderer

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// recordingReader stands in for a GPU buffer: it holds whatever was last uploaded through EncodeMatrix.
type recordingReader struct {
	held  map[string][]byte
	reads int
	err   error
}

func (r *recordingReader) UploadMatrix4(name string, value mgl32.Mat4, transpose bool) {
	if r.held == nil {
		r.held = make(map[string][]byte)
	}
	r.held[name] = EncodeMatrix(value, transpose)
}

func (r *recordingReader) ReadMatrix(name string) (mgl32.Mat4, error) {
	r.reads++
	if r.err != nil {
		return mgl32.Mat4{}, r.err
	}
	return DecodeMatrix(r.held[name])
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cameraMatrix() mgl32.Mat4 {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, -2}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100).Mul4(view)
}

func TestDecodeMatrixRejectsShortInput(t *testing.T) {
	if _, err := DecodeMatrix(make([]byte, 32)); err == nil {
		t.Error("expected an error for 32 bytes")
	}
}

func TestVerifierCheck(t *testing.T) {
	uploaded := cameraMatrix()
	tests := []struct {
		name    string
		stored  mgl32.Mat4
		readErr error
		wantErr error
	}{
		{"matching upload", uploaded, nil, nil},
		{"stale buffer", mgl32.Ident4(), nil, ErrMirrorMismatch},
		{"read failure", uploaded, errors.New("device lost"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &recordingReader{err: tt.readErr}
			reader.UploadMatrix4("camera_matrix", tt.stored, false)
			v := NewVerifier(reader, "camera_matrix", 1, quietLogger())

			err := v.Check(uploaded)
			switch {
			case tt.readErr != nil:
				if !errors.Is(err, tt.readErr) {
					t.Errorf("expected the read error, got %v", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			case err != nil:
				t.Errorf("unexpected error: %v", err)
			}

			checks, mismatches := v.Checks()
			if checks != 1 {
				t.Errorf("expected 1 check, got %d", checks)
			}
			if (err != nil) != (mismatches == 1) {
				t.Errorf("mismatch count %d does not match error %v", mismatches, err)
			}
		})
	}
}

func TestVerifierTickCadence(t *testing.T) {
	reader := &recordingReader{}
	m := cameraMatrix()
	reader.UploadMatrix4("camera_matrix", m, false)
	v := NewVerifier(reader, "camera_matrix", 3, quietLogger())

	var ran []int
	for frame := 1; frame <= 7; frame++ {
		if v.Tick(m) {
			ran = append(ran, frame)
		}
	}
	if len(ran) != 2 || ran[0] != 3 || ran[1] != 6 {
		t.Errorf("expected checks on frames 3 and 6, got %v", ran)
	}
	if reader.reads != 2 {
		t.Errorf("expected 2 GPU reads, got %d", reader.reads)
	}
	if _, mismatches := v.Checks(); mismatches != 0 {
		t.Errorf("expected no mismatches, got %d", mismatches)
	}
}

func TestNewVerifierPanicsWithoutReader(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	NewVerifier(nil, "camera_matrix", 1, nil)
}
