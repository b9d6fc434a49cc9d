package glrenderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/Carmen-Shannon/lighthouse/engine/renderer/shader"
	"github.com/go-gl/gl/v3.3-core/gl"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, name string, encode func(f *os.File, img image.Image) error) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 2, color.NRGBA{B: 255, A: 255})

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeImage(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(f *os.File, img image.Image) error
	}{
		{"png", "tex.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) }},
		{"bmp", "tex.bmp", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rgba, err := DecodeImage(writeImage(t, tt.file, tt.encode))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rgba.Rect.Dx() != 2 || rgba.Rect.Dy() != 3 {
				t.Fatalf("expected 2x3, got %v", rgba.Rect)
			}
			if len(rgba.Pix) != 2*3*4 {
				t.Errorf("expected tightly packed pixels, got %d bytes", len(rgba.Pix))
			}
			if r, _, _, _ := rgba.At(0, 0).RGBA(); r>>8 != 255 {
				t.Errorf("expected red at (0,0), got %v", rgba.At(0, 0))
			}
			if _, _, b, _ := rgba.At(1, 2).RGBA(); b>>8 != 255 {
				t.Errorf("expected blue at (1,2), got %v", rgba.At(1, 2))
			}
		})
	}
}

func TestDecodeImageErrors(t *testing.T) {
	if _, err := DecodeImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeImage(path); err == nil {
		t.Error("expected error for undecodable data")
	}
}

func TestGLStage(t *testing.T) {
	if stage, err := glStage(shader.ShaderTypeVertex); err != nil || stage != gl.VERTEX_SHADER {
		t.Errorf("vertex: got %d, %v", stage, err)
	}
	if stage, err := glStage(shader.ShaderTypeFragment); err != nil || stage != gl.FRAGMENT_SHADER {
		t.Errorf("fragment: got %d, %v", stage, err)
	}
	if _, err := glStage(shader.ShaderType(42)); err == nil {
		t.Error("expected error for an unknown stage")
	}
}

func TestInfoLog(t *testing.T) {
	got := infoLog(12, func(length int32, buf *uint8) {
		copy(unsafe.Slice(buf, length), "bad token\n\x00")
	})
	if got != "bad token" {
		t.Errorf("expected trimmed log, got %q", got)
	}
	if got := infoLog(0, nil); got != "no info log" {
		t.Errorf("expected placeholder for empty log, got %q", got)
	}
}

func TestCheckerboard(t *testing.T) {
	a := color.RGBA{R: 255, A: 255}
	b := color.RGBA{G: 255, A: 255}
	img := Checkerboard(4, a, b)
	if img.Rect.Dx() != 4 || img.Rect.Dy() != 4 {
		t.Fatalf("size = %v, want 4x4", img.Rect)
	}
	if got := img.RGBAAt(0, 0); got != a {
		t.Errorf("(0,0) = %v, want %v", got, a)
	}
	if got := img.RGBAAt(1, 0); got != b {
		t.Errorf("(1,0) = %v, want %v", got, b)
	}
	if got := img.RGBAAt(3, 3); got != a {
		t.Errorf("(3,3) = %v, want %v", got, a)
	}
	if small := Checkerboard(0, a, b); small.Rect.Dx() != 1 {
		t.Errorf("Checkerboard(0) width = %d, want 1", small.Rect.Dx())
	}
}
