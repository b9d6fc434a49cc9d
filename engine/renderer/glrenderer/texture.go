package glrenderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v3.3-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Texture is a 2D GL texture bound to a fixed texture unit.
// Filtering is nearest for minification and linear for magnification, with repeat wrapping.
type Texture struct {
	id   uint32
	unit uint32
}

// DecodeImage reads a PNG, JPEG, BMP or WebP file into tightly packed RGBA pixels.
//
// Parameters:
//   - path: the image file
//
// Returns:
//   - *image.RGBA: the decoded pixels
//   - error: error if the file cannot be opened or decoded
func DecodeImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba, nil
}

// Checkerboard generates a size x size image of alternating one-pixel cells, used when no texture file is configured.
//
// Parameters:
//   - size: width and height in pixels, at least 1
//   - a: color of cell (0, 0)
//   - b: color of the neighbouring cells
//
// Returns:
//   - *image.RGBA: the generated pixels
func Checkerboard(size int, a, b color.RGBA) *image.RGBA {
	if size < 1 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

// LoadTexture decodes an image file and uploads it to a new texture on the given unit.
//
// Parameters:
//   - path: the image file
//   - unit: texture unit index, 0 for GL_TEXTURE0
//
// Returns:
//   - *Texture: the uploaded texture
//   - error: error if the image cannot be decoded
func LoadTexture(path string, unit uint32) (*Texture, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return NewTexture(img, unit), nil
}

// NewTexture uploads RGBA pixels to a new texture on the given unit and generates mipmaps.
func NewTexture(img *image.RGBA, unit uint32) *Texture {
	t := &Texture{unit: unit}
	gl.GenTextures(1, &t.id)
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	size := img.Rect.Size()
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	return t
}

// Unit returns the texture unit index the texture binds to.
func (t *Texture) Unit() uint32 {
	return t.unit
}

// Bind activates the texture's unit and binds the texture to it.
func (t *Texture) Bind() {
	gl.ActiveTexture(gl.TEXTURE0 + t.unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the GL texture.
func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.id)
}
