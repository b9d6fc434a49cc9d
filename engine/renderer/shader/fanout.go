package shader

import "github.com/go-gl/mathgl/mgl32"

// Fanout forwards every upload to each of its programs in order, e.g. a GL program and a WebGPU uniform mirror.
type Fanout []Program

var _ Program = Fanout{}

func (f Fanout) UploadMatrix4(name string, value mgl32.Mat4, transpose bool) {
	for _, p := range f {
		p.UploadMatrix4(name, value, transpose)
	}
}
