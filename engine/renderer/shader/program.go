// Package shader defines the narrow contract the core uses to push uniforms into a compiled shader program.
// Backends (OpenGL, WebGPU) implement it; the camera only ever sees this interface.
package shader

import "github.com/go-gl/mathgl/mgl32"

// Program is a non-owning handle to a compiled shader program that accepts uniform uploads.
type Program interface {
	// UploadMatrix4 writes a 4x4 matrix into the named uniform slot.
	// The matrix is column-major; transpose asks the backend to transpose it on upload.
	//
	// Parameters:
	//   - name: uniform name as declared in the shader source
	//   - value: the matrix to upload
	//   - transpose: whether the backend should transpose before storing
	UploadMatrix4(name string, value mgl32.Mat4, transpose bool)
}
