package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// zeroToOneDepth remaps OpenGL clip-space depth [-w, w] to the WebGPU/Vulkan range [0, w].
var zeroToOneDepth = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
// Unlike mgl32.LookAtV it tolerates a zero-length view direction or a direction parallel to up:
// the degenerate axis is left unnormalized instead of becoming NaN.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: the view matrix (column-major)
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	z0 := eye[0] - center[0]
	z1 := eye[1] - center[1]
	z2 := eye[2] - center[2]
	val := float64(z0*z0 + z1*z1 + z2*z2)
	if val == 0 {
		val = 1
	}
	invLen := 1.0 / float32(math.Sqrt(val))
	z0 *= invLen
	z1 *= invLen
	z2 *= invLen

	x0 := up[1]*z2 - up[2]*z1
	x1 := up[2]*z0 - up[0]*z2
	x2 := up[0]*z1 - up[1]*z0
	val = float64(x0*x0 + x1*x1 + x2*x2)
	if val == 0 {
		val = 1
	}
	invLen = 1.0 / float32(math.Sqrt(val))
	x0 *= invLen
	x1 *= invLen
	x2 *= invLen

	y0 := z1*x2 - z2*x1
	y1 := z2*x0 - z0*x2
	y2 := z0*x1 - z1*x0

	var out mgl32.Mat4
	out[0], out[4], out[8], out[12] = x0, x1, x2, -(x0*eye[0] + x1*eye[1] + x2*eye[2])
	out[1], out[5], out[9], out[13] = y0, y1, y2, -(y0*eye[0] + y1*eye[1] + y2*eye[2])
	out[2], out[6], out[10], out[14] = z0, z1, z2, -(z0*eye[0] + z1*eye[1] + z2*eye[2])
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
	return out
}

// DepthZeroToOne converts a matrix producing OpenGL clip-space depth into one producing
// WebGPU clip-space depth (z in [0, 1] after the perspective divide).
//
// Parameters:
//   - m: a matrix ending in an OpenGL-convention projection
//
// Returns:
//   - mgl32.Mat4: the remapped matrix
func DepthZeroToOne(m mgl32.Mat4) mgl32.Mat4 {
	return zeroToOneDepth.Mul4(m)
}

// Mat4Bytes serializes a matrix into a little-endian byte buffer suitable for GPU upload.
// Column-major element order is preserved.
//
// Parameters:
//   - m: the matrix to serialize
//
// Returns:
//   - []byte: 64 bytes
func Mat4Bytes(m mgl32.Mat4) []byte {
	buf := make([]byte, 64)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(m[i]))
	}
	return buf
}

// RotateByVector rotates v by a rotation vector: the direction of rot is the rotation axis and its length
// is the angle in radians. A zero rotation vector returns v unchanged.
//
// Parameters:
//   - v: the vector to rotate
//   - rot: the rotation vector (axis * angle)
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func RotateByVector(v, rot mgl32.Vec3) mgl32.Vec3 {
	angle := rot.Len()
	if angle < 1e-8 {
		return v
	}
	return mgl32.QuatRotate(angle, rot.Mul(1/angle)).Rotate(v)
}

// ScreenCenter returns the center point of a viewport of the given size.
func ScreenCenter(size mgl32.Vec2) mgl32.Vec2 {
	return size.Mul(0.5)
}
