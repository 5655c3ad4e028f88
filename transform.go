package boids

import (
	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Projection parameters of the rendered frame.
const (
	fieldOfView = 45 * math.Pi / 180 // vertical, in radians
	zNear       = 0.1
	zFar        = 100.0
)

// modelViewOffset places the quad in front of the camera.
var modelViewOffset = ms3.Vec{X: 0, Y: 0, Z: -6}

// Mat4 is a 4x4 matrix stored in column-major order, the layout OpenGL
// expects when uploading uniforms without transposition. Element at row i
// and column j is m[j*4+i].
type Mat4 [16]float32

// IdentityMat4 returns the 4x4 identity matrix.
func IdentityMat4() Mat4 {
	return Mat4{
		0:  1,
		5:  1,
		10: 1,
		15: 1,
	}
}

// At returns the element at row i and column j.
func (m Mat4) At(i, j int) float32 { return m[j*4+i] }

// Perspective returns a right handed perspective projection matrix mapping
// the view frustum to clip space with depth in [-1, 1].
// fovy is the vertical field of view in radians.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := 1 / math.Tan(fovy/2)
	nf := 1 / (near - far)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) * nf
	m[11] = -1
	m[14] = 2 * far * near * nf
	return m
}

// Translate returns m multiplied on the right by a translation of v.
func (m Mat4) Translate(v ms3.Vec) Mat4 {
	for i := 0; i < 4; i++ {
		m[12+i] = m[i]*v.X + m[4+i]*v.Y + m[8+i]*v.Z + m[12+i]
	}
	return m
}

// Transforms holds the matrices uploaded for a frame.
type Transforms struct {
	Projection Mat4
	ModelView  Mat4
}

// frameTransforms computes the frame matrices for a surface of the given size.
func frameTransforms(width, height int) Transforms {
	aspect := float32(width) / float32(height)
	return Transforms{
		Projection: Perspective(fieldOfView, aspect, zNear, zFar),
		ModelView:  IdentityMat4().Translate(modelViewOffset),
	}
}
