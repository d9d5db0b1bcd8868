// Package transform accumulates elementary affine operations into one matrix.
//
// Every operation pre-multiplies the accumulated matrix (M = Op × M), so the
// operation called first is the first one applied to a point.
package transform

import (
	"errors"

	"minigl/internal/mathutil"
)

// ErrSingularMatrix is returned when an inverse is requested for a matrix with a zero determinant.
var ErrSingularMatrix = errors.New("transform: singular matrix")

// Transform is a 4×4 accumulator for 3D homogeneous points.
// The zero value is not usable; use New or NewFrom.
type Transform struct {
	mat mathutil.Mat4
}

// New returns an identity transform.
func New() *Transform {
	return &Transform{mat: mathutil.Mat4Identity()}
}

// NewFrom returns a transform initialised with m.
func NewFrom(m mathutil.Mat4) *Transform {
	return &Transform{mat: m}
}

// Matrix returns a copy of the accumulated matrix.
func (t *Transform) Matrix() mathutil.Mat4 {
	return t.mat
}

func (t *Transform) Load(m mathutil.Mat4) {
	t.mat = m
}

func (t *Transform) LoadIdentity() {
	t.mat = mathutil.Mat4Identity()
}

// Clone returns an independent copy.
func (t *Transform) Clone() *Transform {
	return &Transform{mat: t.mat}
}

// ApplyCustom pre-multiplies an arbitrary matrix.
func (t *Transform) ApplyCustom(m mathutil.Mat4) {
	t.mat = mathutil.Mat4Mul(m, t.mat)
}

// ApplyTransform pre-multiplies the matrix accumulated by o.
func (t *Transform) ApplyTransform(o *Transform) {
	t.ApplyCustom(o.mat)
}

// Rotate rotates by angle radians around axis (normalized; zero axis is a no-op).
func (t *Transform) Rotate(angle float64, axis mathutil.Vec3) {
	t.rotate3(mathutil.RotAxis(angle, axis))
}

func (t *Transform) RotateX(angle float64) {
	t.rotate3(mathutil.RotX(angle))
}

func (t *Transform) RotateY(angle float64) {
	t.rotate3(mathutil.RotY(angle))
}

func (t *Transform) RotateZ(angle float64) {
	t.rotate3(mathutil.RotZ(angle))
}

// RotateEuler applies an XYZ Euler rotation (radians) as a single operation.
func (t *Transform) RotateEuler(rx, ry, rz float64) {
	t.rotate3(mathutil.QuatToMat3(mathutil.EulerToQuat(rx, ry, rz)))
}

func (t *Transform) rotate3(r mathutil.Mat3) {
	t.ApplyCustom(mathutil.FromMat3Translation(r, mathutil.Vec3{}))
}

func (t *Transform) Translate(dx, dy, dz float64) {
	t.ApplyCustom(mathutil.FromMat3Translation(mathutil.Mat3Identity(), mathutil.Vec3{dx, dy, dz}))
}

// Scale scales uniformly.
func (t *Transform) Scale(s float64) {
	t.ScaleXYZ(s, s, s)
}

func (t *Transform) ScaleXYZ(sx, sy, sz float64) {
	t.ApplyCustom(mathutil.FromMat3Translation(mathutil.Mat3Diag(sx, sy, sz), mathutil.Vec3{}))
}

// Invert replaces the matrix by its inverse. On a singular matrix the
// transform becomes the identity and Invert returns false.
func (t *Transform) Invert() bool {
	inv, ok := t.mat.Inverse()
	t.mat = inv
	return ok
}

// Inverse returns a new transform holding the inverse matrix. On a singular
// matrix the result is an identity transform together with ErrSingularMatrix.
func (t *Transform) Inverse() (*Transform, error) {
	inv, ok := t.mat.Inverse()
	if !ok {
		return &Transform{mat: inv}, ErrSingularMatrix
	}
	return &Transform{mat: inv}, nil
}

// Apply maps a homogeneous point. The result is not normalized.
func (t *Transform) Apply(v mathutil.Vec4) mathutil.Vec4 {
	return t.mat.MulVec4(v)
}

// ApplyAll maps every point into a new slice.
func (t *Transform) ApplyAll(src []mathutil.Vec4) []mathutil.Vec4 {
	dst := make([]mathutil.Vec4, len(src))
	t.ApplyInto(dst, src)
	return dst
}

// ApplyInto maps src into dst, which must be at least as long as src.
func (t *Transform) ApplyInto(dst, src []mathutil.Vec4) {
	for i, v := range src {
		dst[i] = t.mat.MulVec4(v)
	}
}
