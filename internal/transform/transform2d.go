package transform

import "minigl/internal/mathutil"

// Transform2D is the 3×3 accumulator for homogeneous 2D points (x, y, w).
// Composition order matches Transform.
type Transform2D struct {
	mat mathutil.Mat3
}

func New2D() *Transform2D {
	return &Transform2D{mat: mathutil.Mat3Identity()}
}

func New2DFrom(m mathutil.Mat3) *Transform2D {
	return &Transform2D{mat: m}
}

func (t *Transform2D) Matrix() mathutil.Mat3 {
	return t.mat
}

func (t *Transform2D) Load(m mathutil.Mat3) {
	t.mat = m
}

func (t *Transform2D) LoadIdentity() {
	t.mat = mathutil.Mat3Identity()
}

func (t *Transform2D) Clone() *Transform2D {
	return &Transform2D{mat: t.mat}
}

func (t *Transform2D) ApplyCustom(m mathutil.Mat3) {
	t.mat = mathutil.Mat3Mul(m, t.mat)
}

// Rotate rotates counter-clockwise by angle radians about the origin.
func (t *Transform2D) Rotate(angle float64) {
	t.ApplyCustom(mathutil.RotZ(angle))
}

func (t *Transform2D) Translate(dx, dy float64) {
	t.ApplyCustom(mathutil.Mat3{
		1, 0, dx,
		0, 1, dy,
		0, 0, 1,
	})
}

func (t *Transform2D) Scale(s float64) {
	t.ScaleXY(s, s)
}

func (t *Transform2D) ScaleXY(sx, sy float64) {
	t.ApplyCustom(mathutil.Mat3Diag(sx, sy, 1))
}

// Inverse mirrors Transform.Inverse.
func (t *Transform2D) Inverse() (*Transform2D, error) {
	inv, ok := t.mat.Inverse()
	if !ok {
		return &Transform2D{mat: inv}, ErrSingularMatrix
	}
	return &Transform2D{mat: inv}, nil
}

func (t *Transform2D) Apply(v mathutil.Vec3) mathutil.Vec3 {
	return t.mat.MulVec3(v)
}
