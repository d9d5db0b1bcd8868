package mathutil

import "math"

// Mat4 is a 4×4 matrix stored row-major. Points are column vectors: p' = M × p.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// MulVec4 returns M × v without normalizing.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// MulPoint transforms a 3D point (w=1) by the 4×4 matrix.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(v.Point4()).Cartesian()
}

// FromMat3Translation builds a 4×4 affine matrix from a 3×3 rotation and translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	}
}

// minor returns the determinant of m without row r and column c.
func (m Mat4) minor(r, c int) float64 {
	var sub Mat3
	k := 0
	for i := 0; i < 4; i++ {
		if i == r {
			continue
		}
		for j := 0; j < 4; j++ {
			if j == c {
				continue
			}
			sub[k] = m[i*4+j]
			k++
		}
	}
	return sub.Det()
}

func cofactorSign(r, c int) float64 {
	if (r+c)%2 == 0 {
		return 1
	}
	return -1
}

func (m Mat4) Det() float64 {
	var d float64
	for c := 0; c < 4; c++ {
		if m[c] == 0 {
			continue
		}
		d += m[c] * cofactorSign(0, c) * m.minor(0, c)
	}
	return d
}

// Inverse computes the adjugate (transposed cofactor matrix) divided by the determinant.
// A singular matrix yields the identity and false.
func (m Mat4) Inverse() (Mat4, bool) {
	var cof Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			cof[r*4+c] = cofactorSign(r, c) * m.minor(r, c)
		}
	}
	d := m[0]*cof[0] + m[1]*cof[1] + m[2]*cof[2] + m[3]*cof[3]
	if singular(d, m[:], 4) {
		return Mat4Identity(), false
	}
	invD := 1.0 / d
	var inv Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			inv[r*4+c] = cof[c*4+r] * invD
		}
	}
	return inv, true
}

func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t[c*4+r] = m[r*4+c]
		}
	}
	return t
}

// ApproxEqual reports whether every element differs by at most tol.
func (m Mat4) ApproxEqual(o Mat4, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > tol {
			return false
		}
	}
	return true
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	return m.ApproxEqual(Mat4Identity(), 1e-8)
}
