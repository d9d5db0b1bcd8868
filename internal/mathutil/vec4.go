package mathutil

import "math"

// Vec4 is a homogeneous point or direction (x, y, z, w).
// w = 0 denotes a direction (point at infinity) and is never divided by.
type Vec4 [4]float64

// P4 returns the point (x, y, z, 1).
func P4(x, y, z float64) Vec4 {
	return Vec4{x, y, z, 1}
}

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Lerp returns a + (b-a)*t on all four components.
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

// Normalize divides x, y, z by w and sets w to 1.
// Points with w of 0 or 1 are returned unchanged.
func (v Vec4) Normalize() Vec4 {
	if v[3] == 0 || v[3] == 1 {
		return v
	}
	return Vec4{v[0] / v[3], v[1] / v[3], v[2] / v[3], 1}
}

// Cartesian drops w after normalization.
func (v Vec4) Cartesian() Vec3 {
	n := v.Normalize()
	return Vec3{n[0], n[1], n[2]}
}

// Len is the euclidean length of the normalized point (or of the direction when w is ~0).
func (v Vec4) Len() float64 {
	if math.Abs(v[3]) < 1e-4 {
		return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	}
	return v.Cartesian().Len()
}

// Unit scales the normalized point to unit length. Directions keep w = 0.
func (v Vec4) Unit() Vec4 {
	c := v.Cartesian().Normalize()
	if v[3] == 0 {
		return Vec4{c[0], c[1], c[2], 0}
	}
	return Vec4{c[0], c[1], c[2], 1}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec4) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
