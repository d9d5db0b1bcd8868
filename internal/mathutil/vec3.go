package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
// Also used as a homogeneous 2D point (x, y, w).
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// FromHomo2 divides a homogeneous 2D point by its w component.
// w of 0 or 1 is returned as is.
func (v Vec3) FromHomo2() Vec2 {
	if v[2] == 0 || v[2] == 1 {
		return Vec2{v[0], v[1]}
	}
	return Vec2{v[0] / v[2], v[1] / v[2]}
}

// Point4 lifts v to a homogeneous point with w = 1.
func (v Vec3) Point4() Vec4 {
	return Vec4{v[0], v[1], v[2], 1}
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
