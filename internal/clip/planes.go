package clip

import "minigl/internal/mathutil"

// plane is one face of the canonical cube [-1, 1]³, described by the fixed
// coordinate it bounds and three points spanning it.
type plane struct {
	name  string
	axis  int
	bound float64 // -1 for the min face, +1 for the max face
	basis [3]mathutil.Vec3
}

// planes lists the cube faces in clipping order: left, top, right, bottom, near, far.
var planes = [6]plane{
	{"left", 0, -1, [3]mathutil.Vec3{{-1, -1, 0}, {-1, 1, 0}, {-1, 0, 1}}},
	{"top", 1, -1, [3]mathutil.Vec3{{-1, -1, 0}, {1, -1, 0}, {0, -1, 1}}},
	{"right", 0, 1, [3]mathutil.Vec3{{1, -1, 0}, {1, 1, 0}, {1, 0, 1}}},
	{"bottom", 1, 1, [3]mathutil.Vec3{{-1, 1, 0}, {1, 1, 0}, {0, 1, 1}}},
	{"near", 2, -1, [3]mathutil.Vec3{{0, 0, -1}, {1, 0, -1}, {0, 1, -1}}},
	{"far", 2, 1, [3]mathutil.Vec3{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}}},
}

// dist is positive inside the volume, zero on the plane.
func (p *plane) dist(v mathutil.Vec3) float64 {
	if p.bound < 0 {
		return v[p.axis] - p.bound
	}
	return p.bound - v[p.axis]
}

func (p *plane) inside(v mathutil.Vec3) bool {
	return p.dist(v) >= 0
}

// intersect returns the point where the edge from the inside vertex in to the
// outside vertex out crosses the plane. The result lies exactly on the plane.
func (p *plane) intersect(in, out mathutil.Vec3) mathutil.Vec3 {
	r, _, ok := mathutil.IntersectPlaneLine(p.basis[0], p.basis[1], p.basis[2], in, out)
	if !ok {
		// unreachable for a straddling edge; keep the parametric form as a fallback
		di, do := p.dist(in), p.dist(out)
		r = in.Add(out.Sub(in).Scale(di / (di - do)))
	}
	r[p.axis] = p.bound
	return r
}
