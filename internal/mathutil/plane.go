package mathutil

// IntersectPlaneLine intersects the plane through origin, p and q with the line
// from → to. It solves origin + a(p-origin) + b(q-origin) = from + t(to-from)
// for (a, b, t) by inverting the 3×3 system and evaluates the line at t.
// It reports false when the line is parallel to the plane.
func IntersectPlaneLine(origin, p, q, from, to Vec3) (Vec3, float64, bool) {
	dir := to.Sub(from)
	m := Mat3{
		origin[0] - p[0], origin[0] - q[0], dir[0],
		origin[1] - p[1], origin[1] - q[1], dir[1],
		origin[2] - p[2], origin[2] - q[2], dir[2],
	}
	inv, ok := m.Inverse()
	if !ok {
		return from, 0, false
	}
	t := inv.MulVec3(origin.Sub(from))[2]
	return from.Add(dir.Scale(t)), t, true
}
