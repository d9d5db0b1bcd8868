package mathutil

import "math"

// SingularEpsilon is the determinant magnitude, relative to the product of
// the row lengths, below which a matrix is treated as singular.
const SingularEpsilon = 1e-12

// singular reports whether det is negligible for the n×n row-major matrix m.
// The product of row lengths bounds |det|, so the test is scale free.
func singular(det float64, m []float64, n int) bool {
	bound := 1.0
	for r := 0; r < n; r++ {
		var sq float64
		for _, v := range m[r*n : r*n+n] {
			sq += v * v
		}
		bound *= math.Sqrt(sq)
	}
	return math.Abs(det) <= SingularEpsilon*bound
}

// Unit axes.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)
