package raster

import (
	"fmt"

	"minigl/internal/mathutil"
	"minigl/internal/transform"
)

// Draw2D maps homogeneous 2D points (x, y, w) through t straight into window
// space and rasterizes them at depth 0. There is no camera or clipping, so
// cells outside the rasterizer extent are dropped by the buffer.
// A nil t draws pts as given.
func (r *Rasterizer) Draw2D(buf *DepthBuffer, t *transform.Transform2D, id ID, pts ...mathutil.Vec3) error {
	win := make([]mathutil.Vec3, len(pts))
	for i, p := range pts {
		if t != nil {
			p = t.Apply(p)
		}
		if p[2] == 0 {
			return fmt.Errorf("%w: point %d has w = 0", ErrMalformedPrimitive, i)
		}
		xy := p.FromHomo2()
		win[i] = mathutil.Vec3{xy[0], xy[1], 0}
	}
	return r.Rasterize(buf, id, win...)
}
