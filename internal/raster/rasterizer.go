package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"minigl/internal/clip"
	"minigl/internal/mathutil"
)

var (
	// ErrMalformedPrimitive is clip.ErrMalformedPrimitive, so callers can test
	// either package's value.
	ErrMalformedPrimitive = clip.ErrMalformedPrimitive
	ErrSizeMismatch       = errors.New("raster: buffer size mismatch")
)

// Rasterizer scan-converts window-space points, segments and polygons into a
// DepthBuffer of matching size. It owns a scratch indicator map and must not be
// shared between goroutines.
type Rasterizer struct {
	width, height    int
	offsetX, offsetY int

	// idc marks edge crossings per column: idc[x*(height+1)+y]. Row height is
	// the clamp row for edges leaving the bottom. NaN means no crossing.
	idc []float32
}

// NewRasterizer returns a rasterizer for w×h buffers with a clean scratch map.
func NewRasterizer(w, h int) *Rasterizer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r := &Rasterizer{width: w, height: h, idc: make([]float32, w*(h+1))}
	empty := math32.NaN()
	for i := range r.idc {
		r.idc[i] = empty
	}
	return r
}

func (r *Rasterizer) Width() int  { return r.width }
func (r *Rasterizer) Height() int { return r.height }

// SetOffset sets the window origin subtracted from every incoming coordinate.
func (r *Rasterizer) SetOffset(x, y int) {
	r.offsetX, r.offsetY = x, y
}

func (r *Rasterizer) Offset() (x, y int) {
	return r.offsetX, r.offsetY
}

// pixel is a rounded, offset-adjusted vertex.
type pixel struct {
	x, y int
	z    float32
}

// Rasterize writes the primitive formed by pts into buf tagged with id:
// nothing for zero points, a single cell for one, a line for two and a filled
// polygon for three or more. Input is validated before any write.
func (r *Rasterizer) Rasterize(buf *DepthBuffer, id ID, pts ...mathutil.Vec3) error {
	if buf.Width() != r.width || buf.Height() != r.height {
		return fmt.Errorf("%w: rasterizer %dx%d, buffer %dx%d",
			ErrSizeMismatch, r.width, r.height, buf.Width(), buf.Height())
	}
	px := make([]pixel, len(pts))
	for i, p := range pts {
		if !p.IsFinite() {
			return fmt.Errorf("%w: point %d is %v", ErrMalformedPrimitive, i, p)
		}
		px[i] = pixel{
			x: int(math.Round(p[0])) - r.offsetX,
			y: int(math.Round(p[1])) - r.offsetY,
			z: float32(p[2]),
		}
	}

	switch len(px) {
	case 0:
	case 1:
		buf.TryInsert(px[0].x, px[0].y, px[0].z, id)
	case 2:
		r.line(buf, id, px[0], px[1])
	default:
		r.polygon(buf, id, px)
	}
	return nil
}

// stepper walks a Bresenham line and interpolates depth per stepped axis. The
// depth delta is split between the axes that move so the far end is reached
// exactly whatever the slope.
type stepper struct {
	x, y, x2, y2 int
	dx, dy       int
	sx, sy       int
	err          int
	z, dzx, dzy  float32
}

func newStepper(a, b pixel) stepper {
	s := stepper{
		x: a.x, y: a.y, x2: b.x, y2: b.y,
		dx: abs(b.x - a.x), dy: -abs(b.y - a.y),
		sx: 1, sy: 1,
		z: a.z,
	}
	if b.x < a.x {
		s.sx = -1
	}
	if b.y < a.y {
		s.sy = -1
	}
	s.err = s.dx + s.dy

	dz := b.z - a.z
	var norm float32
	if s.dx > 0 {
		norm++
		s.dzx = dz / float32(s.dx)
	}
	if s.dy < 0 {
		norm++
		s.dzy = dz / float32(-s.dy)
	}
	if norm > 0 {
		s.dzx /= norm
		s.dzy /= norm
	}
	return s
}

func (s *stepper) done() bool {
	return s.x == s.x2 && s.y == s.y2
}

// step advances one Bresenham iteration. onColumn runs on the pixel being left
// whenever x advances.
func (s *stepper) step(onColumn func(x, y int, z float32)) {
	e2 := 2 * s.err
	if e2 > s.dy {
		if onColumn != nil {
			onColumn(s.x, s.y, s.z)
		}
		s.err += s.dy
		s.x += s.sx
		s.z += s.dzx
	}
	if e2 < s.dx {
		s.err += s.dx
		s.y += s.sy
		s.z += s.dzy
	}
}

func (r *Rasterizer) line(buf *DepthBuffer, id ID, a, b pixel) {
	s := newStepper(a, b)
	for {
		buf.TryInsert(s.x, s.y, s.z, id)
		if s.done() {
			return
		}
		s.step(nil)
	}
}

func (r *Rasterizer) polygon(buf *DepthBuffer, id ID, px []pixel) {
	xmin, xmax := px[0].x, px[0].x
	ymin, ymax := px[0].y, px[0].y
	for _, p := range px[1:] {
		xmin, xmax = min(xmin, p.x), max(xmax, p.x)
		ymin, ymax = min(ymin, p.y), max(ymax, p.y)
	}
	if xmax < 0 || xmin >= r.width || ymax < 0 || ymin >= r.height {
		return
	}

	for i := range px {
		r.indicate(px[i], px[(i+1)%len(px)])
	}
	r.fill(buf, id, max(xmin, 0), min(xmax, r.width-1), r.clampRow(ymin), r.clampRow(ymax))
}

func (r *Rasterizer) clampRow(y int) int {
	return min(max(y, 0), r.height)
}

// indicate records the crossings of edge a-b in the scratch map. Each column
// of the half-open span [xmin, xmax) is marked exactly once; a second mark on
// the same cell cancels the first.
func (r *Rasterizer) indicate(a, b pixel) {
	if a.x == b.x {
		return
	}
	if b.x < a.x {
		a, b = b, a
	}
	s := newStepper(a, b)
	mark := func(x, y int, z float32) {
		if x < 0 || x >= r.width {
			return
		}
		i := x*(r.height+1) + r.clampRow(y)
		if math32.IsNaN(r.idc[i]) {
			r.idc[i] = z
		} else {
			r.idc[i] = math32.NaN()
		}
	}
	for !s.done() {
		s.step(mark)
	}
}

// fill scans columns x0..x1 over rows y0..y1, consuming every mark on the way.
// A mark toggles inside; the entry row is written, the exit row is not.
func (r *Rasterizer) fill(buf *DepthBuffer, id ID, x0, x1, y0, y1 int) {
	stride := r.height + 1
	for x := x0; x <= x1; x++ {
		col := r.idc[x*stride : (x+1)*stride]
		inside := false
		var z, dz float32
		for y := y0; y <= y1; y++ {
			if m := col[y]; !math32.IsNaN(m) {
				col[y] = math32.NaN()
				inside = !inside
				if inside {
					z, dz = m, 0
					inside = false
					for y2 := y + 1; y2 <= y1; y2++ {
						if !math32.IsNaN(col[y2]) {
							dz = (col[y2] - m) / float32(y2-y)
							inside = true
							break
						}
					}
				}
			}
			if inside && y < r.height {
				buf.TryInsert(x, y, z, id)
				z += dz
			}
		}
	}
}

// scratchClean reports whether every scratch cell holds the sentinel.
func (r *Rasterizer) scratchClean() bool {
	for _, v := range r.idc {
		if !math32.IsNaN(v) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
