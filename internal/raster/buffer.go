package raster

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var ErrOutOfBounds = errors.New("raster: cell out of bounds")

// ID identifies the object that owns a depth buffer cell.
type ID int32

// NoObject is the background / untagged identifier.
const NoObject ID = -1

// DepthBuffer holds the depth and owning object of every pixel as flat
// row-major slices for cache locality. Larger depth is nearer.
type DepthBuffer struct {
	width  int
	height int
	depth  []float32 // len = W*H, cleared to -inf
	ids    []ID      // len = W*H
}

// NewDepthBuffer allocates a w×h buffer cleared to -inf depth and background.
func NewDepthBuffer(w, h int, background ID) *DepthBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	n := w * h
	b := &DepthBuffer{
		width:  w,
		height: h,
		depth:  make([]float32, n),
		ids:    make([]ID, n),
	}
	b.Clear(background)
	return b
}

func (b *DepthBuffer) Width() int  { return b.width }
func (b *DepthBuffer) Height() int { return b.height }

// Clear resets every cell to -inf depth and the background id.
func (b *DepthBuffer) Clear(background ID) {
	b.ClearDepth(background, math32.Inf(-1))
}

// ClearDepth resets every cell to the given depth and background id.
func (b *DepthBuffer) ClearDepth(background ID, depth float32) {
	for i := range b.depth {
		b.depth[i] = depth
		b.ids[i] = background
	}
}

func (b *DepthBuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// TryInsert stores (depth, id) at (x, y) when depth is strictly greater than
// the stored depth. It reports whether the cell was written; cells outside the
// buffer are never written.
func (b *DepthBuffer) TryInsert(x, y int, depth float32, id ID) bool {
	if !b.inBounds(x, y) {
		return false
	}
	i := y*b.width + x
	if !(depth > b.depth[i]) {
		return false
	}
	b.depth[i] = depth
	b.ids[i] = id
	return true
}

// At returns the depth and id stored at (x, y). Outside the buffer it returns
// -inf and NoObject.
func (b *DepthBuffer) At(x, y int) (float32, ID) {
	if !b.inBounds(x, y) {
		return math32.Inf(-1), NoObject
	}
	i := y*b.width + x
	return b.depth[i], b.ids[i]
}

// Pick is At for callers that must tell an empty cell from a miss:
// coordinates outside the buffer yield ErrOutOfBounds.
func (b *DepthBuffer) Pick(x, y int) (float32, ID, error) {
	if !b.inBounds(x, y) {
		return 0, NoObject, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	d, id := b.At(x, y)
	return d, id, nil
}

// ID returns the object visible at (x, y); used for picking.
func (b *DepthBuffer) ID(x, y int) ID {
	_, id := b.At(x, y)
	return id
}

func (b *DepthBuffer) Depth(x, y int) float32 {
	d, _ := b.At(x, y)
	return d
}

// Coverage counts the cells owned by each id, background included.
func (b *DepthBuffer) Coverage() map[ID]int {
	out := make(map[ID]int)
	for _, id := range b.ids {
		out[id]++
	}
	return out
}

// DepthRange returns the smallest and largest finite depth in the buffer.
// ok is false when no cell holds a finite depth.
func (b *DepthBuffer) DepthRange() (lo, hi float32, ok bool) {
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for _, d := range b.depth {
		if math32.IsInf(d, 0) || math32.IsNaN(d) {
			continue
		}
		lo = math32.Min(lo, d)
		hi = math32.Max(hi, d)
		ok = true
	}
	return lo, hi, ok
}
