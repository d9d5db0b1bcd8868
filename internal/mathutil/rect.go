package mathutil

// Rect is an axis-aligned rectangle given by its left, top, right and bottom edges.
// In window space y grows downwards, so Top < Bottom for a regular viewport.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectXYWH builds a Rect from an origin and a size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

func (r Rect) Width() float64 {
	return r.Right - r.Left
}

func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}
