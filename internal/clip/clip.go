// Package clip clips primitives against the canonical view volume [-1, 1]³
// and maps the survivors to window coordinates.
//
// A fully culled primitive is reported as an empty result with a nil error.
package clip

import (
	"errors"
	"fmt"

	"minigl/internal/mathutil"
)

// ErrMalformedPrimitive is returned for primitives with an unsupported point
// count or non-finite coordinates.
var ErrMalformedPrimitive = errors.New("malformed primitive")

// minW bounds homogeneous points away from the camera plane before division.
const minW = 1e-9

// Inside reports whether an NDC point lies in the closed unit cube.
func Inside(v mathutil.Vec3) bool {
	for i := range planes {
		if !planes[i].inside(v) {
			return false
		}
	}
	return true
}

// Segment clips the NDC segment a-b plane by plane, moving whichever endpoint
// is outside onto the plane. It returns nil when the segment is culled.
func Segment(a, b mathutil.Vec3) []mathutil.Vec3 {
	for i := range planes {
		p := &planes[i]
		aIn, bIn := p.inside(a), p.inside(b)
		switch {
		case aIn && bIn:
		case aIn:
			b = p.intersect(a, b)
		case bIn:
			a = p.intersect(b, a)
		default:
			return nil
		}
	}
	return []mathutil.Vec3{a, b}
}

// Polygon clips a closed NDC polygon with Sutherland–Hodgman against each cube
// face in turn. Winding is preserved; a polygon already inside comes back
// unchanged. It returns nil as soon as a plane rejects every vertex.
func Polygon(poly []mathutil.Vec3) []mathutil.Vec3 {
	if len(poly) == 0 {
		return nil
	}
	cur := append(make([]mathutil.Vec3, 0, len(poly)+len(planes)), poly...)
	next := make([]mathutil.Vec3, 0, cap(cur))

	for i := range planes {
		p := &planes[i]
		next = next[:0]
		last := cur[len(cur)-1]
		lastDist := p.dist(last)
		for _, e := range cur {
			d := p.dist(e)
			if d >= 0 {
				if lastDist < 0 {
					next = append(next, p.intersect(e, last))
				}
				next = append(next, e)
			} else if lastDist > 0 {
				next = append(next, p.intersect(last, e))
			}
			last, lastDist = e, d
		}
		if len(next) == 0 {
			return nil
		}
		cur, next = next, cur
	}
	return cur
}

// Volume maps clipped NDC points to a window viewport and depth range.
type Volume struct {
	Viewport  mathutil.Rect
	Near, Far float64
}

// Window maps an NDC point into window space.
func (v Volume) Window(ndc mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{
		(ndc[0]+1)*0.5*v.Viewport.Width() + v.Viewport.Left,
		(ndc[1]+1)*0.5*v.Viewport.Height() + v.Viewport.Top,
		(ndc[2]+1)*0.5*(v.Far-v.Near) + v.Near,
	}
}

// Points clips homogeneous clip-space points (a point, a segment, or a polygon
// of three or more vertices) and returns the surviving vertices in window space.
func (v Volume) Points(pts []mathutil.Vec4) ([]mathutil.Vec3, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("clip: %w: no points", ErrMalformedPrimitive)
	}
	for i, p := range pts {
		if !p.IsFinite() {
			return nil, fmt.Errorf("clip: %w: point %d is not finite", ErrMalformedPrimitive, i)
		}
	}

	hom := pts
	if needsWClip(pts) {
		hom = clipW(pts)
	}

	ndc := make([]mathutil.Vec3, len(hom))
	for i, p := range hom {
		ndc[i] = p.Cartesian()
	}

	var out []mathutil.Vec3
	switch len(ndc) {
	case 0:
		return nil, nil
	case 1:
		if Inside(ndc[0]) {
			out = ndc
		}
	case 2:
		out = Segment(ndc[0], ndc[1])
	default:
		out = Polygon(ndc)
	}

	for i := range out {
		out[i] = v.Window(out[i])
	}
	return out, nil
}

func needsWClip(pts []mathutil.Vec4) bool {
	for _, p := range pts {
		if p[3] < minW {
			return true
		}
	}
	return false
}

// clipW removes the part of the primitive with w < minW in homogeneous space,
// where dividing by w would flip it through the camera plane.
func clipW(pts []mathutil.Vec4) []mathutil.Vec4 {
	cross := func(in, out mathutil.Vec4) mathutil.Vec4 {
		t := (in[3] - minW) / (in[3] - out[3])
		r := in.Lerp(out, t)
		r[3] = minW
		return r
	}

	switch len(pts) {
	case 1:
		return nil
	case 2:
		a, b := pts[0], pts[1]
		aIn, bIn := a[3] >= minW, b[3] >= minW
		switch {
		case aIn && bIn:
		case aIn:
			b = cross(a, b)
		case bIn:
			a = cross(b, a)
		default:
			return nil
		}
		return []mathutil.Vec4{a, b}
	}

	var out []mathutil.Vec4
	last := pts[len(pts)-1]
	for _, e := range pts {
		if e[3] >= minW {
			if last[3] < minW {
				out = append(out, cross(e, last))
			}
			out = append(out, e)
		} else if last[3] > minW {
			out = append(out, cross(last, e))
		}
		last = e
	}
	return out
}
