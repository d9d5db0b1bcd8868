// Package camera derives projection matrices and maps camera-space geometry to
// window coordinates.
//
// Depth convention: the camera looks down -Z. Near and far are the camera-space
// Z coordinates of the clip planes (near > far, e.g. -1 and -100), so window
// depth always grows towards the viewer and the depth buffer keeps the larger
// value.
package camera

import (
	"errors"
	"fmt"
	"strings"

	"minigl/internal/clip"
	"minigl/internal/mathutil"
	"minigl/internal/transform"
)

var (
	ErrDepthRange = errors.New("camera: invalid depth range")
	ErrViewport   = errors.New("camera: empty viewport")
)

// Projection selects how the projection matrix is derived.
type Projection int

const (
	Orthogonal Projection = iota
	Perspective
)

func (p Projection) String() string {
	switch p {
	case Orthogonal:
		return "orthogonal"
	case Perspective:
		return "perspective"
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// ParseProjection accepts "orthogonal"/"ortho" and "perspective"/"persp".
func ParseProjection(s string) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orthogonal", "ortho", "":
		return Orthogonal, nil
	case "perspective", "persp":
		return Perspective, nil
	}
	return 0, fmt.Errorf("camera: unknown projection %q", s)
}

// Camera holds the view transform plus the state the projection is derived from.
// Setters only record state; ComputeProjection must run before the next frame.
type Camera struct {
	view      *transform.Transform
	viewport  mathutil.Rect
	volume    mathutil.Rect
	hasVolume bool
	near, far float64
	kind      Projection
	proj      mathutil.Mat4
}

// New returns a camera with an identity view and an orthogonal projection
// already computed for viewport and depth range.
func New(viewport mathutil.Rect, near, far float64) (*Camera, error) {
	c := &Camera{view: transform.New(), proj: mathutil.Mat4Identity()}
	if err := c.SetViewport(viewport); err != nil {
		return nil, err
	}
	if err := c.SetDepthRange(near, far); err != nil {
		return nil, err
	}
	if err := c.ComputeProjection(Orthogonal); err != nil {
		return nil, err
	}
	return c, nil
}

// View returns the view transform. Mutations apply from the next ToWindow call.
func (c *Camera) View() *transform.Transform {
	return c.view
}

// Clone returns an independent camera.
func (c *Camera) Clone() *Camera {
	cc := *c
	cc.view = c.view.Clone()
	return &cc
}

func (c *Camera) SetViewport(r mathutil.Rect) error {
	if r.Empty() {
		return fmt.Errorf("%w: %+v", ErrViewport, r)
	}
	c.viewport = r
	return nil
}

func (c *Camera) Viewport() mathutil.Rect {
	return c.viewport
}

// SetVolume sets the camera-space extents used to derive the projection: the
// view box for orthogonal projection, the near-plane window for perspective.
// Without a volume the viewport doubles as the extents.
func (c *Camera) SetVolume(r mathutil.Rect) error {
	if r.Empty() {
		return fmt.Errorf("%w: volume %+v", ErrViewport, r)
	}
	c.volume = r
	c.hasVolume = true
	return nil
}

// SetDepthRange sets the camera-space Z of the near and far planes; near must be greater than far.
func (c *Camera) SetDepthRange(near, far float64) error {
	if !(near > far) {
		return fmt.Errorf("%w: near %g must be greater than far %g", ErrDepthRange, near, far)
	}
	c.near, c.far = near, far
	return nil
}

func (c *Camera) DepthRange() (near, far float64) {
	return c.near, c.far
}

func (c *Camera) Kind() Projection {
	return c.kind
}

// Projection returns the last computed projection matrix.
func (c *Camera) Projection() mathutil.Mat4 {
	return c.proj
}

// SetProjection records the projection kind and recomputes the matrix from the
// current viewport, volume and depth range.
func (c *Camera) SetProjection(kind Projection) error {
	return c.ComputeProjection(kind)
}

// Recompute rederives the matrix for the current kind after setter calls.
func (c *Camera) Recompute() error {
	return c.ComputeProjection(c.kind)
}

// ComputeProjection derives and stores the projection matrix of the given kind.
func (c *Camera) ComputeProjection(kind Projection) error {
	ext := c.viewport
	if c.hasVolume {
		ext = c.volume
	}
	l, t, r, b := ext.Left, ext.Top, ext.Right, ext.Bottom
	n, f := -c.near, -c.far

	switch kind {
	case Orthogonal:
		c.proj = mathutil.Mat4{
			2 / (r - l), 0, 0, -(r + l) / (r - l),
			0, 2 / (b - t), 0, -(b + t) / (b - t),
			0, 0, -2 / (f - n), -(f + n) / (f - n),
			0, 0, 0, 1,
		}
	case Perspective:
		if n <= 0 {
			return fmt.Errorf("%w: perspective needs near < 0, got %g", ErrDepthRange, c.near)
		}
		c.proj = mathutil.Mat4{
			2 * n / (r - l), 0, (r + l) / (r - l), 0,
			0, 2 * n / (b - t), (b + t) / (b - t), 0,
			0, 0, (f + n) / (n - f), 2 * f * n / (n - f),
			0, 0, -1, 0,
		}
	default:
		return fmt.Errorf("camera: unknown projection %v", kind)
	}
	c.kind = kind
	return nil
}

// ClipMatrix returns projection × view.
func (c *Camera) ClipMatrix() mathutil.Mat4 {
	return mathutil.Mat4Mul(c.proj, c.view.Matrix())
}

// ToClip maps a camera-local point to homogeneous clip space.
func (c *Camera) ToClip(v mathutil.Vec4) mathutil.Vec4 {
	return c.ClipMatrix().MulVec4(v)
}

// Volume returns the clipper bound to this camera's viewport and depth range.
func (c *Camera) Volume() clip.Volume {
	return clip.Volume{Viewport: c.viewport, Near: c.near, Far: c.far}
}

// ToWindow projects, clips and maps pts to window space. An empty result means the
// primitive was culled.
func (c *Camera) ToWindow(pts []mathutil.Vec4) ([]mathutil.Vec3, error) {
	return c.ToWindowWith(mathutil.Mat4Identity(), pts)
}

// ToWindowWith is ToWindow with an additional model matrix applied first.
func (c *Camera) ToWindowWith(model mathutil.Mat4, pts []mathutil.Vec4) ([]mathutil.Vec3, error) {
	return c.Project(mathutil.Mat4Mul(c.ClipMatrix(), model), pts)
}

// Project maps pts through a precomputed clip × model matrix and clips them.
func (c *Camera) Project(m mathutil.Mat4, pts []mathutil.Vec4) ([]mathutil.Vec3, error) {
	cl := make([]mathutil.Vec4, len(pts))
	for i, p := range pts {
		cl[i] = m.MulVec4(p)
	}
	return c.Volume().Points(cl)
}
