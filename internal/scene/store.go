// Package scene stores primitives grouped by the object that owns them and
// streams them through camera, clipper and rasterizer each frame.
package scene

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"minigl/internal/camera"
	"minigl/internal/clip"
	"minigl/internal/logging"
	"minigl/internal/mathutil"
	"minigl/internal/raster"
	"minigl/internal/transform"
)

var (
	ErrUnknownObject      = errors.New("scene: unknown object")
	ErrReservedObject     = errors.New("scene: background object cannot be removed")
	ErrMalformedPrimitive = clip.ErrMalformedPrimitive
)

// prim is a segment (n == 2) or triangle (n == 3) referencing arena indices.
type prim struct {
	owner raster.ID
	n     int
	v     [3]int32
}

// Primitive is a stored segment or triangle with its vertices resolved.
type Primitive struct {
	Owner  raster.ID
	Points []mathutil.Vec4
}

// Store is an append-only list of tagged primitives plus the transform bound
// to every tag. Vertices are interned by exact coordinate equality.
//
// A Store must not be mutated while DrawAll runs; concurrent DrawAll calls on
// an unchanged store are safe.
type Store struct {
	verts   []mathutil.Vec4
	index   map[mathutil.Vec4]int32
	prims   []prim
	objects map[raster.ID]*transform.Transform
	active  raster.ID
	next    raster.ID
}

// New returns an empty store with room for capacity primitives. Untagged
// primitives belong to raster.NoObject, bound to the identity transform.
func New(capacity int) *Store {
	s := &Store{}
	s.reset(max(capacity, 0))
	return s
}

func (s *Store) reset(capacity int) {
	s.verts = make([]mathutil.Vec4, 0, capacity)
	s.index = make(map[mathutil.Vec4]int32, capacity)
	s.prims = make([]prim, 0, capacity)
	s.objects = map[raster.ID]*transform.Transform{raster.NoObject: transform.New()}
	s.active = raster.NoObject
	s.next = 0
}

// Clear drops every primitive and object and re-binds the background to identity.
func (s *Store) Clear() {
	s.reset(cap(s.prims))
}

// NewObject binds t (identity when nil) to a fresh id and makes it active.
func (s *Store) NewObject(t *transform.Transform) raster.ID {
	if t == nil {
		t = transform.New()
	}
	id := s.next
	s.next++
	s.objects[id] = t
	s.active = id
	return id
}

// ActivateObject makes id the owner of subsequently added primitives.
func (s *Store) ActivateObject(id raster.ID) error {
	if _, ok := s.objects[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	s.active = id
	return nil
}

// Active returns the id new primitives are tagged with.
func (s *Store) Active() raster.ID {
	return s.active
}

// Transform returns the transform bound to id.
func (s *Store) Transform(id raster.ID) (*transform.Transform, bool) {
	t, ok := s.objects[id]
	return t, ok
}

// Objects returns the ids created by NewObject that are still bound, ascending.
func (s *Store) Objects() []raster.ID {
	ids := make([]raster.ID, 0, len(s.objects))
	for id := range s.objects {
		if id != raster.NoObject {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of stored primitives.
func (s *Store) Len() int {
	return len(s.prims)
}

// VertexCount returns the number of distinct interned vertices.
func (s *Store) VertexCount() int {
	return len(s.verts)
}

func (s *Store) AddLine(p1, p2 mathutil.Vec4) error {
	return s.AddPrimitive(p1, p2)
}

func (s *Store) AddTriangle(p1, p2, p3 mathutil.Vec4) error {
	return s.AddPrimitive(p1, p2, p3)
}

// AddPrimitive stores a segment or triangle tagged with the active object.
func (s *Store) AddPrimitive(pts ...mathutil.Vec4) error {
	if len(pts) != 2 && len(pts) != 3 {
		return fmt.Errorf("scene: %w: %d points", ErrMalformedPrimitive, len(pts))
	}
	for i, p := range pts {
		if !p.IsFinite() {
			return fmt.Errorf("scene: %w: point %d is %v", ErrMalformedPrimitive, i, p)
		}
	}
	p := prim{owner: s.active, n: len(pts)}
	for i, v := range pts {
		p.v[i] = s.intern(v)
	}
	s.prims = append(s.prims, p)
	return nil
}

func (s *Store) intern(v mathutil.Vec4) int32 {
	if i, ok := s.index[v]; ok {
		return i
	}
	i := int32(len(s.verts))
	s.verts = append(s.verts, v)
	s.index[v] = i
	return i
}

func (s *Store) resolve(p prim) Primitive {
	pts := make([]mathutil.Vec4, p.n)
	for i := range pts {
		pts[i] = s.verts[p.v[i]]
	}
	return Primitive{Owner: p.owner, Points: pts}
}

// Primitives yields every stored primitive in storage order.
func (s *Store) Primitives() iter.Seq[Primitive] {
	return func(yield func(Primitive) bool) {
		for _, p := range s.prims {
			if !yield(s.resolve(p)) {
				return
			}
		}
	}
}

// RemoveObject unbinds id and purges its primitives. The remaining primitives
// keep their relative order. Removing the active object makes the background active.
func (s *Store) RemoveObject(id raster.ID) error {
	if id == raster.NoObject {
		return ErrReservedObject
	}
	if _, ok := s.objects[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	delete(s.objects, id)
	s.prims = slices.DeleteFunc(s.prims, func(p prim) bool { return p.owner == id })
	if s.active == id {
		s.active = raster.NoObject
	}
	return nil
}

// Subdivide replaces every primitive of id with its midpoint split: two
// segments per segment, four triangles per triangle, in place.
func (s *Store) Subdivide(id raster.ID) error {
	if _, ok := s.objects[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	out := make([]prim, 0, len(s.prims))
	for _, p := range s.prims {
		if p.owner != id {
			out = append(out, p)
			continue
		}
		v := s.resolve(p).Points
		mid := func(a, b int) int32 { return s.intern(v[a].Add(v[b]).Normalize()) }
		if p.n == 2 {
			m := mid(0, 1)
			out = append(out,
				prim{owner: id, n: 2, v: [3]int32{p.v[0], m}},
				prim{owner: id, n: 2, v: [3]int32{m, p.v[1]}})
			continue
		}
		m01, m02, m12 := mid(0, 1), mid(0, 2), mid(1, 2)
		out = append(out,
			prim{owner: id, n: 3, v: [3]int32{p.v[0], m01, m02}},
			prim{owner: id, n: 3, v: [3]int32{m01, p.v[1], m12}},
			prim{owner: id, n: 3, v: [3]int32{m02, m12, p.v[2]}},
			prim{owner: id, n: 3, v: [3]int32{m01, m12, m02}})
	}
	s.prims = out
	return nil
}

// DrawStats summarises one DrawAll pass.
type DrawStats struct {
	Primitives int
	Drawn      int
	Culled     int
	Malformed  int
}

// DrawAll renders every primitive into buf: object transform, then camera,
// then clipper, then rasterizer, tagged with the owning id. Malformed
// primitives are skipped and reported together once the frame is done.
func (s *Store) DrawAll(r *raster.Rasterizer, buf *raster.DepthBuffer, cam *camera.Camera) (DrawStats, error) {
	var st DrawStats
	if r.Width() != buf.Width() || r.Height() != buf.Height() {
		return st, fmt.Errorf("scene: %w: rasterizer %dx%d, buffer %dx%d",
			raster.ErrSizeMismatch, r.Width(), r.Height(), buf.Width(), buf.Height())
	}
	log := logging.Logger()
	viewProj := cam.ClipMatrix()

	cacheID := raster.NoObject
	cacheM := mathutil.Mat4Mul(viewProj, s.objects[raster.NoObject].Matrix())

	var errs []error
	var pts [3]mathutil.Vec4
	for i, p := range s.prims {
		st.Primitives++
		if p.owner != cacheID {
			cacheID = p.owner
			cacheM = mathutil.Mat4Mul(viewProj, s.objects[p.owner].Matrix())
		}
		for k := 0; k < p.n; k++ {
			pts[k] = s.verts[p.v[k]]
		}

		win, err := cam.Project(cacheM, pts[:p.n])
		if err == nil && len(win) > 0 {
			err = r.Rasterize(buf, p.owner, win...)
		}
		switch {
		case err != nil:
			st.Malformed++
			log.Warn("scene: skipping primitive", "index", i, "object", p.owner, "err", err)
			errs = append(errs, fmt.Errorf("scene: primitive %d of object %d: %w", i, p.owner, err))
		case len(win) == 0:
			st.Culled++
			log.Debug("scene: primitive culled", "index", i, "object", p.owner)
		default:
			st.Drawn++
		}
	}
	return st, errors.Join(errs...)
}
