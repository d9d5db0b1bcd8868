package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minigl/internal/camera"
	"minigl/internal/mathutil"
	"minigl/internal/raster"
	"minigl/internal/transform"
)

func tri(x, y, z float64) [3]mathutil.Vec4 {
	return [3]mathutil.Vec4{mathutil.P4(x, y, z), mathutil.P4(x+1, y, z), mathutil.P4(x, y+1, z)}
}

func collect(s *Store) []Primitive {
	var out []Primitive
	for p := range s.Primitives() {
		out = append(out, p)
	}
	return out
}

func TestRemoveObjectKeepsOthers(t *testing.T) {
	s := New(8)
	a := s.NewObject(nil)
	for i := 0; i < 5; i++ {
		v := tri(float64(i), 0, 0)
		require.NoError(t, s.AddTriangle(v[0], v[1], v[2]))
	}
	b := s.NewObject(nil)
	keep := []Primitive{}
	for i := 0; i < 2; i++ {
		v := tri(float64(i), 10, 0)
		require.NoError(t, s.AddTriangle(v[0], v[1], v[2]))
		keep = append(keep, Primitive{Owner: b, Points: v[:]})
	}
	require.Equal(t, 7, s.Len())

	require.NoError(t, s.RemoveObject(a))
	assert.Equal(t, keep, collect(s))
	assert.Equal(t, []raster.ID{b}, s.Objects())
	_, ok := s.Transform(a)
	assert.False(t, ok)

	assert.ErrorIs(t, s.RemoveObject(a), ErrUnknownObject)
	assert.ErrorIs(t, s.RemoveObject(raster.NoObject), ErrReservedObject)
}

func TestRemoveActiveFallsBackToBackground(t *testing.T) {
	s := New(0)
	id := s.NewObject(nil)
	assert.Equal(t, id, s.Active())
	require.NoError(t, s.RemoveObject(id))
	assert.Equal(t, raster.NoObject, s.Active())

	require.NoError(t, s.AddLine(mathutil.P4(0, 0, 0), mathutil.P4(1, 1, 0)))
	assert.Equal(t, raster.NoObject, collect(s)[0].Owner)
}

func TestActivateObject(t *testing.T) {
	s := New(4)
	a := s.NewObject(nil)
	b := s.NewObject(nil)
	assert.Equal(t, b, s.Active())
	require.NoError(t, s.ActivateObject(a))
	require.NoError(t, s.AddLine(mathutil.P4(0, 0, 0), mathutil.P4(1, 0, 0)))
	assert.Equal(t, a, collect(s)[0].Owner)

	assert.ErrorIs(t, s.ActivateObject(42), ErrUnknownObject)
	require.NoError(t, s.ActivateObject(raster.NoObject))
}

func TestAddPrimitiveValidation(t *testing.T) {
	s := New(4)
	assert.ErrorIs(t, s.AddPrimitive(mathutil.P4(0, 0, 0)), ErrMalformedPrimitive)
	assert.ErrorIs(t, s.AddPrimitive(), ErrMalformedPrimitive)
	assert.ErrorIs(t, s.AddLine(mathutil.P4(0, 0, 0), mathutil.P4(math.Inf(1), 0, 0)), ErrMalformedPrimitive)
	assert.Zero(t, s.Len())
}

func TestVerticesInterned(t *testing.T) {
	s := New(4)
	a, b, c, d := mathutil.P4(0, 0, 0), mathutil.P4(1, 0, 0), mathutil.P4(0, 1, 0), mathutil.P4(1, 1, 0)
	require.NoError(t, s.AddTriangle(a, b, c))
	require.NoError(t, s.AddTriangle(b, d, c))
	assert.Equal(t, 4, s.VertexCount())
	assert.Equal(t, []mathutil.Vec4{b, d, c}, collect(s)[1].Points)
}

func TestSubdivide(t *testing.T) {
	s := New(4)
	id := s.NewObject(nil)
	require.NoError(t, s.AddTriangle(mathutil.P4(0, 0, 0), mathutil.P4(2, 0, 0), mathutil.P4(0, 2, 0)))
	require.NoError(t, s.AddLine(mathutil.P4(0, 0, 0), mathutil.P4(0, 0, 4)))
	require.NoError(t, s.Subdivide(id))

	prims := collect(s)
	require.Len(t, prims, 6)
	assert.Equal(t, []mathutil.Vec4{mathutil.P4(0, 0, 0), mathutil.P4(1, 0, 0), mathutil.P4(0, 1, 0)}, prims[0].Points)
	assert.Equal(t, []mathutil.Vec4{mathutil.P4(1, 0, 0), mathutil.P4(1, 1, 0), mathutil.P4(0, 1, 0)}, prims[3].Points)
	assert.Equal(t, []mathutil.Vec4{mathutil.P4(0, 0, 2), mathutil.P4(0, 0, 4)}, prims[5].Points)
	assert.Equal(t, 8, s.VertexCount())

	assert.ErrorIs(t, s.Subdivide(99), ErrUnknownObject)
}

func TestClear(t *testing.T) {
	s := New(2)
	s.NewObject(transform.New())
	require.NoError(t, s.AddLine(mathutil.P4(0, 0, 0), mathutil.P4(1, 0, 0)))
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Zero(t, s.VertexCount())
	assert.Empty(t, s.Objects())
	assert.Equal(t, raster.NoObject, s.Active())
	bg, ok := s.Transform(raster.NoObject)
	require.True(t, ok)
	assert.True(t, bg.Matrix().IsIdentity())
	assert.Equal(t, raster.ID(0), s.NewObject(nil))
}

func newFrame(t *testing.T) (*raster.Rasterizer, *raster.DepthBuffer, *camera.Camera) {
	t.Helper()
	cam, err := camera.New(mathutil.Rect{Right: 8, Bottom: 8}, -1, -100)
	require.NoError(t, err)
	return raster.NewRasterizer(8, 8), raster.NewDepthBuffer(8, 8, raster.NoObject), cam
}

func TestDrawAll(t *testing.T) {
	s := New(4)
	back := s.NewObject(nil)
	require.NoError(t, s.AddTriangle(mathutil.P4(0, 0, -20), mathutil.P4(8, 0, -20), mathutil.P4(8, 8, -20)))
	require.NoError(t, s.AddTriangle(mathutil.P4(0, 0, -20), mathutil.P4(8, 8, -20), mathutil.P4(0, 8, -20)))

	tr := transform.New()
	tr.Translate(0, 0, -5)
	front := s.NewObject(tr)
	require.NoError(t, s.AddTriangle(mathutil.P4(0, 0, 0), mathutil.P4(4, 0, 0), mathutil.P4(0, 4, 0)))

	r, buf, cam := newFrame(t)
	st, err := s.DrawAll(r, buf, cam)
	require.NoError(t, err)
	assert.Equal(t, DrawStats{Primitives: 3, Drawn: 3}, st)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := back
			if x+y < 4 {
				want = front
			}
			assert.Equal(t, want, buf.ID(x, y), "cell (%d,%d)", x, y)
		}
	}
	assert.InDelta(t, -5, float64(buf.Depth(0, 0)), 1e-4)
}

func TestDrawAllInterleavedObjects(t *testing.T) {
	s := New(4)
	ta := transform.New()
	ta.Translate(0, 4, 0)
	a := s.NewObject(ta)
	v := tri(0, 0, -5)
	require.NoError(t, s.AddTriangle(v[0], v[1], v[2]))

	tb := transform.New()
	tb.Translate(4, 0, 0)
	b := s.NewObject(tb)
	require.NoError(t, s.AddTriangle(v[0], v[1], v[2]))

	require.NoError(t, s.ActivateObject(a))
	v = tri(2, 0, -5)
	require.NoError(t, s.AddTriangle(v[0], v[1], v[2]))

	owners := []raster.ID{}
	for p := range s.Primitives() {
		owners = append(owners, p.Owner)
	}
	require.Equal(t, []raster.ID{a, b, a}, owners)

	r, buf, cam := newFrame(t)
	st, err := s.DrawAll(r, buf, cam)
	require.NoError(t, err)
	assert.Equal(t, DrawStats{Primitives: 3, Drawn: 3}, st)

	assert.Equal(t, a, buf.ID(0, 4))
	assert.Equal(t, b, buf.ID(4, 0))
	assert.Equal(t, a, buf.ID(2, 4), "third primitive uses its own transform again")
	assert.Equal(t, raster.NoObject, buf.ID(6, 0))
	assert.Equal(t, map[raster.ID]int{raster.NoObject: 61, a: 2, b: 1}, buf.Coverage())
}

func TestDrawAllSkipsBadPrimitives(t *testing.T) {
	s := New(4)
	s.NewObject(nil)
	require.NoError(t, s.AddTriangle(mathutil.P4(100, 100, -5), mathutil.P4(101, 100, -5), mathutil.P4(100, 101, -5)))

	bad := transform.New()
	bad.ScaleXYZ(math.NaN(), 1, 1)
	s.NewObject(bad)
	require.NoError(t, s.AddLine(mathutil.P4(1, 1, -5), mathutil.P4(2, 2, -5)))

	good := s.NewObject(nil)
	require.NoError(t, s.AddLine(mathutil.P4(1, 1, -5), mathutil.P4(5, 1, -5)))

	r, buf, cam := newFrame(t)
	st, err := s.DrawAll(r, buf, cam)
	assert.ErrorIs(t, err, ErrMalformedPrimitive)
	assert.Equal(t, DrawStats{Primitives: 3, Drawn: 1, Culled: 1, Malformed: 1}, st)
	assert.Equal(t, 5, buf.Coverage()[good])
}

func TestDrawAllSizeMismatch(t *testing.T) {
	s := New(0)
	_, _, cam := newFrame(t)
	_, err := s.DrawAll(raster.NewRasterizer(4, 4), raster.NewDepthBuffer(8, 8, raster.NoObject), cam)
	assert.ErrorIs(t, err, raster.ErrSizeMismatch)
}
