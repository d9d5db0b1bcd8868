package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minigl/internal/mathutil"
)

var view8 = mathutil.Rect{Left: 0, Top: 0, Right: 8, Bottom: 8}

func assertVec3(t *testing.T, want, got mathutil.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestOrthogonalIsWindowIdentity(t *testing.T) {
	c, err := New(view8, -1, -100)
	require.NoError(t, err)
	assert.Equal(t, Orthogonal, c.Kind())

	got, err := c.ToWindow([]mathutil.Vec4{mathutil.P4(2, 3, -50)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assertVec3(t, mathutil.Vec3{2, 3, -50}, got[0])

	got, err = c.ToWindow([]mathutil.Vec4{mathutil.P4(0, 0, -1), mathutil.P4(8, 8, -100)})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assertVec3(t, mathutil.Vec3{0, 0, -1}, got[0])
	assertVec3(t, mathutil.Vec3{8, 8, -100}, got[1])
}

func TestViewTransformApplies(t *testing.T) {
	c, err := New(view8, -1, -100)
	require.NoError(t, err)
	c.View().Translate(0, 0, -10)

	got, err := c.ToWindow([]mathutil.Vec4{mathutil.P4(4, 4, 5)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assertVec3(t, mathutil.Vec3{4, 4, -5}, got[0])

	clipped := c.ToClip(mathutil.P4(4, 4, 5))
	assert.InDelta(t, -91.0/99, clipped[2], 1e-9)

	model := mathutil.FromMat3Translation(mathutil.Mat3Identity(), mathutil.Vec3{1, 0, 0})
	got, err = c.ToWindowWith(model, []mathutil.Vec4{mathutil.P4(4, 4, 5)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assertVec3(t, mathutil.Vec3{5, 4, -5}, got[0])
}

func TestPerspectiveRayAndDepth(t *testing.T) {
	c, err := New(view8, -1, -100)
	require.NoError(t, err)
	require.NoError(t, c.SetProjection(Perspective))

	near, err := c.ToWindow([]mathutil.Vec4{mathutil.P4(2, 2, -2)})
	require.NoError(t, err)
	far, err := c.ToWindow([]mathutil.Vec4{mathutil.P4(4, 4, -4)})
	require.NoError(t, err)
	require.Len(t, near, 1)
	require.Len(t, far, 1)

	assert.InDelta(t, near[0][0], far[0][0], 1e-9, "same ray, same pixel")
	assert.InDelta(t, near[0][1], far[0][1], 1e-9)
	assert.Greater(t, near[0][2], far[0][2], "nearer has larger depth")

	planes, err := c.ToWindow([]mathutil.Vec4{mathutil.P4(4, 4, -1), mathutil.P4(400, 400, -100)})
	require.NoError(t, err)
	require.Len(t, planes, 2)
	assertVec3(t, mathutil.Vec3{4, 4, -1}, planes[0])
	assert.InDelta(t, -100, planes[1][2], 1e-6)
}

func TestBehindCameraCulled(t *testing.T) {
	c, err := New(view8, -1, -100)
	require.NoError(t, err)
	require.NoError(t, c.ComputeProjection(Perspective))

	got, err := c.ToWindow([]mathutil.Vec4{mathutil.P4(4, 4, 5)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVolumeCentresScene(t *testing.T) {
	c, err := New(view8, -1, -100)
	require.NoError(t, err)
	require.NoError(t, c.SetVolume(mathutil.Rect{Left: -2, Top: 2, Right: 2, Bottom: -2}))
	require.NoError(t, c.Recompute())

	got, err := c.ToWindow([]mathutil.Vec4{mathutil.P4(0, 0, -5), mathutil.P4(-2, 2, -5)})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 4, got[0][0], 1e-9)
	assert.InDelta(t, 4, got[0][1], 1e-9)
	assert.InDelta(t, 0, got[1][0], 1e-9, "y-up volume puts +y at the top")
	assert.InDelta(t, 0, got[1][1], 1e-9)
}

func TestInvalidState(t *testing.T) {
	_, err := New(mathutil.Rect{}, -1, -100)
	assert.ErrorIs(t, err, ErrViewport)

	_, err = New(view8, -100, -1)
	assert.ErrorIs(t, err, ErrDepthRange)

	c, err := New(view8, 5, -5)
	require.NoError(t, err)
	assert.ErrorIs(t, c.ComputeProjection(Perspective), ErrDepthRange)
	assert.Equal(t, Orthogonal, c.Kind(), "failed computation keeps the previous kind")

	assert.ErrorIs(t, c.SetDepthRange(1, 1), ErrDepthRange)
	near, far := c.DepthRange()
	assert.Equal(t, [2]float64{5, -5}, [2]float64{near, far})
	assert.Error(t, c.ComputeProjection(Projection(9)))
}

func TestCloneIndependent(t *testing.T) {
	a, err := New(view8, -1, -100)
	require.NoError(t, err)
	b := a.Clone()
	b.View().Translate(1, 0, 0)
	require.NoError(t, b.SetViewport(mathutil.RectXYWH(0, 0, 4, 4)))

	assert.True(t, a.View().Matrix().IsIdentity())
	assert.Equal(t, view8, a.Viewport())
}

func TestParseProjection(t *testing.T) {
	for in, want := range map[string]Projection{
		"ortho": Orthogonal, "Orthogonal": Orthogonal, "": Orthogonal,
		"persp": Perspective, " perspective ": Perspective,
	} {
		got, err := ParseProjection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseProjection("fisheye")
	assert.Error(t, err)
	assert.Equal(t, "perspective", Perspective.String())
}
