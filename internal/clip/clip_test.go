package clip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minigl/internal/mathutil"
)

var unitVolume = Volume{Viewport: mathutil.Rect{Left: 0, Top: 0, Right: 8, Bottom: 8}, Near: -1, Far: -100}

func TestPolygonInsideUnchanged(t *testing.T) {
	poly := []mathutil.Vec3{{-0.5, -0.5, 0}, {0.5, -0.5, 0.2}, {0.5, 0.5, -0.3}, {-0.5, 0.5, 0.9}}
	got := Polygon(poly)
	assert.Equal(t, poly, got)

	// boundary vertices count as inside
	edge := []mathutil.Vec3{{-1, -1, -1}, {1, -1, 1}, {1, 1, 1}}
	assert.Equal(t, edge, Polygon(edge))
}

func TestPolygonOutsideOnePlane(t *testing.T) {
	cases := map[string][]mathutil.Vec3{
		"left":   {{-2, 0, 0}, {-1.5, 0.5, 0}, {-3, 0.2, 0}},
		"top":    {{0, -2, 0}, {0.5, -1.5, 0}, {0.2, -3, 0}},
		"right":  {{2, 0, 0}, {1.5, 0.5, 0}, {3, 0.2, 0}},
		"bottom": {{0, 2, 0}, {0.5, 1.5, 0}, {0.2, 3, 0}},
		"near":   {{0, 0, -2}, {0.5, 0, -1.5}, {0.2, 0.1, -3}},
		"far":    {{0, 0, 2}, {0.5, 0, 1.5}, {0.2, 0.1, 3}},
	}
	for name, poly := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, Polygon(poly))
			assert.Empty(t, Segment(poly[0], poly[1]))
		})
	}
}

func TestSegmentCrossingRightPlane(t *testing.T) {
	got := Segment(mathutil.Vec3{0, 0, 0}, mathutil.Vec3{2, 0, 0})
	require.Len(t, got, 2)
	assert.Equal(t, mathutil.Vec3{0, 0, 0}, got[0])
	assert.Equal(t, 1.0, got[1][0])
	assert.Equal(t, mathutil.Vec3{1, 0, 0}, got[1])

	// reversed direction clips the first endpoint
	got = Segment(mathutil.Vec3{2, 0, 0}, mathutil.Vec3{0, 0, 0})
	require.Len(t, got, 2)
	assert.Equal(t, mathutil.Vec3{1, 0, 0}, got[0])
}

func TestSegmentMatchesPolygonEdge(t *testing.T) {
	a := mathutil.Vec3{0, 0, 0}
	b := mathutil.Vec3{2, 0.3, 0.1}
	c := mathutil.Vec3{0, 0.5, 0}

	seg := Segment(a, b)
	poly := Polygon([]mathutil.Vec3{a, b, c})
	require.Len(t, seg, 2)
	require.Len(t, poly, 4)
	assert.Equal(t, a, poly[0])
	assert.Equal(t, seg[1], poly[1])
	assert.Equal(t, 1.0, poly[2][0])
	assert.Equal(t, c, poly[3])
}

func TestPolygonCornerClip(t *testing.T) {
	// a triangle overhanging the right and bottom faces
	poly := Polygon([]mathutil.Vec3{{0, 0, 0}, {3, 0, 0}, {0, 3, 0}})
	for _, v := range poly {
		assert.True(t, Inside(v), "%v outside", v)
	}
	assert.Equal(t, []mathutil.Vec3{{0, 1, 0}, {0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, poly)
}

func TestWindow(t *testing.T) {
	assert.Equal(t, mathutil.Vec3{0, 0, -1}, unitVolume.Window(mathutil.Vec3{-1, -1, -1}))
	assert.Equal(t, mathutil.Vec3{8, 8, -100}, unitVolume.Window(mathutil.Vec3{1, 1, 1}))
	assert.Equal(t, mathutil.Vec3{4, 4, -50.5}, unitVolume.Window(mathutil.Vec3{0, 0, 0}))
}

func TestPoints(t *testing.T) {
	t.Run("segment", func(t *testing.T) {
		got, err := unitVolume.Points([]mathutil.Vec4{mathutil.P4(0, 0, 0), mathutil.P4(2, 0, 0)})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 8.0, got[1][0])
	})
	t.Run("point", func(t *testing.T) {
		got, err := unitVolume.Points([]mathutil.Vec4{{1, 1, 0, 2}})
		require.NoError(t, err)
		assert.Equal(t, []mathutil.Vec3{{6, 6, -50.5}}, got)

		got, err = unitVolume.Points([]mathutil.Vec4{mathutil.P4(1.5, 0, 0)})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("culled polygon", func(t *testing.T) {
		got, err := unitVolume.Points([]mathutil.Vec4{mathutil.P4(5, 5, 0), mathutil.P4(6, 5, 0), mathutil.P4(5, 6, 0)})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := unitVolume.Points(nil)
		assert.ErrorIs(t, err, ErrMalformedPrimitive)

		_, err = unitVolume.Points([]mathutil.Vec4{mathutil.P4(math.NaN(), 0, 0), mathutil.P4(0, 0, 0)})
		assert.ErrorIs(t, err, ErrMalformedPrimitive)
	})
}

func TestPointsBehindCamera(t *testing.T) {
	got, err := unitVolume.Points([]mathutil.Vec4{{0, 0, 0, -1}})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = unitVolume.Points([]mathutil.Vec4{{0.5, 0, 0, 1}, {0.5, 0, 0, -1}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, unitVolume.Window(mathutil.Vec3{0.5, 0, 0}), got[0])
	assert.Equal(t, 8.0, got[1][0])
}
