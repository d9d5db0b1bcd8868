package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minigl/internal/mathutil"
	"minigl/internal/transform"
)

func TestDraw2D(t *testing.T) {
	r := NewRasterizer(8, 8)
	buf := NewDepthBuffer(8, 8, NoObject)

	// unit square scaled to 4 cells and moved to (2, 3)
	tr := transform.New2D()
	tr.Scale(4)
	tr.Translate(2, 3)
	square := []mathutil.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}
	require.NoError(t, r.Draw2D(buf, tr, 4, square...))

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := NoObject
			if x >= 2 && x < 6 && y >= 3 && y < 7 {
				want = 4
			}
			assert.Equal(t, want, buf.ID(x, y), "cell (%d,%d)\n%s", x, y, render(buf))
		}
	}
	d, _ := buf.At(3, 4)
	assert.Equal(t, float32(0), d)
	assert.True(t, r.scratchClean())
}

func TestDraw2DHomogeneous(t *testing.T) {
	r := NewRasterizer(4, 4)
	buf := NewDepthBuffer(4, 4, NoObject)

	require.NoError(t, r.Draw2D(buf, nil, 2, mathutil.Vec3{6, 4, 2}))
	assert.Equal(t, ID(2), buf.ID(3, 2))
	assert.Equal(t, 1, buf.Coverage()[2])
}

func TestDraw2DRejectsBadPoints(t *testing.T) {
	r := NewRasterizer(4, 4)
	buf := NewDepthBuffer(4, 4, NoObject)

	err := r.Draw2D(buf, nil, 1, mathutil.Vec3{0, 0, 1}, mathutil.Vec3{1, 1, 0})
	assert.ErrorIs(t, err, ErrMalformedPrimitive)

	err = r.Draw2D(buf, transform.New2D(), 1, mathutil.Vec3{math.Inf(1), 0, 1})
	assert.ErrorIs(t, err, ErrMalformedPrimitive)
	assert.Equal(t, map[ID]int{NoObject: 16}, buf.Coverage())
}
