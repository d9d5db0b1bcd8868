package output

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"cogentcore.org/core/colors"
	"golang.org/x/image/draw"

	"minigl/internal/raster"
)

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimSpace(s)
	if strings.Trim(strings.TrimPrefix(h, "#"), "0123456789abcdefABCDEF") != "" {
		return color.NRGBA{}, fmt.Errorf("output: bad colour %q", s)
	}
	c, err := colors.FromHex(h)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("output: bad colour %q: %w", s, err)
	}
	// FromHex stores the alpha byte unpremultiplied.
	return color.NRGBA(c), nil
}

// IDColor returns a stable, well separated colour for an object id.
func IDColor(id raster.ID) color.NRGBA {
	if id < 0 {
		id = -id
	}
	return color.NRGBAModel.Convert(colors.Spaced(int(id))).(color.NRGBA)
}

// IDImage paints every cell with the colour of its object, background cells with bg.
func IDImage(buf *raster.DepthBuffer, bg color.NRGBA) *image.NRGBA {
	w, h := buf.Width(), buf.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bg
			if id := buf.ID(x, y); id != raster.NoObject {
				c = IDColor(id)
			}
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

// DepthImage maps the finite depth range of buf to grey levels, nearest white.
// Empty cells are black.
func DepthImage(buf *raster.DepthBuffer) *image.Gray {
	w, h := buf.Width(), buf.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	lo, hi, ok := buf.DepthRange()
	if !ok {
		return img
	}
	span := float64(hi - lo)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := float64(buf.Depth(x, y))
			if math.IsInf(d, 0) || math.IsNaN(d) {
				continue
			}
			level := 255.0
			if span > 0 {
				level = 32 + 223*(d-float64(lo))/span
			}
			img.Pix[img.PixOffset(x, y)] = clamp8(level)
		}
	}
	return img
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling,
// keeping cell edges hard.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
