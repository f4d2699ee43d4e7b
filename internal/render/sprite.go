package render

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/lattice/internal/vmath"
)

// SpriteSize is the edge length in pixels of the bitmap holding a dot of
// the given radius.
func SpriteSize(radius float64) int {
	return max(1, int(radius*2+2))
}

// NewDotSprite rasterises an anti-aliased disc centred in a SpriteSize
// square, premultiplied by opacity.
func NewDotSprite(radius float64, c color.NRGBA, opacity float64) *image.RGBA {
	size := SpriteSize(radius)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	centre := float64(size) * 0.5
	a := vmath.Clamp01(opacity) * float64(c.A) / 255

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-centre, float64(y)+0.5-centre)
			cov := vmath.Clamp01(radius + 0.5 - d)
			if cov == 0 {
				continue
			}
			k := cov * a
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(c.R)*k + 0.5),
				G: uint8(float64(c.G)*k + 0.5),
				B: uint8(float64(c.B)*k + 0.5),
				A: uint8(255*k + 0.5),
			})
		}
	}
	return img
}

// Sprite is an uploaded dot bitmap and its edge length.
type Sprite struct {
	Image Image
	Size  int
}
