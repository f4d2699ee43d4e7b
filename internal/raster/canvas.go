// Package raster is a software render.Surface over an RGBA image, used for
// headless export, tests and benchmarks.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/san-kum/lattice/internal/render"
)

// Bitmap is an image uploaded to a Canvas.
type Bitmap struct {
	img *image.RGBA
}

func (b *Bitmap) Size() (int, int) {
	r := b.img.Bounds()
	return r.Dx(), r.Dy()
}

type Canvas struct {
	img        *image.RGBA
	background color.RGBA
}

func New(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))}
}

// SetBackground sets the colour Clear fills with. The default is transparent.
func (c *Canvas) SetBackground(bg color.RGBA) { c.background = bg }

// Resize replaces the backing image; contents are discarded.
func (c *Canvas) Resize(w, h int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

func (c *Canvas) Upload(img *image.RGBA) render.Image {
	return &Bitmap{img: img}
}

func (c *Canvas) Release(render.Image) {}

// DrawImage composites img source-over with its top-left corner at the
// nearest pixel to (x, y).
func (c *Canvas) DrawImage(img render.Image, x, y float64) {
	b, ok := img.(*Bitmap)
	if !ok {
		return
	}
	at := image.Pt(int(math.Round(x)), int(math.Round(y)))
	r := b.img.Bounds().Sub(b.img.Bounds().Min).Add(at)
	draw.Draw(c.img, r, b.img, b.img.Bounds().Min, draw.Over)
}

// FillCircle draws an anti-aliased disc.
func (c *Canvas) FillCircle(x, y, r float64, col color.NRGBA, blend render.Blend) {
	if r <= 0 || col.A == 0 {
		return
	}
	bounds := c.img.Bounds()
	x0 := max(bounds.Min.X, int(math.Floor(x-r-1)))
	x1 := min(bounds.Max.X-1, int(math.Ceil(x+r+1)))
	y0 := max(bounds.Min.Y, int(math.Floor(y-r-1)))
	y1 := min(bounds.Max.Y-1, int(math.Ceil(y+r+1)))
	alpha := float64(col.A) / 255

	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			d := math.Hypot(float64(px)+0.5-x, float64(py)+0.5-y)
			cov := r + 0.5 - d
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			c.blendPixel(px, py, col, alpha*cov, blend)
		}
	}
}

func (c *Canvas) blendPixel(x, y int, col color.NRGBA, a float64, blend render.Blend) {
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	sr, sg, sb, sa := float64(col.R)*a, float64(col.G)*a, float64(col.B)*a, 255*a

	switch blend {
	case render.BlendAdditive:
		p[0] = addSat(p[0], sr)
		p[1] = addSat(p[1], sg)
		p[2] = addSat(p[2], sb)
		p[3] = addSat(p[3], sa)
	default:
		k := 1 - a
		p[0] = uint8(sr + float64(p[0])*k + 0.5)
		p[1] = uint8(sg + float64(p[1])*k + 0.5)
		p[2] = uint8(sb + float64(p[2])*k + 0.5)
		p[3] = uint8(sa + float64(p[3])*k + 0.5)
	}
}

func addSat(dst uint8, src float64) uint8 {
	v := float64(dst) + src + 0.5
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

var _ render.Surface = (*Canvas)(nil)
