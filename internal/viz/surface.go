package viz

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/lattice/internal/render"
)

const (
	// DefaultThreshold is the brightness above which a sub-pixel is lit.
	DefaultThreshold = 0.3

	// Light-carrying bitmaps no larger than this collapse to one opaque
	// sub-pixel at their centre.
	dotCell = 4
)

// bitmap keeps the brightness and coverage of an uploaded image, and the
// unpremultiplied brightness of its strongest pixel.
type bitmap struct {
	w, h  int
	value []float32
	alpha []float32
	peak  float32
}

func (b *bitmap) Size() (int, int) { return b.w, b.h }

// Surface composites brightness into a sub-pixel buffer and lights canvas
// sub-pixels where it exceeds Threshold.
type Surface struct {
	Threshold float64

	w, h int
	buf  []float32
}

func NewSurface(w, h int) *Surface {
	s := &Surface{Threshold: DefaultThreshold}
	s.Resize(w, h)
	return s
}

func (s *Surface) Resize(w, h int) {
	s.w, s.h = max(w, 0), max(h, 0)
	s.buf = make([]float32, s.w*s.h)
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Clear() {
	clear(s.buf)
}

func (s *Surface) Upload(img *image.RGBA) render.Image {
	r := img.Bounds()
	b := &bitmap{w: r.Dx(), h: r.Dy()}
	b.value = make([]float32, b.w*b.h)
	b.alpha = make([]float32, b.w*b.h)
	var maxV, maxA float32
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			c := img.RGBAAt(r.Min.X+x, r.Min.Y+y)
			i := y*b.w + x
			b.value[i] = luma(c)
			b.alpha[i] = float32(c.A) / 255
			maxV, maxA = max(maxV, b.value[i]), max(maxA, b.alpha[i])
		}
	}
	if maxA > 0 {
		b.peak = min(1, maxV/maxA)
	}
	return b
}

func (s *Surface) Release(render.Image) {}

func (s *Surface) DrawImage(img render.Image, x, y float64) {
	b, ok := img.(*bitmap)
	if !ok {
		return
	}
	if b.w <= dotCell && b.h <= dotCell && b.peak > 0 {
		s.plot(int(math.Floor(x+float64(b.w)*0.5)), int(math.Floor(y+float64(b.h)*0.5)), b.peak, 1)
		return
	}
	ox, oy := int(math.Round(x)), int(math.Round(y))
	for by := 0; by < b.h; by++ {
		for bx := 0; bx < b.w; bx++ {
			i := by*b.w + bx
			s.plot(ox+bx, oy+by, b.value[i], b.alpha[i])
		}
	}
}

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA, blend render.Blend) {
	a := float32(c.A) / 255
	v := luma(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}) * a
	if r < 1 {
		s.add(int(math.Floor(x)), int(math.Floor(y)), v, a, blend)
		return
	}
	x0, x1 := int(math.Floor(x-r)), int(math.Ceil(x+r))
	y0, y1 := int(math.Floor(y-r)), int(math.Ceil(y+r))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			if math.Hypot(float64(px)+0.5-x, float64(py)+0.5-y) <= r {
				s.add(px, py, v, a, blend)
			}
		}
	}
}

func (s *Surface) add(x, y int, v, a float32, blend render.Blend) {
	if blend == render.BlendAdditive {
		if x >= 0 && y >= 0 && x < s.w && y < s.h {
			i := y*s.w + x
			s.buf[i] = min(1, s.buf[i]+v)
		}
		return
	}
	s.plot(x, y, v, a)
}

// plot composites premultiplied brightness v with coverage a source-over.
func (s *Surface) plot(x, y int, v, a float32) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	i := y*s.w + x
	s.buf[i] = v + s.buf[i]*(1-a)
}

// Brightness returns the composited value at sub-pixel (x, y).
func (s *Surface) Brightness(x, y int) float64 {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0
	}
	return float64(s.buf[y*s.w+x])
}

// Flush redraws c from the buffer.
func (s *Surface) Flush(c *Canvas) {
	c.Clear()
	t := float32(s.Threshold)
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			if s.buf[y*s.w+x] > t {
				c.Set(x, y)
			}
		}
	}
}

// luma of a premultiplied colour.
func luma(c color.RGBA) float32 {
	return (0.299*float32(c.R) + 0.587*float32(c.G) + 0.114*float32(c.B)) / 255
}
