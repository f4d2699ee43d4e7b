package render

import (
	"image"
	"image/color"
)

type fakeImage struct{ w, h int }

func (f *fakeImage) Size() (int, int) { return f.w, f.h }

type drawOp struct {
	circle bool
	x, y   float64
	r      float64
	c      color.NRGBA
	blend  Blend
	img    Image
}

// recordSurface captures draw calls instead of rasterising them.
type recordSurface struct {
	w, h     int
	clears   int
	uploads  int
	released int
	ops      []drawOp
}

func (s *recordSurface) Size() (int, int) { return s.w, s.h }
func (s *recordSurface) Clear()           { s.clears++; s.ops = s.ops[:0] }

func (s *recordSurface) Upload(img *image.RGBA) Image {
	s.uploads++
	b := img.Bounds()
	return &fakeImage{b.Dx(), b.Dy()}
}

func (s *recordSurface) Release(Image) { s.released++ }

func (s *recordSurface) DrawImage(img Image, x, y float64) {
	s.ops = append(s.ops, drawOp{x: x, y: y, img: img})
}

func (s *recordSurface) FillCircle(x, y, r float64, c color.NRGBA, blend Blend) {
	s.ops = append(s.ops, drawOp{circle: true, x: x, y: y, r: r, c: c, blend: blend})
}

func (s *recordSurface) count(blend Blend) int {
	n := 0
	for _, op := range s.ops {
		if op.circle && op.blend == blend {
			n++
		}
	}
	return n
}
