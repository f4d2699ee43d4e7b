package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/lattice/internal/render"
)

// texture is a bitmap uploaded to the GPU.
type texture struct {
	img *ebiten.Image
}

func (t *texture) Size() (int, int) { return t.img.Bounds().Dx(), t.img.Bounds().Dy() }

// Surface adapts the frame's screen image to render.Surface. The same
// Surface is retargeted every frame so uploaded textures survive.
type Surface struct {
	target     *ebiten.Image
	background color.NRGBA

	// 1x1 white source for additive circle triangles.
	white *ebiten.Image
	vs    []ebiten.Vertex
	is    []uint16
}

func NewSurface(bg color.NRGBA) *Surface {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Surface{
		background: bg,
		white:      white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

func (s *Surface) SetTarget(img *ebiten.Image) { s.target = img }

func (s *Surface) Size() (int, int) {
	if s.target == nil {
		return 0, 0
	}
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Clear() { s.target.Fill(s.background) }

func (s *Surface) Upload(img *image.RGBA) render.Image {
	return &texture{img: ebiten.NewImageFromImage(img)}
}

func (s *Surface) Release(img render.Image) {
	if t, ok := img.(*texture); ok {
		t.img.Deallocate()
	}
}

func (s *Surface) DrawImage(img render.Image, x, y float64) {
	t, ok := img.(*texture)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	s.target.DrawImage(t.img, op)
}

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA, blend render.Blend) {
	if blend != render.BlendAdditive {
		vector.DrawFilledCircle(s.target, float32(x), float32(y), float32(r), c, true)
		return
	}

	var path vector.Path
	path.Arc(float32(x), float32(y), float32(r), 0, 2*math.Pi, vector.Clockwise)
	s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])

	// Vertex colours are premultiplied.
	a := float32(c.A) / 255
	for i := range s.vs {
		s.vs[i].SrcX, s.vs[i].SrcY = 1.5, 1.5
		s.vs[i].ColorR = float32(c.R) / 255 * a
		s.vs[i].ColorG = float32(c.G) / 255 * a
		s.vs[i].ColorB = float32(c.B) / 255 * a
		s.vs[i].ColorA = a
	}
	s.target.DrawTriangles(s.vs, s.is, s.white, &ebiten.DrawTrianglesOptions{
		Blend:     ebiten.BlendLighter,
		AntiAlias: true,
	})
}
