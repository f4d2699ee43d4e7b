package render

import (
	"image/color"
	"math"

	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/vmath"
)

// spherePad is how far outside the surface a sphere point may sit and still be drawn.
const spherePad = 10

// DrawPlanar blits dot at every on-screen planar point, then the vignette
// when non-nil. It returns the number of points drawn.
func DrawPlanar(s Surface, l *lattice.Lattice, dot Sprite, vignette Image) int {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return 0
	}
	s.Clear()

	drawn := 0
	if dot.Image != nil {
		size := float64(dot.Size)
		off := size * 0.5
		maxX, maxY := float64(w)+size, float64(h)+size
		for i := 0; i < l.Count(); i++ {
			x, y := l.Px[i], l.Py[i]
			if x < -size || y < -size || x > maxX || y > maxY {
				continue
			}
			s.DrawImage(dot.Image, x-off, y-off)
			drawn++
		}
	}

	if vignette != nil {
		s.DrawImage(vignette, 0, 0)
	}
	return drawn
}

type SphereStyle struct {
	Color     color.NRGBA
	PointSize float64
	Opacity   float64
	Lighting  bool
	Specular  bool
	Shading   Shading
}

// DrawSphere draws the projected points of a sphere of radius r, an
// additive specular pass when lighting and specular are both on, and the
// vignette when non-nil. It returns the number of points drawn.
func DrawSphere(s Surface, p *Projection, r float64, st SphereStyle, vignette Image) int {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return 0
	}
	s.Clear()

	base := vmath.Clamp01(st.Opacity)
	pr := math.Max(0.5, st.PointSize)
	fw, fh := float64(w), float64(h)
	invR := 1.0
	if r > 0 {
		invR = 1 / r
	}

	visible := func(i int) bool {
		x, y := p.SX[i], p.SY[i]
		return x >= -spherePad && y >= -spherePad && x <= fw+spherePad && y <= fh+spherePad
	}
	normal := func(i int) vmath.Vec3 {
		return vmath.Vec3{X: p.RX[i] * invR, Y: p.RY[i] * invR, Z: p.RZ[i] * invR}
	}

	c := st.Color
	drawn := 0
	for i := 0; i < p.Len(); i++ {
		if !visible(i) {
			continue
		}
		a := st.Shading.Alpha(base, normal(i), st.Lighting)
		c.A = uint8(a*255 + 0.5)
		s.FillCircle(p.SX[i], p.SY[i], pr, c, BlendSourceOver)
		drawn++
	}

	if st.Lighting && st.Specular && st.Shading.SpecularIntensity > 0 {
		for i := 0; i < p.Len(); i++ {
			if !visible(i) {
				continue
			}
			a := st.Shading.Specular(normal(i))
			if a < SpecularCutoff {
				continue
			}
			c.A = uint8(vmath.Clamp01(a)*255 + 0.5)
			s.FillCircle(p.SX[i], p.SY[i], pr*0.9, c, BlendAdditive)
		}
	}

	if vignette != nil {
		s.DrawImage(vignette, 0, 0)
	}
	return drawn
}
