package render

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/lattice/internal/vmath"
)

// Bands are the widths of the linear edge gradients of a vignette.
type Bands struct {
	X, Y float64
}

// DefaultBands sizes the edge gradients from the viewport.
func DefaultBands(w, h int) Bands {
	return Bands{
		X: vmath.Clamp(float64(w)*0.18, 120, 280),
		Y: vmath.Clamp(float64(h)*0.22, 100, 240),
	}
}

// SpacingBands sizes the edge gradients relative to the lattice spacing.
func SpacingBands(spacing float64) Bands {
	return Bands{X: spacing * 8.75, Y: spacing * 7.5}
}

// NewVignette renders a black mask that darkens the four edges linearly
// across the bands and the corners radially from 45% of the half-diagonal.
// Layers are composited source-over.
func NewVignette(w, h int, strength float64, b Bands) *image.RGBA {
	w, h = max(w, 1), max(h, 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	a := vmath.Clamp01(strength)
	if a == 0 {
		return img
	}

	fw, fh := float64(w), float64(h)
	cx, cy := fw*0.5, fh*0.5
	rOuter := math.Sqrt(cx*cx + cy*cy)
	rInner := rOuter * 0.45

	edge := func(d, band float64) float64 {
		if band <= 0 || d >= band {
			return 0
		}
		return a * (1 - d/band)
	}

	for y := 0; y < h; y++ {
		py := float64(y) + 0.5
		top := edge(py, b.Y)
		bottom := edge(fh-py, b.Y)
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5
			left := edge(px, b.X)
			right := edge(fw-px, b.X)

			d := math.Hypot(px-cx, py-cy)
			radial := 0.0
			if rOuter > rInner {
				radial = a * 0.35 * vmath.Clamp01((d-rInner)/(rOuter-rInner))
			}

			keep := (1 - left) * (1 - right) * (1 - top) * (1 - bottom) * (1 - radial)
			alpha := 1 - keep
			if alpha <= 0 {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{A: uint8(255*alpha + 0.5)})
		}
	}
	return img
}
