// Package export writes rendered lattice frames as PNG, GIF and SVG.
package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/render"
	"github.com/san-kum/lattice/internal/vmath"
)

type SVGOptions struct {
	Width, Height int
	Background    color.NRGBA
	Color         color.NRGBA
	// Radius of a planar dot or sphere point, in pixels.
	Radius  float64
	Opacity float64

	// Sphere points take their opacity from Shading when Lighting is set.
	Lighting bool
	Shading  render.Shading
}

func hex(c color.NRGBA) string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// LatticeToSVG writes one <circle> per visible point. Planar points are
// read from l directly; sphere points from the projection p, which must be
// current.
func LatticeToSVG(l *lattice.Lattice, p *render.Projection, opts SVGOptions) string {
	w, h := float64(opts.Width), float64(opts.Height)
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, opts.Width, opts.Height, opts.Width, opts.Height, hex(opts.Background), hex(opts.Color))

	r := math.Max(0.1, opts.Radius)
	base := vmath.Clamp01(opts.Opacity) * float64(opts.Color.A) / 255
	inside := func(x, y float64) bool { return x >= -r && y >= -r && x <= w+r && y <= h+r }

	if l.Kind == lattice.Spherical && p != nil {
		invR := 1.0
		if l.Radius > 0 {
			invR = 1 / l.Radius
		}
		for i := 0; i < p.Len(); i++ {
			if !inside(p.SX[i], p.SY[i]) {
				continue
			}
			n := vmath.Vec3{X: p.RX[i] * invR, Y: p.RY[i] * invR, Z: p.RZ[i] * invR}
			a := opts.Shading.Alpha(base, n, opts.Lighting)
			fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill-opacity="%.3f"/>
`, p.SX[i], p.SY[i], r, a)
		}
	} else {
		for i := 0; i < l.Count(); i++ {
			if !inside(l.Px[i], l.Py[i]) {
				continue
			}
			fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill-opacity="%.3f"/>
`, l.Px[i], l.Py[i], r, base)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}
