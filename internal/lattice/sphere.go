package lattice

import (
	"math"

	"github.com/san-kum/lattice/internal/vmath"
)

// Row/column offsets of the 8 neighbour slots on the sphere.
var sphereOffsets = [MaxNeighbors][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// BuildSpherical places rows latitude bands of cols points on a sphere of
// the given radius. Longitude wraps; the pole rows have no neighbours
// beyond them.
func BuildSpherical(radius float64, cols, rows int) *Lattice {
	cols = max(cols, MinSphericalCols)
	rows = max(rows, MinSphericalRows)
	if radius <= 0 || math.IsNaN(radius) {
		radius = 1
	}
	l := newLattice(Spherical, cols, rows)
	l.Radius = radius

	k := 0
	for r := 0; r < rows; r++ {
		theta := (float64(r) + 0.5) / float64(rows) * math.Pi
		st, ct := math.Sin(theta), math.Cos(theta)
		for c := 0; c < cols; c++ {
			phi := float64(c) / float64(cols) * 2 * math.Pi
			sp, cp := math.Sin(phi), math.Cos(phi)
			x, y, z := radius*st*cp, radius*ct, radius*st*sp
			l.Px[k], l.Ox[k] = x, x
			l.Py[k], l.Oy[k] = y, y
			l.Pz[k], l.Oz[k] = z, z
			k++
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := l.Index(r, c)
			for d, off := range sphereOffsets {
				nr := r + off[0]
				if nr < 0 || nr >= rows {
					l.unlink(i, d)
					continue
				}
				nc := (c + off[1] + cols) % cols
				l.linkRest(i, d, l.Index(nr, nc))
			}
		}
	}
	return l
}

// SphereRadius converts a relative on-screen diameter into a world radius
// for a camera at camDist with the given focal length in pixels.
func SphereRadius(width, height, sizeRel, camDist, focal float64) float64 {
	if focal <= 0 {
		return 1
	}
	minDim := math.Max(1, math.Min(width, height))
	screenR := vmath.Clamp(sizeRel, 0.05, 0.95) * minDim * 0.5
	return screenR * camDist / focal
}
