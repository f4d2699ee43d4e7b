package physics

import (
	"math"

	"github.com/san-kum/lattice/internal/lattice"
)

// PointerForcePlanar returns the repulsive force on a point at (x, y) from a
// cursor at (cx, cy). Zero outside the radius and at the cursor itself.
func PointerForcePlanar(x, y, cx, cy, force, radius, falloff float64) (fx, fy float64) {
	if radius <= 0 {
		return 0, 0
	}
	dx, dy := x-cx, y-cy
	d2 := dx*dx + dy*dy
	if d2 >= radius*radius || d2 <= 0.01 {
		return 0, 0
	}
	d := math.Sqrt(d2)
	f := force * math.Pow(1-d/radius, falloff) / d
	return dx * f, dy * f
}

// StepPlanar advances a planar lattice by dt.
func StepPlanar(l *lattice.Lattice, p Params, cur Cursor, dt float64) {
	px, py := l.Px, l.Py
	vx, vy := l.Vx, l.Vy
	nbr, rest := l.Nbr, l.Rest
	kS, kO := p.Stiffness, p.AnchorStiffness
	dampF := p.DampingFactor(dt)

	minC, maxC, minR, maxR := 0, -1, 0, -1
	if cur.Active {
		minC, maxC, minR, maxR = l.CellRange(cur.X, cur.Y, p.PointerRadius+l.Spacing)
	}

	i := 0
	for r := 0; r < l.Rows; r++ {
		inRow := r >= minR && r <= maxR
		for c := 0; c < l.Cols; c, i = c+1, i+1 {
			x, y := px[i], py[i]
			var fx, fy float64

			base := i * lattice.MaxNeighbors
			for d := 0; d < lattice.MaxNeighbors; d++ {
				j := nbr[base+d]
				if j < 0 {
					continue
				}
				dx, dy := px[j]-x, py[j]-y
				d2 := dx*dx + dy*dy
				if d2 < 1e-12 {
					continue
				}
				dist := math.Sqrt(d2)
				f := kS * (dist - rest[base+d]) / dist
				fx += dx * f
				fy += dy * f
			}

			fx += kO * (l.Ox[i] - x)
			fy += kO * (l.Oy[i] - y)

			if inRow && c >= minC && c <= maxC {
				mx, my := PointerForcePlanar(x, y, cur.X, cur.Y, p.PointerForce, p.PointerRadius, p.PointerFalloff)
				fx += mx
				fy += my
			}

			nvx := (vx[i] + fx*dt) * dampF
			nvy := (vy[i] + fy*dt) * dampF
			vx[i], vy[i] = nvx, nvy
			px[i] = x + nvx*dt
			py[i] = y + nvy*dt
		}
	}
}

// Impulse adds an outward radial velocity kick centred on (cx, cy). The kick
// fades cubically to zero at maxDist; points within one unit of the centre
// are left alone.
func Impulse(l *lattice.Lattice, cx, cy, force, maxDist float64) {
	if maxDist <= 0 {
		return
	}
	for i := 0; i < l.Count(); i++ {
		dx, dy := l.Px[i]-cx, l.Py[i]-cy
		d := math.Sqrt(dx*dx + dy*dy)
		if d < 1 {
			continue
		}
		t := math.Max(0, 1-d/maxDist)
		if t == 0 {
			continue
		}
		s := t * t * t * force / d
		l.Vx[i] += dx * s
		l.Vy[i] += dy * s
	}
}
