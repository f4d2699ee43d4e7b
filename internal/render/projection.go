package render

import (
	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/vmath"
)

// Projection holds per-point screen coordinates (SX, SY), rotated
// camera-space coordinates (RX, RY, RZ) and view depth (ZC).
type Projection struct {
	SX, SY     []float64
	RX, RY, RZ []float64
	ZC         []float64
}

// Resize reallocates the buffers when the point count changes.
func (p *Projection) Resize(n int) {
	if len(p.SX) == n {
		return
	}
	p.SX = make([]float64, n)
	p.SY = make([]float64, n)
	p.RX = make([]float64, n)
	p.RY = make([]float64, n)
	p.RZ = make([]float64, n)
	p.ZC = make([]float64, n)
}

func (p *Projection) Len() int { return len(p.SX) }

func ProjectSphere(l *lattice.Lattice, rot vmath.Mat3, cam Camera, p *Projection) {
	p.Resize(l.Count())
	for i := 0; i < l.Count(); i++ {
		r := rot.Mul(vmath.Vec3{X: l.Px[i], Y: l.Py[i], Z: l.Pz[i]})
		p.RX[i], p.RY[i], p.RZ[i] = r.X, r.Y, r.Z
		p.SX[i], p.SY[i], p.ZC[i] = cam.Project(r)
	}
}

// ProjectPlanar copies planar positions straight to screen coordinates.
func ProjectPlanar(l *lattice.Lattice, p *Projection) {
	p.Resize(l.Count())
	copy(p.SX, l.Px)
	copy(p.SY, l.Py)
}
