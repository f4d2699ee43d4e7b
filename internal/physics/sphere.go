package physics

import (
	"math"

	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/vmath"
)

// PointerForceSpherical returns the tangential force on a sphere point p
// pulled toward the pick point. cosMax is cos(phiMax); the force is zero
// outside the cap and where the tangent degenerates.
func PointerForceSpherical(p, pick vmath.Vec3, force, phiMax, cosMax, falloff float64) vmath.Vec3 {
	n := p.Normalize()
	if n == (vmath.Vec3{}) {
		return vmath.Vec3{}
	}
	cang := vmath.Clamp(n.Dot(pick.Normalize()), -1, 1)
	if cang <= cosMax {
		return vmath.Vec3{}
	}
	t := pick.Sub(p)
	t = t.Sub(n.Scale(t.Dot(n)))
	tl := t.Length()
	if tl < 1e-6 {
		return vmath.Vec3{}
	}
	ang := math.Acos(cang)
	str := math.Pow(vmath.Clamp01(1-ang/phiMax), falloff)
	return t.Scale(force * str / tl)
}

// StepSpherical advances a spherical lattice by dt and re-projects every
// point onto the shell of radius l.Radius.
func StepSpherical(l *lattice.Lattice, p Params, pick Pick, dt float64) {
	px, py, pz := l.Px, l.Py, l.Pz
	vx, vy, vz := l.Vx, l.Vy, l.Vz
	nbr, rest := l.Nbr, l.Rest
	kS, kO := p.Stiffness, p.AnchorStiffness
	dampF := p.DampingFactor(dt)
	R := l.Radius

	phiMax := AngularRadius(p.PointerRadius, R)
	cosMax := math.Cos(phiMax)

	for i := 0; i < l.Count(); i++ {
		x, y, z := px[i], py[i], pz[i]
		var fx, fy, fz float64

		base := i * lattice.MaxNeighbors
		for d := 0; d < lattice.MaxNeighbors; d++ {
			j := nbr[base+d]
			if j < 0 {
				continue
			}
			dx, dy, dz := px[j]-x, py[j]-y, pz[j]-z
			dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if dist < 1e-6 {
				continue
			}
			f := kS * (dist - rest[base+d]) / dist
			fx += dx * f
			fy += dy * f
			fz += dz * f
		}

		fx += kO * (l.Ox[i] - x)
		fy += kO * (l.Oy[i] - y)
		fz += kO * (l.Oz[i] - z)

		if pick.Active {
			m := PointerForceSpherical(vmath.Vec3{X: x, Y: y, Z: z}, pick.Point, p.PointerForce, phiMax, cosMax, p.PointerFalloff)
			fx += m.X
			fy += m.Y
			fz += m.Z
		}

		nvx := (vx[i] + fx*dt) * dampF
		nvy := (vy[i] + fy*dt) * dampF
		nvz := (vz[i] + fz*dt) * dampF
		vx[i], vy[i], vz[i] = nvx, nvy, nvz
		nx, ny, nz := x+nvx*dt, y+nvy*dt, z+nvz*dt

		if L := math.Sqrt(nx*nx + ny*ny + nz*nz); L > 0 {
			s := R / L
			nx, ny, nz = nx*s, ny*s, nz*s
		}
		px[i], py[i], pz[i] = nx, ny, nz
	}
}
