package physics

import (
	"math"

	"github.com/san-kum/lattice/internal/vmath"
)

// Params are the spring and pointer coefficients of one lattice. Damping is
// a per-second decay rate: velocities are scaled by exp(-Damping*dt).
type Params struct {
	Stiffness       float64
	AnchorStiffness float64
	Damping         float64
	PointerForce    float64
	PointerRadius   float64
	PointerFalloff  float64
}

// DampingFactor is the velocity multiplier for one step of length dt.
func (p Params) DampingFactor(dt float64) float64 {
	return math.Exp(-math.Max(0, p.Damping) * dt)
}

// Cursor is the pointer in planar lattice coordinates.
type Cursor struct {
	X, Y   float64
	Active bool
}

// Pick is the pointer hit on the sphere surface, in object space.
type Pick struct {
	Point  vmath.Vec3
	Active bool
}

// AngularRadius converts a world-space pointer radius into the angular
// radius of the affected cap on a sphere of radius r.
func AngularRadius(radiusWorld, r float64) float64 {
	if r <= 0 {
		return 0.01
	}
	return vmath.Clamp(radiusWorld/r, 0.01, math.Pi)
}
