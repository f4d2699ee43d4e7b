package physics

import (
	"math"

	"github.com/san-kum/lattice/internal/lattice"
)

// KineticEnergy is the sum of 0.5*|v|^2 over unit masses.
func KineticEnergy(l *lattice.Lattice) float64 {
	var e float64
	for i := 0; i < l.Count(); i++ {
		e += l.Vx[i]*l.Vx[i] + l.Vy[i]*l.Vy[i] + l.Vz[i]*l.Vz[i]
	}
	return 0.5 * e
}

func MaxDisplacement(l *lattice.Lattice) float64 {
	var m float64
	for i := 0; i < l.Count(); i++ {
		m = math.Max(m, l.Displacement(i))
	}
	return m
}

func MaxSpeed(l *lattice.Lattice) float64 {
	var m float64
	for i := 0; i < l.Count(); i++ {
		s := l.Vx[i]*l.Vx[i] + l.Vy[i]*l.Vy[i] + l.Vz[i]*l.Vz[i]
		m = math.Max(m, s)
	}
	return math.Sqrt(m)
}
