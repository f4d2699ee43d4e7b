package lattice

import (
	"fmt"
	"math"
)

const (
	// MaxNeighbors is the number of neighbour slots per point: 4 orthogonal + 4 diagonal.
	MaxNeighbors = 8
	// NoNeighbor marks an empty slot at a grid boundary.
	NoNeighbor int32 = -1

	MinPlanarCols    = 2
	MinPlanarRows    = 2
	MinSphericalCols = 8
	MinSphericalRows = 6
)

type Kind int

const (
	Planar Kind = iota
	Spherical
)

func (k Kind) String() string {
	switch k {
	case Planar:
		return "planar"
	case Spherical:
		return "spherical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Lattice is the point-mass state of one animation instance, stored as
// struct-of-arrays. Pz, Vz and Oz are zero for planar lattices.
type Lattice struct {
	Kind    Kind
	Cols    int
	Rows    int
	Spacing float64
	Radius  float64

	Px, Py, Pz []float64
	Vx, Vy, Vz []float64
	Ox, Oy, Oz []float64

	Nbr  []int32
	Rest []float64
}

func newLattice(kind Kind, cols, rows int) *Lattice {
	n := cols * rows
	return &Lattice{
		Kind: kind,
		Cols: cols,
		Rows: rows,
		Px:   make([]float64, n),
		Py:   make([]float64, n),
		Pz:   make([]float64, n),
		Vx:   make([]float64, n),
		Vy:   make([]float64, n),
		Vz:   make([]float64, n),
		Ox:   make([]float64, n),
		Oy:   make([]float64, n),
		Oz:   make([]float64, n),
		Nbr:  make([]int32, n*MaxNeighbors),
		Rest: make([]float64, n*MaxNeighbors),
	}
}

func (l *Lattice) Count() int { return l.Cols * l.Rows }

func (l *Lattice) Index(row, col int) int { return row*l.Cols + col }

// Neighbors returns the neighbour slots of point i, including sentinels.
func (l *Lattice) Neighbors(i int) []int32 {
	base := i * MaxNeighbors
	return l.Nbr[base : base+MaxNeighbors]
}

// Displacement is the distance of point i from its anchor.
func (l *Lattice) Displacement(i int) float64 {
	dx := l.Px[i] - l.Ox[i]
	dy := l.Py[i] - l.Oy[i]
	dz := l.Pz[i] - l.Oz[i]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Validate reports the first neighbour slot that is neither the sentinel
// nor a valid index of another point.
func (l *Lattice) Validate() error {
	n := l.Count()
	if len(l.Nbr) != n*MaxNeighbors || len(l.Rest) != n*MaxNeighbors {
		return fmt.Errorf("lattice: neighbour table has %d slots, want %d", len(l.Nbr), n*MaxNeighbors)
	}
	for i := 0; i < n; i++ {
		for d, j := range l.Neighbors(i) {
			if j == NoNeighbor {
				continue
			}
			if j < 0 || int(j) >= n {
				return fmt.Errorf("lattice: point %d slot %d references %d outside [0,%d)", i, d, j, n)
			}
			if int(j) == i {
				return fmt.Errorf("lattice: point %d slot %d references itself", i, d)
			}
		}
	}
	return nil
}

func (l *Lattice) linkRest(i, d, j int) {
	base := i*MaxNeighbors + d
	l.Nbr[base] = int32(j)
	dx := l.Ox[j] - l.Ox[i]
	dy := l.Oy[j] - l.Oy[i]
	dz := l.Oz[j] - l.Oz[i]
	l.Rest[base] = math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (l *Lattice) unlink(i, d int) {
	base := i*MaxNeighbors + d
	l.Nbr[base] = NoNeighbor
	l.Rest[base] = 0
}
