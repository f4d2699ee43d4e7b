package lattice

import "math"

// Column/row offsets of the 8 neighbour slots.
var planarOffsets = [MaxNeighbors][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// BuildPlanar lays cols x rows points across the viewport width; spacing is
// width/(cols-1) and rows extend downward with the same spacing.
func BuildPlanar(width, height float64, cols, rows int) *Lattice {
	cols = max(cols, MinPlanarCols)
	rows = max(rows, MinPlanarRows)
	width = math.Max(width, 1)
	return BuildPlanarSpacing(width/float64(cols-1), cols, rows)
}

// PlanarGrid derives the grid size from a target spacing so the lattice
// covers the whole viewport.
func PlanarGrid(width, height, spacing float64) *Lattice {
	if spacing <= 0 {
		spacing = 1
	}
	width = math.Max(width, 1)
	height = math.Max(height, 1)
	cols := max(MinPlanarCols, int(math.Ceil(width/spacing))+1)
	rows := max(MinPlanarRows, int(math.Ceil(height/spacing))+1)
	return BuildPlanarSpacing(spacing, cols, rows)
}

func BuildPlanarSpacing(spacing float64, cols, rows int) *Lattice {
	cols = max(cols, MinPlanarCols)
	rows = max(rows, MinPlanarRows)
	l := newLattice(Planar, cols, rows)
	l.Spacing = spacing

	k := 0
	for r := 0; r < rows; r++ {
		y := float64(r) * spacing
		for c := 0; c < cols; c++ {
			x := float64(c) * spacing
			l.Px[k], l.Ox[k] = x, x
			l.Py[k], l.Oy[k] = y, y
			k++
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := l.Index(r, c)
			for d, off := range planarOffsets {
				nc, nr := c+off[0], r+off[1]
				if nc < 0 || nc >= cols || nr < 0 || nr >= rows {
					l.unlink(i, d)
					continue
				}
				l.linkRest(i, d, l.Index(nr, nc))
			}
		}
	}
	return l
}

// CellRange returns the clamped column/row bounds of the cells within
// radius of (x, y). Empty when the lattice has no spacing.
func (l *Lattice) CellRange(x, y, radius float64) (minC, maxC, minR, maxR int) {
	if l.Spacing <= 0 {
		return 0, -1, 0, -1
	}
	inv := 1 / l.Spacing
	minC = max(0, int(math.Floor((x-radius)*inv)))
	maxC = min(l.Cols-1, int(math.Floor((x+radius)*inv)))
	minR = max(0, int(math.Floor((y-radius)*inv)))
	maxR = min(l.Rows-1, int(math.Floor((y+radius)*inv)))
	return minC, maxC, minR, maxR
}
