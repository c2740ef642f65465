// Package costmap implements the padded global obstacle grid and the
// ego-centered local obstacle grid described in spec.md §§3-4.2-4.3.
package costmap

import (
	"github.com/golang/geo/r2"

	"github.com/KathiWinter/NavPy/geometry"
)

// Cell value constants, per spec.md §3.
const (
	Unknown  int8 = -1
	Free     int8 = 0
	Occupied int8 = 100
)

// DefaultPaddedValue is the cost assigned to hard-padded cells, per
// spec.md §6's padded_val default.
const DefaultPaddedValue int8 = 99

// Grid is a row-major occupancy/cost grid with a world-frame origin and
// meters-per-cell resolution, per spec.md §3.
type Grid struct {
	Width, Height int
	Resolution    float64
	Origin        geometry.Pose
	Cells         []int8
}

// NewGrid allocates a width x height grid at the given resolution and
// origin, with every cell initialized to fill.
func NewGrid(width, height int, resolution float64, origin geometry.Pose, fill int8) *Grid {
	cells := make([]int8, width*height)
	if fill != 0 {
		for i := range cells {
			cells[i] = fill
		}
	}
	return &Grid{Width: width, Height: height, Resolution: resolution, Origin: origin, Cells: cells}
}

// FromData wraps an existing row-major cell buffer, as delivered by the
// external map provider (spec.md §6), without copying.
func FromData(width, height int, resolution float64, origin geometry.Pose, data []int8) *Grid {
	return &Grid{Width: width, Height: height, Resolution: resolution, Origin: origin, Cells: data}
}

// InBounds reports whether (row, col) addresses a real cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

func (g *Grid) index(row, col int) int {
	return row*g.Width + col
}

// At returns the value of cell (row, col), or Unknown if out of bounds.
func (g *Grid) At(row, col int) int8 {
	if !g.InBounds(row, col) {
		return Unknown
	}
	return g.Cells[g.index(row, col)]
}

// Set writes v to (row, col). Out-of-bounds writes are silently dropped,
// per spec.md §7 "Out-of-bounds grid write: silent skip." Reports whether
// the write happened.
func (g *Grid) Set(row, col int, v int8) bool {
	if !g.InBounds(row, col) {
		return false
	}
	g.Cells[g.index(row, col)] = v
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]int8, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Width: g.Width, Height: g.Height, Resolution: g.Resolution, Origin: g.Origin, Cells: cells}
}

// WorldToGrid converts a world-frame point to (row, col) using the grid's
// own origin and resolution.
func (g *Grid) WorldToGrid(p r2.Point) (row, col int) {
	return geometry.WorldToGrid(p, r2.Point{X: g.Origin.X, Y: g.Origin.Y}, g.Resolution)
}

// GridToWorld converts (row, col) to the world-frame coordinates of the
// cell's center.
func (g *Grid) GridToWorld(row, col int) r2.Point {
	return geometry.GridToWorld(row, col, r2.Point{X: g.Origin.X, Y: g.Origin.Y}, g.Resolution)
}

// OccupiedCells returns the (row, col) of every cell currently valued
// Occupied, the enumeration step spec.md §4.1's padding algorithm starts
// from.
func (g *Grid) OccupiedCells() []CellCoord {
	var out []CellCoord
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.At(row, col) == Occupied {
				out = append(out, CellCoord{Row: row, Col: col})
			}
		}
	}
	return out
}

// CellCoord is a (row, col) grid address.
type CellCoord struct {
	Row, Col int
}
