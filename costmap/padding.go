package costmap

import (
	"math"

	"github.com/KathiWinter/NavPy/geometry"
)

// Pad imprints a radial cost disk around every Occupied cell of g: cells
// within hardRadiusCells are raised to paddedValue (if lower), and cells
// beyond that out to hardRadiusCells+len(profile) are raised along the
// decay profile, per spec.md §4.1. Writes are max-lifts: a cell never
// decreases, Occupied cells are never touched, and Unknown cells are
// never overwritten by soft padding — together these make padding
// idempotent and independent of occupied-cell iteration order (testable
// properties 1, 2, 7 of spec.md §8).
func Pad(g *Grid, hardRadiusCells float64, profile Profile, paddedValue int8) {
	mask := buildMask(hardRadiusCells, len(profile))
	for _, c := range g.OccupiedCells() {
		stamp(g, c.Row, c.Col, mask, hardRadiusCells, profile, paddedValue)
	}
}

// PadPoint applies the same disk-stamp as Pad to a single newly occupied
// cell, without re-enumerating the whole grid. This is the "single-point
// routine" spec.md §4.2 calls out for add_local_map("stuck").
func PadPoint(g *Grid, row, col int, hardRadiusCells float64, profile Profile, paddedValue int8) {
	mask := buildMask(hardRadiusCells, len(profile))
	stamp(g, row, col, mask, hardRadiusCells, profile, paddedValue)
}

func stamp(g *Grid, centerRow, centerCol int, mask []maskOffset, hardRadiusCells float64, profile Profile, paddedValue int8) {
	for _, off := range mask {
		row, col := centerRow+off.dRow, centerCol+off.dCol
		if !g.InBounds(row, col) {
			continue
		}
		cur := g.At(row, col)
		if cur == Unknown || cur == Occupied {
			continue
		}

		if off.dist <= hardRadiusCells {
			if cur < paddedValue {
				g.Set(row, col, paddedValue)
			}
			continue
		}

		ring := int(math.Ceil(off.dist - hardRadiusCells))
		if ring < 1 {
			ring = 1
		}
		if ring > len(profile) {
			continue
		}
		if d := profile[ring-1]; cur < d {
			g.Set(row, col, d)
		}
	}
}

type maskOffset struct {
	dRow, dCol int
	dist       float64
}

// buildMask precomputes every offset within radius hardRadiusCells+steps,
// each tagged with its Euclidean distance, so stamp never recomputes it.
// Delegates the offset enumeration to geometry.Disk rather than rolling
// its own bounding loop.
func buildMask(hardRadiusCells float64, steps int) []maskOffset {
	radius := hardRadiusCells + float64(steps)
	offsets := geometry.Disk(radius)
	mask := make([]maskOffset, len(offsets))
	for i, off := range offsets {
		mask[i] = maskOffset{dRow: off.DRow, dCol: off.DCol, dist: math.Hypot(float64(off.DRow), float64(off.DCol))}
	}
	return mask
}
