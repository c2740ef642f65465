// Package geometry collects the small set of Euclidean-geometry helpers
// shared by the costmap and planner packages: distance, angle wrapping,
// grid<->world conversions, and circular mask generation for the padding
// engine.
package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Pose is a world-frame 2-D pose: position plus heading, radians,
// normalized to (-pi, pi].
type Pose struct {
	X, Y float64
	Yaw  float64
}

// NormalizeAngle wraps an angle, in radians, to (-pi, pi].
func NormalizeAngle(theta float64) float64 {
	wrapped := math.Mod(theta+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}

// AngleDiff returns the signed difference a-b wrapped to (-pi, pi].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(a - b)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// CellOffset is a (row, col) displacement from a center cell.
type CellOffset struct {
	DRow, DCol int
}

// WorldToGrid converts a world-frame point to the (row, col) of the cell
// that contains it, given a grid origin (world coords of cell (0,0)'s
// corner) and resolution in meters/cell. Per spec.md §4.2: index = floor((p-origin)/res).
func WorldToGrid(p r2.Point, origin r2.Point, resolution float64) (row, col int) {
	col = int(math.Floor((p.X - origin.X) / resolution))
	row = int(math.Floor((p.Y - origin.Y) / resolution))
	return row, col
}

// GridToWorld returns the world-frame coordinates of the center of cell
// (row, col).
func GridToWorld(row, col int, origin r2.Point, resolution float64) r2.Point {
	return r2.Point{
		X: origin.X + (float64(col)+0.5)*resolution,
		Y: origin.Y + (float64(row)+0.5)*resolution,
	}
}

// Disk returns every cell offset within Euclidean distance radiusCells of
// the origin cell. This is the precomputed stamp mask the padding engine
// (costmap.Pad) uses to avoid recomputing distances per occupied cell; see
// spec.md §4.1's "Implementation may precompute a single disk mask and
// stamp it."
func Disk(radiusCells float64) []CellOffset {
	r := ChebyshevRadius(radiusCells)
	offsets := make([]CellOffset, 0, (2*r+1)*(2*r+1))
	for dr := -r; dr <= r; dr++ {
		for dc := -r; dc <= r; dc++ {
			if math.Hypot(float64(dr), float64(dc)) <= radiusCells {
				offsets = append(offsets, CellOffset{DRow: dr, DCol: dc})
			}
		}
	}
	return offsets
}

// ChebyshevRadius returns the smallest integer radius such that Disk(r)
// contains every offset with Euclidean distance <= radiusCells; it bounds
// Disk's enumeration loop before the exact Euclidean test is applied.
func ChebyshevRadius(radiusCells float64) int {
	return int(math.Ceil(radiusCells))
}
