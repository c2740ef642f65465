package planner

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/KathiWinter/NavPy/geometry"
)

// Trajectory is the rollout of m sampled points excluding the starting
// state, plus the terminal yaw, per spec.md §4.5.
type Trajectory struct {
	Points      []r2.Point
	TerminalYaw float64
}

// Terminal returns the rollout's terminal (x, y, yaw) state.
func (t *Trajectory) Terminal() geometry.Pose {
	last := t.Points[len(t.Points)-1]
	return geometry.Pose{X: last.X, Y: last.Y, Yaw: t.TerminalYaw}
}

// straightLineOmegaThreshold is the |omega| < 1e-3 cutoff of spec.md §4.5
// below which the rollout degenerates to a straight line rather than an
// arc of near-infinite radius.
const straightLineOmegaThreshold = 1e-3

// Rollout forward-integrates the constant-twist pair (omega, v) from pose
// over horizon tau at resolution steps, per spec.md §4.5.
func Rollout(pose geometry.Pose, omega, v, tau float64, steps int) *Trajectory {
	points := make([]r2.Point, steps)
	psi := pose.Yaw

	if math.Abs(omega) < straightLineOmegaThreshold {
		dx := v * math.Cos(psi) * tau / float64(steps)
		dy := v * math.Sin(psi) * tau / float64(steps)
		for k := 1; k <= steps; k++ {
			points[k-1] = r2.Point{X: pose.X + dx*float64(k), Y: pose.Y + dy*float64(k)}
		}
	} else {
		r := v / omega
		for k := 1; k <= steps; k++ {
			angle := psi + omega*tau*float64(k)/float64(steps)
			points[k-1] = r2.Point{
				X: pose.X - r*math.Sin(psi) + r*math.Sin(angle),
				Y: pose.Y + r*math.Cos(psi) - r*math.Cos(angle),
			}
		}
	}

	return &Trajectory{Points: points, TerminalYaw: geometry.NormalizeAngle(psi + omega*tau)}
}
