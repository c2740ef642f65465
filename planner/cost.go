package planner

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/KathiWinter/NavPy/geometry"
)

// emptyObstacleCost is the finite default of spec.md §4.6, used when the
// obstacle set is empty: roughly 1/(L/2) for L=3.3m (1/1.65 = 0.606), the
// inverse of the local-costmap reach.
const emptyObstacleCost = 0.60

// Candidate is one evaluated (omega, v) pair: its total cost and the
// trajectory it produced, kept for visualization and selection.
type Candidate struct {
	Omega, V   float64
	Cost       float64
	Trajectory *Trajectory
}

// Evaluate scores the candidate pair (omega, v) per spec.md §4.6's
// weighted sum of velocity, goal-heading, path-proximity, and
// obstacle-proximity terms.
func Evaluate(cfg *Config, pose geometry.Pose, omega, v float64, traj *Trajectory, path []r2.Point, obstacles []r2.Point) float64 {
	cVel := costVel(cfg, v)
	cGoal := costGoal(traj, path)
	cPath := costPath(traj, path)
	cObst := costObstacle(cfg, traj, obstacles, v)

	if math.IsInf(cObst, 1) {
		return math.Inf(1)
	}
	return cfg.GainVel*cVel + cfg.GainGoalAngle*cGoal + cfg.GainGlobPath*cPath + cfg.GainClearance*cObst
}

func costVel(cfg *Config, v float64) float64 {
	return (cfg.MaxLinearVel - v) / (cfg.MaxLinearVel - cfg.MinLinearVel)
}

// costGoal measures the heading error towards the last point of path from
// the rollout's terminal state, per spec.md §4.6's c_goal.
func costGoal(traj *Trajectory, path []r2.Point) float64 {
	if len(path) == 0 {
		return 0
	}
	goal := path[len(path)-1]
	terminal := traj.Terminal()
	bearing := math.Atan2(goal.Y-terminal.Y, goal.X-terminal.X)
	alpha := geometry.AngleDiff(bearing, terminal.Yaw)
	return math.Abs(alpha) / math.Pi
}

// costPath measures the terminal state's distance to the nearest point of
// path, per spec.md §4.6's c_path.
func costPath(traj *Trajectory, path []r2.Point) float64 {
	if len(path) == 0 {
		return 0
	}
	terminal := traj.Terminal()
	terminalPoint := r2.Point{X: terminal.X, Y: terminal.Y}
	min := math.Inf(1)
	for _, p := range path {
		if d := terminalPoint.Sub(p).Norm(); d < min {
			min = d
		}
	}
	return min
}

// costObstacle implements spec.md §4.6's c_obst: infinite veto within the
// safety threshold R_safe + R_rob + v^2/(2*a_dec), else the inverse of the
// minimum trajectory-to-obstacle distance, else the finite empty-set
// default.
func costObstacle(cfg *Config, traj *Trajectory, obstacles []r2.Point, v float64) float64 {
	if len(obstacles) == 0 {
		return emptyObstacleCost
	}

	threshold := cfg.SafetyDistance + cfg.RobotRadius + (v*v)/(2*cfg.MaxDec)

	min := math.Inf(1)
	for _, t := range traj.Points {
		for _, o := range obstacles {
			if d := t.Sub(o).Norm(); d < min {
				min = d
			}
		}
	}
	if min < threshold {
		return math.Inf(1)
	}
	return 1 / min
}
