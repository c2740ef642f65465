package planner

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/KathiWinter/NavPy/geometry"
)

func TestCostVelFavorsMaxVelocity(t *testing.T) {
	cfg := baseConfig()
	test.That(t, costVel(cfg, cfg.MaxLinearVel), test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, costVel(cfg, cfg.MinLinearVel), test.ShouldAlmostEqual, 1, 1e-9)
}

func TestCostObstacleEmptySetReturnsFiniteDefault(t *testing.T) {
	cfg := baseConfig()
	traj := Rollout(geometry.Pose{}, 0, 0.5, 1.0, 5)
	test.That(t, costObstacle(cfg, traj, nil, 0.5), test.ShouldAlmostEqual, emptyObstacleCost, 1e-9)
}

// TestCostObstacleVeto reproduces S6: trajectory passes at 0.10m from an
// obstacle; R_rob=0.12, R_safe=0.05, v=0.2, a_dec=0.5 -> threshold =
// 0.12+0.05+0.04 = 0.21 > 0.10, cost should be infinite.
func TestCostObstacleVeto(t *testing.T) {
	cfg := baseConfig()
	cfg.RobotRadius = 0.12
	cfg.SafetyDistance = 0.05
	cfg.MaxDec = 0.5

	traj := &Trajectory{Points: []r2.Point{{X: 0, Y: 0}}, TerminalYaw: 0}
	obstacle := r2.Point{X: 0.10, Y: 0}

	got := costObstacle(cfg, traj, []r2.Point{obstacle}, 0.2)
	test.That(t, math.IsInf(got, 1), test.ShouldBeTrue)
}

func TestCostObstacleBeyondThresholdIsInverseDistance(t *testing.T) {
	cfg := baseConfig()
	cfg.RobotRadius = 0.1
	cfg.SafetyDistance = 0.05
	cfg.MaxDec = 1.0

	traj := &Trajectory{Points: []r2.Point{{X: 0, Y: 0}}, TerminalYaw: 0}
	obstacle := r2.Point{X: 1.0, Y: 0}

	got := costObstacle(cfg, traj, []r2.Point{obstacle}, 0.1)
	test.That(t, got, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestCostGoalZeroWhenFacingGoal(t *testing.T) {
	traj := &Trajectory{Points: []r2.Point{{X: 1, Y: 0}}, TerminalYaw: 0}
	path := []r2.Point{{X: 5, Y: 0}}
	test.That(t, costGoal(traj, path), test.ShouldAlmostEqual, 0, 1e-9)
}

func TestCostGoalMaxWhenFacingAway(t *testing.T) {
	traj := &Trajectory{Points: []r2.Point{{X: 1, Y: 0}}, TerminalYaw: math.Pi}
	path := []r2.Point{{X: 5, Y: 0}}
	test.That(t, costGoal(traj, path), test.ShouldAlmostEqual, 1, 1e-9)
}

func TestCostPathDistanceToNearestPoint(t *testing.T) {
	traj := &Trajectory{Points: []r2.Point{{X: 0, Y: 3}}, TerminalYaw: 0}
	path := []r2.Point{{X: 0, Y: 0}, {X: 0, Y: 3.5}}
	test.That(t, costPath(traj, path), test.ShouldAlmostEqual, 0.5, 1e-9)
}

func TestEvaluateReturnsInfiniteWhenObstacleVetoed(t *testing.T) {
	cfg := baseConfig()
	cfg.RobotRadius = 0.12
	cfg.SafetyDistance = 0.05
	cfg.MaxDec = 0.5

	traj := &Trajectory{Points: []r2.Point{{X: 0, Y: 0}}, TerminalYaw: 0}
	obstacle := []r2.Point{{X: 0.10, Y: 0}}
	path := []r2.Point{{X: 5, Y: 0}}

	got := Evaluate(cfg, geometry.Pose{}, 0, 0.2, traj, path, obstacle)
	test.That(t, math.IsInf(got, 1), test.ShouldBeTrue)
}
