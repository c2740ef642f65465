package navcore

import (
	"github.com/golang/geo/r2"

	"github.com/KathiWinter/NavPy/costmap"
	"github.com/KathiWinter/NavPy/geometry"
	"github.com/KathiWinter/NavPy/planner"
)

// costmapStateAdapter satisfies costmap.StateSource over the shared State.
type costmapStateAdapter struct {
	state *State
}

func (a *costmapStateAdapter) Snapshot() (costmap.Scan, geometry.Pose, bool) {
	return a.state.CostmapSnapshot()
}

// plannerStateAdapter satisfies planner.StateSource over the shared State,
// pulling the obstacle set from whatever produced it most recently.
type plannerStateAdapter struct {
	state     *State
	obstacles costmap.LocalObstacleSource
}

func (a *plannerStateAdapter) Snapshot() (geometry.Pose, planner.Twist, []r2.Point, []r2.Point, bool) {
	return a.state.PlannerSnapshot(a.obstacles.LatestObstacles())
}
