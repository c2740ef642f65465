// Package navcore wires the Costmap Generator, local-costmap loop, and
// DWA planner loop together behind the single coarse mutex described in
// spec.md §5, and supplies the concrete StateSource implementations those
// packages consume.
package navcore

import (
	"sync"
	"time"

	"github.com/golang/geo/r2"

	"github.com/KathiWinter/NavPy/costmap"
	"github.com/KathiWinter/NavPy/geometry"
	"github.com/KathiWinter/NavPy/planner"
)

// maxOdomSamples bounds the buffered-odometry ring used to resolve
// spec.md §9's "Observed anomaly" about the odom callback's sleep-based
// pose/scan alignment: rather than sleeping, the local loop snapshot picks
// the buffered sample nearest the scan's timestamp.
const maxOdomSamples = 64

type odomSample struct {
	pose  geometry.Pose
	twist planner.Twist
	at    time.Time
}

// State is the single mutex-guarded store of spec.md §5's shared
// resources: current pose (via buffered odom samples), latest scan, and
// global path. Local obstacles are not stored here; PlannerSnapshot takes
// them from its caller. Sensor callbacks (OnOdometry, OnScan)
// are short critical sections that only write the snapshot they produce;
// the local-costmap and DWA loops take the mutex only to copy a snapshot.
type State struct {
	mu sync.Mutex

	odom    []odomSample
	scan    costmap.Scan
	scanAt  time.Time
	hasScan bool

	path []r2.Point
}

// NewState constructs an empty shared State.
func NewState() *State {
	return &State{}
}

// OnOdometry records a new timestamped pose/twist sample.
func (s *State) OnOdometry(pose geometry.Pose, twist planner.Twist, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.odom = append(s.odom, odomSample{pose: pose, twist: twist, at: at})
	if len(s.odom) > maxOdomSamples {
		s.odom = s.odom[len(s.odom)-maxOdomSamples:]
	}
}

// OnScan records the latest laser scan and its timestamp.
func (s *State) OnScan(scan costmap.Scan, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scan = scan
	s.scanAt = at
	s.hasScan = true
}

// SetPath installs a newly received global path.
func (s *State) SetPath(path []r2.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
}

// CostmapSnapshot implements costmap.StateSource: the local-costmap loop
// wants the scan paired with the pose nearest its timestamp, not
// necessarily the very latest pose.
func (s *State) CostmapSnapshot() (costmap.Scan, geometry.Pose, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasScan || len(s.odom) == 0 {
		return costmap.Scan{}, geometry.Pose{}, false
	}
	pose, _ := nearest(s.odom, s.scanAt)
	return s.scan, pose, true
}

// PlannerSnapshot implements planner.StateSource: the DWA loop wants the
// most recent pose/twist and the latest path and obstacles. obstacles is
// supplied by the caller (typically costmap.LocalLoop.LatestObstacles)
// since State has no opinion on where obstacles come from.
func (s *State) PlannerSnapshot(obstacles []r2.Point) (geometry.Pose, planner.Twist, []r2.Point, []r2.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.odom) == 0 || len(s.path) == 0 {
		return geometry.Pose{}, planner.Twist{}, nil, obstacles, false
	}
	latest := s.odom[len(s.odom)-1]
	return latest.pose, latest.twist, s.path, obstacles, true
}

// nearest returns the buffered sample whose timestamp is closest to at.
func nearest(samples []odomSample, at time.Time) (geometry.Pose, planner.Twist) {
	best := samples[0]
	bestDelta := absDuration(best.at.Sub(at))
	for _, s := range samples[1:] {
		if d := absDuration(s.at.Sub(at)); d < bestDelta {
			best, bestDelta = s, d
		}
	}
	return best.pose, best.twist
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
