package planner

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/golang/geo/r2"

	"github.com/KathiWinter/NavPy/geometry"
	workerpkg "github.com/KathiWinter/NavPy/internal/workers"
	"github.com/KathiWinter/NavPy/logging"
)

// Twist is the current (v, omega) of the robot, consumed each tick as the
// dynamic window's sampling center, per spec.md §4.4.
type Twist struct {
	V, Omega float64
}

// StateSource supplies the snapshot the DWA loop copies under the mutex
// at the top of each tick, per spec.md §4.7 step 1 and §5's "Planner
// loops take the mutex only to copy snapshots, then release before
// computation."
type StateSource interface {
	Snapshot() (pose geometry.Pose, twist Twist, path []r2.Point, obstacles []r2.Point, ok bool)
}

// CommandPublisher publishes the selected velocity pair on /cmd_vel.
type CommandPublisher func(v, omega float64)

// VisualizationPublisher publishes the selected trajectory's line strip.
type VisualizationPublisher func(traj *Trajectory)

// GoalPublisher republishes the current goal on /goal during recovery, so
// the global planner may replan (spec.md §4.8).
type GoalPublisher func(goal r2.Point)

// StuckHandler invokes the Costmap Generator's add_local_map("stuck")
// service. Declared as a plain function rather than depending on the
// costmap package directly, since the concrete LocalObstacleSource it
// absorbs is wired at the navcore level.
type StuckHandler func() bool

// Loop runs the Dynamic Window planner loop of spec.md §4.7.
type Loop struct {
	cfg    *Config
	logger logging.Logger

	source           StateSource
	publishCmd       CommandPublisher
	publishViz       VisualizationPublisher
	publishGoal      GoalPublisher
	onStuck          StuckHandler
	publishTelemetry TelemetryPublisher

	mu       sync.Mutex
	plan     *Plan
	recovery *RecoveryCounters
	lastCmd  Twist

	workers workerpkg.StoppableWorkers
}

// NewLoop constructs a DWA planner Loop. publishTelemetry may be nil; it
// receives the once-per-tick debugging payload of spec.md §6's
// `debug_mode`/`log_times` knobs when non-nil.
func NewLoop(
	cfg *Config,
	source StateSource,
	publishCmd CommandPublisher,
	publishViz VisualizationPublisher,
	publishGoal GoalPublisher,
	onStuck StuckHandler,
	publishTelemetry TelemetryPublisher,
	logger logging.Logger,
) *Loop {
	return &Loop{
		cfg:              cfg,
		source:           source,
		publishCmd:       publishCmd,
		publishViz:       publishViz,
		publishGoal:      publishGoal,
		onStuck:          onStuck,
		publishTelemetry: publishTelemetry,
		logger:           logger.Named("planner"),
	}
}

// SetPath activates a newly received global path, per spec.md §4.7
// "Plan activation: becomes true when a new global path is received."
func (l *Loop) SetPath(path []r2.Point) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.plan = NewPlan(path)
	l.recovery = NewRecoveryCounters(l.cfg, len(path))
}

// PlanActive reports whether a plan is currently being pursued.
func (l *Loop) PlanActive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.plan != nil && l.plan.Active()
}

// Start launches the ticking background loop at the configured frequency.
func (l *Loop) Start(ctx context.Context) {
	period := time.Duration(float64(time.Second) / l.cfg.FrequencyHz)
	l.workers = workerpkg.NewStoppableWorkers(func(ctx context.Context) {
		for {
			select {
			case <-ctx.Done():
				l.publishCmd(0, 0)
				return
			default:
			}
			start := time.Now()
			l.tick(ctx)
			if sleep := period - time.Since(start); sleep > 0 {
				select {
				case <-ctx.Done():
					l.publishCmd(0, 0)
					return
				case <-time.After(sleep):
				}
			}
		}
	})
}

// Stop cancels the background loop and publishes a final zero twist, per
// spec.md §5's cancellation contract.
func (l *Loop) Stop() {
	if l.workers != nil {
		l.workers.Stop()
	}
}

func (l *Loop) tick(ctx context.Context) {
	start := time.Now()
	if l.cfg.LogTimes {
		defer func() { l.logger.Debugw("tick complete", "elapsed", time.Since(start)) }()
	}

	l.mu.Lock()
	plan := l.plan
	recovery := l.recovery
	l.mu.Unlock()

	if plan == nil || !plan.Active() {
		return
	}

	pose, twist, path, obstacles, ok := l.source.Snapshot()
	if !ok || len(path) == 0 {
		return
	}

	window := NewWindow(twist.V, twist.Omega, l.cfg, l.cfg.Lookahead)

	var best *Candidate
	for _, pair := range window.Pairs() {
		omega, v := pair[0], pair[1]
		traj := Rollout(pose, omega, v, l.cfg.Lookahead, l.cfg.ResLinVelSpace)
		cost := Evaluate(l.cfg, pose, omega, v, traj, path, obstacles)
		if best == nil || cost < best.Cost {
			best = &Candidate{Omega: omega, V: v, Cost: cost, Trajectory: traj}
		}
	}
	if best == nil {
		return
	}

	if l.publishTelemetry != nil {
		l.publishTelemetry(Telemetry{
			Omega: best.Omega, V: best.V, Cost: best.Cost,
			WindowSize:    len(window.Pairs()),
			StallTicks:    recovery.stallTicks,
			CirclingTicks: recovery.circlingTicks,
			TickCount:     recovery.tickCount,
			Trajectory:    best.Trajectory,
		})
	}

	trigger := recovery.Update(best.Omega, best.V)
	if trigger != NoRecovery {
		l.logger.Infow("recovery triggered", "trigger", trigger)
		plan.Complete()
		l.publishCmd(0, 0)
		if l.onStuck != nil {
			l.onStuck()
		}
		if l.publishGoal != nil && len(path) > 0 {
			l.publishGoal(path[len(path)-1])
		}
		return
	}

	if !plan.Active() {
		return
	}

	l.mu.Lock()
	l.lastCmd = Twist{V: best.V, Omega: best.Omega}
	l.mu.Unlock()

	l.publishCmd(best.V, best.Omega)
	if l.publishViz != nil {
		l.publishViz(best.Trajectory)
	}

	goal := path[len(path)-1]
	if distance(pose, goal) < l.cfg.MinDistGoal {
		plan.Complete()
		recovery.Reset()
		l.publishCmd(0, 0)
	}
}

func distance(pose geometry.Pose, goal r2.Point) float64 {
	return math.Hypot(pose.X-goal.X, pose.Y-goal.Y)
}
