package navcore

import (
	"context"
	"time"

	"github.com/golang/geo/r2"

	"github.com/KathiWinter/NavPy/costmap"
	"github.com/KathiWinter/NavPy/geometry"
	"github.com/KathiWinter/NavPy/logging"
	"github.com/KathiWinter/NavPy/planner"
)

// Config bundles the per-component configuration blocks of spec.md §6,
// plus the meters-per-cell resolution of the ego-centered local costmap
// (§6's LocalConfig has no resolution field of its own). The global
// costmap uses the resolution of the grid the map provider returns.
type Config struct {
	Resolution float64
	InitMapID  int

	Costmap costmap.Config
	Local   costmap.LocalConfig
	Planner planner.Config
}

// Publishers groups every outbound topic of spec.md §6 "Published
// messages" that navcore, rather than its sub-components, is responsible
// for wiring to an external transport.
type Publishers struct {
	GlobalCostmap  costmap.GridPublisher
	LocalCostmap   costmap.LocalGridPublisher
	LocalObstacles costmap.ObstaclePublisher
	CommandVel     planner.CommandPublisher
	Visualization  planner.VisualizationPublisher
	Goal           planner.GoalPublisher
	Telemetry      planner.TelemetryPublisher
}

// Core wires the Costmap Generator, local-costmap loop, and DWA planner
// loop together behind the shared State, per spec.md §5.
type Core struct {
	state *State

	generator   *costmap.Generator
	localLoop   *costmap.LocalLoop
	plannerLoop *planner.Loop

	logger logging.Logger
}

// NewCore constructs the wired navigation core. mapProvider and transform
// are the external collaborators of spec.md §6 ("get_map", transform
// queries); their concrete network implementations are non-core per
// spec.md §1 and are supplied by the caller (cmd/navcored).
func NewCore(
	cfg Config,
	mapProvider costmap.MapProvider,
	transform costmap.TransformProvider,
	pub Publishers,
	logger logging.Logger,
) *Core {
	state := NewState()

	generator := costmap.NewGenerator(cfg.Costmap, mapProvider, pub.GlobalCostmap, logger)
	localLoop := costmap.NewLocalLoop(cfg.Local, cfg.Resolution, &costmapStateAdapter{state}, transform,
		pub.LocalCostmap, pub.LocalObstacles, logger)

	core := &Core{state: state, generator: generator, localLoop: localLoop, logger: logger.Named("navcore")}

	plannerLoop := planner.NewLoop(
		&cfg.Planner,
		&plannerStateAdapter{state: state, obstacles: localLoop},
		pub.CommandVel,
		pub.Visualization,
		pub.Goal,
		func() bool { return core.AddLocalMap("stuck") },
		pub.Telemetry,
		logger,
	)
	core.plannerLoop = plannerLoop

	return core
}

// Start fetches the initial global map (fatal on failure, per spec.md §7)
// and launches the two background loops.
func (c *Core) Start(ctx context.Context, initMapID int) error {
	if err := c.generator.Start(ctx, initMapID); err != nil {
		return err
	}
	c.localLoop.Start(ctx)
	c.plannerLoop.Start(ctx)
	return nil
}

// Stop cancels both background loops. The planner loop publishes a final
// zero twist on its exit path per spec.md §5's cancellation contract; the
// local-costmap loop publishes nothing when it stops.
func (c *Core) Stop() {
	c.plannerLoop.Stop()
	c.localLoop.Stop()
}

// OnOdometry records a pose/twist sample from the odometry topic.
func (c *Core) OnOdometry(pose geometry.Pose, twist planner.Twist, at time.Time) {
	c.state.OnOdometry(pose, twist, at)
}

// OnScan records a laser-scan sample.
func (c *Core) OnScan(scan costmap.Scan, at time.Time) {
	c.state.OnScan(scan, at)
}

// SetPath installs a newly received global path and activates the DWA
// plan, per spec.md §4.7 "Plan activation: becomes true when a new global
// path is received."
func (c *Core) SetPath(path []r2.Point) {
	c.state.SetPath(path)
	c.plannerLoop.SetPath(path)
}

// SwitchMaps implements the switch_maps service of spec.md §4.2.
func (c *Core) SwitchMaps(ctx context.Context, mapID int) bool {
	return c.generator.SwitchMap(ctx, mapID)
}

// ClearMap implements the clear_map service of spec.md §4.2.
func (c *Core) ClearMap(ctx context.Context, command string) bool {
	return c.generator.ClearMap(ctx, command)
}

// AddLocalMap implements the add_local_map service of spec.md §4.2,
// absorbing the local loop's most recent obstacle set into the global
// costmap.
func (c *Core) AddLocalMap(command string) bool {
	return c.generator.AddLocalMap(command, c.localLoop)
}
