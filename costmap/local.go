package costmap

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/KathiWinter/NavPy/geometry"
	workerpkg "github.com/KathiWinter/NavPy/internal/workers"
	"github.com/KathiWinter/NavPy/logging"
)

// TransformLookupTimeout bounds the wait for the transform service, per
// spec.md §5 ("the blocking wait for the transform service (bounded by a
// 10-second timeout...)").
const TransformLookupTimeout = 10 * time.Second

// Scan is a snapshot of the latest laser scan, per spec.md §3 "Scan frame".
type Scan struct {
	Ranges         []float64
	AngleMin       float64
	AngleIncrement float64
}

// StateSource supplies the latest scan and robot pose snapshot the local
// loop needs each tick. Implementations must guard their own state with a
// mutex and return ok=false until at least one scan and one odom sample
// have been received, per spec.md §4.3's precondition.
type StateSource interface {
	Snapshot() (scan Scan, pose geometry.Pose, ok bool)
}

// TransformProvider is the external coordinate-transform collaborator of
// spec.md §6, composing the hokuyo->base->odom->map chain for a single
// sensor-frame point.
type TransformProvider interface {
	SensorToMap(ctx context.Context, sensorFramePoint r2.Point) (r2.Point, error)
}

// ObstaclePublisher receives the world-frame local-obstacles point cloud
// each local-loop tick (spec.md §6 "/local_obstacles").
type ObstaclePublisher func(points []r2.Point)

// LocalGridPublisher receives the ego-centered local costmap each tick
// (spec.md §6 "/local_costmap").
type LocalGridPublisher func(grid *Grid)

// LocalLoop runs the rolling local-costmap pipeline of spec.md §4.3: scan
// -> ego-centered occupancy grid, and scan -> world-frame obstacle point
// cloud. It also satisfies LocalObstacleSource so the Generator's
// add_local_map can absorb whatever it last produced.
type LocalLoop struct {
	cfg        LocalConfig
	resolution float64
	logger     logging.Logger

	source    StateSource
	transform TransformProvider

	publishGrid      LocalGridPublisher
	publishObstacles ObstaclePublisher

	obstacleMu sync.Mutex
	obstacles  []r2.Point

	workers workerpkg.StoppableWorkers
}

// NewLocalLoop constructs a LocalLoop. resolution is the meters-per-cell
// used for the ego-centered grid; it is passed in by the caller rather
// than held in LocalConfig, since spec.md §6 does not enumerate a
// local-costmap resolution. It is independent of the resolution of the
// global costmap's grid.
func NewLocalLoop(
	cfg LocalConfig,
	resolution float64,
	source StateSource,
	transform TransformProvider,
	publishGrid LocalGridPublisher,
	publishObstacles ObstaclePublisher,
	logger logging.Logger,
) *LocalLoop {
	return &LocalLoop{
		cfg:              cfg,
		resolution:       resolution,
		source:           source,
		transform:        transform,
		publishGrid:      publishGrid,
		publishObstacles: publishObstacles,
		logger:           logger.Named("local_costmap"),
	}
}

// Start launches the ticking background loop. Call Stop to cancel it; Stop
// publishes nothing itself — callers publish the final zero twist at the
// level that owns the command-velocity topic, per spec.md §5.
func (l *LocalLoop) Start(ctx context.Context) {
	period := time.Duration(float64(time.Second) / l.cfg.FrequencyHz)
	l.workers = workerpkg.NewStoppableWorkers(func(ctx context.Context) {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			start := time.Now()
			l.tick(ctx)
			elapsed := time.Since(start)
			if sleep := period - elapsed; sleep > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(sleep):
				}
			}
		}
	})
}

// Stop cancels the background loop and waits for it to exit.
func (l *LocalLoop) Stop() {
	if l.workers != nil {
		l.workers.Stop()
	}
}

// LatestObstacles implements LocalObstacleSource for the Generator.
func (l *LocalLoop) LatestObstacles() []r2.Point {
	l.obstacleMu.Lock()
	defer l.obstacleMu.Unlock()
	out := make([]r2.Point, len(l.obstacles))
	copy(out, l.obstacles)
	return out
}

func (l *LocalLoop) tick(ctx context.Context) {
	start := time.Now()
	if l.cfg.LogTimes {
		defer func() { l.logger.Debugw("tick complete", "elapsed", time.Since(start)) }()
	}

	scan, pose, ok := l.source.Snapshot()
	if !ok {
		return
	}

	halfLength := l.cfg.LengthM / 2
	side := oddSide(l.cfg.LengthM, l.resolution)
	origin := geometry.Pose{X: pose.X - halfLength, Y: pose.Y - halfLength}
	egoGrid := NewGrid(side, side, l.resolution, origin, Free)
	center := side / 2

	var worldObstacles []r2.Point

	for i, r := range scan.Ranges {
		if r >= halfLength {
			continue
		}
		theta := scan.AngleMin + float64(i)*scan.AngleIncrement

		sensorPoint := r2.Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
		mapPoint, err := l.lookupWithTimeout(ctx, sensorPoint)
		if err != nil {
			l.logger.Warnw("transform unavailable, skipping tick", "error", err)
			return
		}
		worldObstacles = append(worldObstacles, mapPoint)

		// Ego-grid placement uses the non-standard axis convention spec.md
		// §9 calls out as an observed anomaly, adopted verbatim.
		egoAngle := math.Pi/2 - theta - pose.Yaw
		dx := r * math.Cos(egoAngle)
		dy := r * math.Sin(egoAngle)
		row := center + int(math.Round(dy/l.resolution))
		col := center + int(math.Round(dx/l.resolution))
		egoGrid.Set(row, col, Occupied)
	}

	l.obstacleMu.Lock()
	l.obstacles = worldObstacles
	l.obstacleMu.Unlock()

	if l.publishGrid != nil {
		l.publishGrid(egoGrid)
	}
	if l.publishObstacles != nil {
		l.publishObstacles(worldObstacles)
	}
}

func (l *LocalLoop) lookupWithTimeout(ctx context.Context, sensorFramePoint r2.Point) (r2.Point, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, TransformLookupTimeout)
	defer cancel()
	p, err := l.transform.SensorToMap(lookupCtx, sensorFramePoint)
	if err != nil {
		return r2.Point{}, errors.Wrap(err, "transform lookup timed out")
	}
	return p, nil
}

// oddSide returns the smallest odd integer >= ceil(length/resolution),
// per spec.md §4.3 "ego-centered grid of odd side-length ceil(L/res)".
func oddSide(length, resolution float64) int {
	side := int(math.Ceil(length / resolution))
	if side%2 == 0 {
		side++
	}
	return side
}
