package costmap

import (
	"context"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/KathiWinter/NavPy/logging"
)

// MapProvider is the external map-provider collaborator named in spec.md
// §6 "Services consumed": get_map{int8 -> OccupancyGrid}.
type MapProvider interface {
	GetMap(ctx context.Context, mapID int) (*Grid, error)
}

// GridPublisher receives the latched global costmap each time it is
// rebuilt, together with the monotonic version stamp spec.md §5 requires
// ("subscribers see monotonic-stamp updates").
type GridPublisher func(grid *Grid, version uint64)

// Generator owns the global costmap and exposes the three request/response
// service operations of spec.md §4.2. All three mutate state under a
// single mutex and run on the caller's goroutine — a single dispatcher per
// call, not a per-service thread, per spec.md §9's redesign note.
type Generator struct {
	mu sync.Mutex

	cfg         Config
	logger      logging.Logger
	mapProvider MapProvider
	publish     GridPublisher

	currentMapID int
	grid         *Grid
	version      uint64
}

// NewGenerator constructs a Generator. It does not fetch a map; callers
// must call Start to perform the (fatal-on-failure) startup map fetch per
// spec.md §7.
func NewGenerator(cfg Config, mapProvider MapProvider, publish GridPublisher, logger logging.Logger) *Generator {
	cfg.ApplyDefaults()
	return &Generator{cfg: cfg, mapProvider: mapProvider, publish: publish, logger: logger.Named("costmap")}
}

// Start fetches and pads the initial map. Per spec.md §7, a map-provider
// failure during startup is fatal and is returned as an error rather than
// swallowed.
func (gen *Generator) Start(ctx context.Context, initMapID int) error {
	grid, err := gen.mapProvider.GetMap(ctx, initMapID)
	if err != nil {
		return errors.Wrapf(err, "fatal: failed to fetch initial map %d", initMapID)
	}
	gen.mu.Lock()
	gen.currentMapID = initMapID
	gen.grid = grid.Clone()
	gen.padAndRepublishLocked()
	gen.mu.Unlock()
	return nil
}

// SwitchMap implements spec.md §4.2 switch_map(map_id): fetches the named
// map, replaces the stored grid, re-pads, republishes. On provider
// failure the previous grid is preserved and false is returned.
func (gen *Generator) SwitchMap(ctx context.Context, mapID int) bool {
	grid, err := gen.mapProvider.GetMap(ctx, mapID)
	if err != nil {
		gen.logger.Warnw("switch_map failed, preserving previous grid", "error", err, "map_id", mapID)
		return false
	}
	gen.mu.Lock()
	defer gen.mu.Unlock()
	gen.currentMapID = mapID
	gen.grid = grid.Clone()
	gen.padAndRepublishLocked()
	return true
}

// ClearMap implements spec.md §4.2 clear_map(command). Only the exact
// command "clear" is recognized; anything else is a no-op that returns
// false, per spec.md §7's "Service command mismatch" policy.
func (gen *Generator) ClearMap(ctx context.Context, command string) bool {
	if command != "clear" {
		return false
	}
	gen.mu.Lock()
	mapID := gen.currentMapID
	gen.mu.Unlock()

	grid, err := gen.mapProvider.GetMap(ctx, mapID)
	if err != nil {
		gen.logger.Warnw("clear_map failed, preserving previous grid", "error", err, "map_id", mapID)
		return false
	}
	gen.mu.Lock()
	defer gen.mu.Unlock()
	gen.grid = grid.Clone()
	gen.padAndRepublishLocked()
	return true
}

// LocalObstacleSource supplies the most recent local-obstacles set for
// add_local_map's absorption, decoupling Generator from the local-costmap
// loop that produces it (spec.md §4.2, §4.3).
type LocalObstacleSource interface {
	LatestObstacles() []r2.Point
}

// AddLocalMap implements spec.md §4.2 add_local_map(command). Only the
// exact command "stuck" is recognized. For each point in the most recent
// local-obstacles set, the world coordinate is converted to a grid index,
// set Occupied, and its neighborhood is re-padded with the single-point
// routine; out-of-bounds points are skipped silently per spec.md §7.
func (gen *Generator) AddLocalMap(command string, obstacles LocalObstacleSource) bool {
	if command != "stuck" {
		return false
	}
	gen.mu.Lock()
	defer gen.mu.Unlock()

	if gen.grid == nil {
		return false
	}
	hardRadius := gen.cfg.HardRadiusCells(gen.grid.Resolution)
	profile := gen.activeProfileLocked()

	for _, p := range obstacles.LatestObstacles() {
		row, col := gen.grid.WorldToGrid(p)
		if !gen.grid.InBounds(row, col) {
			continue
		}
		gen.grid.Set(row, col, Occupied)
		PadPoint(gen.grid, row, col, hardRadius, profile, gen.cfg.PaddedVal)
	}
	gen.republishLocked()
	return true
}

// Latest returns the current global grid and its version stamp. The
// returned grid must be treated as read-only; callers that need a mutable
// copy should Clone it.
func (gen *Generator) Latest() (*Grid, uint64) {
	gen.mu.Lock()
	defer gen.mu.Unlock()
	return gen.grid, gen.version
}

func (gen *Generator) activeProfileLocked() Profile {
	if !gen.cfg.ApplySoftPadding {
		return nil
	}
	profile, err := NewProfile(gen.cfg.DecayType, gen.cfg.DecayDistanceM, gen.grid.Resolution)
	if err != nil {
		// Config.Validate is required to have rejected this already; a
		// live failure here means apply_soft_padding was toggled without
		// validation, so fail safe with no soft ring rather than panic.
		gen.logger.Errorw("decay profile computation failed, disabling soft padding for this rebuild", err)
		return nil
	}
	return profile
}

func (gen *Generator) padAndRepublishLocked() {
	hardRadius := gen.cfg.HardRadiusCells(gen.grid.Resolution)
	Pad(gen.grid, hardRadius, gen.activeProfileLocked(), gen.cfg.PaddedVal)
	gen.republishLocked()
}

func (gen *Generator) republishLocked() {
	gen.version++
	if gen.publish != nil {
		gen.publish(gen.grid, gen.version)
	}
}
