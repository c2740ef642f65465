// Command navcored bootstraps the costmap generator and DWA planner core
// for a single robot process: loads configuration, wires the map and
// transform collaborators, starts the background loops, and shuts them
// down cleanly on signal. The network transport that would carry sensor
// input in and command velocity out is non-core per spec.md §1 and is
// not wired here; see DESIGN.md.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/geo/r2"
	"github.com/urfave/cli/v2"

	"github.com/KathiWinter/NavPy/costmap"
	"github.com/KathiWinter/NavPy/logging"
	"github.com/KathiWinter/NavPy/navcore"
)

func main() {
	app := &cli.App{
		Name:  "navcored",
		Usage: "run the costmap generator and DWA local planner",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "path to the navcored JSON configuration file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	bootstrap, err := loadBootstrapConfig(c.String("config"))
	if err != nil {
		return err
	}

	var logger logging.Logger
	if c.Bool("debug") || bootstrap.Global.DebugMode {
		logger = logging.NewDebugLogger("navcored")
	} else {
		logger = logging.NewLogger("navcored")
	}

	grid, err := loadOccupancyGrid(bootstrap.MapFile)
	if err != nil {
		return err
	}
	mapProvider := &staticMapProvider{grids: map[int]*costmap.Grid{bootstrap.Global.InitMapNr: grid}}
	transform := &staticTransformProvider{offset: r2.Point{X: bootstrap.TransformOffsetX, Y: bootstrap.TransformOffsetY}}

	pub := navcore.Publishers{
		GlobalCostmap: func(g *costmap.Grid, version uint64) {
			logger.Debugw("global costmap republished", "version", version)
		},
		CommandVel: func(v, omega float64) {
			logger.Debugw("cmd_vel", "v", v, "omega", omega)
		},
		Goal: func(goal r2.Point) {
			logger.Infow("goal republished during recovery", "x", goal.X, "y", goal.Y)
		},
	}

	core := navcore.NewCore(bootstrap.navcoreConfig(), mapProvider, transform, pub, logger)

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := core.Start(ctx, bootstrap.Global.InitMapNr); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping loops")
	core.Stop()
	return nil
}
