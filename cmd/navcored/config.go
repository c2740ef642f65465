package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/KathiWinter/NavPy/costmap"
	"github.com/KathiWinter/NavPy/navcore"
	"github.com/KathiWinter/NavPy/planner"
)

// bootstrapConfig is the on-disk JSON document navcored loads, combining
// spec.md §6's enumerated configuration with the file-backed map and
// fixed-offset transform this non-core bootstrap wires in place of a
// network map service and tf graph.
type bootstrapConfig struct {
	Global  navcore.GlobalConfig `json:"global"`
	Costmap costmap.Config       `json:"costmap"`
	Local   costmap.LocalConfig  `json:"local_costmap"`
	Planner planner.Config       `json:"planner"`

	Resolution float64 `json:"resolution"`
	MapFile    string  `json:"map_file"`

	TransformOffsetX float64 `json:"transform_offset_x"`
	TransformOffsetY float64 `json:"transform_offset_y"`
}

func loadBootstrapConfig(path string) (*bootstrapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	var cfg bootstrapConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	core := navcore.Config{Resolution: cfg.Resolution, Costmap: cfg.Costmap, Local: cfg.Local, Planner: cfg.Planner}
	core.ApplyGlobal(cfg.Global)
	if err := core.Validate("config"); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *bootstrapConfig) navcoreConfig() navcore.Config {
	core := navcore.Config{Resolution: c.Resolution, Costmap: c.Costmap, Local: c.Local, Planner: c.Planner}
	core.ApplyGlobal(c.Global)
	return core
}
