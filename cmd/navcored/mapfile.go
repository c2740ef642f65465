package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/KathiWinter/NavPy/costmap"
	"github.com/KathiWinter/NavPy/geometry"
)

// occupancyGridFile mirrors spec.md §6's consumed "Occupancy grid (from
// map provider): width, height, resolution, origin, data as signed
// bytes" message, serialized to JSON for navcored's file-backed
// staticMapProvider.
type occupancyGridFile struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Resolution float64 `json:"resolution"`
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
	Data       []int8  `json:"data"`
}

func loadOccupancyGrid(path string) (*costmap.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading map file")
	}
	var f occupancyGridFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parsing map file")
	}
	if len(f.Data) != f.Width*f.Height {
		return nil, errors.Errorf("map file data length %d does not match width*height %d", len(f.Data), f.Width*f.Height)
	}
	origin := geometry.Pose{X: f.OriginX, Y: f.OriginY}
	return costmap.FromData(f.Width, f.Height, f.Resolution, origin, f.Data), nil
}
