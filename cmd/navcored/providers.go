package main

import (
	"context"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/KathiWinter/NavPy/costmap"
)

// staticMapProvider implements costmap.MapProvider by serving
// pre-loaded grids keyed by map ID. Real deployments replace this with a
// network call to the map service; that transport is non-core per
// spec.md §1 (see DESIGN.md), so navcored ships only this file-backed
// stand-in.
type staticMapProvider struct {
	grids map[int]*costmap.Grid
}

func (p *staticMapProvider) GetMap(ctx context.Context, mapID int) (*costmap.Grid, error) {
	grid, ok := p.grids[mapID]
	if !ok {
		return nil, errors.Errorf("no map registered for id %d", mapID)
	}
	return grid, nil
}

// staticTransformProvider implements costmap.TransformProvider as a
// single fixed offset, collapsing the hokuyo_link -> base_link -> odom ->
// map chain of spec.md §6 into one configured translation. A real
// deployment replaces this with live tf lookups; dropped here for the
// same reason as staticMapProvider.
type staticTransformProvider struct {
	offset r2.Point
}

func (p *staticTransformProvider) SensorToMap(ctx context.Context, sensorFramePoint r2.Point) (r2.Point, error) {
	return sensorFramePoint.Add(p.offset), nil
}
