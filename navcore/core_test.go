package navcore

import (
	"context"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/KathiWinter/NavPy/costmap"
	"github.com/KathiWinter/NavPy/geometry"
	"github.com/KathiWinter/NavPy/logging"
	"github.com/KathiWinter/NavPy/planner"
)

type injectedMapProvider struct {
	grid *costmap.Grid
}

func (p *injectedMapProvider) GetMap(ctx context.Context, mapID int) (*costmap.Grid, error) {
	return p.grid, nil
}

type injectedTransform struct{}

func (injectedTransform) SensorToMap(ctx context.Context, p r2.Point) (r2.Point, error) {
	return p, nil
}

func testCoreConfig() Config {
	return Config{
		Resolution: 0.1,
		InitMapID:  1,
		Costmap: costmap.Config{
			RobotDiameterM: 0.3, SafetyDistanceM: 0.1,
			PaddedVal: costmap.DefaultPaddedValue, DecayType: costmap.DecayLinear,
			DecayDistanceM: 0.2, ApplySoftPadding: true,
		},
		Local: costmap.LocalConfig{LengthM: 3.3, FrequencyHz: 10, FrequencyScanHz: 20},
		Planner: planner.Config{
			MinLinearVel: -0.2, MaxLinearVel: 1.0,
			MinAngularVel: -1.0, MaxAngularVel: 1.0,
			MaxAcc: 0.5, MaxDec: 0.5,
			MinDistGoal: 0.2, Lookahead: 2.0,
			ResLinVelSpace: 3, ResAngVelSpace: 3,
			GainVel: 1, GainGlobPath: 1, GainGoalAngle: 1, GainClearance: 1,
			RecMinLinVel: 0.02, RecMinLinVelTime: 1.0, RecCirclingTime: 3.0,
			RecPathTimeFactor: 2.0, RecPathLength: 3,
			RobotRadius: 0.12, SafetyDistance: 0.05, FrequencyHz: 10,
		},
	}
}

func TestNewCoreStartFetchesInitialMap(t *testing.T) {
	grid := costmap.NewGrid(20, 20, 0.1, geometry.Pose{}, costmap.Free)
	provider := &injectedMapProvider{grid: grid}

	core := NewCore(testCoreConfig(), provider, injectedTransform{}, Publishers{}, logging.NewTestLogger(t))
	err := core.Start(context.Background(), 1)
	test.That(t, err, test.ShouldBeNil)

	core.Stop()
}

func TestCoreServicePassthroughs(t *testing.T) {
	grid := costmap.NewGrid(10, 10, 0.1, geometry.Pose{}, costmap.Free)
	provider := &injectedMapProvider{grid: grid}

	core := NewCore(testCoreConfig(), provider, injectedTransform{}, Publishers{}, logging.NewTestLogger(t))
	test.That(t, core.Start(context.Background(), 1), test.ShouldBeNil)
	defer core.Stop()

	test.That(t, core.ClearMap(context.Background(), "reset"), test.ShouldBeFalse)
	test.That(t, core.ClearMap(context.Background(), "clear"), test.ShouldBeTrue)
	test.That(t, core.SwitchMaps(context.Background(), 1), test.ShouldBeTrue)
	test.That(t, core.AddLocalMap("unstick"), test.ShouldBeFalse)
	test.That(t, core.AddLocalMap("stuck"), test.ShouldBeTrue)
}
