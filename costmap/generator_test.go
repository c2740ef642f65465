package costmap

import (
	"context"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/KathiWinter/NavPy/geometry"
	"github.com/KathiWinter/NavPy/logging"
)

// injectedMapProvider is a fake MapProvider with swappable func fields,
// so each test can inject only the behavior it needs.
type injectedMapProvider struct {
	GetMapFunc func(ctx context.Context, mapID int) (*Grid, error)
}

func (p *injectedMapProvider) GetMap(ctx context.Context, mapID int) (*Grid, error) {
	return p.GetMapFunc(ctx, mapID)
}

type fakeObstacles struct {
	points []r2.Point
}

func (f *fakeObstacles) LatestObstacles() []r2.Point { return f.points }

func blankMap(size int) *Grid {
	return NewGrid(size, size, 0.1, geometry.Pose{}, Free)
}

func testConfig() Config {
	return Config{
		RobotDiameterM:   0.3,
		SafetyDistanceM:  0.1,
		PaddedVal:        DefaultPaddedValue,
		DecayType:        DecayLinear,
		DecayDistanceM:   0.2,
		ApplySoftPadding: true,
	}
}

func TestGeneratorStartPadsInitialMap(t *testing.T) {
	grid := blankMap(20)
	grid.Set(10, 10, Occupied)
	provider := &injectedMapProvider{GetMapFunc: func(ctx context.Context, mapID int) (*Grid, error) {
		return grid, nil
	}}

	var published *Grid
	var publishedVersion uint64
	gen := NewGenerator(testConfig(), provider, func(g *Grid, v uint64) {
		published = g
		publishedVersion = v
	}, logging.NewTestLogger(t))

	err := gen.Start(context.Background(), 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, published, test.ShouldNotBeNil)
	test.That(t, publishedVersion, test.ShouldEqual, uint64(1))
	test.That(t, published.At(10, 10), test.ShouldEqual, Occupied)
	test.That(t, published.At(10, 9), test.ShouldEqual, DefaultPaddedValue)
}

func TestGeneratorStartFailsFatallyOnProviderError(t *testing.T) {
	provider := &injectedMapProvider{GetMapFunc: func(ctx context.Context, mapID int) (*Grid, error) {
		return nil, errors.New("map service unreachable")
	}}
	gen := NewGenerator(testConfig(), provider, nil, logging.NewTestLogger(t))
	err := gen.Start(context.Background(), 1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSwitchMapPreservesGridOnFailure(t *testing.T) {
	goodGrid := blankMap(5)
	calls := 0
	provider := &injectedMapProvider{GetMapFunc: func(ctx context.Context, mapID int) (*Grid, error) {
		calls++
		if mapID == 1 {
			return goodGrid, nil
		}
		return nil, errors.New("no such map")
	}}
	gen := NewGenerator(testConfig(), provider, nil, logging.NewTestLogger(t))
	test.That(t, gen.Start(context.Background(), 1), test.ShouldBeNil)

	before, beforeVersion := gen.Latest()
	ok := gen.SwitchMap(context.Background(), 404)
	test.That(t, ok, test.ShouldBeFalse)

	after, afterVersion := gen.Latest()
	test.That(t, after, test.ShouldEqual, before)
	test.That(t, afterVersion, test.ShouldEqual, beforeVersion)
}

func TestClearMapRejectsUnknownCommand(t *testing.T) {
	provider := &injectedMapProvider{GetMapFunc: func(ctx context.Context, mapID int) (*Grid, error) {
		return blankMap(5), nil
	}}
	gen := NewGenerator(testConfig(), provider, nil, logging.NewTestLogger(t))
	test.That(t, gen.Start(context.Background(), 1), test.ShouldBeNil)

	test.That(t, gen.ClearMap(context.Background(), "reset"), test.ShouldBeFalse)
	test.That(t, gen.ClearMap(context.Background(), "clear"), test.ShouldBeTrue)
}

func TestClearMapRefetchesSameMapID(t *testing.T) {
	requestedIDs := []int{}
	provider := &injectedMapProvider{GetMapFunc: func(ctx context.Context, mapID int) (*Grid, error) {
		requestedIDs = append(requestedIDs, mapID)
		return blankMap(5), nil
	}}
	gen := NewGenerator(testConfig(), provider, nil, logging.NewTestLogger(t))
	test.That(t, gen.Start(context.Background(), 7), test.ShouldBeNil)
	test.That(t, gen.ClearMap(context.Background(), "clear"), test.ShouldBeTrue)
	test.That(t, requestedIDs, test.ShouldResemble, []int{7, 7})
}

func TestAddLocalMapAbsorbsObstaclesAndSkipsOutOfBounds(t *testing.T) {
	provider := &injectedMapProvider{GetMapFunc: func(ctx context.Context, mapID int) (*Grid, error) {
		return blankMap(20), nil
	}}
	gen := NewGenerator(testConfig(), provider, nil, logging.NewTestLogger(t))
	test.That(t, gen.Start(context.Background(), 1), test.ShouldBeNil)

	grid, _ := gen.Latest()
	inBounds := grid.GridToWorld(5, 5)
	farOutOfBounds := r2.Point{X: 1000, Y: 1000}

	obstacles := &fakeObstacles{points: []r2.Point{inBounds, farOutOfBounds}}
	ok := gen.AddLocalMap("stuck", obstacles)
	test.That(t, ok, test.ShouldBeTrue)

	grid, _ = gen.Latest()
	test.That(t, grid.At(5, 5), test.ShouldEqual, Occupied)
}

func TestAddLocalMapRejectsWrongCommand(t *testing.T) {
	provider := &injectedMapProvider{GetMapFunc: func(ctx context.Context, mapID int) (*Grid, error) {
		return blankMap(5), nil
	}}
	gen := NewGenerator(testConfig(), provider, nil, logging.NewTestLogger(t))
	test.That(t, gen.Start(context.Background(), 1), test.ShouldBeNil)
	test.That(t, gen.AddLocalMap("unstick", &fakeObstacles{}), test.ShouldBeFalse)
}
