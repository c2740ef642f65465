package planner

import (
	"testing"

	"go.viam.com/test"
)

// TestStallRecovery reproduces S3: the selected v* stays below
// rec_min_lin_vel for rec_min_lin_vel_time/dt consecutive ticks.
func TestStallRecovery(t *testing.T) {
	cfg := baseConfig()
	cfg.RecMinLinVel = 0.02
	cfg.RecMinLinVelTime = 1.0
	cfg.FrequencyHz = 10 // dt = 0.1s -> 10 ticks to trigger

	r := NewRecoveryCounters(cfg, 0)
	var trigger RecoveryTrigger
	for i := 0; i < 10; i++ {
		trigger = r.Update(0, 0.0)
	}
	test.That(t, trigger, test.ShouldEqual, StallRecovery)
}

func TestStallRecoveryResetsOnHighVelocityTick(t *testing.T) {
	cfg := baseConfig()
	cfg.RecMinLinVel = 0.02
	cfg.RecMinLinVelTime = 1.0
	cfg.FrequencyHz = 10

	r := NewRecoveryCounters(cfg, 0)
	for i := 0; i < 9; i++ {
		r.Update(0, 0.0)
	}
	r.Update(0, 1.0) // breaks the stall streak
	trigger := r.Update(0, 0.0)
	test.That(t, trigger, test.ShouldEqual, NoRecovery)
}

// TestCirclingRecovery reproduces S4: 30 consecutive ticks with omega* > 0
// (rec_circling_time=3.0s, dt=0.1s) triggers recovery.
func TestCirclingRecovery(t *testing.T) {
	cfg := baseConfig()
	cfg.RecCirclingTime = 3.0
	cfg.FrequencyHz = 10

	r := NewRecoveryCounters(cfg, 0)
	var trigger RecoveryTrigger
	for i := 0; i < 30; i++ {
		trigger = r.Update(0.5, 0.5)
	}
	test.That(t, trigger, test.ShouldEqual, CirclingRecovery)
}

func TestCirclingRecoverySignFlipResetsCounter(t *testing.T) {
	cfg := baseConfig()
	cfg.RecCirclingTime = 3.0
	cfg.FrequencyHz = 10

	r := NewRecoveryCounters(cfg, 0)
	for i := 0; i < 29; i++ {
		r.Update(0.5, 0.5)
	}
	r.Update(-0.5, 0.5) // sign flips, restarts the streak
	trigger := r.Update(-0.5, 0.5)
	test.That(t, trigger, test.ShouldEqual, NoRecovery)
}

// TestPathTimeoutRecovery reproduces spec.md §4.8's path-timeout trigger
// when tick count reaches floor(k_t*|P|/dt) and |P| > L_min.
func TestPathTimeoutRecovery(t *testing.T) {
	cfg := baseConfig()
	cfg.RecPathTimeFactor = 2.0
	cfg.RecPathLength = 3
	cfg.FrequencyHz = 10 // dt = 0.1

	pathLen := 5 // > RecPathLength
	r := NewRecoveryCounters(cfg, pathLen)
	threshold := int(cfg.RecPathTimeFactor * float64(pathLen) / (1 / cfg.FrequencyHz))

	var trigger RecoveryTrigger
	for i := 0; i < threshold; i++ {
		trigger = r.Update(0, 0.5)
	}
	test.That(t, trigger, test.ShouldEqual, PathTimeoutRecovery)
}

func TestPathTimeoutDisabledForShortPaths(t *testing.T) {
	cfg := baseConfig()
	cfg.RecPathLength = 10
	r := NewRecoveryCounters(cfg, 2) // shorter than RecPathLength
	for i := 0; i < 1000; i++ {
		trigger := r.Update(0, 0.5)
		test.That(t, trigger, test.ShouldNotEqual, PathTimeoutRecovery)
	}
}

func TestResetClearsAllCounters(t *testing.T) {
	cfg := baseConfig()
	r := NewRecoveryCounters(cfg, 0)
	r.Update(0.5, 0.0)
	r.Reset()
	test.That(t, r.stallTicks, test.ShouldEqual, 0)
	test.That(t, r.circlingTicks, test.ShouldEqual, 0)
	test.That(t, r.tickCount, test.ShouldEqual, 0)
}
