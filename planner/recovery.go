package planner

// RecoveryTrigger names which of the three independent conditions of
// spec.md §4.8 fired on a given tick.
type RecoveryTrigger int

const (
	// NoRecovery means no trigger fired this tick.
	NoRecovery RecoveryTrigger = iota
	// StallRecovery is the low-velocity stall trigger.
	StallRecovery
	// CirclingRecovery is the constant-sign angular-velocity trigger.
	CirclingRecovery
	// PathTimeoutRecovery is the path-timeout trigger.
	PathTimeoutRecovery
)

// RecoveryCounters implements the three independent stuck-detection
// counters of spec.md §4.8: low-velocity stall, circling, and path
// timeout. All three reset together on trigger or on goal-reached.
type RecoveryCounters struct {
	cfg *Config

	stallTicks      int
	circlingTicks   int
	circlingSign    int // +1, -1, or 0 when no run is in progress
	tickCount       int
	pathTimeoutTick int
}

// NewRecoveryCounters builds counters for a path of the given length,
// precomputing the path-timeout tick threshold ⌊k_t·|P|/dt⌋, applicable
// only when |P| > L_min.
func NewRecoveryCounters(cfg *Config, pathLen int) *RecoveryCounters {
	r := &RecoveryCounters{cfg: cfg}
	if pathLen > cfg.RecPathLength {
		dt := 1 / cfg.FrequencyHz
		r.pathTimeoutTick = int(cfg.RecPathTimeFactor * float64(pathLen) / dt)
	} else {
		r.pathTimeoutTick = 0
	}
	return r
}

// Update advances all three counters by one DWA tick given the selected
// velocity pair, and returns which trigger (if any) fired.
func (r *RecoveryCounters) Update(omegaStar, vStar float64) RecoveryTrigger {
	r.tickCount++

	if vStar < r.cfg.RecMinLinVel {
		r.stallTicks++
	} else {
		r.stallTicks = 0
	}

	sign := signOf(omegaStar)
	if sign != 0 && sign == r.circlingSign {
		r.circlingTicks++
	} else {
		r.circlingSign = sign
		r.circlingTicks = 1
		if sign == 0 {
			r.circlingTicks = 0
		}
	}

	dt := 1 / r.cfg.FrequencyHz
	if r.stallTicks >= int(r.cfg.RecMinLinVelTime/dt) {
		r.Reset()
		return StallRecovery
	}
	if r.circlingTicks >= int(r.cfg.RecCirclingTime/dt) {
		r.Reset()
		return CirclingRecovery
	}
	if r.pathTimeoutTick > 0 && r.tickCount >= r.pathTimeoutTick {
		r.Reset()
		return PathTimeoutRecovery
	}
	return NoRecovery
}

// Reset zeroes all counters, per spec.md §4.8 "All three counters reset
// on trigger or on goal-reached."
func (r *RecoveryCounters) Reset() {
	r.stallTicks = 0
	r.circlingTicks = 0
	r.circlingSign = 0
	r.tickCount = 0
}

func signOf(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
