package planner

import (
	"gonum.org/v1/gonum/floats"
)

// Window is the rectangular dynamic window of spec.md §4.4: every
// reachable linear velocity crossed with every reachable angular velocity.
type Window struct {
	Linear  []float64
	Angular []float64
}

// Pairs enumerates every (omega, v) combination in the window, in the
// row-major order spec.md §4.7 step 3 iterates for cost evaluation.
func (w *Window) Pairs() [][2]float64 {
	pairs := make([][2]float64, 0, len(w.Linear)*len(w.Angular))
	for _, v := range w.Linear {
		for _, omega := range w.Angular {
			pairs = append(pairs, [2]float64{omega, v})
		}
	}
	return pairs
}

// NewWindow builds the dynamic window for the current twist (v, omega)
// over lookahead horizon tau, per spec.md §4.4.
func NewWindow(v, omega float64, cfg *Config, tau float64) *Window {
	return &Window{
		Linear:  sample1D(v, cfg.MinLinearVel, cfg.MaxLinearVel, cfg.MaxAcc, tau, cfg.ResLinVelSpace),
		Angular: sample1D(omega, cfg.MinAngularVel, cfg.MaxAngularVel, cfg.MaxAcc, tau, cfg.ResAngVelSpace),
	}
}

// sample1D implements spec.md §4.4's one-dimensional reachable-velocity
// sampler:
//
//	lo = max(xMin, x - a*tau)
//	hi = min(xMax, x + a*tau)
//	samples = linspace(lo, hi, n)
//
// with the corner-case fallback to the full [xMin, xMax] range when the
// input velocity is kinematically infeasible (x-a*tau > xMax or
// x+a*tau < xMin), so the search space is never empty.
func sample1D(x, xMin, xMax, a, tau float64, n int) []float64 {
	lo := max(xMin, x-a*tau)
	hi := min(xMax, x+a*tau)
	if x-a*tau > xMax || x+a*tau < xMin {
		lo, hi = xMin, xMax
	}

	samples := make([]float64, n)
	if n == 1 {
		samples[0] = lo
		return samples
	}
	floats.Span(samples, lo, hi)
	return samples
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
