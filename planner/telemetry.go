package planner

// Telemetry is the side-channel, once-per-tick debugging/visualization
// payload referenced by spec.md §6's `log_times`/`debug_mode` global
// config knobs, which spec.md names but does not wire to any concrete
// component. It surfaces the quantities a debug build or visualizer would
// want: the selected pair and cost, the window size actually searched,
// and the live recovery-counter state.
type Telemetry struct {
	Omega, V      float64
	Cost          float64
	WindowSize    int
	StallTicks    int
	CirclingTicks int
	TickCount     int
	Trajectory    *Trajectory
}

// TelemetryPublisher receives one Telemetry value per DWA tick that
// reaches a cost evaluation (idle ticks with no active plan emit
// nothing).
type TelemetryPublisher func(Telemetry)
