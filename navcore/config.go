package navcore

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// GlobalConfig holds the process-wide knobs of spec.md §6 "Global": which
// map to load at startup, and the two debug knobs §6 names without tying
// to one component. DebugMode selects the debug-level logger at process
// bootstrap (see cmd/navcored, where it ORs with the --debug flag) rather
// than flowing through ApplyGlobal, since log-level selection happens
// before a Config even exists; LogTimes flows through ApplyGlobal onto
// planner.Config and costmap.LocalConfig, the two components that tick
// (see DESIGN.md for why there is no single Global struct threaded
// through every component).
type GlobalConfig struct {
	InitMapNr int  `json:"init_map_nr"`
	DebugMode bool `json:"debug_mode"`
	LogTimes  bool `json:"log_times"`
}

// Validate checks every sub-config block, collecting every failure
// instead of stopping at the first so a malformed bootstrap file reports
// all of its problems at once.
func (c *Config) Validate(path string) error {
	var errs error
	if c.Resolution <= 0 {
		errs = multierr.Combine(errs, utils.NewConfigValidationFieldRequiredError(path, "resolution"))
	}
	errs = multierr.Combine(errs, c.Costmap.Validate(path+".costmap"))
	errs = multierr.Combine(errs, c.Local.Validate(path+".local_costmap"))
	errs = multierr.Combine(errs, c.Planner.Validate(path+".planner"))
	if c.InitMapID < 0 {
		errs = multierr.Combine(errs, utils.NewConfigValidationError(path, errors.New("init_map_nr must be non-negative")))
	}
	return errs
}

// ApplyGlobal propagates GlobalConfig's log_times knob onto the
// sub-configs that actually tick, and init_map_nr onto InitMapID.
// debug_mode is not propagated.
func (c *Config) ApplyGlobal(g GlobalConfig) {
	c.InitMapID = g.InitMapNr
	c.Local.LogTimes = g.LogTimes
	c.Planner.LogTimes = g.LogTimes
}
