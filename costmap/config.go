package costmap

import (
	"go.viam.com/utils"
)

// Config configures the global costmap, per spec.md §6 "Global costmap".
type Config struct {
	RobotDiameterM   float64   `json:"robot_diameter"`
	SafetyDistanceM  float64   `json:"safety_distance"`
	PaddedVal        int8      `json:"padded_val"`
	DecayType        DecayType `json:"decay_type"`
	DecayDistanceM   float64   `json:"decay_distance"`
	ApplySoftPadding bool      `json:"apply_soft_padding"`
}

// Validate checks every field of Config, returning the first problem
// found (one field-required/invalid error at a time, wrapped with the
// JSON path).
func (c *Config) Validate(path string) error {
	if c.RobotDiameterM <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "robot_diameter")
	}
	if c.SafetyDistanceM < 0 {
		return utils.NewConfigValidationError(path, errNegative("safety_distance"))
	}
	if c.PaddedVal <= 0 || c.PaddedVal > 99 {
		return utils.NewConfigValidationError(path, errRange("padded_val", 1, 99))
	}
	if c.ApplySoftPadding {
		if !c.DecayType.Valid() {
			return utils.NewConfigValidationError(path, errInvalidEnum("decay_type", string(c.DecayType)))
		}
		if c.DecayDistanceM <= 0 {
			return utils.NewConfigValidationFieldRequiredError(path, "decay_distance")
		}
	}
	return nil
}

// HardRadiusCells is the hard-padding radius, in grid cells, implied by
// half the robot's diameter plus its configured safety margin.
func (c *Config) HardRadiusCells(resolution float64) float64 {
	return (c.RobotDiameterM/2 + c.SafetyDistanceM) / resolution
}

// ApplyDefaults fills in the zero-valued fields that spec.md §6 gives a
// default for.
func (c *Config) ApplyDefaults() {
	if c.PaddedVal == 0 {
		c.PaddedVal = DefaultPaddedValue
	}
}

// LocalConfig configures the rolling local costmap loop, per spec.md §6
// "Local costmap".
type LocalConfig struct {
	LengthM         float64 `json:"length"`
	FrequencyHz     float64 `json:"frequency"`
	FrequencyScanHz float64 `json:"frequency_scan"`

	// LogTimes mirrors spec.md §6's Global `log_times` knob at the
	// component that actually ticks (see DESIGN.md and planner.Config's
	// identical field).
	LogTimes bool `json:"log_times"`
}

// Validate checks every field of LocalConfig.
func (c *LocalConfig) Validate(path string) error {
	if c.LengthM <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "length")
	}
	if c.FrequencyHz <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "frequency")
	}
	if c.FrequencyScanHz <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "frequency_scan")
	}
	return nil
}
