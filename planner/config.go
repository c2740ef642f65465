// Package planner implements the Dynamic Window local planner of
// spec.md §§4.4-4.8: velocity sampling, trajectory rollout, cost
// evaluation, the DWA control loop, and the recovery state machine.
package planner

import (
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Config configures the Dynamic Window planner, per spec.md §6
// "Planner".
type Config struct {
	MinLinearVel  float64 `json:"min_linear_vel"`
	MaxLinearVel  float64 `json:"max_linear_vel"`
	MinAngularVel float64 `json:"min_angular_vel"`
	MaxAngularVel float64 `json:"max_angular_vel"`

	MaxAcc float64 `json:"max_acc"`
	MaxDec float64 `json:"max_dec"`

	MinDistGoal float64 `json:"min_dist_goal"`
	Lookahead   float64 `json:"lookahead"`

	ResLinVelSpace int `json:"res_lin_vel_space"`
	ResAngVelSpace int `json:"res_ang_vel_space"`

	GainVel       float64 `json:"gain_vel"`
	GainGlobPath  float64 `json:"gain_glob_path"`
	GainGoalAngle float64 `json:"gain_goal_angle"`
	GainClearance float64 `json:"gain_clearance"`

	RecMinLinVel      float64 `json:"rec_min_lin_vel"`
	RecMinLinVelTime  float64 `json:"rec_min_lin_vel_time"`
	RecCirclingTime   float64 `json:"rec_circling_time"`
	RecPathTimeFactor float64 `json:"rec_path_time_factor"`
	RecPathLength     int     `json:"rec_path_length"`

	RobotRadius    float64 `json:"robot_radius"`
	SafetyDistance float64 `json:"safety_distance"`
	FrequencyHz    float64 `json:"frequency"`

	// LogTimes mirrors spec.md §6's Global `log_times` knob at the
	// component that actually ticks, rather than via a separate Global
	// config struct (see DESIGN.md).
	LogTimes bool `json:"log_times"`
}

// Validate checks every field of Config, returning the first problem
// found: gains are non-negative configuration (spec.md §4.6), velocity
// bounds are ordered, and every frequency is strictly positive.
func (c *Config) Validate(path string) error {
	if c.MaxLinearVel <= c.MinLinearVel {
		return utils.NewConfigValidationError(path, errors.New("max_linear_vel must be greater than min_linear_vel"))
	}
	if c.MaxAngularVel <= c.MinAngularVel {
		return utils.NewConfigValidationError(path, errors.New("max_angular_vel must be greater than min_angular_vel"))
	}
	if c.MaxAcc <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "max_acc")
	}
	if c.MaxDec <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "max_dec")
	}
	if c.MinDistGoal <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "min_dist_goal")
	}
	if c.Lookahead <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "lookahead")
	}
	if c.ResLinVelSpace < 1 || c.ResAngVelSpace < 1 {
		return utils.NewConfigValidationError(path, errors.New("res_lin_vel_space and res_ang_vel_space must be >= 1"))
	}
	for name, gain := range map[string]float64{
		"gain_vel": c.GainVel, "gain_glob_path": c.GainGlobPath,
		"gain_goal_angle": c.GainGoalAngle, "gain_clearance": c.GainClearance,
	} {
		if gain < 0 {
			return utils.NewConfigValidationError(path, errors.Errorf("%s must be non-negative", name))
		}
	}
	if c.RecMinLinVelTime <= 0 || c.RecCirclingTime <= 0 || c.RecPathTimeFactor <= 0 {
		return utils.NewConfigValidationError(path, errors.New("recovery timing fields must be positive"))
	}
	if c.RecPathLength < 0 {
		return utils.NewConfigValidationError(path, errors.New("rec_path_length must be non-negative"))
	}
	if c.RobotRadius <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "robot_radius")
	}
	if c.FrequencyHz <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "frequency")
	}
	return nil
}
