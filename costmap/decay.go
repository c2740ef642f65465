package costmap

import (
	"math"

	"github.com/pkg/errors"
)

// DecayType selects the law used to grade the soft-padding ring beyond the
// hard-padding radius, per spec.md §3.
type DecayType string

// The three decay laws the generator can be configured with.
const (
	DecayExponential DecayType = "exponential"
	DecayReciprocal  DecayType = "reciprocal"
	DecayLinear      DecayType = "linear"
)

// Valid reports whether d names one of the three known decay laws.
func (d DecayType) Valid() bool {
	switch d {
	case DecayExponential, DecayReciprocal, DecayLinear:
		return true
	default:
		return false
	}
}

// Profile is an ordered, strictly-decreasing sequence of soft-cost values,
// one per ring step beyond the hard-padding radius.
type Profile []int8

// NewProfile precomputes the decay profile for decayType over decayDistance
// meters at the given grid resolution, per spec.md §3. Length is at most
// ceil(decayDistance/resolution): the sequence ends at its first 0 entry,
// so it is shorter when the values reach 0 early. Values are computed over
// a normalized ring index r in [0,1] and strictly decrease along the
// sequence.
//
// An unknown decayType is a fatal configuration error, never silently
// defaulted, per spec.md §7 "Invalid decay type string: fatal at startup."
func NewProfile(decayType DecayType, decayDistance, resolution float64) (Profile, error) {
	if !decayType.Valid() {
		return nil, errors.Errorf("unknown decay_type %q", decayType)
	}
	if decayDistance <= 0 || resolution <= 0 {
		return nil, errors.Errorf("decay_distance and resolution must be positive, got %f and %f", decayDistance, resolution)
	}

	steps := int(math.Ceil(decayDistance / resolution))
	if steps < 1 {
		steps = 1
	}

	// Each value must strictly decrease from the one before it: clamp to
	// prev-1 when the raw formula would hold flat or rise (the reciprocal
	// law plateaus near r=1). Once that clamp would go to or below zero,
	// append a single 0 and stop — further rings would-be duplicate zeros,
	// and stamp treats "beyond the profile" the same as a zero entry.
	profile := make(Profile, 0, steps)
	for i := 0; i < steps; i++ {
		r := 0.0
		if steps > 1 {
			r = float64(i) / float64(steps-1)
		}
		v := decayValue(decayType, r)
		if i > 0 && v >= profile[i-1] {
			v = profile[i-1] - 1
		}
		if v <= 0 {
			profile = append(profile, 0)
			break
		}
		profile = append(profile, v)
	}
	return profile, nil
}

func decayValue(decayType DecayType, r float64) int8 {
	var raw float64
	switch decayType {
	case DecayExponential:
		raw = 100*math.Exp(-3.506*r) - 2
	case DecayReciprocal:
		raw = 1 / (0.9898*r + 0.0102)
	case DecayLinear:
		raw = 100 - 97*r - 2
	}
	v := math.Floor(raw)
	if v > 98 {
		v = 98
	}
	if v < 0 {
		v = 0
	}
	return int8(v)
}
