package costmap

import "github.com/pkg/errors"

func errNegative(field string) error {
	return errors.Errorf("%s must not be negative", field)
}

func errRange(field string, lo, hi int8) error {
	return errors.Errorf("%s must be between %d and %d", field, lo, hi)
}

func errInvalidEnum(field, got string) error {
	return errors.Errorf("%s has unrecognized value %q", field, got)
}
