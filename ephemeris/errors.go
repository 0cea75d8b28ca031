package ephemeris

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every validation failure in this package.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the offending field of a rejected computation.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %v: %s", ErrInvalidInput, e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Field: field, Value: v, Reason: "must be finite"}
	}
	return nil
}

func checkRange(field string, v, min, max float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < min || v > max {
		return &InputError{Field: field, Value: v, Reason: fmt.Sprintf("must be within [%g, %g]", min, max)}
	}
	return nil
}
