package galaxy

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every parameter rejection returned from
// Validate and Generate.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError describes a single out-of-range field.
type ParameterError struct {
	Field string
	Value any
	Min   float64
	Max   float64
	// Reason overrides the default range message when set.
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %s=%v: want %g..%g", e.Field, e.Value, e.Min, e.Max)
}

func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func outOfRange(f Field, v any) error {
	return &ParameterError{Field: f.Name, Value: v, Min: f.Min, Max: f.Max}
}
