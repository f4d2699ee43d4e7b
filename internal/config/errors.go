package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode indicates a lattice mode other than planar or sphere.
	ErrUnknownMode = errors.New("config: unknown lattice mode")

	// ErrUnknownPreset indicates a preset name missing from Presets.
	ErrUnknownPreset = errors.New("config: unknown preset")

	// ErrInvalidColor indicates a colour that is not #rgb or #rrggbb hex.
	ErrInvalidColor = errors.New("config: invalid colour")

	// ErrUnknownLevel indicates a quality level name that cannot be parsed.
	ErrUnknownLevel = errors.New("config: unknown quality level")
)

// FieldError wraps a validation error with the offending field.
type FieldError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s = %v", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}
