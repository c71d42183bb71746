package kspace

import "fmt"

// InvalidInputError indicates an image grid that cannot be transformed:
// a zero-sized dimension or non-finite (NaN/Inf) values. It is raised
// before any transform work is performed.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// ConfigurationError indicates an out-of-range mask parameter or a
// non-positive mask dimension. It is raised before mask construction.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Param, e.Reason)
}

// ShapeMismatchError indicates that two grids which must share a shape
// do not. It signals a caller defect, not a recoverable condition.
type ShapeMismatchError struct {
	WantHeight, WantWidth int
	GotHeight, GotWidth   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: expected %dx%d, got %dx%d",
		e.WantHeight, e.WantWidth, e.GotHeight, e.GotWidth)
}
