package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimension is returned when a grid is non-positive or too large
	ErrInvalidDimension = errors.New("invalid grid dimension")
	// ErrOutOfBounds is returned for any coordinate outside the grid
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvariantViolation marks a core bug; it is raised with panic, never returned
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrUnknownPattern is returned when a preset name is not in the catalog
	ErrUnknownPattern = errors.New("unknown pattern")
)
