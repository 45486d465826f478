package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for grid indices outside the level.
	ErrOutOfBounds = errors.New("engine: cell out of bounds")

	// ErrPermanentWall is returned when a write targets a border or lattice
	// wall after generation.
	ErrPermanentWall = errors.New("engine: cell is a permanent wall")

	// ErrNoEligibleCell means the level has no cell satisfying a placement
	// rule, even after the fallback scan. The grid is too small or too full
	// for the configuration.
	ErrNoEligibleCell = errors.New("engine: no eligible cell")
)

// ConfigError is a fatal configuration problem found at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
