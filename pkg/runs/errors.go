package runs

import "errors"

var (
	// ErrInvalidSchema is returned when the table has fewer than two
	// columns and the action columns cannot be located.
	ErrInvalidSchema = errors.New("runs: table must have at least two columns")

	// ErrInvalidConfiguration is returned for a non-positive threshold
	// or keep interval.
	ErrInvalidConfiguration = errors.New("runs: threshold and keep interval must be positive")
)
