package nmf

import "errors"

var (
	// ErrShapeMismatch reports inputs that are not a valid (W, X) pair:
	// differing row counts or an empty dimension.
	ErrShapeMismatch = errors.New("nmf: shape mismatch")

	// ErrInvalidConfig reports nonsensical solver parameters. Note that a
	// too-small population is floored to 2 rather than rejected.
	ErrInvalidConfig = errors.New("nmf: invalid configuration")
)
