package quantum

import "errors"

// Domain errors for well construction and evaluation.
var (
	// ErrInvalidParams indicates a non-positive physical parameter.
	ErrInvalidParams = errors.New("quantum: physical parameters must be positive")

	// ErrInvalidMode indicates a mode index or truncation order below 1.
	ErrInvalidMode = errors.New("quantum: mode index must be >= 1")

	// ErrInvalidGrid indicates a spatial grid with fewer than two points.
	ErrInvalidGrid = errors.New("quantum: grid must contain at least two points")

	// ErrInvalidTime indicates a NaN or infinite evaluation time.
	ErrInvalidTime = errors.New("quantum: time must be finite")
)
