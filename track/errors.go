package track

import "errors"

// Errors returned by engine operations.
var (
	ErrInvalidRange        = errors.New("track: invalid range")
	ErrInsufficientData    = errors.New("track: insufficient data")
	ErrConstraintViolation = errors.New("track: constraint violation")
	ErrPointNotFound       = errors.New("track: point not found")
)
