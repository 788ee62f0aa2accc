package domain

import "errors"

// Error kinds surfaced by the simulation engine.
//
// InvalidParameter and InvalidOperation are input-validation errors and are
// reported immediately with the offending value. NumericalDrift indicates an
// internal consistency fault (a gate sequence that failed to preserve the
// state norm) and always aborts the run; silently renormalizing would mask
// the underlying bug.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNumericalDrift   = errors.New("numerical drift")
)
