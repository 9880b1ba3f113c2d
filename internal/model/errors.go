package model

import (
	"errors"
	"fmt"
)

// Error taxonomy for the authoring core.
//
// ErrInvalidSpec marks structurally invalid input caught before any
// synthesis work; it is a caller bug and never worth retrying.
// ErrResolutionMiss marks a name that could not be resolved (component kind,
// scene object, clip path); the handling policy is fixed per call site.
// ErrPersistenceFailure marks an asset sink error; synthesis is
// deterministic, so the caller's recovery path is to re-invoke.
var (
	ErrInvalidSpec        = errors.New("invalid spec")
	ErrResolutionMiss     = errors.New("resolution miss")
	ErrPersistenceFailure = errors.New("persistence failure")
)

// InvalidSpecf wraps ErrInvalidSpec with a formatted description.
func InvalidSpecf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, fmt.Sprintf(format, args...))
}

// ResolutionMissf wraps ErrResolutionMiss with a formatted description.
func ResolutionMissf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrResolutionMiss, fmt.Sprintf(format, args...))
}

// ErrorKind maps an error to its taxonomy label for result envelopes.
// Unclassified errors report as "internal"; once input validation passes,
// those indicate programmer errors rather than reachable states.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSpec):
		return "invalid_spec"
	case errors.Is(err, ErrResolutionMiss):
		return "resolution_miss"
	case errors.Is(err, ErrPersistenceFailure):
		return "persistence_failure"
	default:
		return "internal"
	}
}
