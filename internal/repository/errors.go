package repository

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every backend. Callers match with errors.Is; the
// original backend error stays reachable through Unwrap for diagnostics.
var (
	// ErrNotConfigured is returned by every operation on a backend whose
	// configuration failed validation at startup.
	ErrNotConfigured = errors.New("storage backend not configured")

	// ErrNotFound is returned only where existence is semantically
	// required (e.g. adjusting a balance that was never created). Plain
	// lookups normalize absence to a nil result instead.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation covers unique and referential constraint
	// failures, most notably duplicate emails and usernames.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrConnection covers transport-level failures reaching the backend.
	ErrConnection = errors.New("storage connection failed")
)

// Error ties a taxonomy kind to the operation that failed and the raw backend
// error. errors.Is matches the kind; errors.Unwrap yields the original.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// WrapError classifies err under kind for operation op.
func WrapError(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}
