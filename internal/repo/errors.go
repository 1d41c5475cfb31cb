package repo

import (
	"errors"

	"entgo.io/ent/dialect/sql/sqlgraph"
)

// NotFoundError is returned when a lookup matches no row.
type NotFoundError struct {
	label string
}

func (e *NotFoundError) Error() string {
	return "repo: " + e.label + " not found"
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e)
}

// ConstraintError wraps a unique or foreign-key violation reported by the store.
type ConstraintError struct {
	msg  string
	wrap error
}

func (e *ConstraintError) Error() string {
	return "repo: constraint failed: " + e.msg
}

func (e *ConstraintError) Unwrap() error {
	return e.wrap
}

// IsConstraintError reports whether err is (or wraps) a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConstraintError
	return errors.As(err, &e)
}

// constraint converts driver constraint violations into ConstraintError and
// passes every other error through.
func constraint(err error) error {
	if err == nil {
		return nil
	}
	if sqlgraph.IsConstraintError(err) {
		return &ConstraintError{msg: err.Error(), wrap: err}
	}
	return err
}
