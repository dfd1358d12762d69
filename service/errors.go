package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when the caller does not own the record.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when a write collides with existing state.
	ErrConflict = errors.New("conflict")

	// ErrDuplicate is returned by repositories when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate key value")
)

// ValidationError is a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// kindError carries a user-facing message and unwraps to one of the sentinels.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func notFound(what string) error {
	return &kindError{msg: fmt.Sprintf("%s not found", what), kind: ErrNotFound}
}

func forbidden(msg string) error {
	return &kindError{msg: msg, kind: ErrForbidden}
}

func conflict(msg string) error {
	return &kindError{msg: msg, kind: ErrConflict}
}

func isNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func isDuplicate(err error) bool { return errors.Is(err, ErrDuplicate) }
