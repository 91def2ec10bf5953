package service

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every precondition violation a caller can recover
// from unwraps to exactly one of these, and the transport layer maps the
// kind to a client-facing status.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NotFoundError names the missing entity.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ForbiddenError carries the role/ownership violation reason.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// InvalidArgumentError names the offending field.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsForbidden(err error) bool       { return errors.Is(err, ErrForbidden) }
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
