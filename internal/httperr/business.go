package httperr

import (
	"errors"
	"fmt"
	"strings"
)

// MalformedRequestError means the body could not be decoded at all.
type MalformedRequestError struct {
	Detail string
}

func (e MalformedRequestError) Error() string {
	return "Invalid JSON payload"
}

// MissingFieldError names the first required field absent from a payload.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// ValidationError carries every violation found, in field order.
type ValidationError struct {
	Violations []Violation
}

func (e ValidationError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

func (e ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.String())
	}
	return out
}

type AuthenticationError struct {
	Message string
}

func (e AuthenticationError) Error() string {
	if e.Message == "" {
		return "Authentication required."
	}
	return e.Message
}

type AuthorizationError struct {
	Message string
}

func (e AuthorizationError) Error() string {
	if e.Message == "" {
		return "Access denied."
	}
	return e.Message
}

type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	if e.Entity == "" {
		return "Not found."
	}
	return e.Entity + " not found."
}

type ConflictError struct {
	Field   string
	Message string
}

func (e ConflictError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "This value is already used."
	}
	if e.Field == "" {
		return msg
	}
	return e.Field + ": " + msg
}

// UnavailableError reports a feature whose backing service is not configured.
type UnavailableError struct {
	Message string
}

func (e UnavailableError) Error() string {
	return e.Message
}

var (
	ErrUnauthenticated = AuthenticationError{}
	ErrForbidden       = AuthorizationError{}
)

func NewValidation(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return ValidationError{Violations: violations}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c ConflictError
	return errors.As(err, &c)
}
