package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ncobase/taskapi/validation/validator"
)

var (
	// ErrTaskNotFound is returned for tasks that do not exist or belong to
	// another user.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUnauthorized is returned when a token does not resolve to a user.
	ErrUnauthorized = errors.New("not authorized")
	// ErrInvalidCredentials is returned by Login on a bad email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned by Register when the email is in use.
	ErrEmailTaken = errors.New("user already exists")
)

// ValidationError reports invalid client input.
type ValidationError struct {
	Errors []validator.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidationError(errs []validator.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// StoreError wraps a data access failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
