package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrValidation             = errors.New("validation failed")
	ErrConflict               = errors.New("conflict")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrUnexpected             = errors.New("unexpected error")
)

// FieldError names one rejected input field and the rule it broke.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError reports malformed input. It never accompanies a state change.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" ("+f.Rule+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports a unique-constraint violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string { return e.Field + " already in use" }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// InvalidTransitionError is returned when a donation is not pending anymore.
type InvalidTransitionError struct {
	DonationID string
	From       PaymentStatus
	To         PaymentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("donation %s: cannot move from %s to %s", e.DonationID, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidStateTransition }

// UnexpectedError wraps store or transport failures. Callers see only the
// generic message; Err is kept for logs.
type UnexpectedError struct {
	Op  string
	Err error
}

func Unexpected(op string, err error) error {
	return &UnexpectedError{Op: op, Err: err}
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

func (e *UnexpectedError) Is(target error) bool { return target == ErrUnexpected }

// Kind classifies err into one of the error kinds used by handlers and metrics.
// Errors outside the taxonomy are reported as "".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnexpected):
		return "unexpected"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidStateTransition):
		return "invalid_state_transition"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	}
	return ""
}
