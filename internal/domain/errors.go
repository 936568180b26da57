package domain

import (
	"errors"
	"fmt"
	"strings"
)

type NotFoundError struct {
	Resource string
	ID       any
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource != "" && e.ID != nil:
		return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
	case e.Resource != "":
		return fmt.Sprintf("%s not found", e.Resource)
	default:
		return "not found"
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError carries every violation found, not only the first one.
type ValidationError struct {
	Field    string
	Msg      string
	Problems []string
	Err      error
}

func (e ValidationError) Error() string {
	switch {
	case len(e.Problems) > 0:
		return "validation failed: " + strings.Join(e.Problems, "; ")
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

// Details lists the individual violations for API responses.
func (e ValidationError) Details() []string {
	if len(e.Problems) > 0 {
		return e.Problems
	}
	return []string{e.Error()}
}

type InvalidAmountError struct {
	Value string
}

func (e InvalidAmountError) Error() string {
	if e.Value == "" {
		return "payment amount must be a positive number"
	}
	return fmt.Sprintf("payment amount must be a positive number, got %q", e.Value)
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// ComputationError reports an internal failure while deriving totals.
// Nothing is persisted when it is returned.
type ComputationError struct {
	Msg string
	Err error
}

func (e ComputationError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "computation failed"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e ComputationError) Unwrap() error { return e.Err }

// ClientError marks errors caused by the caller's input. The logger uses it
// to pick a level.
func (NotFoundError) ClientError() bool      { return true }
func (ValidationError) ClientError() bool    { return true }
func (InvalidAmountError) ClientError() bool { return true }
func (ConflictError) ClientError() bool      { return true }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInvalidAmount(err error) bool {
	var target InvalidAmountError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsComputation(err error) bool {
	var target ComputationError
	return errors.As(err, &target)
}
