package planner

import (
	"errors"
	"fmt"
)

// StateConflictError rejects an action that does not match the session's
// current awaiting state. The session is never mutated.
type StateConflictError struct {
	Code    string
	Message string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewStateConflictError(msg string) error {
	return &StateConflictError{
		Code:    "stateConflict",
		Message: msg,
	}
}

// IsStateConflict reports whether err is a state-conflict rejection.
func IsStateConflict(err error) bool {
	var sc *StateConflictError
	return errors.As(err, &sc)
}

// ValidationError rejects malformed boundary input, such as a flight
// selection index outside the option list.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{
		Code:    "validationError",
		Message: msg,
	}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
