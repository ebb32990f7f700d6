package coach

import (
	"errors"
	"fmt"
)

// Errors returned by Session operations.
var (
	// ErrUnknownVariable indicates a query or plot named a variable that was never recorded.
	ErrUnknownVariable = errors.New("coach: unknown variable")

	// ErrInvalidValue indicates a non-numeric (or NaN) value was passed to Track.
	ErrInvalidValue = errors.New("coach: invalid value")

	// ErrEmptyStep indicates Track was called without any values.
	ErrEmptyStep = errors.New("coach: empty step")

	// ErrInvalidName indicates an empty variable name.
	ErrInvalidName = errors.New("coach: invalid variable name")

	// ErrNoRenderer indicates Plot was called on a session without a renderer.
	ErrNoRenderer = errors.New("coach: no renderer configured")

	// ErrAlignment is matched by *AlignmentError.
	ErrAlignment = errors.New("coach: series alignment violated")
)

// VariableError wraps an error with the operation and variable it concerns.
type VariableError struct {
	Op    string
	Name  string
	Value any
	Err   error
}

func (e *VariableError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s %q: %v (got %T %v)", e.Op, e.Name, e.Err, e.Value, e.Value)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *VariableError) Unwrap() error {
	return e.Err
}

// AlignmentError reports a series whose length disagrees with the step count.
//
// It is never returned. The series store panics with it, because the
// recorded data can no longer be trusted once alignment is lost.
type AlignmentError struct {
	Name string
	Got  int
	Want int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%v: series %q has %d samples, want %d", ErrAlignment, e.Name, e.Got, e.Want)
}

func (e *AlignmentError) Is(target error) bool {
	return target == ErrAlignment
}
