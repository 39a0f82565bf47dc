package plan

import (
	"errors"
	"fmt"
)

// Sentinel errors, matchable via errors.Is.
var (
	// ErrMalformedLayout indicates a structural problem in the input grid:
	// dimension mismatch, missing entrance/exit, or an out-of-range
	// coordinate.
	ErrMalformedLayout = errors.New("malformed layout")

	// ErrUnreachableEntrance indicates the entrance cannot reach the exit
	// in the current plan. plan.New itself never rejects this (only
	// Validate does), so a Plan built directly from an unvalidated
	// layout, or mutated past Validate without being checked, can still
	// reach simulate.Simulate in this state; simulate returns this error
	// rather than looping forever trying to find a route.
	ErrUnreachableEntrance = errors.New("entrance unreachable")
)

// MalformedLayoutError wraps ErrMalformedLayout with the offending detail.
type MalformedLayoutError struct {
	Reason string
}

func (e *MalformedLayoutError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedLayout, e.Reason)
}

func (e *MalformedLayoutError) Unwrap() error {
	return ErrMalformedLayout
}

func malformed(format string, args ...interface{}) error {
	return &MalformedLayoutError{Reason: fmt.Sprintf(format, args...)}
}
