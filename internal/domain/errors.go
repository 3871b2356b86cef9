package domain

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation marks an internal planning defect, such as an
// allocation exceeding declared inventory. It indicates a bug in the planner,
// not bad input, and must never be surfaced as a user-actionable error.
var ErrInvariantViolation = errors.New("planning invariant violated")

// ValidationError reports a malformed core input. The request aborts before
// any allocation occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnsupportedActionError reports a request action the planner does not
// implement. It carries the offending action string.
type UnsupportedActionError struct {
	Action string
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("unsupported action %q", e.Action)
}
