// Package scerr defines the error taxonomy shared by every layer of the
// set-cover library: model validation, invariant programming errors, and
// the status values the CFT engine returns instead of a bare error.
package scerr

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Status distinguishes the terminal conditions a long-running solve can end
// in. Unlike a plain error, a Status is returned alongside a best-effort
// result: Infeasibility and TimeLimitExceeded both still carry a usable
// (if incomplete) solution.
type Status int

const (
	// StatusOK means the operation completed normally.
	StatusOK Status = iota
	// StatusMalformedModel means the model itself violates a structural
	// invariant (mismatched rows/columns, repeated index in a sorted
	// column, non-finite cost). Non-recoverable.
	StatusMalformedModel
	// StatusInfeasible means some element is not covered by any subset,
	// or pricing could not recover a cover for it.
	StatusInfeasible
	// StatusTimeLimitExceeded means a deadline was reached; the caller
	// gets the best feasible solution found so far.
	StatusTimeLimitExceeded
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusMalformedModel:
		return "MalformedModel"
	case StatusInfeasible:
		return "Infeasible"
	case StatusTimeLimitExceeded:
		return "TimeLimitExceeded"
	default:
		return "Unknown"
	}
}

// ErrNoSolution is returned by a generator that reached an algorithmic dead
// end without violating anything — there is simply nothing left to do.
var ErrNoSolution = errors.New("setcover: no solution available for this focus")

// MalformedModelError reports one or more structural defects found while
// validating a Model. Multiple findings are aggregated (via multierr) so
// that, e.g., reporting a non-finite cost on subset 3 does not hide a
// repeated-index finding on subset 7.
type MalformedModelError struct {
	err error
}

// NewMalformedModelError wraps one or more findings into a single error.
func NewMalformedModelError(findings ...error) *MalformedModelError {
	if len(findings) == 0 {
		return nil
	}
	return &MalformedModelError{err: multierr.Combine(findings...)}
}

func (e *MalformedModelError) Error() string {
	return fmt.Sprintf("setcover: malformed model: %s", e.err)
}

func (e *MalformedModelError) Unwrap() error { return e.err }

// InfeasibilityError reports the first element found uncovered by any
// subset in the model.
type InfeasibilityError struct {
	// UncoveredElement is the index of an element with no covering
	// subset (there may be more; this is the first one found).
	UncoveredElement int64
}

func (e *InfeasibilityError) Error() string {
	return fmt.Sprintf("setcover: element %d is not covered by any subset", e.UncoveredElement)
}

// InvariantViolation is panicked (never returned) when a SetCoverInvariant
// precondition is violated — a programming error, not a recoverable
// condition. Public entry points always check; hot inner loops only check
// in non-production builds (see the Debug package variable).
type InvariantViolation struct {
	Op     string
	Reason string
}

func (v *InvariantViolation) Error() string {
	return fmt.Sprintf("setcover: invariant violation in %s: %s", v.Op, v.Reason)
}

// Panic raises an InvariantViolation for op with the given reason.
func Panic(op, reason string) {
	panic(&InvariantViolation{Op: op, Reason: reason})
}

// Debug enables additional consistency checks in hot inner loops (the
// "debug-only checks" the error-handling design calls for). It defaults to
// false; tests that want the stronger checking set it explicitly.
var Debug = false
