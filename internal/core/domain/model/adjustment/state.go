package adjustment

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// State represents the lifecycle of an adjustment's amount.
// It implements a small state machine governing mutability:
//
//	Open ──┬──> Closed ──> Finalized
//	  ^        │      ┌──────^
//	  └────────┘      │
//	  (reopen)      Open
//
// Open and Closed adjustments may be recomputed; once Finalized the amount
// is frozen forever and no transition leaves the state.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Open is the initial state; the amount follows its source freely.
	Open

	// Closed marks the amount as settled but still reversible; a closed
	// adjustment can be reopened or finalized.
	Closed

	// Finalized freezes the amount permanently. Terminal state.
	Finalized
)

// getStateStrings returns a map of State values to their string representations.
func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:   "unknown",
		Open:      "open",
		Closed:    "closed",
		Finalized: "finalized",
	}
}

// getValidStateStrings returns a map of only valid State values.
func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Open:      "open",
		Closed:    "closed",
		Finalized: "finalized",
	}
}

// Validate checks if the State value is valid.
// Valid states are Open, Closed and Finalized.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the persisted name of the state.
// Implements fmt.Stringer and is safe on any State value.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StateFromString parses a persisted state name.
func StateFromString(s string) (State, error) {
	for state, str := range getValidStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"state is invalid",
		fmt.Errorf("%q is not a valid state", s),
	)
}

// Close transitions Open -> Closed.
// Any other starting state is rejected, leaving the prior state intact.
func (s State) Close() (State, error) {
	if s != Open {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to close from", s.String()),
		)
	}

	return Closed, nil
}

// Reopen transitions Closed -> Open.
func (s State) Reopen() (State, error) {
	if s != Closed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to reopen from", s.String()),
		)
	}

	return Open, nil
}

// Finalize transitions Open or Closed -> Finalized.
// Finalized is terminal: finalizing a finalized adjustment is rejected.
func (s State) Finalize() (State, error) {
	if s != Open && s != Closed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to finalize from", s.String()),
		)
	}

	return Finalized, nil
}
