package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Cart ──> Complete ──> Canceled
//	  │                      ^
//	  └──────────────────────┘
//
// Cancellation of a completed order keeps the completion marker so that
// payment-state inference can distinguish "canceled and paid for" (refund
// owed) from "canceled before any payment".
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Cart is the initial status while the order is being assembled.
	Cart

	// Complete indicates checkout finished; payments and shipments are live.
	Complete

	// Canceled indicates the order was abandoned or reversed.
	Canceled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "unknown",
		Cart:     "cart",
		Complete: "complete",
		Canceled: "canceled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Cart:     "cart",
		Complete: "complete",
		Canceled: "canceled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Complete transitions Cart -> Complete.
func (s Status) Complete() (Status, error) {
	if s != Cart {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete from", s.String()),
		)
	}

	return Complete, nil
}

// Cancel transitions Cart or Complete -> Canceled.
func (s Status) Cancel() (Status, error) {
	if s != Cart && s != Complete {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel from", s.String()),
		)
	}

	return Canceled, nil
}
