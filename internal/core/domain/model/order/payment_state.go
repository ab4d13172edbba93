package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// PaymentState is a derived label describing the order's payment situation.
// It is inferred from the payments attached to the order and the outstanding
// balance, never set directly by callers.
type PaymentState int

const (
	// PaymentStateUnknown represents an invalid or undefined payment state.
	PaymentStateUnknown PaymentState = iota

	// PaymentStateBalanceDue indicates the customer still owes money.
	PaymentStateBalanceDue

	// PaymentStatePaid indicates payments exactly cover the order total.
	PaymentStatePaid

	// PaymentStateCreditOwed indicates payments exceed the order total.
	PaymentStateCreditOwed

	// PaymentStateFailed indicates every payment on the order has failed.
	PaymentStateFailed

	// PaymentStateVoid indicates a canceled order with nothing captured.
	PaymentStateVoid
)

func getPaymentStateStrings() map[PaymentState]string {
	return map[PaymentState]string{
		PaymentStateUnknown:    "unknown",
		PaymentStateBalanceDue: "balance_due",
		PaymentStatePaid:       "paid",
		PaymentStateCreditOwed: "credit_owed",
		PaymentStateFailed:     "failed",
		PaymentStateVoid:       "void",
	}
}

func getValidPaymentStateStrings() map[PaymentState]string {
	//nolint:exhaustive // PaymentStateUnknown is intentionally excluded as it's invalid
	return map[PaymentState]string{
		PaymentStateBalanceDue: "balance_due",
		PaymentStatePaid:       "paid",
		PaymentStateCreditOwed: "credit_owed",
		PaymentStateFailed:     "failed",
		PaymentStateVoid:       "void",
	}
}

// Validate checks if the PaymentState value is valid.
func (s PaymentState) Validate() error {
	if _, ok := getValidPaymentStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment state is invalid",
			fmt.Errorf("%d is not a valid payment state", s),
		)
	}
	return nil
}

// String returns the persisted name of the payment state.
func (s PaymentState) String() string {
	if str, ok := getPaymentStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// PaymentStateFromString parses a persisted payment state name.
func PaymentStateFromString(raw string) (PaymentState, error) {
	for state, str := range getValidPaymentStateStrings() {
		if str == raw {
			return state, nil
		}
	}

	return 0, errs.NewValueIsInvalidErrorWithCause(
		"payment state is invalid",
		fmt.Errorf("%q is not a valid payment state", raw),
	)
}
