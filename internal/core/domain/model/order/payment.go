package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// PaymentStatus is the processing state of a single payment.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusCheckout is a payment created during checkout, not yet processed.
	PaymentStatusCheckout

	// PaymentStatusPending is a payment authorized but not captured.
	PaymentStatusPending

	// PaymentStatusCompleted is a captured payment.
	PaymentStatusCompleted

	// PaymentStatusFailed is a payment the processor rejected.
	PaymentStatusFailed

	// PaymentStatusVoid is a payment canceled before capture.
	PaymentStatusVoid

	// PaymentStatusInvalid is a payment invalidated by the store.
	PaymentStatusInvalid
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:   "unknown",
		PaymentStatusCheckout:  "checkout",
		PaymentStatusPending:   "pending",
		PaymentStatusCompleted: "completed",
		PaymentStatusFailed:    "failed",
		PaymentStatusVoid:      "void",
		PaymentStatusInvalid:   "invalid",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentStatusCheckout:  "checkout",
		PaymentStatusPending:   "pending",
		PaymentStatusCompleted: "completed",
		PaymentStatusFailed:    "failed",
		PaymentStatusVoid:      "void",
		PaymentStatusInvalid:   "invalid",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String returns the persisted name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatusFromString parses a persisted payment status name.
func PaymentStatusFromString(raw string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == raw {
			return status, nil
		}
	}

	return 0, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", raw),
	)
}

// Payment is an amount tendered against an order.
type Payment struct {
	id     kernel.UUID
	amount decimal.Decimal
	status PaymentStatus

	guard kernel.ConstructorGuard
}

// NewPayment creates a new payment in the checkout status.
func NewPayment(id kernel.UUID, amount decimal.Decimal) (*Payment, error) {
	payment := &Payment{
		status: PaymentStatusCheckout,
		guard:  kernel.NewConstructorGuard(),
	}

	err := errors.Join(
		payment.setID(id),
		payment.setAmount(amount),
	)
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// RestorePayment reconstructs a payment from persistence.
func RestorePayment(id kernel.UUID, amount decimal.Decimal, status PaymentStatus) (*Payment, error) {
	payment := &Payment{
		guard: kernel.NewConstructorGuard(),
	}

	err := errors.Join(
		payment.setID(id),
		payment.setAmount(amount),
		payment.setStatus(status),
	)
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	p.id = id
	return nil
}

func (p *Payment) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("amount")
	}
	p.amount = amount
	return nil
}

func (p *Payment) setStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	p.status = status
	return nil
}

// ID returns the payment identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// Amount returns the payment amount.
func (p *Payment) Amount() decimal.Decimal {
	return p.amount
}

// Status returns the payment processing status.
func (p *Payment) Status() PaymentStatus {
	return p.status
}

// IsCompleted reports whether the payment has been captured.
func (p *Payment) IsCompleted() bool {
	return p.status == PaymentStatusCompleted
}

// IsValid reports whether the payment counts toward the order's payment
// situation. Failed and invalidated payments are ignored.
func (p *Payment) IsValid() bool {
	return p.status != PaymentStatusFailed && p.status != PaymentStatusInvalid
}

// Complete marks the payment as captured.
func (p *Payment) Complete() error {
	if p.status == PaymentStatusFailed || p.status == PaymentStatusVoid || p.status == PaymentStatusInvalid {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete from", p.status.String()),
		)
	}
	p.status = PaymentStatusCompleted
	return nil
}

// Fail marks the payment as rejected by the processor.
func (p *Payment) Fail() {
	p.status = PaymentStatusFailed
}

// Void cancels the payment before capture.
func (p *Payment) Void() error {
	if p.status == PaymentStatusCompleted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to void from", p.status.String()),
		)
	}
	p.status = PaymentStatusVoid
	return nil
}

// Validate checks that the payment was created via its constructor.
func (p *Payment) Validate() error {
	return p.guard.Validate(errs.NewValueIsRequiredError("payment"))
}
