package adjustment

import (
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// OriginatorType is the closed set of things that can produce an adjustment
// amount. It replaces an open-ended polymorphic reference: the aggregation
// pipeline only ever needs to distinguish tax sources from fee sources from
// manual admin charges.
type OriginatorType string

const (
	// OriginatorTaxRate marks adjustments produced by a tax rate.
	OriginatorTaxRate OriginatorType = "tax_rate"

	// OriginatorEnterpriseFee marks adjustments produced by an enterprise fee.
	OriginatorEnterpriseFee OriginatorType = "enterprise_fee"

	// OriginatorAdmin marks manual charges or credits entered by an admin.
	OriginatorAdmin OriginatorType = "admin"
)

// Validate checks the originator type against the closed set.
func (t OriginatorType) Validate() error {
	switch t {
	case OriginatorTaxRate, OriginatorEnterpriseFee, OriginatorAdmin:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"originator type is invalid",
		fmt.Errorf("%q is not a valid originator type", string(t)),
	)
}

// String returns the persisted name of the originator type.
func (t OriginatorType) String() string {
	return string(t)
}

// IsTax reports whether the originator is a tax source. Tax-originated
// amounts aggregate into the tax totals; everything else is a fee or manual
// charge.
func (t OriginatorType) IsTax() bool {
	return t == OriginatorTaxRate
}

// Originator references whatever produced an adjustment's amount: a tax
// rate, an enterprise fee, or a manual admin entry.
type Originator struct {
	Type OriginatorType
	ID   kernel.UUID
}

// Validate checks the originator reference.
func (o Originator) Validate() error {
	if err := o.Type.Validate(); err != nil {
		return err
	}
	return o.ID.Validate()
}
